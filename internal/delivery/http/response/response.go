package response

import (
	"time"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/extractor"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ExtractResponse struct {
	Success bool                `json:"success"`
	Data    domain.ProductFacts `json:"data"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// TestExtractionResponse adds the per-field diagnostics to the record.
type TestExtractionResponse struct {
	Success       bool                `json:"success"`
	URL           string              `json:"url"`
	ExtractedData domain.ProductFacts `json:"extractedData"`
	Report        extractor.Report    `json:"report"`
	Strategy      string              `json:"strategy"`
	Timestamp     time.Time           `json:"timestamp"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"` // seconds
	Version   string    `json:"version"`
}
