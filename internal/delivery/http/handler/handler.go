package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/delivery/http/request"
	"github.com/user/salesbot-service/internal/delivery/http/response"
	"github.com/user/salesbot-service/internal/delivery/http/widget"
	"github.com/user/salesbot-service/internal/usecase"
	"github.com/user/salesbot-service/pkg/utils"
)

const maxChatBodyBytes = 1 << 20

type Handler struct {
	facts   usecase.FactsProvider
	chat    usecase.Responder
	widget  *widget.Renderer
	logger  *zap.Logger
	version string
	started time.Time
	now     func() time.Time
}

func NewHandler(facts usecase.FactsProvider, chat usecase.Responder, renderer *widget.Renderer, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		facts:   facts,
		chat:    chat,
		widget:  renderer,
		logger:  logger,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
}

// HandleExtract returns the bare record.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	target, ok := h.targetURL(w, r)
	if !ok {
		return
	}
	h.logger.Info("Extraction requested", zap.String("url", target))
	h.writeJSON(w, http.StatusOK, h.facts.Extract(r.Context(), target))
}

// HandleAPIExtract returns the record wrapped in a success envelope.
func (h *Handler) HandleAPIExtract(w http.ResponseWriter, r *http.Request) {
	target, ok := h.targetURL(w, r)
	if !ok {
		return
	}
	h.logger.Info("Extraction requested", zap.String("url", target))
	h.writeJSON(w, http.StatusOK, response.ExtractResponse{
		Success: true,
		Data:    h.facts.Extract(r.Context(), target),
	})
}

// HandleChatbot serves the chat widget page for a landing page.
func (h *Handler) HandleChatbot(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	robot := strings.TrimSpace(r.URL.Query().Get("robot"))
	if rawURL == "" || robot == "" {
		http.Error(w, "URL e nome do robô são obrigatórios", http.StatusBadRequest)
		return
	}
	target, err := utils.NormalizeURL(rawURL)
	if err != nil {
		http.Error(w, "URL inválida", http.StatusBadRequest)
		return
	}

	h.logger.Info("Rendering chatbot page", zap.String("url", target), zap.String("robot", robot))
	facts := h.facts.Extract(r.Context(), target)

	var buf bytes.Buffer
	if err := h.widget.Render(&buf, robot, facts); err != nil {
		h.logger.Error("Failed to render chatbot page", zap.String("url", target), zap.Error(err))
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleChat answers a widget message using the record the widget posts back.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		h.writeJSONError(w, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" || req.PageData == nil {
		h.writeJSONError(w, "Mensagem e dados da página são obrigatórios", http.StatusBadRequest)
		return
	}

	h.logger.Info("Chat message received",
		zap.String("robot", req.RobotName), zap.String("conversation_id", req.ConversationID))
	reply := h.chat.Respond(r.Context(), req.Message, *req.PageData, req.ConversationID)
	h.writeJSON(w, http.StatusOK, response.ChatResponse{Success: true, Response: reply})
}

// HandleTestExtraction runs a fresh extraction and reports where each field came from.
func (h *Handler) HandleTestExtraction(w http.ResponseWriter, r *http.Request) {
	target, ok := h.targetURL(w, r)
	if !ok {
		return
	}
	facts, report, strategy := h.facts.Inspect(r.Context(), target)
	h.writeJSON(w, http.StatusOK, response.TestExtractionResponse{
		Success:       true,
		URL:           target,
		ExtractedData: facts,
		Report:        report,
		Strategy:      strategy,
		Timestamp:     h.now().UTC(),
	})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	h.writeJSON(w, http.StatusOK, response.HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Seconds(),
		Version:   h.version,
	})
}

// targetURL reads and validates the url query parameter, writing a 400 on failure.
func (h *Handler) targetURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		h.writeJSONError(w, "URL é obrigatória", http.StatusBadRequest)
		return "", false
	}
	target, err := utils.NormalizeURL(rawURL)
	if err != nil {
		h.writeJSONError(w, "URL inválida", http.StatusBadRequest)
		return "", false
	}
	return target, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Success: false, Error: message})
}
