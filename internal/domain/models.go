package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Defaults used whenever a field cannot be resolved from the page.
const (
	DefaultTitle       = "Produto Incrível"
	DefaultDescription = "Descubra este produto incrível que vai transformar sua vida!"
	PricePlaceholder   = "Consulte o preço na página"
	DefaultCTA         = "Compre Agora!"

	MaxDescriptionRunes = 500
	MaxBenefits         = 5
	MaxTestimonials     = 3
	MaxBonus            = 3
)

// DefaultBenefits are shown when the page lists no benefits of its own.
var DefaultBenefits = []string{
	"Resultados comprovados",
	"Suporte especializado",
	"Garantia de satisfação",
}

// Price keeps the cash and installment representations apart.
type Price struct {
	Total       string `json:"total"`
	Installment string `json:"installment"`
}

// HasTotal reports whether the cash price was resolved from the page.
func (p Price) HasTotal() bool {
	return p.Total != "" && p.Total != PricePlaceholder
}

// HasInstallment reports whether the installment price was resolved from the page.
func (p Price) HasInstallment() bool {
	return p.Installment != "" && p.Installment != PricePlaceholder
}

// Display returns the single string shown to visitors.
func (p Price) Display() string {
	switch {
	case p.HasTotal():
		return p.Total
	case p.HasInstallment():
		return p.Installment
	default:
		return PricePlaceholder
	}
}

// ProductFacts is the normalized record extracted from a landing page.
// It is shared read-only once built.
type ProductFacts struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        Price    `json:"price"`
	Benefits     []string `json:"benefits"`
	Testimonials []string `json:"testimonials"`
	Bonus        []string `json:"bonus"`
	Guarantee    string   `json:"guarantee"`
	CTA          string   `json:"cta"`
	SourceURL    string   `json:"url"`
}

// DefaultFacts returns the record served when nothing could be extracted.
func DefaultFacts(sourceURL string) ProductFacts {
	return ProductFacts{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		Price: Price{
			Total:       PricePlaceholder,
			Installment: PricePlaceholder,
		},
		Benefits:     append([]string(nil), DefaultBenefits...),
		Testimonials: []string{},
		Bonus:        []string{},
		CTA:          DefaultCTA,
		SourceURL:    sourceURL,
	}
}

// Normalize fills every empty field with its default and enforces the list caps.
// Records posted back by the widget go through here before use.
func (f ProductFacts) Normalize() ProductFacts {
	def := DefaultFacts(f.SourceURL)
	if strings.TrimSpace(f.Title) == "" {
		f.Title = def.Title
	}
	if strings.TrimSpace(f.Description) == "" {
		f.Description = def.Description
	}
	f.Description = TruncateRunes(f.Description, MaxDescriptionRunes)
	if strings.TrimSpace(f.Price.Total) == "" {
		f.Price.Total = PricePlaceholder
	}
	if strings.TrimSpace(f.Price.Installment) == "" {
		f.Price.Installment = PricePlaceholder
	}
	if strings.TrimSpace(f.CTA) == "" {
		f.CTA = def.CTA
	}
	f.Benefits = capList(f.Benefits, MaxBenefits)
	if len(f.Benefits) == 0 {
		f.Benefits = def.Benefits
	}
	f.Testimonials = capList(f.Testimonials, MaxTestimonials)
	f.Bonus = capList(f.Bonus, MaxBonus)
	return f
}

func capList(items []string, limit int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Page is the raw document returned by a fetch strategy.
type Page struct {
	RequestedURL string
	FinalURL     string
	HTML         string
	StatusCode   int
	Strategy     string // "http", "browser", "minimal"
	FetchedAt    time.Time
}

// ExtractRequest is the query accepted by the extraction endpoints.
type ExtractRequest struct {
	URL string `json:"url"`
}
