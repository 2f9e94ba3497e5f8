package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/user/salesbot-service/internal/domain"
)

const amount = `R\$\s*\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?`

var (
	totalPattern       = regexp.MustCompile(`(?i)` + amount + `\s*à\s*vista`)
	installmentPattern = regexp.MustCompile(`(?i)\d+\s*x\s*de\s*` + amount)
	genericPattern     = regexp.MustCompile(amount)
)

var priceSelectors = []string{
	".price-value", ".product-price-value", ".valor-produto", ".preco-produto",
	".amount", ".cost", ".price", ".valor", ".preco", ".money", ".currency",
	`[class*="price"]`, `[class*="valor"]`, `[class*="preco"]`,
	`[class*="money"]`, `[class*="cost"]`, `[class*="amount"]`,
}

var offerTerms = []string{"oferta", "promoção", "desconto", "por apenas", "investimento", "valor"}

// priceState tracks the resolution across candidate texts. A specific
// total is final; a generic total only fills the gap until one shows up.
type priceState struct {
	total         string
	totalSpecific bool
	installment   string
}

func (s *priceState) resolved() bool {
	return s.totalSpecific && s.installment != ""
}

func (s *priceState) empty() bool {
	return s.total == "" && s.installment == ""
}

func (s *priceState) observe(text string) bool {
	before := *s

	total := totalPattern.FindString(text)
	installment := installmentPattern.FindString(text)

	if total != "" && !s.totalSpecific {
		s.total = total
		s.totalSpecific = true
	}
	if installment != "" && s.installment == "" {
		s.installment = installment
	}
	if total == "" && installment == "" && s.empty() {
		if generic := genericPattern.FindString(text); generic != "" {
			s.total = generic
		}
	}
	return *s != before
}

// observeOffer classifies free-form offer copy by its wording instead of
// the amount patterns.
func (s *priceState) observeOffer(text string) bool {
	n := utf8.RuneCountInString(text)
	if n <= 20 || n >= 300 {
		return false
	}
	lower := strings.ToLower(text)
	if !strings.Contains(text, "R$") && !strings.Contains(lower, "apenas") && !strings.Contains(lower, "investimento") {
		return false
	}

	switch {
	case strings.Contains(lower, "à vista"):
		if !s.totalSpecific {
			s.total = text
			s.totalSpecific = true
			return true
		}
	case strings.Contains(lower, "x de"):
		if s.installment == "" {
			s.installment = text
			return true
		}
	default:
		if s.total == "" {
			s.total = text
			return true
		}
	}
	return false
}

// PriceResolver separates the cash price from the installment plan.
type PriceResolver struct {
	locators []Locator
	offers   []Locator
}

// NewPriceResolver compiles the price and offer locators.
func NewPriceResolver() (*PriceResolver, error) {
	r := &PriceResolver{}
	for _, sel := range priceSelectors {
		loc, err := CSS(sel)
		if err != nil {
			return nil, err
		}
		r.locators = append(r.locators, loc)
	}
	for _, term := range offerTerms {
		loc, err := CSS(containing("*", term))
		if err != nil {
			return nil, err
		}
		r.offers = append(r.offers, loc)
	}
	return r, nil
}

// Resolve returns the price and the names of the locators that contributed.
func (r *PriceResolver) Resolve(doc *Document) (domain.Price, []string) {
	var (
		state   priceState
		sources []string
	)

	for _, loc := range r.locators {
		for _, text := range loc.Candidates(doc, true) {
			if state.observe(text) {
				sources = appendOnce(sources, loc.Name())
			}
		}
		if state.resolved() {
			break
		}
	}

	if state.empty() && state.observe(doc.VisibleText()) {
		sources = append(sources, "body")
	}

	if state.empty() {
		for _, loc := range r.offers {
			for _, text := range loc.Candidates(doc, true) {
				if state.observeOffer(text) {
					sources = appendOnce(sources, loc.Name())
				}
			}
			if state.resolved() {
				break
			}
		}
	}

	price := domain.Price{Total: state.total, Installment: state.installment}
	if price.Total == "" {
		price.Total = domain.PricePlaceholder
	}
	if price.Installment == "" {
		price.Installment = domain.PricePlaceholder
	}
	return price, sources
}

func appendOnce(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
