package extractor

import (
	"strings"

	"github.com/user/salesbot-service/internal/domain"
)

// Options tunes the page-specific parts of the cascades.
type Options struct {
	// BrandTerms are hosting-platform names that must never be taken for
	// product copy.
	BrandTerms []string
	// DescriptionKeywords select copy-heavy paragraphs before generic ones.
	DescriptionKeywords []string
}

// DefaultOptions matches the sales pages the service was tuned on.
func DefaultOptions() Options {
	return Options{
		BrandTerms: []string{"Vendd"},
		DescriptionKeywords: []string{
			"Arsenal", "Secreto", "CEO", "Afiliado", "Transforme",
			"Descubra", "Vendas", "Marketing", "Estratégia", "Resultado",
		},
	}
}

var boilerplate = []string{"cookie", "política", "termos"}

// brandVariants returns each term as configured plus its lower-case form,
// since :contains is case-sensitive.
func (o Options) brandVariants() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range o.BrandTerms {
		t = strings.TrimSpace(t)
		for _, v := range []string{t, strings.ToLower(t)} {
			if _, ok := seen[v]; v == "" || ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func join(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func titleField(o Options) (Field, error) {
	brand := o.brandVariants()
	accept := All(Length(10, 0), Deny(join([]string{"página", "error", "404"}, o.BrandTerms)...))

	var rs ruleSet
	rs.css(excluding("h1", join(brand, []string{"Página", "Error", "404"})...), accept)
	for _, sel := range []string{".main-title", ".product-title", ".headline", ".title"} {
		rs.css(excluding(sel, brand...), accept)
	}
	rs.css(excluding(`[class*="title"]`, join(brand, []string{"Error"})...), accept)
	rs.css(excluding(`[class*="headline"]`, brand...), accept)
	rs.css(`meta[property="og:title"]`, accept)
	rs.css(`meta[name="twitter:title"]`, accept)
	rs.css("title", accept)

	return Field{Name: "title", Rules: rs.rules}, rs.err
}

func descriptionField(o Options) (Field, error) {
	brand := o.brandVariants()
	accept := All(Length(80, 0), Deny(join(boilerplate, o.BrandTerms, []string{"error"})...))

	var rs ruleSet
	for _, sel := range []string{
		".product-description p:first-child",
		".description p:first-child",
		".summary p:first-child",
		".lead p:first-child",
		".intro p:first-child",
		".content p:first-child",
		".main-content p:first-child",
	} {
		rs.css(sel, accept)
	}
	for _, kw := range o.DescriptionKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			rs.css(containing("p", kw), accept)
		}
	}
	rs.css(`meta[name="description"]`, accept)
	rs.css(`meta[property="og:description"]`, accept)
	rs.css(`meta[name="twitter:description"]`, accept)
	rs.css(excluding("p", join(boilerplate, brand)...)+":not(:empty)", accept)
	rs.css(".text-content p", accept)
	rs.css("article p", accept)
	rs.css("main p", accept)
	if rs.err == nil {
		rs.add(Readability(), accept)
	}

	return Field{Name: "description", Rules: rs.rules}, rs.err
}

func benefitsField(o Options) (Field, error) {
	accept := All(Length(20, 300), Deny(join(boilerplate, o.BrandTerms, []string{"error"})...))

	var rs ruleSet
	for _, sel := range []string{
		".benefits li", ".vantagens li", ".features li",
		".product-benefits li", ".advantages li",
		`ul li:contains("✓")`, `ul li:contains("✅")`, `ul li:contains("•")`, `ul li:contains("→")`,
		`li:contains("Transforme")`, `li:contains("Alcance")`, `li:contains("Domine")`,
		`li:contains("Aprenda")`, `li:contains("Fechar")`, `li:contains("Resultados")`,
		`li:contains("Garantia")`, `li:contains("Estratégia")`, `li:contains("Técnica")`,
		`li:contains("Método")`, `li:contains("Sistema")`,
		"ul li", "ol li",
	} {
		rs.css(sel, accept)
	}

	return Field{Name: "benefits", Rules: rs.rules, Limit: domain.MaxBenefits}, rs.err
}

func testimonialsField(o Options) (Field, error) {
	accept := All(Length(30, 400), Deny(join([]string{"cookie", "política"}, o.BrandTerms)...))

	var rs ruleSet
	for _, sel := range []string{
		".testimonials li", ".depoimentos li", ".reviews li",
		".review", ".testimonial-text", ".depoimento", ".feedback",
		`*:contains("recomendo")`, `*:contains("excelente")`, `*:contains("funcionou")`,
		`*:contains("resultado")`, `*:contains("incrível")`, `*:contains("mudou minha vida")`,
	} {
		rs.css(sel, accept)
	}

	return Field{Name: "testimonials", Rules: rs.rules, Limit: domain.MaxTestimonials}, rs.err
}

func bonusField() (Field, error) {
	accept := All(Length(10, 300), Require("bônus", "bonus", "brinde", "presente"), Deny(boilerplate...))

	var rs ruleSet
	for _, sel := range []string{
		".bonus li", ".bonus-item", ".bonus", ".bonuses li",
		`[class*="bonus"] li`, `[class*="bonus"]`,
		`li:contains("Bônus")`, `li:contains("BÔNUS")`, `li:contains("bônus")`, `li:contains("Bonus")`,
		`h3:contains("Bônus")`, `h4:contains("Bônus")`,
		`p:contains("Bônus")`, `p:contains("bônus")`,
	} {
		rs.css(sel, accept)
	}

	return Field{Name: "bonus", Rules: rs.rules, Limit: domain.MaxBonus}, rs.err
}

func guaranteeField() (Field, error) {
	accept := All(
		Length(20, 400),
		Require("garantia", "guarantee", "reembolso", "devolução", "devolucao"),
		Deny(boilerplate...),
	)

	var rs ruleSet
	for _, sel := range []string{
		".guarantee", ".garantia", `[class*="garantia"]`, `[class*="guarantee"]`,
		`p:contains("dias de garantia")`, `*:contains("dias de garantia")`,
		`p:contains("Garantia")`, `p:contains("garantia")`,
		`li:contains("Garantia")`, `h2:contains("Garantia")`, `h3:contains("Garantia")`,
	} {
		rs.css(sel, accept)
	}

	return Field{Name: "guarantee", Rules: rs.rules, Limit: 1}, rs.err
}

func ctaField() (Field, error) {
	accept := Length(5, 100)

	var rs ruleSet
	for _, sel := range []string{
		`a.button:contains("QUERO")`, `button.cta:contains("QUERO")`,
		`a:contains("QUERO")`, `button:contains("QUERO")`,
		`a:contains("AGORA")`, `button:contains("AGORA")`,
		`a:contains("COMPRAR")`, `button:contains("COMPRAR")`,
		`a:contains("ADQUIRIR")`, `button:contains("ADQUIRIR")`,
		".buy-button", ".call-to-action", `[class*="buy"]`, `[class*="cta"]`,
		".btn-primary", ".btn-success", ".button-primary",
	} {
		rs.css(sel, accept)
	}

	return Field{Name: "cta", Rules: rs.rules}, rs.err
}
