package usecase

import (
	"fmt"
	"strings"

	"github.com/user/salesbot-service/internal/domain"
)

// DefaultGuaranteeReply is used when the page states no guarantee.
const DefaultGuaranteeReply = "🛡️ As condições de garantia e reembolso estão descritas na página do produto. Vale conferir os detalhes antes de finalizar a compra."

const closingLine = "**Como posso te ajudar mais?** Posso esclarecer sobre preços, benefícios, garantias ou processo de compra!"

// RenderReply builds the template answer for intent using only values
// present in facts.
func RenderReply(intent domain.Intent, facts domain.ProductFacts) string {
	switch intent {
	case domain.IntentPrice:
		return priceReply(facts)
	case domain.IntentBenefits:
		return benefitsReply(facts)
	case domain.IntentMechanism:
		return fmt.Sprintf("🔍 **Como funciona o \"%s\":**\n\n%s", facts.Title, facts.Description)
	case domain.IntentGuarantee:
		if facts.Guarantee != "" {
			return "🛡️ **Garantia:** " + facts.Guarantee
		}
		return DefaultGuaranteeReply
	case domain.IntentTestimonials:
		return testimonialsReply(facts)
	case domain.IntentBonus:
		return bonusReply(facts)
	case domain.IntentPurchase:
		return fmt.Sprintf("🛒 Para garantir o \"%s\", é só clicar no botão **%s** na página da oferta.\n\n💰 %s",
			facts.Title, facts.CTA, priceLines(facts.Price))
	case domain.IntentTiming:
		return fmt.Sprintf("⏱️ Os detalhes de prazo e acesso do \"%s\" estão na página da oferta. Em resumo:\n\n%s",
			facts.Title, facts.Description)
	case domain.IntentHelp:
		return fmt.Sprintf("🤝 Estou aqui para te ajudar com o \"%s\"! Pergunte sobre preço, benefícios, garantia, bônus, depoimentos ou como comprar.",
			facts.Title)
	case domain.IntentPurchaseIntent:
		return fmt.Sprintf("🚀 Excelente decisão! Clique em **%s** para garantir o \"%s\".\n\n💰 %s",
			facts.CTA, facts.Title, priceLines(facts.Price))
	default:
		return summaryReply(facts)
	}
}

func priceLines(p domain.Price) string {
	var lines []string
	if p.HasTotal() {
		lines = append(lines, "**Valor à vista:** "+p.Total)
	}
	if p.HasInstallment() {
		lines = append(lines, "**Valor parcelado:** "+p.Installment)
	}
	if len(lines) == 0 {
		return domain.PricePlaceholder
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}

func priceReply(facts domain.ProductFacts) string {
	return fmt.Sprintf("💰 **Investimento no \"%s\":**\n\n%s\n\n🚀 **%s**", facts.Title, priceLines(facts.Price), facts.CTA)
}

func benefitsReply(facts domain.ProductFacts) string {
	if len(facts.Benefits) == 0 {
		return fmt.Sprintf("✅ **Sobre o \"%s\":**\n\n%s", facts.Title, facts.Description)
	}
	return fmt.Sprintf("✅ **Principais benefícios do \"%s\":**\n\n%s", facts.Title, bullets(facts.Benefits))
}

func testimonialsReply(facts domain.ProductFacts) string {
	if len(facts.Testimonials) == 0 {
		return fmt.Sprintf("💬 Os resultados de quem já conhece o \"%s\" estão na página da oferta.\n\n%s", facts.Title, facts.Description)
	}
	quoted := make([]string, len(facts.Testimonials))
	for i, t := range facts.Testimonials {
		quoted[i] = "\"" + t + "\""
	}
	return "💬 **O que dizem os clientes:**\n\n" + bullets(quoted)
}

func bonusReply(facts domain.ProductFacts) string {
	if len(facts.Bonus) == 0 {
		return fmt.Sprintf("🎁 Os bônus do \"%s\", quando disponíveis, aparecem na página da oferta.", facts.Title)
	}
	return "🎁 **Bônus inclusos:**\n\n" + bullets(facts.Bonus)
}

// summaryReply is the general answer used for unclassified messages.
func summaryReply(facts domain.ProductFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá! 🔥 **Sobre o \"%s\":**\n\n%s\n\n", facts.Title, facts.Description)
	fmt.Fprintf(&b, "💰 **Investimento:** %s\n\n", priceLines(facts.Price))
	if len(facts.Benefits) > 0 {
		fmt.Fprintf(&b, "✅ **Principais benefícios:**\n%s\n\n", bullets(facts.Benefits))
	}
	if len(facts.Testimonials) > 0 {
		n := min(2, len(facts.Testimonials))
		fmt.Fprintf(&b, "💬 **Depoimentos:** %s\n\n", strings.Join(facts.Testimonials[:n], " | "))
	}
	fmt.Fprintf(&b, "🚀 **%s**\n\n", facts.CTA)
	b.WriteString(closingLine)
	return b.String()
}
