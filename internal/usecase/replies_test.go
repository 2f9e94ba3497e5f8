package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/salesbot-service/internal/domain"
)

func sampleFacts() domain.ProductFacts {
	facts := domain.DefaultFacts("https://example.com/curso")
	facts.Title = "Curso Vendas Online"
	facts.Description = "Aprenda a vender todos os dias com um método simples e validado por milhares de alunos."
	facts.Price = domain.Price{Total: "R$ 197,00", Installment: "12x de R$ 19,70"}
	facts.Benefits = []string{"Acesso vitalício ao conteúdo", "Suporte direto com o time"}
	facts.Testimonials = []string{"Recomendo demais, mudou meu negócio", "Excelente curso, resultado rápido", "Funcionou para mim"}
	facts.Bonus = []string{"Bônus: planilha de metas"}
	facts.Guarantee = "Garantia incondicional de 7 dias"
	facts.CTA = "QUERO COMEÇAR"
	return facts
}

func TestRenderReply_NeverEmpty(t *testing.T) {
	intents := []domain.Intent{
		domain.IntentPrice, domain.IntentBenefits, domain.IntentMechanism, domain.IntentGuarantee,
		domain.IntentTestimonials, domain.IntentBonus, domain.IntentPurchase, domain.IntentTiming,
		domain.IntentHelp, domain.IntentPurchaseIntent, domain.IntentDefault,
	}
	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			assert.NotEmpty(t, RenderReply(intent, sampleFacts()))
			assert.NotEmpty(t, RenderReply(intent, domain.DefaultFacts("")))
		})
	}
}

func TestRenderReply_Price(t *testing.T) {
	reply := RenderReply(domain.IntentPrice, sampleFacts())
	assert.Contains(t, reply, "R$ 197,00")
	assert.Contains(t, reply, "12x de R$ 19,70")

	reply = RenderReply(domain.IntentPrice, domain.DefaultFacts(""))
	assert.Contains(t, reply, domain.PricePlaceholder)
	assert.NotContains(t, reply, "R$")
}

func TestRenderReply_Guarantee(t *testing.T) {
	reply := RenderReply(domain.IntentGuarantee, sampleFacts())
	assert.Contains(t, reply, "Garantia incondicional de 7 dias")

	assert.Equal(t, DefaultGuaranteeReply, RenderReply(domain.IntentGuarantee, domain.DefaultFacts("")))
}

func TestRenderReply_Lists(t *testing.T) {
	facts := sampleFacts()
	assert.Contains(t, RenderReply(domain.IntentBenefits, facts), "• Acesso vitalício ao conteúdo")
	assert.Contains(t, RenderReply(domain.IntentBonus, facts), "planilha de metas")
	assert.Contains(t, RenderReply(domain.IntentTestimonials, facts), "\"Funcionou para mim\"")

	empty := domain.DefaultFacts("")
	assert.Contains(t, RenderReply(domain.IntentBenefits, empty), "• Resultados comprovados")
	assert.NotContains(t, RenderReply(domain.IntentBonus, empty), "•")

	empty.Benefits = nil
	assert.Contains(t, RenderReply(domain.IntentBenefits, empty), domain.DefaultDescription)
}

func TestRenderReply_DefaultSummary(t *testing.T) {
	reply := RenderReply(domain.IntentDefault, sampleFacts())

	assert.True(t, strings.HasPrefix(reply, "Olá! 🔥 **Sobre o \"Curso Vendas Online\":**"))
	assert.Contains(t, reply, "**Valor à vista:** R$ 197,00")
	assert.Contains(t, reply, "**Valor parcelado:** 12x de R$ 19,70")
	assert.Contains(t, reply, "Recomendo demais, mudou meu negócio | Excelente curso, resultado rápido")
	assert.NotContains(t, reply, "Funcionou para mim")
	assert.Contains(t, reply, "🚀 **QUERO COMEÇAR**")
	assert.True(t, strings.HasSuffix(reply, closingLine))
}

func TestRenderReply_DefaultSummaryWithoutLists(t *testing.T) {
	facts := domain.DefaultFacts("")
	facts.Benefits = nil
	reply := RenderReply(domain.IntentDefault, facts)

	assert.NotContains(t, reply, "Principais benefícios")
	assert.NotContains(t, reply, "Depoimentos")
	assert.Contains(t, reply, domain.PricePlaceholder)
}
