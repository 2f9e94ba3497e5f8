package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/salesbot-service/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    domain.Intent
	}{
		{"Qual o preço?", domain.IntentPrice},
		{"Quanto custa o curso?", domain.IntentPrice},
		{"Dá para parcelar? Quantas parcelas?", domain.IntentPrice},
		{"Quais os benefícios?", domain.IntentBenefits},
		{"Como funciona o método?", domain.IntentMechanism},
		{"Tem garantia?", domain.IntentGuarantee},
		{"E se não funcionar pra mim, tem garantia?", domain.IntentGuarantee},
		{"Isso funciona como assinatura?", domain.IntentMechanism},
		{"E se eu quiser reembolso?", domain.IntentGuarantee},
		{"Tem algum depoimento de aluno?", domain.IntentTestimonials},
		{"Vem algum bônus?", domain.IntentBonus},
		{"Aceita pix ou boleto?", domain.IntentPurchase},
		{"Como comprar?", domain.IntentPurchase},
		{"Qual o prazo de acesso?", domain.IntentTiming},
		{"Quanto tempo costuma demorar pra chegar?", domain.IntentTiming},
		{"Preciso de ajuda", domain.IntentHelp},
		{"Quero comprar agora!", domain.IntentPurchaseIntent},
		{"Olá, tudo bem?", domain.IntentDefault},
		{"", domain.IntentDefault},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, domain.IntentGuarantee, Classify("TEM GARANTIA?"))
}

func TestClassify_FirstGroupWins(t *testing.T) {
	// price is checked before guarantee
	assert.Equal(t, domain.IntentPrice, Classify("qual o valor e a garantia?"))
}

func TestClassify_GuaranteeQuestionGetsGuaranteeReply(t *testing.T) {
	facts := domain.DefaultFacts("https://example.com")
	facts.Guarantee = "Garantia incondicional de 7 dias"

	reply := RenderReply(Classify("E se não funcionar pra mim, tem garantia?"), facts)

	assert.Contains(t, reply, "Garantia incondicional de 7 dias")
}
