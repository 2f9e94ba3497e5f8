package usecase

import (
	"strings"

	"github.com/user/salesbot-service/internal/domain"
)

type intentGroup struct {
	intent   domain.Intent
	keywords []string
}

// intentGroups is scanned in order; the first group with a matching keyword wins.
var intentGroups = []intentGroup{
	{domain.IntentPrice, []string{
		"preço", "preco", "valor", "quanto custa", "quanto é", "quanto e", "custo", "investimento",
		"parcela", "à vista", "a vista", "desconto",
	}},
	{domain.IntentBenefits, []string{
		"benefício", "beneficio", "vantagem", "vantagens", "o que vou receber", "o que eu ganho",
		"o que inclui", "o que vem", "conteúdo", "conteudo", "benefit",
	}},
	{domain.IntentMechanism, []string{
		"como funciona", "funciona como", "método", "metodo", "passo a passo", "how does it work", "how it works",
	}},
	{domain.IntentGuarantee, []string{
		"garantia", "reembolso", "devolução", "devolucao", "risco", "dinheiro de volta", "guarantee", "refund",
	}},
	{domain.IntentTestimonials, []string{
		"depoimento", "resultado", "avaliação", "avaliacao", "opinião", "opiniao", "prova", "review", "testimonial",
	}},
	{domain.IntentBonus, []string{
		"bônus", "bonus", "brinde", "presente", "extra",
	}},
	{domain.IntentPurchase, []string{
		"como compro", "como comprar", "como faço para comprar", "como faco para comprar",
		"pagamento", "pagar", "pix", "cartão", "cartao", "boleto", "checkout",
	}},
	{domain.IntentTiming, []string{
		"quanto tempo", "prazo", "duração", "duracao", "demora", "quando", "how long",
	}},
	{domain.IntentHelp, []string{
		"ajuda", "ajudar", "dúvida", "duvida", "suporte", "contato", "help",
	}},
	{domain.IntentPurchaseIntent, []string{
		"quero", "comprar", "adquirir", "vou levar", "fechar", "buy",
	}},
}

// Classify returns the intent of a visitor message.
func Classify(message string) domain.Intent {
	lower := strings.ToLower(message)
	for _, group := range intentGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
	}
	return domain.IntentDefault
}
