package usecase

import (
	"fmt"
	"strings"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/repository"
)

// SystemInstruction is sent with every completion request.
const SystemInstruction = "Você é um assistente de vendas especializado, amigável e altamente persuasivo. Use apenas informações reais do produto fornecidas."

// promptTurns is the number of history entries replayed as chat messages.
const promptTurns = 5

// BuildPrompt assembles the completion messages: the last turns of history
// followed by a user message carrying the product record and the question.
func BuildPrompt(facts domain.ProductFacts, history []domain.Message, question string) []repository.ChatMessage {
	recent := history
	if len(recent) > promptTurns {
		recent = recent[len(recent)-promptTurns:]
	}

	messages := make([]repository.ChatMessage, 0, len(recent)+1)
	for _, m := range recent {
		role := "user"
		if m.Role == domain.RoleAgent {
			role = "assistant"
		}
		messages = append(messages, repository.ChatMessage{Role: role, Content: m.Text})
	}
	return append(messages, repository.ChatMessage{Role: "user", Content: productPrompt(facts, history, question)})
}

func productPrompt(facts domain.ProductFacts, history []domain.Message, question string) string {
	var b strings.Builder
	b.WriteString("Você é um assistente de vendas especializado e altamente persuasivo para o produto abaixo.\n\n")
	b.WriteString("INFORMAÇÕES DO PRODUTO:\n")
	fmt.Fprintf(&b, "- Título: %s\n", facts.Title)
	fmt.Fprintf(&b, "- Descrição: %s\n", facts.Description)
	fmt.Fprintf(&b, "- Preço: %s\n", strings.ReplaceAll(priceLines(facts.Price), "\n", " | "))
	if len(facts.Benefits) > 0 {
		fmt.Fprintf(&b, "- Benefícios: %s\n", strings.Join(facts.Benefits, "; "))
	}
	if len(facts.Bonus) > 0 {
		fmt.Fprintf(&b, "- Bônus: %s\n", strings.Join(facts.Bonus, "; "))
	}
	if facts.Guarantee != "" {
		fmt.Fprintf(&b, "- Garantia: %s\n", facts.Guarantee)
	}
	fmt.Fprintf(&b, "- Chamada para ação: %s\n", facts.CTA)

	if len(history) > 0 {
		b.WriteString("\nHISTÓRICO DA CONVERSA:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
		}
	}

	fmt.Fprintf(&b, "\nPERGUNTA DO CLIENTE: %s\n\n", question)
	b.WriteString("INSTRUÇÕES: Responda em português, de forma amigável e persuasiva, usando apenas as informações acima. ")
	b.WriteString("Não invente preços, bônus ou garantias. Termine incentivando a compra com a chamada para ação.")
	return b.String()
}
