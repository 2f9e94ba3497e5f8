package widget

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/google/uuid"

	"github.com/user/salesbot-service/internal/domain"
)

//go:embed chatbot.html
var chatbotHTML string

// openingBenefits is the number of benefits listed in the greeting.
const openingBenefits = 3

type pageData struct {
	RobotName      string
	Facts          domain.ProductFacts
	Price          string
	Benefits       []string
	ConversationID string
}

// Renderer writes the standalone chat page for a product.
type Renderer struct {
	tmpl  *template.Template
	newID func() string
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("chatbot").Parse(chatbotHTML)
	if err != nil {
		return nil, fmt.Errorf("parse chatbot template: %w", err)
	}
	return &Renderer{
		tmpl:  tmpl,
		newID: func() string { return "chat_" + uuid.NewString() },
	}, nil
}

// Render writes the page. The record is embedded in the page script and
// posted back with every chat message.
func (r *Renderer) Render(w io.Writer, robotName string, facts domain.ProductFacts) error {
	benefits := facts.Benefits
	if len(benefits) > openingBenefits {
		benefits = benefits[:openingBenefits]
	}
	return r.tmpl.Execute(w, pageData{
		RobotName:      robotName,
		Facts:          facts,
		Price:          facts.Price.Display(),
		Benefits:       benefits,
		ConversationID: r.newID(),
	})
}
