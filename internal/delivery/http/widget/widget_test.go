package widget

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/salesbot-service/internal/domain"
)

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	r.newID = func() string { return "chat_fixed" }

	facts := domain.DefaultFacts("https://example.com")
	facts.Title = "Curso Vendas Online"
	facts.Price.Total = "R$ 197,00"
	facts.Benefits = []string{"Benefício um", "Benefício dois", "Benefício três", "Benefício quatro"}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "Max", facts))
	page := buf.String()

	assert.Contains(t, page, "🤖 Max")
	assert.Contains(t, page, `<div class="product-title">Curso Vendas Online</div>`)
	assert.Contains(t, page, `<div class="product-price">R$ 197,00</div>`)
	assert.Contains(t, page, "• Benefício três")
	assert.NotContains(t, page, "• Benefício quatro")
	assert.Contains(t, page, `const conversationId = "chat_fixed";`)
	assert.Contains(t, page, `"title":"Curso Vendas Online"`)
}

func TestRenderer_EscapesInput(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "<script>alert(1)</script>", domain.DefaultFacts("")))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Equal(t, 1, strings.Count(buf.String(), "<script>"))
}

func TestRenderer_UniqueConversationIDs(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.NotEqual(t, r.newID(), r.newID())
	assert.True(t, strings.HasPrefix(r.newID(), "chat_"))
}
