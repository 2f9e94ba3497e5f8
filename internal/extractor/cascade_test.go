package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSS_InvalidSelector(t *testing.T) {
	_, err := CSS("div[")
	assert.Error(t, err)

	_, err = CSS(`p:contains("Bônus")`)
	assert.NoError(t, err)
}

func TestLength_ExclusiveBounds(t *testing.T) {
	accept := Length(3, 6)

	tests := []struct {
		text string
		want bool
	}{
		{"abc", false},
		{"abcd", true},
		{"abcde", true},
		{"abcdef", false},
		{"ããããã", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, accept(tt.text), tt.text)
	}

	assert.True(t, Length(3, 0)("a very long text without upper bound"))
}

func TestDenyAndRequire_IgnoreCase(t *testing.T) {
	deny := Deny("Cookie", "vendd")
	assert.False(t, deny("Aceite os COOKIES"))
	assert.False(t, deny("Hospedado na Vendd"))
	assert.True(t, deny("Curso de vendas"))

	gate := Require("bônus", "brinde")
	assert.True(t, gate("BÔNUS exclusivo"))
	assert.True(t, gate("Ganhe um Brinde"))
	assert.False(t, gate("Aula extra"))
}

func TestAll(t *testing.T) {
	accept := All(Length(2, 0), Deny("x"))
	assert.True(t, accept("abc"))
	assert.False(t, accept("axc"))
	assert.False(t, accept("a"))
	assert.True(t, All()("anything"))
}

func TestField_FirstUsesOnlyFirstMatchPerLocator(t *testing.T) {
	doc, err := NewDocument(pageURL, `<body><h2>curto</h2><h2>um texto longo o bastante</h2><h3>outro texto longo o bastante</h3></body>`)
	require.NoError(t, err)

	h2, err := CSS("h2")
	require.NoError(t, err)
	h3, err := CSS("h3")
	require.NoError(t, err)

	f := Field{Name: "test", Rules: []Rule{
		{Locator: h2, Accept: Length(10, 0)},
		{Locator: h3, Accept: Length(10, 0)},
	}}

	value, source, ok := f.First(doc)
	require.True(t, ok)
	assert.Equal(t, "outro texto longo o bastante", value)
	assert.Equal(t, "h3", source)
}

func TestField_CollectStopsAtLimit(t *testing.T) {
	doc, err := NewDocument(pageURL, `<body><li>um</li><li>dois</li><li>um</li><p>tres</p><p>quatro</p></body>`)
	require.NoError(t, err)

	li, err := CSS("li")
	require.NoError(t, err)
	p, err := CSS("p")
	require.NoError(t, err)

	accept := Length(0, 0)
	f := Field{Name: "test", Limit: 3, Rules: []Rule{
		{Locator: li, Accept: accept},
		{Locator: p, Accept: accept},
	}}

	values, sources := f.Collect(doc)
	assert.Equal(t, []string{"um", "dois", "tres"}, values)
	assert.Equal(t, []string{"li", "p"}, sources)
}

func TestDocument_VisibleTextSkipsScripts(t *testing.T) {
	doc, err := NewDocument(pageURL, `<body><script>var price = "R$ 1,00 à vista";</script><p>Olá   mundo</p><style>p{}</style></body>`)
	require.NoError(t, err)

	assert.Equal(t, "Olá mundo", doc.VisibleText())
}
