package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

func TestBinaryScanner_StructuralMarkers(t *testing.T) {
	scanner := NewBinaryTextScanner()

	text, method := scanner.Scan([]byte("BT (Hello) Tj (World) Tj ET"))

	assert.Equal(t, "Hello World", text)
	assert.Equal(t, models.MethodStructuralMarkers, method)
}

func TestBinaryScanner_IgnoresBytesOutsideTextObjects(t *testing.T) {
	scanner := NewBinaryTextScanner()
	data := []byte("xref trailer BT (Nome da Candidata) Tj ET startxref")

	text, _ := scanner.Scan(data)

	assert.Equal(t, "Nome da Candidata", text)
	assert.NotContains(t, text, "xref")
}

func TestBinaryScanner_EscalatesToParenthesisLiterals(t *testing.T) {
	scanner := NewBinaryTextScanner()
	data := []byte("9 0 obj << /Length 42 >> (Texto um) lixo (Texto dois) endobj")

	text, method := scanner.Scan(data)

	assert.Equal(t, models.MethodParenthesisLiterals, method)
	assert.Contains(t, text, "Texto um")
	assert.Contains(t, text, "Texto dois")
}

func TestBinaryScanner_EscalatesToStreamBlocks(t *testing.T) {
	scanner := NewBinaryTextScanner()
	data := []byte("stream Experiencia profissional em desenvolvimento de software endstream")

	text, method := scanner.Scan(data)

	assert.Equal(t, models.MethodStreamBlocks, method)
	assert.Contains(t, text, "Experiencia profissional")
}

func TestBinaryScanner_LongStructuralResultSkipsEscalation(t *testing.T) {
	scanner := NewBinaryTextScanner()
	body := strings.Repeat("palavra ", 80)
	data := []byte("BT (" + body + ") Tj ET (ignorado)")

	text, method := scanner.Scan(data)

	assert.Equal(t, models.MethodStructuralMarkers, method)
	assert.GreaterOrEqual(t, len(text), minScanLength)
	assert.NotContains(t, text, "ignorado")
}

func TestBinaryScanner_EmptyInput(t *testing.T) {
	scanner := NewBinaryTextScanner()

	text, _ := scanner.Scan(nil)

	assert.Empty(t, text)
}

func TestCleanExtractedText_ReplacesEscapeSequences(t *testing.T) {
	cleaned := cleanExtractedText(`primeira\nsegunda\(terceira\)`)

	assert.Equal(t, "primeira segunda terceira", cleaned)
}

func TestCleanExtractedText_ReplacesOctalEscapes(t *testing.T) {
	cleaned := cleanExtractedText(`antes\101depois`)

	assert.Equal(t, "antes depois", cleaned)
}

func TestCleanExtractedText_IsIdempotent(t *testing.T) {
	inputs := []string{
		`texto com\nescapes\te lixo` + string(rune(0x01)),
		"  espacos   multiplos  ",
		"já limpo",
	}

	for _, input := range inputs {
		once := cleanExtractedText(input)
		assert.Equal(t, once, cleanExtractedText(once))
	}
}

func TestCleanExtractedText_StripsNonPrintableRunes(t *testing.T) {
	cleaned := cleanExtractedText("abc" + string(rune(0x02)) + "def")

	assert.Equal(t, "abc def", cleaned)
}
