package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityGate_AcceptsCleanProse(t *testing.T) {
	gate := NewTextQualityGate()
	text := strings.Repeat("curriculo de desenvolvedora backend ", 40)

	quality, decision, warning := gate.Evaluate(text)

	assert.Equal(t, QualityAccept, decision)
	assert.Empty(t, warning)
	assert.False(t, quality.HasBinaryContamination)
	assert.Greater(t, quality.LetterRatio, 0.3)
}

func TestQualityGate_WarnsOnShortText(t *testing.T) {
	gate := NewTextQualityGate()

	_, decision, warning := gate.Evaluate("Maria Silva, desenvolvedora backend")

	assert.Equal(t, QualityAcceptWithWarning, decision)
	assert.Equal(t, limitedExtractionWarning, warning)
}

func TestQualityGate_RejectsBinaryContamination(t *testing.T) {
	gate := NewTextQualityGate()
	text := "texto legivel" + string(rune(0x00)) + strings.Repeat("mais texto ", 100)

	quality, decision, _ := gate.Evaluate(text)

	assert.Equal(t, QualityReject, decision)
	assert.True(t, quality.HasBinaryContamination)
}

func TestQualityGate_RejectsLowLetterRatio(t *testing.T) {
	gate := NewTextQualityGate()

	_, decision, _ := gate.Evaluate(strings.Repeat("!!! ??? ", 200))

	assert.Equal(t, QualityReject, decision)
}

func TestQualityGate_RejectsImplausiblyLongText(t *testing.T) {
	gate := NewTextQualityGate()

	_, decision, _ := gate.Evaluate(strings.Repeat("a", 100001))

	assert.Equal(t, QualityReject, decision)
}

func TestQualityGate_LetterRatioBoundaryIsNotRejected(t *testing.T) {
	gate := NewTextQualityGate()

	// Exactly 1 letter in 5 runes: ratio 0.2 sits on the reject boundary
	// and must pass through as accept-with-warning.
	quality, decision, _ := gate.Evaluate("a!!!!")

	assert.InDelta(t, 0.2, quality.LetterRatio, 1e-9)
	assert.Equal(t, QualityAcceptWithWarning, decision)
}

func TestQualityGate_EmptyTextIsRejected(t *testing.T) {
	gate := NewTextQualityGate()

	quality, decision, _ := gate.Evaluate("")

	assert.Equal(t, QualityReject, decision)
	assert.Zero(t, quality.LetterRatio)
	assert.Zero(t, quality.Length)
}

func TestQualityGate_LengthCountsRunes(t *testing.T) {
	gate := NewTextQualityGate()

	// Accented text: byte length differs from rune length, and the length
	// thresholds must use the same unit as the letter-ratio denominator.
	quality := gate.Assess("coração")

	assert.Equal(t, 7, quality.Length)
	assert.InDelta(t, 5.0/7.0, quality.LetterRatio, 1e-9)
}

func TestQualityGate_AssessCountsExtendedLatinAsClean(t *testing.T) {
	gate := NewTextQualityGate()

	quality := gate.Assess("experiência em gestão de projetos")

	assert.False(t, quality.HasBinaryContamination)
}
