package services

// TextQuality holds the flags the gate computes for one candidate text.
// Length is in runes, the same unit as the letter-ratio denominator.
type TextQuality struct {
	HasBinaryContamination bool
	LetterRatio            float64
	Length                 int
}

type QualityDecision int

const (
	QualityAccept QualityDecision = iota
	QualityAcceptWithWarning
	QualityReject
)

// Gate thresholds. These are contract values, not tunables: the whole
// orchestrator retry ladder keys off them.
const (
	minLetterRatio     = 0.2
	warnLetterRatio    = 0.3
	warnMinLength      = 1000
	maxPlausibleLength = 100000
)

const limitedExtractionWarning = "Extração limitada. Considere colar o texto manualmente."

// TextQualityGate decides whether extracted text is usable, usable with a
// warning, or must be discarded so the next extraction tier runs.
type TextQualityGate struct{}

func NewTextQualityGate() *TextQualityGate {
	return &TextQualityGate{}
}

// Assess computes the quality flags for a candidate text.
func (g *TextQualityGate) Assess(text string) TextQuality {
	var quality TextQuality

	letters := 0
	total := 0
	for _, r := range text {
		total++
		if isLetterOrDigit(r) {
			letters++
		}
		if !isCleanRune(r) {
			quality.HasBinaryContamination = true
		}
	}
	quality.Length = total

	denominator := total
	if denominator < 1 {
		denominator = 1
	}
	quality.LetterRatio = float64(letters) / float64(denominator)

	return quality
}

// Evaluate applies the three-tier accept/warn/reject policy. The returned
// warning is non-empty only for QualityAcceptWithWarning.
func (g *TextQualityGate) Evaluate(text string) (TextQuality, QualityDecision, string) {
	quality := g.Assess(text)

	if quality.HasBinaryContamination || quality.LetterRatio < minLetterRatio || quality.Length > maxPlausibleLength {
		return quality, QualityReject, ""
	}

	if quality.LetterRatio < warnLetterRatio || quality.Length < warnMinLength {
		return quality, QualityAcceptWithWarning, limitedExtractionWarning
	}

	return quality, QualityAccept, ""
}

func isLetterOrDigit(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// isCleanRune reports whether r is printable ASCII, extended Latin, or
// plain whitespace. Anything else counts as binary contamination.
func isCleanRune(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	if r >= 0x20 && r <= 0x7E {
		return true
	}
	return r >= 0xA0 && r <= 0xFF
}
