package services

import (
	"regexp"
	"strings"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// BinaryTextScanner pulls readable text out of raw PDF bytes without a PDF
// parser. Three independent heuristics run in escalation order and the
// longest usable output wins.
type BinaryTextScanner struct{}

func NewBinaryTextScanner() *BinaryTextScanner {
	return &BinaryTextScanner{}
}

// A scan result shorter than this triggers the next heuristic.
const minScanLength = 300

var (
	parenLiteralRe = regexp.MustCompile(`\(([^()]*)\)`)
	streamBlockRe  = regexp.MustCompile(`(?s)stream(.*?)endstream`)
	pdfEscapeRe    = regexp.MustCompile(`\\(?:[nrt()\\]|[0-7]{1,3})`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Scan runs the structural-marker scan first, then the parenthesis-literal
// and stream-block scans only while the best candidate stays under
// minScanLength. Returns the cleaned winner and the method that produced it.
func (s *BinaryTextScanner) Scan(data []byte) (string, models.ExtractionMethod) {
	if len(data) == 0 {
		return "", models.MethodStructuralMarkers
	}

	best := s.scanStructuralMarkers(data)
	method := models.MethodStructuralMarkers

	if len(best) < minScanLength {
		if candidate := s.scanParenthesisLiterals(data); len(candidate) > len(best) {
			best = candidate
			method = models.MethodParenthesisLiterals
		}
	}

	if len(best) < minScanLength {
		if candidate := s.scanStreamBlocks(data); len(candidate) > len(best) {
			best = candidate
			method = models.MethodStreamBlocks
		}
	}

	return cleanExtractedText(best), method
}

// scanStructuralMarkers walks the byte stream as a flat cursor. BT/ET toggle
// in-text mode; show-text and move-position operators, parentheses, and
// CR/LF act as word boundaries while in-text.
func (s *BinaryTextScanner) scanStructuralMarkers(data []byte) string {
	var words []string
	var word strings.Builder
	inText := false

	flush := func() {
		w := strings.TrimSpace(word.String())
		word.Reset()
		if w != "" {
			words = append(words, w)
		}
	}

	i := 0
	for i < len(data) {
		if i+1 < len(data) {
			pair := string(data[i : i+2])
			if !inText && pair == "BT" {
				inText = true
				i += 2
				continue
			}
			if inText {
				switch pair {
				case "ET":
					flush()
					inText = false
					i += 2
					continue
				case "Tj", "TJ", "Td", "TD", "T*":
					flush()
					i += 2
					continue
				}
			}
		}

		if inText {
			b := data[i]
			switch {
			case b == '(' || b == ')' || b == '\r' || b == '\n':
				flush()
			case isPrintableByte(b):
				word.WriteRune(rune(b))
			}
		}
		i++
	}
	flush()

	return strings.Join(words, " ")
}

// scanParenthesisLiterals collects (...) string literals anywhere in the
// file, keeping groups that still hold more than one printable character.
func (s *BinaryTextScanner) scanParenthesisLiterals(data []byte) string {
	matches := parenLiteralRe.FindAllSubmatch(data, -1)

	var parts []string
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		literal := printableRunes(match[1])
		if len([]rune(literal)) > 1 {
			parts = append(parts, literal)
		}
	}

	return strings.Join(parts, " ")
}

// scanStreamBlocks collects stream/endstream bodies, keeping blocks that
// still look like prose after the binary bytes are stripped.
func (s *BinaryTextScanner) scanStreamBlocks(data []byte) string {
	matches := streamBlockRe.FindAllSubmatch(data, -1)

	var parts []string
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		block := strings.Join(strings.Fields(printableRunes(match[1])), " ")
		if len(strings.Fields(block)) > 3 && len(block) > 10 {
			parts = append(parts, block)
		}
	}

	return strings.Join(parts, " ")
}

// cleanExtractedText normalizes PDF escape sequences to spaces, strips any
// remaining non-printable runes, and collapses whitespace. Running it on
// already-clean text is a no-op.
func cleanExtractedText(text string) string {
	text = pdfEscapeRe.ReplaceAllString(text, " ")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if isCleanRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(sb.String(), " "))
}

// printableRunes keeps printable ASCII and extended-Latin bytes, promoting
// each surviving byte to its Latin-1 rune.
func printableRunes(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		if isPrintableByte(b) {
			sb.WriteRune(rune(b))
		}
	}
	return sb.String()
}

func isPrintableByte(b byte) bool {
	return (b >= 0x20 && b <= 0x7E) || b >= 0xA0
}
