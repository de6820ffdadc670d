package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// ExtractionInput is one uploaded file as handed over by the upload handler.
type ExtractionInput struct {
	FileName   string
	MimeType   string
	Data       []byte
	UploadedAt time.Time
}

// ExtractionResult always carries non-empty text: when every tier fails a
// deterministic placeholder with the file metadata is substituted.
type ExtractionResult struct {
	Text    string
	Method  models.ExtractionMethod
	Quality TextQuality
	Warning string
}

// ExtractorService sequences the extraction tiers for a single file. Extract
// is total: it never returns an error and never panics out to the caller.
type ExtractorService interface {
	Extract(ctx context.Context, input ExtractionInput) ExtractionResult
}

type extractorService struct {
	pdfParser PDFParserService
	scanner   *BinaryTextScanner
	gate      *TextQualityGate
	ocrClient OCRClient // nil when the remote OCR tier is not configured
}

func NewExtractorService(pdfParser PDFParserService, ocrClient OCRClient) ExtractorService {
	return &extractorService{
		pdfParser: pdfParser,
		scanner:   NewBinaryTextScanner(),
		gate:      NewTextQualityGate(),
		ocrClient: ocrClient,
	}
}

func (e *extractorService) Extract(ctx context.Context, input ExtractionInput) (result ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Extraction panicked for %s: %v\n", input.FileName, r)
			result = e.placeholderResult(input)
		}
	}()

	// Plain text files skip the whole ladder.
	if !isPDF(input) {
		return e.extractPlainText(input)
	}

	// Tier 0: native parser.
	if text, err := e.pdfParser.ExtractText(input.Data); err == nil {
		if res, ok := e.gated(text, models.MethodNativeParser); ok {
			return res
		}
		log.Printf("⚠️  Native parse of %s rejected by quality gate\n", input.FileName)
	} else {
		log.Printf("⚠️  Native parse of %s failed: %v\n", input.FileName, err)
	}

	// Tier 1: heuristic binary scan.
	text, method := e.scanner.Scan(input.Data)
	if res, ok := e.gated(text, method); ok {
		return res
	}

	// Tier 2: brute-force buffer scan.
	if res, ok := e.gated(directBufferScan(input.Data), models.MethodDirectBufferScan); ok {
		return res
	}

	// Tier 3: remote OCR.
	if e.ocrClient != nil {
		ocrText, err := e.ocrClient.ExtractText(ctx, input.FileName, input.Data)
		if err != nil {
			log.Printf("⚠️  Remote OCR failed for %s: %v\n", input.FileName, err)
		} else if res, ok := e.gated(ocrText, models.MethodRemoteOCR); ok {
			return res
		}
	}

	return e.placeholderResult(input)
}

// gated runs the quality gate over a candidate. Accept and
// accept-with-warning both terminate the ladder; reject advances it.
func (e *extractorService) gated(text string, method models.ExtractionMethod) (ExtractionResult, bool) {
	quality, decision, warning := e.gate.Evaluate(text)
	if decision == QualityReject {
		return ExtractionResult{}, false
	}

	return ExtractionResult{
		Text:    text,
		Method:  method,
		Quality: quality,
		Warning: warning,
	}, true
}

func (e *extractorService) extractPlainText(input ExtractionInput) ExtractionResult {
	text := string(input.Data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, " ")
	}

	if strings.TrimSpace(text) == "" {
		return e.placeholderResult(input)
	}

	quality, _, warning := e.gate.Evaluate(text)
	return ExtractionResult{
		Text:    text,
		Method:  models.MethodPlainText,
		Quality: quality,
		Warning: warning,
	}
}

func (e *extractorService) placeholderResult(input ExtractionInput) ExtractionResult {
	text := placeholderText(input)
	return ExtractionResult{
		Text:    text,
		Method:  models.MethodPlaceholder,
		Quality: e.gate.Assess(text),
		Warning: limitedExtractionWarning,
	}
}

// placeholderText is deterministic for a given input so repeated extraction
// attempts produce identical output.
func placeholderText(input ExtractionInput) string {
	return fmt.Sprintf(
		"[Extração automática indisponível]\nArquivo: %s\nTipo: %s\nTamanho: %d bytes\nEnviado em: %s\n\nNão foi possível extrair o texto deste documento automaticamente. Cole o conteúdo manualmente para prosseguir com a análise.",
		input.FileName,
		input.MimeType,
		len(input.Data),
		input.UploadedAt.UTC().Format(time.RFC3339),
	)
}

// directBufferScan walks every byte of the buffer with no structural
// awareness at all. Last local resort before remote OCR.
func directBufferScan(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) / 4)

	for _, b := range data {
		switch {
		case b == '\r' || b == '\n':
			sb.WriteRune(' ')
		case isPrintableByte(b):
			sb.WriteRune(rune(b))
		}
	}

	return cleanExtractedText(sb.String())
}

func isPDF(input ExtractionInput) bool {
	if strings.EqualFold(input.MimeType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(input.FileName), ".pdf")
}
