package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// OCRClient is the remote OCR extraction tier.
type OCRClient interface {
	ExtractText(ctx context.Context, fileName string, data []byte) (string, error)
}

// Remote OCR output below this length is treated as a failed attempt.
const minOCRTextLength = 500

type ocrClient struct {
	apiKey     string
	endpoint   string
	providers  []string
	language   string
	timeout    time.Duration
	gate       *TextQualityGate
	httpClient *http.Client
}

// NewOCRClient builds a client for an Eden-AI-shaped OCR API. Providers are
// tried strictly in order; the first result longer than minOCRTextLength
// without binary contamination wins.
func NewOCRClient(apiKey, endpoint string, providers []string, language string, timeout time.Duration) OCRClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ocrClient{
		apiKey:    apiKey,
		endpoint:  endpoint,
		providers: providers,
		language:  language,
		timeout:   timeout,
		gate:      NewTextQualityGate(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ocrRequest struct {
	Providers     string `json:"providers"`
	FileBase64    string `json:"file_base64"`
	FileExtension string `json:"file_extension"`
	Language      string `json:"language"`
}

// ocrProviderResult covers the response shapes the providers are known to
// return. Fields are checked in order: text, raw_text, pages[].text.
type ocrProviderResult struct {
	Text    string `json:"text"`
	RawText string `json:"raw_text"`
	Pages   []struct {
		Text string `json:"text"`
	} `json:"pages"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ocrClient) ExtractText(ctx context.Context, fileName string, data []byte) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ocr api key is empty")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		ext = "pdf"
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	var lastErr error
	for _, provider := range c.providers {
		text, err := c.callProvider(ctx, provider, encoded, ext)
		if err != nil {
			log.Printf("⚠️  OCR provider %s failed: %v\n", provider, err)
			lastErr = err
			continue
		}

		quality := c.gate.Assess(text)
		if len(text) > minOCRTextLength && !quality.HasBinaryContamination {
			return text, nil
		}

		log.Printf("⚠️  OCR provider %s returned unusable text (%d chars, contaminated=%v)\n",
			provider, len(text), quality.HasBinaryContamination)
		lastErr = fmt.Errorf("provider %s returned unusable text", provider)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no OCR providers configured")
	}
	return "", fmt.Errorf("all OCR providers failed: %w", lastErr)
}

func (c *ocrClient) callProvider(ctx context.Context, provider, fileBase64, ext string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(ocrRequest{
		Providers:     provider,
		FileBase64:    fileBase64,
		FileExtension: ext,
		Language:      c.language,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("OCR service returned status %d", resp.StatusCode)
	}

	// The response keys results by provider name.
	var body map[string]ocrProviderResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}

	result, ok := body[provider]
	if !ok {
		return "", fmt.Errorf("response missing provider %s", provider)
	}
	if result.Error != nil {
		return "", fmt.Errorf("provider error: %s", result.Error.Message)
	}

	return extractOCRText(result), nil
}

// extractOCRText sniffs the known payload shapes in fixed priority order.
func extractOCRText(result ocrProviderResult) string {
	if strings.TrimSpace(result.Text) != "" {
		return result.Text
	}
	if strings.TrimSpace(result.RawText) != "" {
		return result.RawText
	}

	var parts []string
	for _, page := range result.Pages {
		if strings.TrimSpace(page.Text) != "" {
			parts = append(parts, page.Text)
		}
	}
	return strings.Join(parts, "\n")
}
