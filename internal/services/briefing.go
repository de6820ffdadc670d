package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// BriefingService generates company briefings for interview preparation.
// Generate never fails: on any error it returns a degraded static briefing.
type BriefingService interface {
	Generate(ctx context.Context, companyName, jobTitle string) models.Briefing
}

type briefingService struct {
	gemini     GeminiService
	maxRetries int
}

func NewBriefingService(gemini GeminiService, maxRetries int) BriefingService {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &briefingService{
		gemini:     gemini,
		maxRetries: maxRetries,
	}
}

func (b *briefingService) Generate(ctx context.Context, companyName, jobTitle string) models.Briefing {
	prompt := buildBriefingPrompt(companyName, jobTitle)

	content, err := b.gemini.GenerateTextWithRetry(ctx, prompt, 0.5, b.maxRetries)
	if err != nil {
		log.Printf("⚠️  Briefing generation failed for %s: %v\n", companyName, err)
		return models.Briefing{
			CompanyName: companyName,
			JobTitle:    jobTitle,
			Content:     degradedBriefing(companyName),
			Degraded:    true,
		}
	}

	return models.Briefing{
		CompanyName: companyName,
		JobTitle:    jobTitle,
		Content:     strings.TrimSpace(content),
	}
}

func buildBriefingPrompt(companyName, jobTitle string) string {
	role := jobTitle
	if role == "" {
		role = "the advertised position"
	}

	return fmt.Sprintf(`You are a career research assistant preparing a candidate for an interview at %s for %s.

Write a concise briefing in Brazilian Portuguese with these sections:
1. Visão geral da empresa (segmento, porte, produtos principais)
2. Cultura e valores
3. Notícias e movimentos recentes relevantes
4. Dicas para a entrevista nesta posição

Keep each section to 3-5 sentences. Be factual; when you are not sure about a detail, say so instead of inventing it.`,
		companyName, role)
}

func degradedBriefing(companyName string) string {
	return fmt.Sprintf(
		"Não foi possível gerar o briefing sobre %s no momento. Pesquise o site institucional, o LinkedIn da empresa e notícias recentes antes da entrevista.",
		companyName)
}
