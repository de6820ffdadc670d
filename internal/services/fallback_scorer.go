package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// FallbackScorer produces a coarse compatibility estimate from keyword
// overlap alone. Used only when no remote analysis tier is reachable.
type FallbackScorer struct{}

func NewFallbackScorer() *FallbackScorer {
	return &FallbackScorer{}
}

const maxFallbackKeywords = 50

// Score bucket boundaries are contract: a rate of exactly 0.7 is Alta and
// exactly 0.4 is Média.
const (
	altaThreshold  = 0.7
	mediaThreshold = 0.4
)

var fallbackExperiences = []string{
	"Análise detalhada indisponível no momento",
	"Compare manualmente suas experiências com os requisitos da vaga",
}

// Portuguese stopwords stripped before keyword extraction.
var stopwordsPT = map[string]bool{
	"para": true, "como": true, "mais": true, "pela": true, "pelo": true,
	"este": true, "esta": true, "esse": true, "essa": true, "isso": true,
	"você": true, "voce": true, "seja": true, "será": true, "sera": true,
	"área": true, "area": true, "sobre": true, "entre": true, "ainda": true,
	"também": true, "tambem": true, "quando": true, "onde": true, "pois": true,
	"pelos": true, "pelas": true, "seus": true, "suas": true, "nossa": true,
	"nosso": true, "empresa": true, "vaga": true, "trabalho": true,
	"atividades": true, "requisitos": true, "desejável": true, "desejavel": true,
	"conhecimento": true, "conhecimentos": true, "anos": true, "nível": true,
	"nivel": true, "forma": true, "além": true, "alem": true, "junto": true,
	"todos": true, "todas": true, "outras": true, "outros": true, "bem": true,
	"ter": true, "com": true, "que": true, "das": true, "dos": true, "uma": true,
	"the": true, "and": true, "with": true, "for": true, "will": true,
	"you": true, "your": true, "our": true, "have": true, "work": true,
}

// Score matches job-description keywords against the resume text and maps
// the match rate to a three-bucket qualitative label.
func (s *FallbackScorer) Score(resumeText, jobDescription string) models.JobFitAnalysisResult {
	keywords := extractJobKeywords(jobDescription)

	resumeLower := strings.ToLower(resumeText)
	var matched, unmatched []string
	for _, keyword := range keywords {
		if strings.Contains(resumeLower, keyword) {
			matched = append(matched, keyword)
		} else {
			unmatched = append(unmatched, keyword)
		}
	}

	matchRate := 0.0
	if len(keywords) > 0 {
		matchRate = float64(len(matched)) / float64(len(keywords))
	}

	var gaps []string
	for _, keyword := range capList(unmatched, maxListItems) {
		gaps = append(gaps, fmt.Sprintf("Considere destacar experiência com: %s", keyword))
	}

	return models.JobFitAnalysisResult{
		CompatibilityScore:  ScoreLabel(matchRate),
		MatchRate:           matchRate,
		KeySkills:           capList(matched, maxListItems),
		RelevantExperiences: append([]string(nil), fallbackExperiences...),
		IdentifiedGaps:      gaps,
		FallbackAnalysis:    true,
	}
}

// ScoreLabel derives the qualitative compatibility label from the numeric
// match rate.
func ScoreLabel(matchRate float64) string {
	switch {
	case matchRate >= altaThreshold:
		return "Alta Compatibilidade"
	case matchRate >= mediaThreshold:
		return "Média Compatibilidade"
	default:
		return "Baixa Compatibilidade"
	}
}

// extractJobKeywords tokenizes the job description into lowercase words,
// strips stopwords and short tokens, dedupes, and caps at
// maxFallbackKeywords in discovery order.
func extractJobKeywords(jobDescription string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(jobDescription), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(tokens))
	var keywords []string
	for _, token := range tokens {
		if len([]rune(token)) <= 3 || stopwordsPT[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		if len(keywords) >= maxFallbackKeywords {
			break
		}
	}
	return keywords
}

func capList(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
