package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreLabel_Buckets(t *testing.T) {
	assert.Equal(t, "Alta Compatibilidade", ScoreLabel(1.0))
	assert.Equal(t, "Alta Compatibilidade", ScoreLabel(0.7))
	assert.Equal(t, "Média Compatibilidade", ScoreLabel(0.69))
	assert.Equal(t, "Média Compatibilidade", ScoreLabel(0.4))
	assert.Equal(t, "Baixa Compatibilidade", ScoreLabel(0.39999))
	assert.Equal(t, "Baixa Compatibilidade", ScoreLabel(0))
}

func TestFallbackScorer_PartialMatch(t *testing.T) {
	scorer := NewFallbackScorer()

	result := scorer.Score(
		"Desenvolvedora com experiência em python e django",
		"python django kubernetes",
	)

	assert.InDelta(t, 2.0/3.0, result.MatchRate, 1e-9)
	assert.Equal(t, "Média Compatibilidade", result.CompatibilityScore)
	assert.Equal(t, []string{"python", "django"}, result.KeySkills)
	assert.Equal(t, []string{"Considere destacar experiência com: kubernetes"}, result.IdentifiedGaps)
	assert.True(t, result.FallbackAnalysis)
	assert.Equal(t, fallbackExperiences, result.RelevantExperiences)
}

func TestFallbackScorer_FullMatchIsAlta(t *testing.T) {
	scorer := NewFallbackScorer()

	result := scorer.Score(
		"especialista em kubernetes terraform ansible",
		"kubernetes terraform ansible",
	)

	assert.InDelta(t, 1.0, result.MatchRate, 1e-9)
	assert.Equal(t, "Alta Compatibilidade", result.CompatibilityScore)
	assert.Empty(t, result.IdentifiedGaps)
}

func TestFallbackScorer_EmptyJobDescriptionIsBaixa(t *testing.T) {
	scorer := NewFallbackScorer()

	result := scorer.Score("qualquer currículo", "")

	assert.Zero(t, result.MatchRate)
	assert.Equal(t, "Baixa Compatibilidade", result.CompatibilityScore)
	assert.Empty(t, result.KeySkills)
	assert.True(t, result.FallbackAnalysis)
}

func TestExtractJobKeywords_FiltersStopwordsAndShortTokens(t *testing.T) {
	keywords := extractJobKeywords("para com que ter anos a um de Go SQL empresa vaga")

	assert.Empty(t, keywords)
}

func TestExtractJobKeywords_DeduplicatesAndKeepsOrder(t *testing.T) {
	keywords := extractJobKeywords("python django python celery django redis")

	assert.Equal(t, []string{"python", "django", "celery", "redis"}, keywords)
}

func TestExtractJobKeywords_CapsAtFifty(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "tecnologia%02d ", i)
	}

	keywords := extractJobKeywords(sb.String())

	require.Len(t, keywords, maxFallbackKeywords)
	assert.Equal(t, "tecnologia00", keywords[0])
}

func TestFallbackScorer_GapsAreCappedAtFive(t *testing.T) {
	scorer := NewFallbackScorer()

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "ferramenta%02d ", i)
	}

	result := scorer.Score("currículo sem nada disso", sb.String())

	assert.Len(t, result.IdentifiedGaps, 5)
	assert.Equal(t, "Baixa Compatibilidade", result.CompatibilityScore)
}
