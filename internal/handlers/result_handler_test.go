package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

func TestResultFromAnalysis_MapsAllPersistedFields(t *testing.T) {
	score := "Compatibilidade: 85%"
	rate := 0.85
	raw := "feedback completo da análise"
	analysis := &models.Analysis{
		Status:              models.StatusCompleted,
		CompatibilityScore:  &score,
		MatchRate:           &rate,
		KeySkills:           []string{"Go", "PostgreSQL"},
		RelevantExperiences: []string{"Atuou como desenvolvedora backend"},
		IdentifiedGaps:      []string{"Falta experiência com Kubernetes"},
		RawAnalysis:         &raw,
		InputSummary: &models.AnalysisInputSummary{
			JobTitleLength:   18,
			ResumeTextLength: 1200,
		},
	}

	result := resultFromAnalysis(analysis)

	assert.Equal(t, score, result.CompatibilityScore)
	assert.InDelta(t, rate, result.MatchRate, 1e-9)
	assert.Equal(t, raw, result.RawAnalysis)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.KeySkills)
	require.NotNil(t, result.InputSummary)
	assert.Equal(t, 18, result.InputSummary.JobTitleLength)
	assert.Equal(t, 1200, result.InputSummary.ResumeTextLength)
}

func TestResultFromAnalysis_NilOptionalFields(t *testing.T) {
	result := resultFromAnalysis(&models.Analysis{Status: models.StatusCompleted})

	assert.Empty(t, result.CompatibilityScore)
	assert.Zero(t, result.MatchRate)
	assert.Nil(t, result.InputSummary)
}
