package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWorkflow struct {
	feedback  string
	err       error
	panicMode bool
	lastInput WorkflowInput
}

func (s *stubWorkflow) RunJobFitWorkflow(ctx context.Context, input WorkflowInput) (string, error) {
	if s.panicMode {
		panic("workflow exploded")
	}
	s.lastInput = input
	return s.feedback, s.err
}

func analysisInput() AnalysisInput {
	return AnalysisInput{
		JobTitle:       "Engenheira de Dados",
		JobDescription: "python spark airflow kubernetes",
		ResumeText:     "Profissional com experiência em python e spark",
	}
}

func TestAnalyzer_WorkflowTierProducesStructuredResult(t *testing.T) {
	workflow := &stubWorkflow{feedback: structuredFeedback}
	analyzer := NewAnalyzerService(workflow, time.Second)

	result := analyzer.Analyze(context.Background(), analysisInput())

	assert.False(t, result.FallbackAnalysis)
	assert.Equal(t, structuredFeedback, result.RawAnalysis)
	assert.Equal(t, "Compatibilidade: 85%", result.CompatibilityScore)
	assert.Equal(t, "Engenheira de Dados", workflow.lastInput.JobTitle)
}

func TestAnalyzer_WorkflowErrorFallsBackToScorer(t *testing.T) {
	workflow := &stubWorkflow{err: fmt.Errorf("all workflows unavailable")}
	analyzer := NewAnalyzerService(workflow, time.Second)

	result := analyzer.Analyze(context.Background(), analysisInput())

	assert.True(t, result.FallbackAnalysis)
	assert.Empty(t, result.RawAnalysis)
	assert.InDelta(t, 0.5, result.MatchRate, 1e-9)
}

func TestAnalyzer_ShortFeedbackFallsBackToScorer(t *testing.T) {
	workflow := &stubWorkflow{feedback: "ok"}
	analyzer := NewAnalyzerService(workflow, time.Second)

	result := analyzer.Analyze(context.Background(), analysisInput())

	assert.True(t, result.FallbackAnalysis)
	assert.Empty(t, result.RawAnalysis)
}

func TestAnalyzer_NoWorkflowUsesScorerDirectly(t *testing.T) {
	analyzer := NewAnalyzerService(nil, time.Second)

	result := analyzer.Analyze(context.Background(), analysisInput())

	assert.True(t, result.FallbackAnalysis)
	assert.NotEmpty(t, result.CompatibilityScore)
}

func TestAnalyzer_ScorerSeesAllCandidateDocuments(t *testing.T) {
	analyzer := NewAnalyzerService(nil, time.Second)

	input := AnalysisInput{
		JobTitle:        "DevOps",
		JobDescription:  "kubernetes terraform",
		ResumeText:      "currículo sem as ferramentas",
		CoverLetterText: "uso kubernetes diariamente em produção",
	}
	result := analyzer.Analyze(context.Background(), input)

	assert.InDelta(t, 0.5, result.MatchRate, 1e-9)
	assert.Contains(t, result.KeySkills, "kubernetes")
}

func TestAnalyzer_DebugAttachesInputSummary(t *testing.T) {
	analyzer := NewAnalyzerService(nil, time.Second)

	input := analysisInput()
	input.Debug = true
	result := analyzer.Analyze(context.Background(), input)

	require.NotNil(t, result.InputSummary)
	assert.Equal(t, len(input.JobTitle), result.InputSummary.JobTitleLength)
	assert.Equal(t, len(input.ResumeText), result.InputSummary.ResumeTextLength)

	input.Debug = false
	result = analyzer.Analyze(context.Background(), input)
	assert.Nil(t, result.InputSummary)
}

func TestAnalyzer_RecoversFromPanicWithApology(t *testing.T) {
	analyzer := NewAnalyzerService(&stubWorkflow{panicMode: true}, time.Second)

	assert.NotPanics(t, func() {
		result := analyzer.Analyze(context.Background(), analysisInput())
		assert.Equal(t, "Análise Indisponível", result.CompatibilityScore)
		assert.True(t, result.FallbackAnalysis)
		assert.NotEmpty(t, result.ErrorMessage)
		assert.NotEmpty(t, result.KeySkills)
	})
}
