package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// AnalysisInput is everything one job-fit analysis request needs. Cover
// letter and reference text are optional.
type AnalysisInput struct {
	JobTitle        string
	JobDescription  string
	ResumeText      string
	CoverLetterText string
	ReferenceText   string
	Debug           bool
}

// AnalyzerService orchestrates the analysis tiers: remote workflow with
// structured parsing, local keyword heuristic, static apology. Analyze is
// total: it always returns a well-formed result and never panics or errors
// out to the caller.
type AnalyzerService interface {
	Analyze(ctx context.Context, input AnalysisInput) models.JobFitAnalysisResult
}

// Workflow feedback shorter than this is treated as unusable.
const minWorkflowFeedbackLength = 100

type analyzerService struct {
	workflow WorkflowClient // nil when tier 1 is not configured
	parser   *StructuredResultParser
	scorer   *FallbackScorer
	timeout  time.Duration
}

func NewAnalyzerService(workflow WorkflowClient, timeout time.Duration) AnalyzerService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &analyzerService{
		workflow: workflow,
		parser:   NewStructuredResultParser(),
		scorer:   NewFallbackScorer(),
		timeout:  timeout,
	}
}

func (a *analyzerService) Analyze(ctx context.Context, input AnalysisInput) (result models.JobFitAnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Analysis panicked: %v\n", r)
			result = staticApologyResult("análise interrompida por erro interno")
			attachInputSummary(&result, input)
		}
	}()

	// Tier 1: remote workflow, parsed into the structured shape.
	if a.workflow != nil {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		feedback, err := a.workflow.RunJobFitWorkflow(callCtx, WorkflowInput{
			ResumeText:     input.ResumeText,
			JobDescription: input.JobDescription,
			JobTitle:       input.JobTitle,
		})
		cancel()

		if err == nil && len(feedback) >= minWorkflowFeedbackLength {
			result = a.parser.Parse(feedback)
			result.RawAnalysis = feedback
			result.FallbackAnalysis = false
			attachInputSummary(&result, input)
			return result
		}

		if err != nil {
			log.Printf("⚠️  Workflow tier unavailable: %v\n", err)
		} else {
			log.Printf("⚠️  Workflow feedback too short (%d chars), falling back\n", len(feedback))
		}
	}

	// Tier 2: local keyword heuristic.
	result = a.scorer.Score(combinedCandidateText(input), input.JobDescription)
	attachInputSummary(&result, input)
	return result
}

// combinedCandidateText merges every candidate document the user supplied so
// the keyword heuristic sees all of them.
func combinedCandidateText(input AnalysisInput) string {
	parts := []string{input.ResumeText}
	if input.CoverLetterText != "" {
		parts = append(parts, input.CoverLetterText)
	}
	if input.ReferenceText != "" {
		parts = append(parts, input.ReferenceText)
	}
	return strings.Join(parts, "\n\n")
}

// staticApologyResult is the tier-3 answer when everything else failed.
func staticApologyResult(reason string) models.JobFitAnalysisResult {
	return models.JobFitAnalysisResult{
		CompatibilityScore:  "Análise Indisponível",
		KeySkills:           []string{"Não foi possível analisar as habilidades"},
		RelevantExperiences: []string{"Não foi possível analisar as experiências"},
		IdentifiedGaps:      []string{"Tente novamente mais tarde"},
		FallbackAnalysis:    true,
		ErrorMessage:        reason,
	}
}

func attachInputSummary(result *models.JobFitAnalysisResult, input AnalysisInput) {
	if !input.Debug {
		return
	}
	result.InputSummary = &models.AnalysisInputSummary{
		JobTitleLength:        len(input.JobTitle),
		JobDescriptionLength:  len(input.JobDescription),
		ResumeTextLength:      len(input.ResumeText),
		CoverLetterTextLength: len(input.CoverLetterText),
		ReferenceTextLength:   len(input.ReferenceText),
	}
}
