package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/repositories"
)

// AnalysisRunnerService drives one queued analysis end to end: load the
// documents, run the analyzer, persist the result, index the job for the
// similar-jobs lookup.
type AnalysisRunnerService interface {
	RunAnalysis(ctx context.Context, analysisID uuid.UUID) error
}

type analysisRunnerService struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	analyzer     AnalyzerService
	similarity   SimilarityService // nil when the similar-jobs index is disabled
}

func NewAnalysisRunnerService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	analyzer AnalyzerService,
	similarity SimilarityService,
) AnalysisRunnerService {
	return &analysisRunnerService{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		analyzer:     analyzer,
		similarity:   similarity,
	}
}

func (r *analysisRunnerService) RunAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	if err := r.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis %s\n", analysisID)

	analysis, err := r.analysisRepo.FindByID(analysisID)
	if err != nil {
		r.analysisRepo.UpdateError(analysisID, err.Error())
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	resumeDoc, err := r.docRepo.FindByID(analysis.ResumeDocumentID)
	if err != nil {
		r.analysisRepo.UpdateError(analysisID, fmt.Sprintf("resume document not found: %v", err))
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	input := AnalysisInput{
		JobTitle:       analysis.JobTitle,
		JobDescription: analysis.JobDescription,
		ResumeText:     resumeDoc.ExtractedText,
		Debug:          analysis.Debug,
	}

	// Supporting documents are optional: a missing one degrades the
	// analysis instead of failing it.
	var supportingIDs []uuid.UUID
	if analysis.CoverLetterDocumentID != nil {
		supportingIDs = append(supportingIDs, *analysis.CoverLetterDocumentID)
	}
	if analysis.ReferenceDocumentID != nil {
		supportingIDs = append(supportingIDs, *analysis.ReferenceDocumentID)
	}
	if len(supportingIDs) > 0 {
		docs, err := r.docRepo.FindByIDs(supportingIDs)
		if err != nil {
			log.Printf("⚠️  Failed to load supporting documents for %s: %v\n", analysisID, err)
		} else {
			textByID := make(map[uuid.UUID]string, len(docs))
			for _, doc := range docs {
				textByID[doc.ID] = doc.ExtractedText
			}
			if analysis.CoverLetterDocumentID != nil {
				input.CoverLetterText = textByID[*analysis.CoverLetterDocumentID]
			}
			if analysis.ReferenceDocumentID != nil {
				input.ReferenceText = textByID[*analysis.ReferenceDocumentID]
			}
		}
	}

	// Analyze is total: even a degraded result completes the job.
	result := r.analyzer.Analyze(ctx, input)

	if err := r.analysisRepo.UpdateResult(analysisID, &result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	if r.similarity != nil {
		if err := r.similarity.IndexJob(ctx, analysisID, analysis.JobTitle, analysis.JobDescription); err != nil {
			log.Printf("⚠️  Failed to index job for %s: %v\n", analysisID, err)
		}
	}

	log.Printf("✅ Analysis %s completed (fallback=%v)\n", analysisID, result.FallbackAnalysis)
	return nil
}
