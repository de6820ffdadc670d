package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

type stubAnalysisRepo struct {
	analyses    map[uuid.UUID]*models.Analysis
	savedResult *models.JobFitAnalysisResult
	errorMsg    string
}

func (s *stubAnalysisRepo) Create(analysis *models.Analysis) error { return nil }

func (s *stubAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	analysis, ok := s.analyses[id]
	if !ok {
		return nil, fmt.Errorf("analysis not found")
	}
	return analysis, nil
}

func (s *stubAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	return nil
}

func (s *stubAnalysisRepo) UpdateResult(id uuid.UUID, result *models.JobFitAnalysisResult) error {
	s.savedResult = result
	return nil
}

func (s *stubAnalysisRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	s.errorMsg = errorMsg
	return nil
}

func (s *stubAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	return nil, nil
}

type stubDocRepo struct {
	docs       map[uuid.UUID]*models.Document
	batchCalls [][]uuid.UUID
}

func (s *stubDocRepo) Create(document *models.Document) error { return nil }

func (s *stubDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found")
	}
	return doc, nil
}

func (s *stubDocRepo) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	s.batchCalls = append(s.batchCalls, ids)
	var docs []models.Document
	for _, id := range ids {
		if doc, ok := s.docs[id]; ok {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func runnerFixture(analysis *models.Analysis, docs map[uuid.UUID]*models.Document) (*stubAnalysisRepo, *stubDocRepo, AnalysisRunnerService) {
	analysisRepo := &stubAnalysisRepo{
		analyses: map[uuid.UUID]*models.Analysis{analysis.ID: analysis},
	}
	docRepo := &stubDocRepo{docs: docs}
	runner := NewAnalysisRunnerService(analysisRepo, docRepo, NewAnalyzerService(nil, time.Second), nil)
	return analysisRepo, docRepo, runner
}

func TestRunner_BatchLoadsSupportingDocuments(t *testing.T) {
	resumeID := uuid.New()
	coverID := uuid.New()
	referenceID := uuid.New()

	analysis := &models.Analysis{
		ID:                    uuid.New(),
		JobTitle:              "DevOps",
		JobDescription:        "kubernetes terraform",
		ResumeDocumentID:      resumeID,
		CoverLetterDocumentID: &coverID,
		ReferenceDocumentID:   &referenceID,
		Status:                models.StatusQueued,
	}
	docs := map[uuid.UUID]*models.Document{
		resumeID:    {ID: resumeID, ExtractedText: "currículo sem as ferramentas"},
		coverID:     {ID: coverID, ExtractedText: "uso kubernetes em produção"},
		referenceID: {ID: referenceID, ExtractedText: "referência cita terraform"},
	}

	analysisRepo, docRepo, runner := runnerFixture(analysis, docs)

	err := runner.RunAnalysis(context.Background(), analysis.ID)

	require.NoError(t, err)
	require.Len(t, docRepo.batchCalls, 1)
	assert.ElementsMatch(t, []uuid.UUID{coverID, referenceID}, docRepo.batchCalls[0])

	// Both supporting documents reached the scorer: every keyword matched.
	require.NotNil(t, analysisRepo.savedResult)
	assert.InDelta(t, 1.0, analysisRepo.savedResult.MatchRate, 1e-9)
}

func TestRunner_MissingResumeFailsAnalysis(t *testing.T) {
	analysis := &models.Analysis{
		ID:               uuid.New(),
		JobTitle:         "DevOps",
		JobDescription:   "kubernetes",
		ResumeDocumentID: uuid.New(),
		Status:           models.StatusQueued,
	}

	analysisRepo, _, runner := runnerFixture(analysis, map[uuid.UUID]*models.Document{})

	err := runner.RunAnalysis(context.Background(), analysis.ID)

	require.Error(t, err)
	assert.NotEmpty(t, analysisRepo.errorMsg)
	assert.Nil(t, analysisRepo.savedResult)
}

func TestRunner_DebugSummaryReachesPersistedResult(t *testing.T) {
	resumeID := uuid.New()
	analysis := &models.Analysis{
		ID:               uuid.New(),
		JobTitle:         "Engenheira de Dados",
		JobDescription:   "python spark",
		ResumeDocumentID: resumeID,
		Status:           models.StatusQueued,
		Debug:            true,
	}
	docs := map[uuid.UUID]*models.Document{
		resumeID: {ID: resumeID, ExtractedText: "experiência com python"},
	}

	analysisRepo, _, runner := runnerFixture(analysis, docs)

	require.NoError(t, runner.RunAnalysis(context.Background(), analysis.ID))

	require.NotNil(t, analysisRepo.savedResult)
	require.NotNil(t, analysisRepo.savedResult.InputSummary)
	assert.Equal(t, len("experiência com python"), analysisRepo.savedResult.InputSummary.ResumeTextLength)
}
