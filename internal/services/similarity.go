package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// SimilarityService maintains a vector index of analyzed job descriptions
// and answers "which jobs that I already analyzed look like this one".
type SimilarityService interface {
	InitCollection() error
	IndexJob(ctx context.Context, analysisID uuid.UUID, jobTitle, jobDescription string) error
	FindSimilar(ctx context.Context, jobDescription string, excludeAnalysisID uuid.UUID, limit int) ([]models.SimilarJobEntry, error)
}

type similarityService struct {
	client         *qdrant.Client
	gemini         GeminiService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewSimilarityService(urlStr, apiKey, collectionName string, gemini GeminiService) (SimilarityService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port default
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &similarityService{
		client:         client,
		gemini:         gemini,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768,
	}, nil
}

// InitCollection implements SimilarityService.
func (s *similarityService) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", s.collectionName)
	return nil
}

// IndexJob implements SimilarityService. Long descriptions are chunked and
// each chunk is stored as its own point carrying the analysis id.
func (s *similarityService) IndexJob(ctx context.Context, analysisID uuid.UUID, jobTitle, jobDescription string) error {
	chunks := s.chunker.ChunkText(jobDescription, 1000, 100)
	if len(chunks) == 0 {
		return fmt.Errorf("job description is empty")
	}

	for _, chunk := range chunks {
		embedding, err := s.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed job chunk: %w", err)
		}

		point := &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"analysis_id": analysisID.String(),
				"job_title":   jobTitle,
				"chunk":       chunk,
			}),
		}

		if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collectionName,
			Points:         []*qdrant.PointStruct{point},
		}); err != nil {
			return fmt.Errorf("failed to upsert job chunk: %w", err)
		}
	}

	return nil
}

// FindSimilar implements SimilarityService. Results are deduplicated per
// analysis, keeping each analysis' best-scoring chunk.
func (s *similarityService) FindSimilar(ctx context.Context, jobDescription string, excludeAnalysisID uuid.UUID, limit int) ([]models.SimilarJobEntry, error) {
	embedding, err := s.gemini.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Over-fetch so per-analysis dedupe still fills the limit.
	fetchLimit := uint64(limit * 4)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(fetchLimit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := make(map[string]bool)
	var results []models.SimilarJobEntry
	for _, point := range points {
		entry := models.SimilarJobEntry{Score: point.Score}

		if v, ok := stringPayload(point.Payload, "analysis_id"); ok {
			entry.AnalysisID = v
		}
		if v, ok := stringPayload(point.Payload, "job_title"); ok {
			entry.JobTitle = v
		}
		if v, ok := stringPayload(point.Payload, "chunk"); ok {
			entry.Snippet = snippet(v, 200)
		}

		if entry.AnalysisID == "" || entry.AnalysisID == excludeAnalysisID.String() || seen[entry.AnalysisID] {
			continue
		}
		seen[entry.AnalysisID] = true

		results = append(results, entry)
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}

func stringPayload(payload map[string]*qdrant.Value, key string) (string, bool) {
	value, ok := payload[key]
	if !ok {
		return "", false
	}
	if v, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
		return v.StringValue, true
	}
	return "", false
}

func snippet(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
