package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type Analysis struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle              string         `gorm:"type:text" json:"job_title"`
	JobDescription        string         `gorm:"type:text" json:"job_description"`
	ResumeDocumentID      uuid.UUID      `gorm:"type:uuid;not null" json:"resume_document_id"`
	CoverLetterDocumentID *uuid.UUID     `gorm:"type:uuid" json:"cover_letter_document_id,omitempty"`
	ReferenceDocumentID   *uuid.UUID     `gorm:"type:uuid" json:"reference_document_id,omitempty"`
	Status                AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	Debug                 bool           `json:"debug,omitempty"`

	CompatibilityScore  *string  `gorm:"type:text" json:"compatibility_score,omitempty"`
	MatchRate           *float64 `gorm:"type:decimal(4,3)" json:"match_rate,omitempty"`
	KeySkills           []string `gorm:"serializer:json;type:text" json:"key_skills,omitempty"`
	RelevantExperiences []string `gorm:"serializer:json;type:text" json:"relevant_experiences,omitempty"`
	IdentifiedGaps      []string `gorm:"serializer:json;type:text" json:"identified_gaps,omitempty"`
	RawAnalysis         *string  `gorm:"type:text" json:"raw_analysis,omitempty"`
	FallbackAnalysis    bool     `json:"fallback_analysis"`
	ErrorMessage        *string  `gorm:"type:text" json:"error_message,omitempty"`

	InputSummary *AnalysisInputSummary `gorm:"serializer:json;type:text" json:"input_summary,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
