package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionMethod identifies which extraction tier produced a document's text.
type ExtractionMethod string

const (
	MethodNativeParser        ExtractionMethod = "native_parser"
	MethodStructuralMarkers   ExtractionMethod = "structural_markers"
	MethodParenthesisLiterals ExtractionMethod = "parenthesis_literals"
	MethodStreamBlocks        ExtractionMethod = "stream_blocks"
	MethodDirectBufferScan    ExtractionMethod = "direct_buffer_scan"
	MethodRemoteOCR           ExtractionMethod = "remote_ocr"
	MethodPlainText           ExtractionMethod = "plain_text"
	MethodPlaceholder         ExtractionMethod = "placeholder"
)

type Document struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string           `gorm:"type:text" json:"filename"`
	OriginalFileName string           `gorm:"type:text" json:"original_filename"`
	FileType         string           `gorm:"type:text" json:"file_type"`
	MimeType         string           `gorm:"type:text" json:"mime_type"`
	SizeBytes        int64            `gorm:"type:bigint" json:"size_bytes"`
	FilePath         string           `gorm:"type:text" json:"file_path"`
	ExtractedText    string           `gorm:"type:text" json:"extracted_text"`
	ExtractionMethod ExtractionMethod `gorm:"type:text" json:"extraction_method"`

	// Quality flags recorded by the gate after extraction.
	HasBinaryContamination bool    `json:"has_binary_contamination"`
	LetterRatio            float64 `json:"letter_ratio"`
	TextLength             int     `json:"text_length"`
	ExtractionWarning      string  `gorm:"type:text" json:"extraction_warning,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
