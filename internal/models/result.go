package models

type UploadResponse struct {
	ID               string `json:"id"`
	Filename         string `json:"filename"`
	OriginalName     string `json:"original_name"`
	FileType         string `json:"file_type"`
	ExtractionMethod string `json:"extraction_method"`
	TextLength       int    `json:"text_length"`
	Warning          string `json:"warning,omitempty"`
}

type AnalyzeRequest struct {
	JobTitle              string `json:"job_title" validate:"required"`
	JobDescription        string `json:"job_description" validate:"required"`
	ResumeDocumentID      string `json:"resume_document_id" validate:"required,uuid"`
	CoverLetterDocumentID string `json:"cover_letter_document_id,omitempty"`
	ReferenceDocumentID   string `json:"reference_document_id,omitempty"`
	Debug                 bool   `json:"debug,omitempty"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string                `json:"id"`
	Status       string                `json:"status"`
	Result       *JobFitAnalysisResult `json:"result,omitempty"`
	ErrorMessage *string               `json:"error_message,omitempty"`
}

type SimilarJobEntry struct {
	AnalysisID string  `json:"analysis_id"`
	JobTitle   string  `json:"job_title"`
	Score      float32 `json:"score"`
	Snippet    string  `json:"snippet"`
}

type SimilarJobsResponse struct {
	AnalysisID string            `json:"analysis_id"`
	Similar    []SimilarJobEntry `json:"similar"`
}

type BriefingRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	JobTitle    string `json:"job_title"`
}
