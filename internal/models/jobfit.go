package models

// JobFitAnalysisResult is the outcome of one analysis request. It is always
// well-formed: when every remote tier fails the lists hold fixed placeholder
// strings and FallbackAnalysis is true.
type JobFitAnalysisResult struct {
	CompatibilityScore  string                `json:"compatibility_score"`
	MatchRate           float64               `json:"match_rate"`
	KeySkills           []string              `json:"key_skills"`
	RelevantExperiences []string              `json:"relevant_experiences"`
	IdentifiedGaps      []string              `json:"identified_gaps"`
	RawAnalysis         string                `json:"raw_analysis,omitempty"`
	FallbackAnalysis    bool                  `json:"fallback_analysis"`
	ErrorMessage        string                `json:"error_message,omitempty"`
	InputSummary        *AnalysisInputSummary `json:"input_summary,omitempty"`
}

// AnalysisInputSummary carries input lengths for debug responses only.
type AnalysisInputSummary struct {
	JobTitleLength        int `json:"job_title_length"`
	JobDescriptionLength  int `json:"job_description_length"`
	ResumeTextLength      int `json:"resume_text_length"`
	CoverLetterTextLength int `json:"cover_letter_text_length"`
	ReferenceTextLength   int `json:"reference_text_length"`
}

// Briefing is an AI-generated company briefing for interview preparation.
type Briefing struct {
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	Content     string `json:"content"`
	Degraded    bool   `json:"degraded"`
}
