package models

type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	OpenAIConfigured bool   `json:"openai_configured"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

// LLMAssessment is the structured JSON object the judge prompt asks the model
// to return.
type LLMAssessment struct {
	CandidateName  string   `json:"candidate_name"`
	OverallScore   float64  `json:"overall_score"`
	PhoneNumber    string   `json:"phone_number"`
	Email          string   `json:"email"`
	PhotoLink      string   `json:"photo_link"`
	Summary        string   `json:"summary"`
	MissingReqs    []string `json:"missing_requirements"`
	JDSummary      string   `json:"job_description_summary"`
	TargetJobRole  string   `json:"target_job_role"`
	BestFitRole    string   `json:"best_fit_role"`
	Recommendation string   `json:"recommendation"`
	Provider       string   `json:"-"`
}

// KeywordResult is the deterministic half of the dual-signal score.
type KeywordResult struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched_keywords"`
	Missing []string `json:"missing_keywords"`
}
