package models

// Sentinel values used across score records. Keeping them as named constants
// makes the fallback conventions explicit instead of scattered string literals.
const (
	ValueNotFound = "Not Found"
	ValueError    = "Error"

	StatusKeyword = "Keyword"
	StatusFailed  = "Failed"

	MatchedJDSingle  = "Single JD"
	MatchedJDUnknown = "N/A"
)

// Recommendation is the categorical hiring verdict.
type Recommendation string

const (
	RecommendYes   Recommendation = "Yes"
	RecommendNo    Recommendation = "No"
	RecommendMaybe Recommendation = "Maybe"
)

// NormalizeRecommendation coerces an arbitrary LLM-provided value to exactly
// one of Yes/No/Maybe. Anything else becomes Maybe.
func NormalizeRecommendation(raw string) Recommendation {
	switch Recommendation(capitalize(raw)) {
	case RecommendYes:
		return RecommendYes
	case RecommendNo:
		return RecommendNo
	default:
		return RecommendMaybe
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := 1; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// ScoreRecord is the outcome of scoring one resume against one job
// description. Status carries provenance: the LLM provider that produced the
// narrative fields, or "Keyword" when scoring fell back to keywords only.
type ScoreRecord struct {
	ATSScore       float64        `json:"ats_score"`
	PhoneNumber    string         `json:"phone_number"`
	Email          string         `json:"email"`
	PhotoLink      string         `json:"photo_link"`
	ResumeSummary  string         `json:"resume_summary"`
	MissingReqs    string         `json:"missing_requirements"`
	JDSummary      string         `json:"job_description_summary"`
	TargetJobRole  string         `json:"target_job_role"`
	BestFitRole    string         `json:"best_fit_role"`
	Recommendation Recommendation `json:"recommendation"`
	Status         string         `json:"status"`
	MatchedJD      string         `json:"matched_jd"`
	ExtractedName  string         `json:"-"`
}

// CandidateResult is a ScoreRecord bound to a candidate identity. One is
// produced per input candidate, success or failure.
type CandidateResult struct {
	CandidateName string `json:"candidate_name"`
	ResumeLink    string `json:"resume_link"`
	ScoreRecord
	OK bool `json:"ok"`
}

// FailedResult builds the sentinel record for a candidate whose pipeline
// failed. The error text lands in the resume summary so it reaches the user.
func FailedResult(name, link string, err error) CandidateResult {
	return CandidateResult{
		CandidateName: name,
		ResumeLink:    link,
		ScoreRecord: ScoreRecord{
			ATSScore:       0,
			PhoneNumber:    ValueError,
			Email:          ValueError,
			PhotoLink:      ValueError,
			ResumeSummary:  "Failed: " + err.Error(),
			MissingReqs:    ValueError,
			JDSummary:      ValueError,
			TargetJobRole:  ValueError,
			BestFitRole:    ValueError,
			Recommendation: RecommendNo,
			Status:         StatusFailed,
			MatchedJD:      ValueError,
		},
		OK: false,
	}
}

// BatchResult is the ordered aggregate of one batch run. Order is completion
// order, not input order.
type BatchResult []CandidateResult
