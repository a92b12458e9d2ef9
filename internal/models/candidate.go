package models

// CandidateSource distinguishes resumes fetched by URL from locally uploaded
// files.
type CandidateSource string

const (
	SourceURL  CandidateSource = "url"
	SourceFile CandidateSource = "file"
)

// Candidate is one input row or uploaded file. Immutable after creation; the
// referenced file may be deleted once its text has been extracted.
type Candidate struct {
	Name      string
	Source    CandidateSource
	URL       string
	FilePath  string
	PhotoLink string
}

// Link is the value reported back as the resume link in results.
func (c Candidate) Link() string {
	if c.Source == SourceURL {
		return c.URL
	}
	return "Uploaded: " + c.Name
}
