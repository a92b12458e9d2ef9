package services

import "fmt"

// Truncation bounds keep the prompt within a predictable token budget.
const (
	maxResumeChars = 4000
	maxJDChars     = 3000
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAssessmentPrompt creates the judge prompt for one resume/JD pair. The
// model is instructed to return a bare JSON object with the assessment
// fields.
func (pb *PromptBuilder) BuildAssessmentPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`You are an objective ATS evaluator. Score the resume against the JD.
RETURN JSON ONLY. No markdown.

Rules:
- Evaluate strictly on objective alignment between resume and JD
- No bias regarding gender, race, age, or formatting
- Evidence-based only. Do not infer unstated skills

FORMAT:
{
  "candidate_name": "<full name from resume>",
  "overall_score": <0-100>,
  "phone_number": "<from resume or 'Not Found'>",
  "email": "<from resume or 'Not Found'>",
  "photo_link": "<profile/photo link if present, else 'Not Found'>",
  "summary": "<2-3 sentence background overview>",
  "missing_requirements": ["<gap1>", "<gap2>"],
  "job_description_summary": "<1-2 sentence JD summary>",
  "target_job_role": "<position title from JD>",
  "best_fit_role": "<ideal role for candidate based on resume>",
  "recommendation": "<Yes | No | Maybe>"
}

JD: %s
RESUME: %s`, truncateRunes(jdText, maxJDChars), truncateRunes(resumeText, maxResumeChars))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
