package services

import (
	"context"
	"testing"

	"ats-engine/internal/models"
)

type stubKeywordMatcher struct {
	result models.KeywordResult
}

func (s *stubKeywordMatcher) Score(_, _ string) models.KeywordResult {
	return s.result
}

type stubJudge struct {
	byJD map[string]*models.LLMAssessment
}

func (s *stubJudge) Assess(_ context.Context, _, jdText string, _ ProviderKeys) (*models.LLMAssessment, bool) {
	assessment, ok := s.byJD[jdText]
	if !ok || assessment == nil {
		return nil, false
	}
	copied := *assessment
	return &copied, true
}

func assessmentWithScore(score float64, role string) *models.LLMAssessment {
	return &models.LLMAssessment{
		CandidateName:  "Jane Doe",
		OverallScore:   score,
		PhoneNumber:    "555-0101",
		Email:          "jane@example.com",
		Summary:        "Solid background.",
		MissingReqs:    []string{"Kubernetes", "Terraform"},
		JDSummary:      "Backend role.",
		TargetJobRole:  role,
		BestFitRole:    role,
		Recommendation: "Yes",
		Provider:       "GPT",
	}
}

func TestScoreResumeBlendsWeights(t *testing.T) {
	keyword := &stubKeywordMatcher{result: models.KeywordResult{Score: 60}}
	judge := &stubJudge{byJD: map[string]*models.LLMAssessment{
		"jd": assessmentWithScore(90, "Backend Engineer"),
	}}
	scorer := NewScorerService(keyword, judge, 0.7, 0.3)

	record := scorer.ScoreResume(context.Background(), "resume", "jd", ProviderKeys{})

	// 0.7*90 + 0.3*60 = 81.0 exactly.
	if record.ATSScore != 81.0 {
		t.Fatalf("expected blended score 81.0, got %v", record.ATSScore)
	}
	if record.Status != "GPT" {
		t.Fatalf("expected status GPT, got %s", record.Status)
	}
	if record.Recommendation != models.RecommendYes {
		t.Fatalf("expected Yes, got %s", record.Recommendation)
	}
	if record.MissingReqs != "Kubernetes, Terraform" {
		t.Fatalf("unexpected missing requirements: %q", record.MissingReqs)
	}
	if record.ExtractedName != "Jane Doe" {
		t.Fatalf("expected extracted name, got %q", record.ExtractedName)
	}
}

func TestScoreResumeKeywordFallback(t *testing.T) {
	keyword := &stubKeywordMatcher{result: models.KeywordResult{
		Score:   42.5,
		Missing: []string{"docker", "kubernetes"},
	}}
	judge := &stubJudge{}
	scorer := NewScorerService(keyword, judge, 0.7, 0.3)

	record := scorer.ScoreResume(context.Background(), "resume", "jd", ProviderKeys{})

	if record.ATSScore != 42.5 {
		t.Fatalf("expected keyword score 42.5, got %v", record.ATSScore)
	}
	if record.Status != models.StatusKeyword {
		t.Fatalf("expected Keyword status, got %s", record.Status)
	}
	if record.Recommendation != models.RecommendMaybe {
		t.Fatalf("expected Maybe, got %s", record.Recommendation)
	}
	if record.MissingReqs != "docker, kubernetes" {
		t.Fatalf("unexpected missing requirements: %q", record.MissingReqs)
	}
	if record.PhoneNumber != models.ValueNotFound || record.Email != models.ValueNotFound {
		t.Fatalf("expected Not Found placeholders, got %q / %q", record.PhoneNumber, record.Email)
	}
	if record.ResumeSummary != keywordOnlySummary {
		t.Fatalf("unexpected summary: %q", record.ResumeSummary)
	}
}

func TestScoreResumeCoercesRecommendation(t *testing.T) {
	cases := []struct {
		raw  string
		want models.Recommendation
	}{
		{"yes", models.RecommendYes},
		{"NO", models.RecommendNo},
		{"maybe", models.RecommendMaybe},
		{"Strong Hire", models.RecommendMaybe},
		{"", models.RecommendMaybe},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assessment := assessmentWithScore(80, "Engineer")
			assessment.Recommendation = tc.raw
			judge := &stubJudge{byJD: map[string]*models.LLMAssessment{"jd": assessment}}
			scorer := NewScorerService(&stubKeywordMatcher{}, judge, 0.7, 0.3)

			record := scorer.ScoreResume(context.Background(), "resume", "jd", ProviderKeys{})
			if record.Recommendation != tc.want {
				t.Fatalf("raw %q: expected %s, got %s", tc.raw, tc.want, record.Recommendation)
			}
		})
	}
}

func TestResolveBestSingleJD(t *testing.T) {
	judge := &stubJudge{byJD: map[string]*models.LLMAssessment{
		"jd": assessmentWithScore(75, "Data Engineer"),
	}}
	scorer := NewScorerService(&stubKeywordMatcher{}, judge, 0.7, 0.3)

	record := scorer.ResolveBest(context.Background(), "resume", []string{"jd"}, ProviderKeys{})
	if record.MatchedJD != "Data Engineer" {
		t.Fatalf("expected matched JD from target role, got %q", record.MatchedJD)
	}
}

func TestResolveBestSingleJDUnknownRole(t *testing.T) {
	// Keyword-only fallback leaves the target role as Not Found.
	scorer := NewScorerService(&stubKeywordMatcher{result: models.KeywordResult{Score: 10}}, &stubJudge{}, 0.7, 0.3)

	record := scorer.ResolveBest(context.Background(), "resume", []string{"jd"}, ProviderKeys{})
	if record.MatchedJD != models.MatchedJDSingle {
		t.Fatalf("expected %q, got %q", models.MatchedJDSingle, record.MatchedJD)
	}
}

func TestResolveBestPicksHighestScore(t *testing.T) {
	judge := &stubJudge{byJD: map[string]*models.LLMAssessment{
		"jd-a": assessmentWithScore(40, "Role A"),
		"jd-b": assessmentWithScore(85, "Role B"),
		"jd-c": assessmentWithScore(60, "Role C"),
	}}
	scorer := NewScorerService(&stubKeywordMatcher{}, judge, 1.0, 0)

	record := scorer.ResolveBest(context.Background(), "resume", []string{"jd-a", "jd-b", "jd-c"}, ProviderKeys{})
	if record.ATSScore != 85 {
		t.Fatalf("expected winning score 85, got %v", record.ATSScore)
	}
	if record.MatchedJD != "Role B" {
		t.Fatalf("expected matched JD Role B, got %q", record.MatchedJD)
	}
}

func TestResolveBestTieKeepsFirst(t *testing.T) {
	judge := &stubJudge{byJD: map[string]*models.LLMAssessment{
		"jd-a": assessmentWithScore(70, "Role A"),
		"jd-b": assessmentWithScore(70, "Role B"),
	}}
	scorer := NewScorerService(&stubKeywordMatcher{}, judge, 1.0, 0)

	record := scorer.ResolveBest(context.Background(), "resume", []string{"jd-a", "jd-b"}, ProviderKeys{})
	if record.MatchedJD != "Role A" {
		t.Fatalf("tie should keep first seen, got %q", record.MatchedJD)
	}
}
