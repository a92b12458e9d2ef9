package models

import (
	"errors"
	"testing"
)

func TestNormalizeRecommendation(t *testing.T) {
	cases := []struct {
		raw  string
		want Recommendation
	}{
		{"Yes", RecommendYes},
		{"yes", RecommendYes},
		{"YES", RecommendYes},
		{"No", RecommendNo},
		{"no", RecommendNo},
		{"Maybe", RecommendMaybe},
		{"maybe", RecommendMaybe},
		{"Strong Yes", RecommendMaybe},
		{"unknown", RecommendMaybe},
		{"", RecommendMaybe},
	}

	for _, tc := range cases {
		if got := NormalizeRecommendation(tc.raw); got != tc.want {
			t.Errorf("NormalizeRecommendation(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFailedResult(t *testing.T) {
	res := FailedResult("Jane Doe", "https://example.com/resume.pdf", errors.New("download failed"))

	if res.OK {
		t.Error("failed result should not be OK")
	}
	if res.CandidateName != "Jane Doe" {
		t.Errorf("candidate name = %q", res.CandidateName)
	}
	if res.ResumeLink != "https://example.com/resume.pdf" {
		t.Errorf("resume link = %q", res.ResumeLink)
	}
	if res.ATSScore != 0 {
		t.Errorf("score = %v, want 0", res.ATSScore)
	}
	if res.Status != StatusFailed {
		t.Errorf("status = %q, want %q", res.Status, StatusFailed)
	}
	if res.Recommendation != RecommendNo {
		t.Errorf("recommendation = %q, want %q", res.Recommendation, RecommendNo)
	}
	if res.ResumeSummary != "Failed: download failed" {
		t.Errorf("summary = %q", res.ResumeSummary)
	}
	for field, value := range map[string]string{
		"phone":       res.PhoneNumber,
		"email":       res.Email,
		"photo":       res.PhotoLink,
		"missing":     res.MissingReqs,
		"jd summary":  res.JDSummary,
		"target role": res.TargetJobRole,
		"best fit":    res.BestFitRole,
		"matched jd":  res.MatchedJD,
	} {
		if value != ValueError {
			t.Errorf("%s = %q, want %q", field, value, ValueError)
		}
	}
}

func TestCandidateLink(t *testing.T) {
	byURL := Candidate{Name: "Alice", Source: SourceURL, URL: "https://drive.google.com/file/d/abc/view"}
	if got := byURL.Link(); got != byURL.URL {
		t.Errorf("url candidate link = %q", got)
	}

	uploaded := Candidate{Name: "Bob Smith", Source: SourceFile, FilePath: "/tmp/x.pdf"}
	if got := uploaded.Link(); got != "Uploaded: Bob Smith" {
		t.Errorf("uploaded candidate link = %q", got)
	}
}

func TestProgressEvent(t *testing.T) {
	ev := NewProgressEvent(3, 10, "Alice")

	if ev.Type != EventProgress {
		t.Errorf("type = %q", ev.Type)
	}
	if ev.Version != EventVersion {
		t.Errorf("version = %d, want %d", ev.Version, EventVersion)
	}
	if ev.Current != 3 || ev.Total != 10 {
		t.Errorf("current/total = %d/%d", ev.Current, ev.Total)
	}
	if ev.Candidate != "Alice" {
		t.Errorf("candidate = %q", ev.Candidate)
	}
	if ev.Status != "processing" {
		t.Errorf("status = %q", ev.Status)
	}
}

func TestResultEventStatus(t *testing.T) {
	ok := CandidateResult{CandidateName: "Alice", OK: true, ScoreRecord: ScoreRecord{ATSScore: 77.5}}
	ev := NewResultEvent(1, 2, ok)

	if ev.Type != EventResult || ev.Version != EventVersion {
		t.Errorf("type/version = %q/%d", ev.Type, ev.Version)
	}
	if ev.Status != "complete" {
		t.Errorf("status = %q, want complete", ev.Status)
	}
	if ev.Score != 77.5 {
		t.Errorf("score = %v", ev.Score)
	}
	if ev.Data == nil || ev.Data.CandidateName != "Alice" {
		t.Error("result payload missing from event")
	}

	failed := FailedResult("Bob", "link", errors.New("boom"))
	if got := NewResultEvent(2, 2, failed); got.Status != "failed" {
		t.Errorf("status = %q, want failed", got.Status)
	}
}

func TestDoneEvent(t *testing.T) {
	results := BatchResult{
		{CandidateName: "Alice", OK: true},
		{CandidateName: "Bob", OK: false},
	}
	ev := NewDoneEvent(results)

	if ev.Type != EventDone || ev.Version != EventVersion {
		t.Errorf("type/version = %q/%d", ev.Type, ev.Version)
	}
	if ev.Total != 2 {
		t.Errorf("total = %d", ev.Total)
	}
	if len(ev.Results) != 2 {
		t.Errorf("results = %d entries", len(ev.Results))
	}
}
