package services

import (
	"context"
	"strings"

	"ats-engine/internal/models"
)

const keywordOnlySummary = "LLMs failed or keys missing. Scored via keywords only."

type ScorerService interface {
	// ScoreResume scores one resume against one job description, blending
	// the LLM and keyword signals.
	ScoreResume(ctx context.Context, resumeText, jdText string, keys ProviderKeys) models.ScoreRecord

	// ResolveBest scores the resume against every job description and
	// returns the record with the highest ATS score, labelled with the
	// winning JD's target role.
	ResolveBest(ctx context.Context, resumeText string, jdTexts []string, keys ProviderKeys) models.ScoreRecord
}

type scorerService struct {
	keywordMatcher KeywordMatcherService
	llmJudge       LLMJudgeService
	llmWeight      float64
	keywordWeight  float64
}

func NewScorerService(
	keywordMatcher KeywordMatcherService,
	llmJudge LLMJudgeService,
	llmWeight float64,
	keywordWeight float64,
) ScorerService {
	return &scorerService{
		keywordMatcher: keywordMatcher,
		llmJudge:       llmJudge,
		llmWeight:      llmWeight,
		keywordWeight:  keywordWeight,
	}
}

// ScoreResume runs the keyword matcher and the LLM judge concurrently. The
// LLM call dominates latency, so the keyword computation stays off the
// critical path.
func (s *scorerService) ScoreResume(ctx context.Context, resumeText, jdText string, keys ProviderKeys) models.ScoreRecord {
	kwChan := make(chan models.KeywordResult, 1)
	go func() {
		kwChan <- s.keywordMatcher.Score(resumeText, jdText)
	}()

	assessment, ok := s.llmJudge.Assess(ctx, resumeText, jdText, keys)
	kwResult := <-kwChan

	if !ok {
		return models.ScoreRecord{
			ATSScore:       kwResult.Score,
			PhoneNumber:    models.ValueNotFound,
			Email:          models.ValueNotFound,
			PhotoLink:      models.ValueNotFound,
			ResumeSummary:  keywordOnlySummary,
			MissingReqs:    strings.Join(kwResult.Missing, ", "),
			JDSummary:      models.ValueNotFound,
			TargetJobRole:  models.ValueNotFound,
			BestFitRole:    models.ValueNotFound,
			Recommendation: models.RecommendMaybe,
			Status:         models.StatusKeyword,
		}
	}

	blended := round1(assessment.OverallScore*s.llmWeight + kwResult.Score*s.keywordWeight)

	return models.ScoreRecord{
		ATSScore:       blended,
		PhoneNumber:    orNotFound(assessment.PhoneNumber),
		Email:          orNotFound(assessment.Email),
		PhotoLink:      orNotFound(assessment.PhotoLink),
		ResumeSummary:  assessment.Summary,
		MissingReqs:    strings.Join(assessment.MissingReqs, ", "),
		JDSummary:      assessment.JDSummary,
		TargetJobRole:  assessment.TargetJobRole,
		BestFitRole:    assessment.BestFitRole,
		Recommendation: models.NormalizeRecommendation(assessment.Recommendation),
		Status:         assessment.Provider,
		ExtractedName:  assessment.CandidateName,
	}
}

// ResolveBest scores against every JD independently, no early exit. With n
// job descriptions this is O(n) LLM calls per candidate, trading latency for
// correctness.
func (s *scorerService) ResolveBest(ctx context.Context, resumeText string, jdTexts []string, keys ProviderKeys) models.ScoreRecord {
	if len(jdTexts) == 1 {
		record := s.ScoreResume(ctx, resumeText, jdTexts[0], keys)
		record.MatchedJD = roleOr(record.TargetJobRole, models.MatchedJDSingle)
		return record
	}

	bestScore := -1.0
	var best models.ScoreRecord

	for _, jd := range jdTexts {
		record := s.ScoreResume(ctx, resumeText, jd, keys)
		if record.ATSScore > bestScore {
			bestScore = record.ATSScore
			best = record
		}
	}

	best.MatchedJD = roleOr(best.TargetJobRole, models.MatchedJDUnknown)
	return best
}

func orNotFound(value string) string {
	if strings.TrimSpace(value) == "" {
		return models.ValueNotFound
	}
	return value
}

func roleOr(role, fallback string) string {
	if strings.TrimSpace(role) == "" || role == models.ValueNotFound {
		return fallback
	}
	return role
}
