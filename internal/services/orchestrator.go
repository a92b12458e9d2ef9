package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"ats-engine/internal/models"
)

// EventSink receives stream events as the batch progresses. Called from the
// coordinating goroutine only, never concurrently.
type EventSink func(models.StreamEvent)

type OrchestratorService interface {
	// Run processes every candidate against the JD set with bounded
	// concurrency, emitting progress/result/done events on the sink. The
	// returned aggregate holds one result per candidate in completion
	// order.
	Run(ctx context.Context, candidates []models.Candidate, jdTexts []string, keys ProviderKeys, emit EventSink) models.BatchResult
}

type orchestratorService struct {
	scorer     ScorerService
	downloader DownloaderService
	extractor  ExtractorService
	batchSize  int
	batchPause time.Duration
}

func NewOrchestratorService(
	scorer ScorerService,
	downloader DownloaderService,
	extractor ExtractorService,
	batchSize int,
	batchPause time.Duration,
) OrchestratorService {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &orchestratorService{
		scorer:     scorer,
		downloader: downloader,
		extractor:  extractor,
		batchSize:  batchSize,
		batchPause: batchPause,
	}
}

func (o *orchestratorService) Run(ctx context.Context, candidates []models.Candidate, jdTexts []string, keys ProviderKeys, emit EventSink) models.BatchResult {
	total := len(candidates)
	results := make(models.BatchResult, 0, total)
	queued := 0

	log.Printf("🚀 Starting batch run: %d candidates, %d job descriptions, batch size %d\n", total, len(jdTexts), o.batchSize)

	for batchStart := 0; batchStart < total; batchStart += o.batchSize {
		batchEnd := batchStart + o.batchSize
		if batchEnd > total {
			batchEnd = total
		}
		batch := candidates[batchStart:batchEnd]

		// Every candidate in the batch is announced, in input order,
		// before any work starts.
		for _, cand := range batch {
			queued++
			emit(models.NewProgressEvent(queued, total, cand.Name))
		}

		resultChan := make(chan models.CandidateResult, len(batch))
		var wg sync.WaitGroup

		for _, cand := range batch {
			wg.Add(1)
			go func(cand models.Candidate) {
				defer wg.Done()
				resultChan <- o.processCandidate(ctx, cand, jdTexts, keys)
			}(cand)
		}

		go func() {
			wg.Wait()
			close(resultChan)
		}()

		// Results arrive in completion order; the aggregate keeps that
		// order.
		for result := range resultChan {
			results = append(results, result)
			emit(models.NewResultEvent(len(results), total, result))
		}

		// Give the stream consumer a moment to flush before the next
		// wave of work.
		if batchEnd < total && o.batchPause > 0 {
			time.Sleep(o.batchPause)
		}
	}

	log.Printf("✅ Batch run completed: %d results\n", len(results))
	emit(models.NewDoneEvent(results))

	return results
}

// processCandidate runs one candidate's full pipeline. Every failure mode,
// panics included, is converted into a Failed sentinel record so a single
// candidate can never abort the batch.
func (o *orchestratorService) processCandidate(ctx context.Context, cand models.Candidate, jdTexts []string, keys ProviderKeys) (result models.CandidateResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic while processing %s: %v\n", cand.Name, r)
			result = models.FailedResult(cand.Name, cand.Link(), fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	filePath := cand.FilePath
	if cand.Source == models.SourceURL {
		path, ok := o.downloader.Fetch(cand.URL)
		if !ok {
			return models.FailedResult(cand.Name, cand.Link(), errors.New("failed to download resume file"))
		}
		filePath = path
	}
	defer os.Remove(filePath)

	resumeText := o.extractor.Extract(filePath)
	if strings.TrimSpace(resumeText) == "" {
		return models.FailedResult(cand.Name, cand.Link(), errors.New("no text could be extracted (possibly a scanned image)"))
	}

	record := o.scorer.ResolveBest(ctx, resumeText, jdTexts, keys)

	name := cand.Name
	link := cand.Link()
	if cand.Source == models.SourceFile {
		// The LLM usually reads the candidate's real name off the
		// resume, which beats a name derived from the file name.
		if extracted := record.ExtractedName; extracted != "" && extracted != models.ValueNotFound {
			name = extracted
			link = "Uploaded: " + name
		}
	}
	record.ExtractedName = ""

	if cand.PhotoLink != "" {
		record.PhotoLink = cand.PhotoLink
	}

	return models.CandidateResult{
		CandidateName: name,
		ResumeLink:    link,
		ScoreRecord:   record,
		OK:            true,
	}
}
