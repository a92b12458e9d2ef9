package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"ats-engine/internal/models"
)

// ProviderKeys are the API keys for one scoring run. Either may be empty;
// a missing key simply skips that provider.
type ProviderKeys struct {
	OpenAI string
	Gemini string
}

type LLMJudgeService interface {
	// Assess runs the judge prompt through the configured providers. The
	// second return value is false when no provider produced a usable
	// assessment; that is the expected "LLM unavailable" outcome, not an
	// error.
	Assess(ctx context.Context, resumeText, jdText string, keys ProviderKeys) (*models.LLMAssessment, bool)
}

type llmJudgeService struct {
	factory       *ClientFactory
	promptBuilder *PromptBuilder
	maxRetries    int
	backoffBase   time.Duration
}

func NewLLMJudgeService(factory *ClientFactory, maxRetries int, backoffBase time.Duration) LLMJudgeService {
	return &llmJudgeService{
		factory:       factory,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		backoffBase:   backoffBase,
	}
}

func (s *llmJudgeService) Assess(ctx context.Context, resumeText, jdText string, keys ProviderKeys) (*models.LLMAssessment, bool) {
	prompt := s.promptBuilder.BuildAssessmentPrompt(resumeText, jdText)
	return s.assess(ctx, s.clients(ctx, keys), prompt)
}

func (s *llmJudgeService) assess(ctx context.Context, clients []ProviderClient, prompt string) (*models.LLMAssessment, bool) {
	for _, client := range clients {
		if assessment, ok := s.assessWithProvider(ctx, client, prompt); ok {
			return assessment, true
		}
	}

	return nil, false
}

// clients resolves the provider order: OpenAI primary, Gemini fallback.
func (s *llmJudgeService) clients(ctx context.Context, keys ProviderKeys) []ProviderClient {
	var clients []ProviderClient

	if keys.OpenAI != "" {
		clients = append(clients, s.factory.OpenAI(keys.OpenAI))
	}
	if keys.Gemini != "" {
		client, err := s.factory.Gemini(ctx, keys.Gemini)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini client: %v\n", err)
		} else {
			clients = append(clients, client)
		}
	}

	return clients
}

// assessWithProvider tries one provider with bounded retry. Retryable
// failures back off linearly; a fatal failure or retry exhaustion abandons
// the provider.
func (s *llmJudgeService) assessWithProvider(ctx context.Context, client ProviderClient, prompt string) (*models.LLMAssessment, bool) {
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		response, err := client.Generate(ctx, prompt)
		if err == nil {
			assessment, parseErr := parseAssessment(response)
			if parseErr == nil {
				assessment.Provider = client.Name()
				return assessment, true
			}
			log.Printf("⚠️  %s returned unparseable response: %v\n", client.Name(), parseErr)
			return nil, false
		}

		kind := ClassifyError(err)
		if kind.Retryable() && attempt < s.maxRetries {
			wait := time.Duration(attempt+1) * s.backoffBase
			log.Printf("⏳ %s %s (attempt %d), retrying in %s...\n", client.Name(), kind, attempt+1, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, false
			}
			continue
		}

		log.Printf("⚠️  %s failed: %v\n", client.Name(), err)
		return nil, false
	}

	return nil, false
}

func parseAssessment(response string) (*models.LLMAssessment, error) {
	var assessment models.LLMAssessment
	if err := json.Unmarshal([]byte(extractJSON(response)), &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// extractJSON strips markdown fences and surrounding prose so the payload
// can be unmarshalled even when the model ignores the formatting instruction.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
