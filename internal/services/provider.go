package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrorKind classifies provider failures so the retry loop does not have to
// parse free-text error messages.
type ErrorKind int

const (
	ErrFatal ErrorKind = iota
	ErrRateLimited
	ErrTimeout
	ErrQuota
	ErrOverloaded
)

func (k ErrorKind) Retryable() bool {
	return k != ErrFatal
}

func (k ErrorKind) String() string {
	switch k {
	case ErrRateLimited:
		return "rate_limited"
	case ErrTimeout:
		return "timeout"
	case ErrQuota:
		return "quota"
	case ErrOverloaded:
		return "overloaded"
	default:
		return "fatal"
	}
}

// ProviderError wraps a provider failure with its classified kind.
type ProviderError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ClassifyError returns the error kind of a provider failure. Typed errors
// carry their kind; anything else falls back to message inspection.
func ClassifyError(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return classifyMessage(err.Error())
}

func classifyStatus(code int) ErrorKind {
	switch code {
	case 429:
		return ErrRateLimited
	case 408, 504:
		return ErrTimeout
	case 500, 502, 503:
		return ErrOverloaded
	default:
		return ErrFatal
	}
}

func classifyMessage(msg string) ErrorKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate") || strings.Contains(lower, "429"):
		return ErrRateLimited
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		return ErrTimeout
	case strings.Contains(lower, "quota") || strings.Contains(lower, "resource"):
		return ErrQuota
	case strings.Contains(lower, "overloaded") || strings.Contains(lower, "503"):
		return ErrOverloaded
	default:
		return ErrFatal
	}
}

// ProviderClient is one generative-model backend. Implementations must be
// safe for concurrent use; one client exists per API key and is shared by all
// workers.
type ProviderClient interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientFactory owns the per-key provider clients. It replaces process-wide
// client maps: the orchestrator holds one factory and injects it into
// workers, which keeps the lifecycle explicit and lets tests swap in stubs.
type ClientFactory struct {
	openAIModel string
	geminiModel string

	mu      sync.Mutex
	openAI  map[string]ProviderClient
	geminis map[string]ProviderClient
}

func NewClientFactory(openAIModel, geminiModel string) *ClientFactory {
	return &ClientFactory{
		openAIModel: openAIModel,
		geminiModel: geminiModel,
		openAI:      make(map[string]ProviderClient),
		geminis:     make(map[string]ProviderClient),
	}
}

// OpenAI returns the shared OpenAI client for the key, creating it on first
// use.
func (f *ClientFactory) OpenAI(apiKey string) ProviderClient {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.openAI[apiKey]; ok {
		return client
	}
	client := NewOpenAIClient(apiKey, f.openAIModel)
	f.openAI[apiKey] = client
	return client
}

// Gemini returns the shared Gemini client for the key, creating it on first
// use. Client construction can fail (the SDK validates its configuration).
func (f *ClientFactory) Gemini(ctx context.Context, apiKey string) (ProviderClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.geminis[apiKey]; ok {
		return client, nil
	}
	client, err := NewGeminiClient(ctx, apiKey, f.geminiModel)
	if err != nil {
		return nil, err
	}
	f.geminis[apiKey] = client
	return client, nil
}
