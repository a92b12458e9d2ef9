package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a ProviderClient backed by the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (ProviderClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

func (g *geminiClient) Name() string {
	return "Gemini"
}

func (g *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 1024,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", &ProviderError{Kind: classifyGeminiError(err), Err: err}
	}

	if resp == nil {
		return "", &ProviderError{Kind: ErrOverloaded, Err: errors.New("nil response")}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &ProviderError{Kind: ErrFatal, Err: errors.New("no text content in response")}
	}

	return text, nil
}

// classifyGeminiError maps SDK errors onto error kinds, preferring the typed
// APIError status code over message matching.
func classifyGeminiError(err error) ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if kind := classifyStatus(apiErr.Code); kind != ErrFatal {
			return kind
		}
	}
	return classifyMessage(err.Error())
}
