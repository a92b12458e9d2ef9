package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAIBaseURL = "https://api.openai.com/v1"

type openAIClient struct {
	apiKey    string
	modelName string
	baseURL   string
	http      *http.Client
}

// NewOpenAIClient creates a ProviderClient for the OpenAI chat completions
// API. Plain HTTP keeps the dependency surface small; the request shape is
// small enough not to need an SDK.
func NewOpenAIClient(apiKey, modelName string) ProviderClient {
	return &openAIClient{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   openAIBaseURL,
		http:      &http.Client{Timeout: 2 * time.Minute},
	}
}

func (c *openAIClient) Name() string {
	return "GPT"
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string               `json:"model"`
	Messages       []openAIMessage      `json:"messages"`
	ResponseFormat openAIResponseFormat `json:"response_format"`
	Temperature    float64              `json:"temperature"`
	MaxTokens      int                  `json:"max_tokens"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: c.modelName,
		Messages: []openAIMessage{
			{Role: "system", Content: "You are an expert ATS evaluator. Return ONLY valid JSON."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: openAIResponseFormat{Type: "json_object"},
		Temperature:    0,
		MaxTokens:      500,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ProviderError{Kind: ErrTimeout, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
		return "", &ProviderError{Kind: classifyStatus(resp.StatusCode), Err: err}
	}

	var res openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", &ProviderError{Kind: ErrFatal, Err: err}
	}

	if len(res.Choices) == 0 {
		return "", &ProviderError{Kind: ErrFatal, Err: errors.New("openai returned no choices")}
	}

	return res.Choices[0].Message.Content, nil
}
