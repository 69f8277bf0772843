package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"billbox/internal/config"
)

// huggingFaceGenerator calls the hosted text-generation inference API. A
// circuit breaker keeps a flapping model endpoint from stalling every
// ingestion request.
type huggingFaceGenerator struct {
	client  *http.Client
	breaker CircuitBreakerInterface
	url     string
	token   string
	maxLen  int
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxLength int `json:"max_length"`
}

type generationResponse struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFaceGenerator creates a TextGenerator backed by the HuggingFace
// Inference API
func NewHuggingFaceGenerator(cfg config.GenerationConfig, breaker CircuitBreakerInterface) TextGenerator {
	return &huggingFaceGenerator{
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		url:     fmt.Sprintf("%s/%s", cfg.APIURL, cfg.Model),
		token:   cfg.APIToken,
		maxLen:  cfg.MaxLength,
	}
}

// Generate sends the prompt to the model and returns the raw generated text
func (g *huggingFaceGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.breaker.IsOpen() {
		return "", ErrCircuitBreakerOpen
	}

	body, err := json.Marshal(generationRequest{
		Inputs:     prompt,
		Parameters: generationParameters{MaxLength: g.maxLen},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		g.breaker.RecordFailure()
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.breaker.RecordFailure()
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generation service returned status %d: %s", resp.StatusCode, string(payload))
	}

	var results []generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		g.breaker.RecordFailure()
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(results) == 0 {
		g.breaker.RecordFailure()
		return "", fmt.Errorf("generation service returned no candidates")
	}

	g.breaker.RecordSuccess()
	return results[0].GeneratedText, nil
}
