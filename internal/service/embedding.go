package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// PassagePrefix marks document-side embedding input; see QueryPrefix.
	PassagePrefix = "passage: "

	// EmbeddingDim is the output dimension of multilingual-e5-base.
	EmbeddingDim = 768
)

// EmbeddingService calls a text-embeddings-inference endpoint serving the
// multilingual-e5-base model.
type EmbeddingService struct {
	apiURL string
	client *http.Client
}

// NewEmbeddingService creates a new EmbeddingService instance
func NewEmbeddingService() *EmbeddingService {
	apiURL := os.Getenv("EMBEDDING_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8081/embed"
	}

	return &EmbeddingService{
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type embedRequest struct {
	Inputs string `json:"inputs"`
}

// Embed maps text to a 768-dimension vector. Same input yields
// cosine-comparable vectors across calls.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode, string(data))
	}

	// The server returns one vector per input: [[f, f, ...]].
	var vectors [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding API returned no vectors")
	}
	if len(vectors[0]) != EmbeddingDim {
		return nil, fmt.Errorf("embedding API returned %d dimensions, expected %d", len(vectors[0]), EmbeddingDim)
	}

	return vectors[0], nil
}
