package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/smartchef/ai-service/internal/types"
)

const suggestionSystemPrompt = `You are SmartChef, an expert cooking assistant.
The user has these ingredients: %s

The system found the following recipes matching those ingredients:
%s

Your task:
1. Restate the 3-5 most important ingredients the user has.
2. Pick the ONE best recipe from the list. Compare its main ingredients
   against the user's list; reject recipes whose main ingredient the user
   does not have, even when the match score is high.
3. Answer with: the chosen dish, a short reason, step-by-step cooking
   guidance based on the provided steps, and one tip to improve the dish.

Only invent a new dish if none of the listed recipes fit the ingredients.
Say "the system found" rather than "the list you provided".`

const chatSystemPrompt = `You are SmartChef. Answer the user's question based on the dishes and ingredients discussed earlier in this conversation.`

// LLMService generates cooking advice through a DeepSeek-compatible chat
// completions API, with conversation context per session.
type LLMService struct {
	apiKey   string
	apiURL   string
	model    string
	sessions ISessionStore
	client   *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(sessions ISessionStore) (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	model := os.Getenv("DEEPSEEK_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}

	return &LLMService{
		apiKey:   apiKey,
		apiURL:   apiURL,
		model:    model,
		sessions: sessions,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// chatRequest represents a request to the chat completions API
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
}

// chatResponse represents a response from the chat completions API
type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// GenerateSuggestion asks the model to pick and explain the best dish for
// the detected ingredients, and records the exchange in the session history.
func (s *LLMService) GenerateSuggestion(ctx context.Context, sessionID string, ingredients []string, recipes []types.RankedRecipe) (string, error) {
	system := fmt.Sprintf(suggestionSystemPrompt, strings.Join(ingredients, ", "), buildRecipeContext(recipes))
	question := "Suggest a dish I can cook with these ingredients."

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return "", err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: question})

	reply, err := s.complete(ctx, messages)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Append(ctx, sessionID,
		Message{Role: "user", Content: question},
		Message{Role: "assistant", Content: reply},
	); err != nil {
		return "", err
	}
	return reply, nil
}

// Chat answers a follow-up question using the session's conversation history.
func (s *LLMService) Chat(ctx context.Context, sessionID, message string) (string, error) {
	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return "", err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	reply, err := s.complete(ctx, messages)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Append(ctx, sessionID,
		Message{Role: "user", Content: message},
		Message{Role: "assistant", Content: reply},
	); err != nil {
		return "", err
	}
	return reply, nil
}

// complete performs one chat completions call
func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
		TopP:        0.95,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completions request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat completions API returned status %d: %s", resp.StatusCode, string(data))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode chat completions response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completions API returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

// buildRecipeContext renders the ranked recipes into the prompt context block.
func buildRecipeContext(recipes []types.RankedRecipe) string {
	if len(recipes) == 0 {
		return "No matching recipes were found."
	}

	var b strings.Builder
	for i, r := range recipes {
		fmt.Fprintf(&b, "%d. %s (match score: %.2f)\n", i+1, r.Name, r.MatchScore)
		if r.Description != "" {
			fmt.Fprintf(&b, "   - Description: %s\n", r.Description)
		}
		if len(r.DetailedIngredients) > 0 {
			fmt.Fprintf(&b, "   - Ingredients: %s\n", strings.Join(r.DetailedIngredients, ", "))
		}
		if len(r.Seasonings) > 0 {
			fmt.Fprintf(&b, "   - Seasonings: %s\n", strings.Join(r.Seasonings, ", "))
		}
		if r.CookTime != "" {
			fmt.Fprintf(&b, "   - Cook time: %s\n", r.CookTime)
		}
		if len(r.Steps) > 0 {
			b.WriteString("   - Steps:\n")
			for _, step := range r.Steps {
				fmt.Fprintf(&b, "     + %s\n", step)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
