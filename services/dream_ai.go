package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"lifequest-system/utils"
)

const defaultAIBaseURL = "https://openrouter.ai/api/v1"

// DreamStep is one AI-suggested sub-goal.
type DreamStep struct {
	Text       string `json:"text"`
	Difficulty int    `json:"difficulty"`
}

// AIClient calls an OpenRouter-compatible chat-completions endpoint
// to break a dream into concrete steps. The model answers in a
// pipe-delimited "step text | difficulty" format.
type AIClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewAIClient() *AIClient {
	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultAIBaseURL
	}
	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "qwen/qwen3-235b-a22b-07-25:free"
	}
	return &AIClient{
		BaseURL:    baseURL,
		APIKey:     os.Getenv("OPENROUTER_API_KEY"),
		Model:      model,
		HTTPClient: utils.HTTPClient,
	}
}

// GenerateDreamSteps returns parsed step suggestions for the dream
// title. Malformed lines in the model output are skipped; an empty
// result is not an error.
func (c *AIClient) GenerateDreamSteps(ctx context.Context, title string) ([]DreamStep, error) {
	prompt := fmt.Sprintf(
		"Break the dream '%s' into at least 5 concrete steps, more if it splits naturally. "+
			"One short phrase per step plus its difficulty from 1 to 3, one per line, formatted as:\n"+
			"Do this and that | 1",
		title)

	body, err := json.Marshal(map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": 500,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai request returned status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ai response decode failed: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, nil
	}

	return ParseDreamSteps(result.Choices[0].Message.Content), nil
}

// ParseDreamSteps extracts "text | difficulty" pairs, skipping lines
// that do not match.
func ParseDreamSteps(text string) []DreamStep {
	var steps []DreamStep
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			continue
		}
		stepText := strings.TrimSpace(parts[0])
		difficulty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if stepText == "" || err != nil {
			continue
		}
		if difficulty < 1 || difficulty > 3 {
			difficulty = 1
		}
		steps = append(steps, DreamStep{Text: stepText, Difficulty: difficulty})
	}
	return steps
}
