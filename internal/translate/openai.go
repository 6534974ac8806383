package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// OpenAIBackend translates text to English via a raw-HTTP chat-completion
// request to the OpenAI API.
type OpenAIBackend struct {
	cfg  Config
	http *http.Client
}

// NewOpenAIBackend builds an OpenAIBackend.
func NewOpenAIBackend(cfg Config) *OpenAIBackend {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &OpenAIBackend{
		cfg:  cfg,
		http: &http.Client{Timeout: 20 * time.Second},
	}
}

// TranslateToEnglish implements Backend.
func (b *OpenAIBackend) TranslateToEnglish(text string) (string, error) {
	if b.cfg.APIKey == "" {
		return "", errors.New("translate: openai API key unset")
	}

	payload := map[string]any{
		"model": b.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": "Translate the user's text to English. Reply with only the translation, no commentary."},
			{"role": "user", "content": text},
		},
		"temperature": 0,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		"https://api.openai.com/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	resp, err := b.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New("translate: openai non-2xx response")
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("translate: no choices returned")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

var _ Backend = (*OpenAIBackend)(nil)
