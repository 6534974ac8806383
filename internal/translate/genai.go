package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIBackend translates text to English using the Gemini API through a
// Vertex AI-backed genai client.
type GenAIBackend struct {
	cfg    Config
	client *genai.Client
}

// NewGenAIBackend builds a GenAIBackend.
func NewGenAIBackend(cfg Config) (*GenAIBackend, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	cc := genai.ClientConfig{Backend: genai.BackendVertexAI}
	if strings.TrimSpace(cfg.APIKey) != "" {
		cc.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(context.Background(), &cc)
	if err != nil {
		return nil, fmt.Errorf("translate: creating genai client: %w", err)
	}

	return &GenAIBackend{cfg: cfg, client: client}, nil
}

// TranslateToEnglish implements Backend.
func (b *GenAIBackend) TranslateToEnglish(text string) (string, error) {
	prompt := genai.Text("Translate the following text to English. Reply with only the translation, no commentary.")
	temp := float32(0)
	cfg := genai.GenerateContentConfig{
		Temperature:       &temp,
		SystemInstruction: prompt[0],
	}

	resp, err := b.client.Models.GenerateContent(context.Background(), b.cfg.Model, genai.Text(text), &cfg)
	if err != nil {
		return "", fmt.Errorf("translate: generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("translate: no translation returned")
	}

	part := resp.Candidates[0].Content.Parts[0]
	return strings.TrimSpace(string(part.Text)), nil
}

var _ Backend = (*GenAIBackend)(nil)
