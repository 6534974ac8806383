package translate

import "errors"

// Provider selects which Backend implementation BuildVariants is backed
// by.
type Provider string

const (
	ProviderStub   Provider = "stub"
	ProviderOpenAI Provider = "openai"
	ProviderGenAI  Provider = "genai"
)

// Config configures backend construction.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
}

// NewBackend builds a Backend for the configured provider.
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIBackend(cfg), nil
	case ProviderGenAI:
		return NewGenAIBackend(cfg)
	case ProviderStub, "":
		return NewStubBackend(), nil
	default:
		return nil, errors.New("translate: unsupported provider: " + string(cfg.Provider))
	}
}

// StubBackend returns its input unchanged, used in tests and offline runs.
type StubBackend struct{}

// NewStubBackend builds a StubBackend.
func NewStubBackend() *StubBackend { return &StubBackend{} }

// TranslateToEnglish implements Backend by echoing the input.
func (s *StubBackend) TranslateToEnglish(text string) (string, error) {
	return text, nil
}

var _ Backend = (*StubBackend)(nil)
