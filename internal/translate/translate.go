// Package translate implements the TranslatorPort: given a piece of text,
// it returns an ordered, deduplicated list of surface-form variants —
// the original text plus, when a backend is configured, its machine
// translation to English — so the crawl controller can expand user keyword
// constraints into English forms before scoring.
package translate

import "strings"

// cacheSize matches the original implementation's bounded translation
// cache: large enough to cover a full crawl run's worth of translated
// texts without unbounded memory growth.
const cacheSize = 512

// Backend performs the actual translation of a single phrase or sentence
// to English. Failures are non-fatal to the caller: BuildVariants falls
// back to returning just the original text.
type Backend interface {
	TranslateToEnglish(text string) (string, error)
}

// Port is the seam the crawl controller and relevance engine depend on.
type Port interface {
	BuildVariants(text string) []string
}

// Service is the default Port: a bounded LRU cache in front of a Backend.
type Service struct {
	backend Backend
	cache   *lruCache
	failed  map[string]struct{}
}

// New builds a Service. backend may be nil, in which case BuildVariants
// always returns just the trimmed original text.
func New(backend Backend) *Service {
	return &Service{
		backend: backend,
		cache:   newLRUCache(cacheSize),
		failed:  map[string]struct{}{},
	}
}

// BuildVariants returns the original text plus its English translation
// (when a backend is configured and translation succeeds), deduplicated
// and in a stable order: original first, then the translation.
func (s *Service) BuildVariants(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	variants := []string{trimmed}

	if s.backend == nil {
		return variants
	}
	if _, failedBefore := s.failed[trimmed]; failedBefore {
		return variants
	}

	if cached, ok := s.cache.get(trimmed); ok {
		return cached
	}

	translated, err := s.backend.TranslateToEnglish(trimmed)
	if err != nil || strings.TrimSpace(translated) == "" {
		s.failed[trimmed] = struct{}{}
		return variants
	}

	translated = strings.TrimSpace(translated)
	if !strings.EqualFold(translated, trimmed) {
		variants = append(variants, translated)
	}

	s.cache.put(trimmed, variants)
	return variants
}

var _ Port = (*Service)(nil)
