package storage

import (
	"context"
	"sync"

	"litcrawl/pkg/models"
)

// Memory is an in-process Port fake for tests, keyed by sanitized label.
type Memory struct {
	mu       sync.Mutex
	articles map[string][]articleDTO
	authors  map[string][]authorDTO
}

// NewMemory builds an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		articles: map[string][]articleDTO{},
		authors:  map[string][]authorDTO{},
	}
}

// LoadArticles implements Port.
func (m *Memory) LoadArticles(_ context.Context, label string) ([]*models.Article, error) {
	articles, _, err := m.loadBoth(label)
	return articles, err
}

// LoadAuthors implements Port.
func (m *Memory) LoadAuthors(_ context.Context, label string) ([]*models.Author, error) {
	_, authors, err := m.loadBoth(label)
	return authors, err
}

// LoadAll loads both collections for label and reconnects their pointers.
func (m *Memory) LoadAll(_ context.Context, label string) ([]*models.Article, []*models.Author, error) {
	return m.loadBoth(label)
}

func (m *Memory) loadBoth(label string) ([]*models.Article, []*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := SanitizeLabel(label)
	articles, authors := linkArticlesAndAuthors(m.articles[key], m.authors[key])
	return articles, authors, nil
}

// SaveArticles implements Port.
func (m *Memory) SaveArticles(_ context.Context, label string, articles []*models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dtos := make([]articleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toArticleDTO(a))
	}
	m.articles[SanitizeLabel(label)] = dtos
	return nil
}

// SaveAuthors implements Port.
func (m *Memory) SaveAuthors(_ context.Context, label string, authors []*models.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dtos := make([]authorDTO, 0, len(authors))
	for _, a := range authors {
		dtos = append(dtos, toAuthorDTO(a))
	}
	m.authors[SanitizeLabel(label)] = dtos
	return nil
}

var _ Port = (*Memory)(nil)
