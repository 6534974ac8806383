// Package storage implements the PersistencePort: an opaque, per-label
// key-value store the crawl core uses to load and save the articles and
// authors accumulated by previous runs for the same search label.
package storage

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"litcrawl/pkg/models"
)

// ErrNotFound marks a missing stored row for a label. The Postgres store's
// Load* methods turn it into an empty collection instead of returning it.
var ErrNotFound = errors.New("storage: no stored state for label")

// Port is the persistence seam the crawl controller depends on.
type Port interface {
	LoadArticles(ctx context.Context, label string) ([]*models.Article, error)
	LoadAuthors(ctx context.Context, label string) ([]*models.Author, error)
	SaveArticles(ctx context.Context, label string, articles []*models.Article) error
	SaveAuthors(ctx context.Context, label string, authors []*models.Author) error
}

var (
	invalidChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// SanitizeLabel turns a free-text search label into a safe storage key:
// stripping filesystem-hostile characters, collapsing whitespace, and
// falling back to a default label when the result would be empty.
func SanitizeLabel(label string) string {
	cleaned := invalidChars.ReplaceAllString(label, " ")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "Recherche"
	}
	return cleaned
}
