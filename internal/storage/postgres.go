package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"litcrawl/pkg/models"
)

// Postgres is the Port implementation backing crawl runs against a real
// database: one JSONB row per (label, kind), upserted atomically.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to url and returns a ready-to-use Postgres store.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() { p.pool.Close() }

// Migrate creates the crawl_stores table if it doesn't already exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS crawl_stores (
  label      TEXT NOT NULL,
  kind       TEXT NOT NULL,
  payload    JSONB NOT NULL,
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
  PRIMARY KEY (label, kind)
);`
	_, err := p.pool.Exec(ctx, q)
	return err
}

const (
	kindArticles = "articles"
	kindAuthors  = "authors"
)

func (p *Postgres) load(ctx context.Context, label, kind string) ([]byte, error) {
	const q = `SELECT payload FROM crawl_stores WHERE label = $1 AND kind = $2`
	var raw []byte
	err := p.pool.QueryRow(ctx, q, SanitizeLabel(label), kind).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (p *Postgres) save(ctx context.Context, label, kind string, payload []byte) error {
	const q = `
INSERT INTO crawl_stores (label, kind, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (label, kind) DO UPDATE SET
  payload    = EXCLUDED.payload,
  updated_at = EXCLUDED.updated_at;`
	_, err := p.pool.Exec(ctx, q, SanitizeLabel(label), kind, payload)
	return err
}

// LoadArticles implements Port. Both stored collections are read so the
// returned articles' Authors fields are relinked.
func (p *Postgres) LoadArticles(ctx context.Context, label string) ([]*models.Article, error) {
	articles, _, err := p.loadBoth(ctx, label)
	return articles, err
}

// LoadAuthors implements Port. Both stored collections are read so the
// returned authors' Articles fields are relinked.
func (p *Postgres) LoadAuthors(ctx context.Context, label string) ([]*models.Author, error) {
	_, authors, err := p.loadBoth(ctx, label)
	return authors, err
}

// LoadAll loads both the articles and authors previously saved under label
// and reconnects their pointers, the form the crawl controller needs to
// seed its existing-keys lookup.
func (p *Postgres) LoadAll(ctx context.Context, label string) ([]*models.Article, []*models.Author, error) {
	return p.loadBoth(ctx, label)
}

func (p *Postgres) loadBoth(ctx context.Context, label string) ([]*models.Article, []*models.Author, error) {
	var articleDTOs []articleDTO
	rawArticles, err := p.load(ctx, label, kindArticles)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, nil, err
	default:
		if err := json.Unmarshal(rawArticles, &articleDTOs); err != nil {
			return nil, nil, err
		}
	}

	var authorDTOs []authorDTO
	rawAuthors, err := p.load(ctx, label, kindAuthors)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, nil, err
	default:
		if err := json.Unmarshal(rawAuthors, &authorDTOs); err != nil {
			return nil, nil, err
		}
	}

	articles, authors := linkArticlesAndAuthors(articleDTOs, authorDTOs)
	return articles, authors, nil
}

// SaveArticles implements Port.
func (p *Postgres) SaveArticles(ctx context.Context, label string, articles []*models.Article) error {
	dtos := make([]articleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toArticleDTO(a))
	}
	payload, err := json.Marshal(dtos)
	if err != nil {
		return err
	}
	return p.save(ctx, label, kindArticles, payload)
}

// SaveAuthors implements Port.
func (p *Postgres) SaveAuthors(ctx context.Context, label string, authors []*models.Author) error {
	dtos := make([]authorDTO, 0, len(authors))
	for _, a := range authors {
		dtos = append(dtos, toAuthorDTO(a))
	}
	payload, err := json.Marshal(dtos)
	if err != nil {
		return err
	}
	return p.save(ctx, label, kindAuthors, payload)
}

var _ Port = (*Postgres)(nil)
