package storage

import (
	"context"
	"testing"

	"litcrawl/pkg/models"
)

func TestMemorySaveAndLoadRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	author := &models.Author{Name: "Ada Lovelace", ProfileLink: "http://example.test/ada"}
	article := &models.Article{
		Title:  "Mine Detection Dogs",
		Link:   "http://example.test/paper",
		Qualis: models.QualisA1,
	}
	article.AddAuthor(author)
	author.AddArticle(article)

	if err := m.SaveArticles(ctx, "Mine Detection", []*models.Article{article}); err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	if err := m.SaveAuthors(ctx, "Mine Detection", []*models.Author{author}); err != nil {
		t.Fatalf("SaveAuthors: %v", err)
	}

	articles, authors, err := m.LoadAll(ctx, "Mine Detection")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(articles) != 1 || len(authors) != 1 {
		t.Fatalf("expected 1 article and 1 author, got %d and %d", len(articles), len(authors))
	}
	if len(articles[0].Authors) != 1 || articles[0].Authors[0].Name != "Ada Lovelace" {
		t.Errorf("expected article to be relinked to its author, got %+v", articles[0].Authors)
	}
	if len(authors[0].Articles) != 1 || authors[0].Articles[0].Title != "Mine Detection Dogs" {
		t.Errorf("expected author to be relinked to its article, got %+v", authors[0].Articles)
	}
}

func TestMemoryLoadUnknownLabelReturnsEmpty(t *testing.T) {
	m := NewMemory()
	articles, err := m.LoadArticles(context.Background(), "Never Saved")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles for an unknown label, got %d", len(articles))
	}
}

func TestMemoryLabelsAreSanitizedConsistently(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	article := &models.Article{Title: "Paper", Link: "http://example.test/a"}

	if err := m.SaveArticles(ctx, "mine/detection", []*models.Article{article}); err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	articles, err := m.LoadArticles(ctx, "mine detection")
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("expected sanitized labels to collide to the same store, got %d articles", len(articles))
	}
}
