// Package crawl implements the CrawlController and CandidatePool: the
// orchestration that drives the query planner and HTTP fetcher through
// every search strategy, scores each result with the relevance engine,
// accumulates accepted/fallback candidates, and persists the final set.
package crawl

import (
	"context"
	"fmt"
	"time"

	"litcrawl/internal/fetch"
	"litcrawl/internal/notify"
	"litcrawl/internal/planner"
	"litcrawl/internal/qualis"
	"litcrawl/internal/relevance"
	"litcrawl/internal/storage"
	"litcrawl/internal/translate"
	"litcrawl/pkg/models"
)

const resultsPerPage = 20

// Request is the per-run input the controller needs: the user's query,
// how many papers they want, an optional year filter, and mandatory/
// optional keyword constraints.
type Request struct {
	Label        string
	Query        string
	Desired      int
	YearFilter   planner.YearFilter
	StartYear    int
	EndYear      int
	Mandatory    []KeywordConstraint
	Optional     []KeywordConstraint
}

// KeywordConstraint is one user-supplied keyword, expanded into its
// translated surface forms before scoring.
type KeywordConstraint struct {
	Term string
}

// Controller wires the planner, fetcher, relevance engine, qualis
// lookup, translator, persistence, and notifier together into one crawl
// run.
type Controller struct {
	fetcher    *fetch.Fetcher
	store      storage.Port
	notifier   notify.Port
	qualisPort qualis.Port
	translator translate.Port
}

// NewController builds a Controller from its dependencies.
func NewController(
	fetcher *fetch.Fetcher,
	store storage.Port,
	notifier notify.Port,
	qualisPort qualis.Port,
	translator translate.Port,
) *Controller {
	return &Controller{
		fetcher:    fetcher,
		store:      store,
		notifier:   notifier,
		qualisPort: qualisPort,
		translator: translator,
	}
}

// Run executes one crawl: plans strategies, fetches and scores candidates
// for each, accumulates into a pool, persists the final merged set, and
// returns the accepted+fallback articles actually kept.
func (c *Controller) Run(ctx context.Context, req Request) ([]*models.Article, error) {
	label := storage.SanitizeLabel(req.Label)

	existingArticles, _, err := c.loadExisting(ctx, label)
	if err != nil {
		return nil, err
	}
	existingKeys := map[string]struct{}{}
	for _, a := range existingArticles {
		existingKeys[candidateKey(a)] = struct{}{}
	}

	mandatory := c.expandConstraints(req.Mandatory)
	optional := c.expandConstraints(req.Optional)
	engine := relevance.New(req.Query, mandatory, optional)

	strategies := planner.Plan(req.Query, req.Desired, req.YearFilter, engine)
	p := newPool()

	for _, strategy := range strategies {
		if p.acceptedCount() >= req.Desired {
			break
		}

		if c.notifier != nil {
			c.notifier.OnStrategyStart(strategy.Description)
		}

		accepted, fallback, err := c.runStrategy(ctx, strategy, req, engine, p, existingKeys, req.Desired)
		if err != nil {
			if c.notifier != nil {
				c.notifier.OnFailure(strategy.Description, err)
			}
			continue
		}

		if c.notifier != nil {
			c.notifier.OnStrategyResult(strategy.Description, accepted, fallback)
		}
	}

	final := p.finalize(req.Desired)

	articles := make([]*models.Article, 0, len(final))
	authorSet := map[string]*models.Author{}
	for _, cand := range final {
		articles = append(articles, cand.article)
		for _, author := range cand.article.Authors {
			key := candidateAuthorKey(author)
			authorSet[key] = author
		}
	}
	models.SortArticles(articles)

	authors := make([]*models.Author, 0, len(authorSet))
	for _, a := range authorSet {
		authors = append(authors, a)
	}
	models.SortAuthors(authors)

	mergedArticles := mergeArticles(existingArticles, articles)
	models.SortArticles(mergedArticles)

	if err := c.store.SaveArticles(ctx, label, mergedArticles); err != nil {
		if c.notifier != nil {
			c.notifier.OnFailure(label, err)
		}
		return nil, err
	}
	if err := c.store.SaveAuthors(ctx, label, authors); err != nil {
		if c.notifier != nil {
			c.notifier.OnFailure(label, err)
		}
		return nil, err
	}

	if len(articles) == 0 {
		if c.notifier != nil {
			c.notifier.OnEmptyExport(label)
		}
		return articles, nil
	}

	if c.notifier != nil {
		c.notifier.OnSuccess(label, len(mergedArticles))
	}
	return articles, nil
}

func (c *Controller) loadExisting(ctx context.Context, label string) ([]*models.Article, []*models.Author, error) {
	type loader interface {
		LoadAll(ctx context.Context, label string) ([]*models.Article, []*models.Author, error)
	}
	if l, ok := c.store.(loader); ok {
		return l.LoadAll(ctx, label)
	}

	articles, err := c.store.LoadArticles(ctx, label)
	if err != nil {
		return nil, nil, err
	}
	authors, err := c.store.LoadAuthors(ctx, label)
	if err != nil {
		return nil, nil, err
	}
	return articles, authors, nil
}

func (c *Controller) expandConstraints(constraints []KeywordConstraint) []relevance.KeywordEntry {
	entries := make([]relevance.KeywordEntry, 0, len(constraints))
	for _, kc := range constraints {
		variants := []string{kc.Term}
		if c.translator != nil {
			variants = c.translator.BuildVariants(kc.Term)
		}
		entries = append(entries, relevance.KeywordEntry{
			Label:        kc.Term,
			Forms:        variants,
			DisplayTerms: variants,
		})
	}
	return entries
}

func (c *Controller) runStrategy(
	ctx context.Context,
	strategy planner.Strategy,
	req Request,
	engine *relevance.Engine,
	p *pool,
	existingKeys map[string]struct{},
	desired int,
) (accepted, fallback int, err error) {
	startYear, endYear := req.StartYear, req.EndYear
	switch strategy.YearFilter {
	case planner.YearFilterRecent5:
		startYear, endYear = currentYear()-5, 0
	case planner.YearFilterRecent10:
		startYear, endYear = currentYear()-10, 0
	case planner.YearFilterRecent20:
		startYear, endYear = currentYear()-20, 0
	}

	reqURL := buildSearchURL(strategy.Query, yearParam(startYear, endYear), 0, resultsPerPage)

	var resp apiResponse
	if err := c.fetcher.FetchJSON(ctx, reqURL, &resp); err != nil {
		return 0, 0, fmt.Errorf("crawl: strategy %q: %w", strategy.Description, err)
	}

	for _, item := range resp.Data {
		article, _ := toArticle(item)
		key := candidateKey(article)
		if _, exists := existingKeys[key]; exists {
			continue
		}

		if c.qualisPort != nil {
			article.Qualis = c.qualisPort.Lookup(article.Venue)
		} else {
			article.Qualis = models.QualisNF
		}

		result := engine.Evaluate(article.Title, article.Abstract)
		article.RelevanceScore = result.Score
		article.Concepts = relevance.SortedConcepts(result)

		cand := &candidate{article: article, result: result}

		if !engine.ShouldKeep(result, p.acceptedCount(), desired) {
			if len(result.MandatoryMissing) == 0 {
				p.addFallback(cand)
				fallback++
			}
			continue
		}

		p.addAccepted(cand)
		accepted++

		if p.acceptedCount() >= desired {
			break
		}
	}

	return accepted, fallback, nil
}

func candidateAuthorKey(a *models.Author) string {
	name, link := a.Key()
	return name + "\x00" + link
}

func mergeArticles(existing, fresh []*models.Article) []*models.Article {
	seen := map[string]struct{}{}
	merged := make([]*models.Article, 0, len(existing)+len(fresh))
	for _, a := range existing {
		merged = append(merged, a)
		seen[candidateKey(a)] = struct{}{}
	}
	for _, a := range fresh {
		if _, ok := seen[candidateKey(a)]; ok {
			continue
		}
		merged = append(merged, a)
		seen[candidateKey(a)] = struct{}{}
	}
	return merged
}

func currentYear() int {
	return time.Now().Year()
}
