package crawl

import (
	"litcrawl/internal/relevance"
	"litcrawl/pkg/models"
)

// candidate bundles one scored paper (its authors live on article.Authors)
// with the relevance result that produced its score.
type candidate struct {
	article *models.Article
	result  relevance.Result
}

// pool is the deduplicating accumulator the controller feeds from every
// search strategy: accepted candidates win the desired slots, fallback
// candidates backfill if the run comes up short.
type pool struct {
	accepted map[string]*candidate
	fallback map[string]*candidate
}

func newPool() *pool {
	return &pool{
		accepted: map[string]*candidate{},
		fallback: map[string]*candidate{},
	}
}

func candidateKey(a *models.Article) string {
	title, link := a.Key()
	return title + "\x00" + link
}

// addAccepted inserts or overwrites an accepted candidate, keeping the
// higher-scoring entry when the key already exists.
func (p *pool) addAccepted(c *candidate) {
	key := candidateKey(c.article)
	if existing, ok := p.accepted[key]; ok && existing.result.Score >= c.result.Score {
		return
	}
	p.accepted[key] = c
	delete(p.fallback, key)
}

// addFallback inserts or overwrites a fallback candidate, keeping the
// higher-scoring entry when the key already exists. A key already present
// in accepted is left alone.
func (p *pool) addFallback(c *candidate) {
	key := candidateKey(c.article)
	if _, ok := p.accepted[key]; ok {
		return
	}
	if existing, ok := p.fallback[key]; ok && existing.result.Score >= c.result.Score {
		return
	}
	p.fallback[key] = c
}

func (p *pool) has(key string) bool {
	_, inAccepted := p.accepted[key]
	_, inFallback := p.fallback[key]
	return inAccepted || inFallback
}

func (p *pool) acceptedCount() int { return len(p.accepted) }

// finalize returns up to desired articles: all accepted candidates sorted
// by score descending, then fallback candidates (also score-sorted)
// backfilling any remaining slots.
func (p *pool) finalize(desired int) []*candidate {
	accepted := sortedByScore(p.accepted)
	if len(accepted) >= desired {
		return accepted[:desired]
	}

	fallback := sortedByScore(p.fallback)
	remaining := desired - len(accepted)
	if remaining > len(fallback) {
		remaining = len(fallback)
	}

	return append(accepted, fallback[:remaining]...)
}

func sortedByScore(m map[string]*candidate) []*candidate {
	out := make([]*candidate, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].result.Score > out[j-1].result.Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
