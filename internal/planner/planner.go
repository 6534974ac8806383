// Package planner builds the ordered list of search strategies a crawl run
// executes: a standard query, a batch of targeted permutations derived from
// the relevance engine's concept groups, and recency-biased variants.
package planner

import (
	"fmt"

	"litcrawl/internal/relevance"
)

// YearFilter selects how a strategy should constrain publication year.
type YearFilter int

const (
	// YearFilterNone applies no year constraint.
	YearFilterNone YearFilter = 0
	// YearFilterRecent5 restricts results to roughly the last 5 years.
	YearFilterRecent5 YearFilter = 5
	// YearFilterRecent10 restricts results to roughly the last 10 years.
	YearFilterRecent10 YearFilter = 10
	// YearFilterRecent20 restricts results to roughly the last 20 years.
	YearFilterRecent20 YearFilter = 20
)

// Strategy is one search attempt the crawl controller will execute against
// the Semantic Scholar API: a query string plus the year constraint and a
// human-readable description used for notifications.
type Strategy struct {
	Query       string
	Description string
	YearFilter  YearFilter
}

// Plan builds the ordered list of strategies for a crawl run. query is the
// raw user query; configuredYearFilter decides which recency strategies are
// added; engine supplies the targeted-query permutations. pagesDesired does
// not change which strategies are produced.
func Plan(query string, pagesDesired int, configuredYearFilter YearFilter, engine *relevance.Engine) []Strategy {
	var strategies []Strategy

	strategies = append(strategies, Strategy{
		Query:       query,
		Description: "standard query",
		YearFilter:  configuredYearFilter,
	})

	if engine != nil {
		targeted := engine.BuildTargetedQueries(3, 4, 6)
		for i, q := range targeted {
			strategies = append(strategies, Strategy{
				Query:       q,
				Description: fmt.Sprintf("targeted permutation %d", i+1),
				YearFilter:  configuredYearFilter,
			})
		}
	}

	if configuredYearFilter == YearFilterNone || configuredYearFilter > YearFilterRecent5 {
		strategies = append(strategies, Strategy{
			Query:       query,
			Description: "recent publications (last 5 years)",
			YearFilter:  YearFilterRecent5,
		})
	}

	if configuredYearFilter == YearFilterNone || configuredYearFilter > YearFilterRecent10 {
		strategies = append(strategies, Strategy{
			Query:       query,
			Description: "recent publications (last 10 years)",
			YearFilter:  YearFilterRecent10,
		})
	}

	strategies = append(strategies, Strategy{
		Query:       query + " review",
		Description: "review/survey suffix",
		YearFilter:  configuredYearFilter,
	})

	return strategies
}
