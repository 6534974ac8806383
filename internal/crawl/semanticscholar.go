package crawl

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"litcrawl/pkg/models"
)

const searchEndpoint = "https://api.semanticscholar.org/graph/v1/paper/search"

var requestFields = strings.Join([]string{
	"title", "venue", "year", "citationCount", "url",
	"authors.name", "authors.url", "abstract", "tldr", "citationStyles",
}, ",")

// apiResponse is the subset of the Semantic Scholar search-response shape
// this crawler consumes.
type apiResponse struct {
	Total int       `json:"total"`
	Data  []apiItem `json:"data"`
}

type apiItem struct {
	Title         string        `json:"title"`
	Venue         string        `json:"venue"`
	Year          *int          `json:"year"`
	CitationCount *int          `json:"citationCount"`
	URL           string        `json:"url"`
	Authors       []apiAuthor   `json:"authors"`
	Abstract      *string       `json:"abstract"`
	TLDR          *apiTLDR      `json:"tldr"`
	CitationStyle apiCiteStyles `json:"citationStyles"`
}

type apiAuthor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type apiTLDR struct {
	Text string `json:"text"`
}

type apiCiteStyles struct {
	Bibtex string `json:"bibtex"`
}

// buildSearchURL builds the Semantic Scholar search request URL for one
// strategy's query, optional year filter, and page offset.
func buildSearchURL(query string, yearParam string, offset, limit int) string {
	values := url.Values{}
	values.Set("query", query)
	values.Set("fields", requestFields)
	values.Set("offset", strconv.Itoa(offset))
	values.Set("limit", strconv.Itoa(limit))
	if yearParam != "" {
		values.Set("year", yearParam)
	}
	return searchEndpoint + "?" + values.Encode()
}

var citeTypePattern = regexp.MustCompile(`@(\w+)\{`)

// citeType extracts the first token of a BibTeX entry header, e.g.
// "@inproceedings{..." -> "inproceedings".
func citeType(bibtex string) string {
	match := citeTypePattern.FindStringSubmatch(bibtex)
	if len(match) < 2 {
		return ""
	}
	return strings.ToLower(match[1])
}

// cleanAbstract strips vendor-specific TLDR/"Expand" decoration and falls
// back to the paper's TLDR summary, then to a placeholder, when no
// abstract is present.
func cleanAbstract(item apiItem) string {
	raw := ""
	if item.Abstract != nil {
		raw = *item.Abstract
	}
	raw = strings.TrimPrefix(raw, "TLDR\n")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), " Expand")
	raw = strings.TrimSpace(raw)

	if raw != "" {
		return raw
	}
	if item.TLDR != nil && strings.TrimSpace(item.TLDR.Text) != "" {
		return strings.TrimSpace(item.TLDR.Text)
	}
	return "Aucun résumé"
}

// toArticle maps one API search result to an Article, with authors linked
// both ways.
func toArticle(item apiItem) (*models.Article, []*models.Author) {
	venue := strings.TrimSpace(item.Venue)
	if venue == "" {
		venue = "-"
	}

	year := "0"
	if item.Year != nil {
		year = strconv.Itoa(*item.Year)
	}

	citations := "0"
	if item.CitationCount != nil && *item.CitationCount >= 0 {
		citations = strconv.Itoa(*item.CitationCount)
	}

	link := strings.TrimSpace(item.URL)
	if link == "" {
		link = "-"
	}

	article := &models.Article{
		Title:     strings.TrimSpace(item.Title),
		Venue:     venue,
		Year:      year,
		Citations: citations,
		Link:      link,
		Bibtex:    item.CitationStyle.Bibtex,
		CiteType:  citeType(item.CitationStyle.Bibtex),
		Abstract:  cleanAbstract(item),
	}

	authors := make([]*models.Author, 0, len(item.Authors))
	for _, a := range item.Authors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		author := &models.Author{Name: name, ProfileLink: strings.TrimSpace(a.URL)}
		article.AddAuthor(author)
		author.AddArticle(article)
		authors = append(authors, author)
	}

	return article, authors
}

// yearParam renders a start/end year pair as the Semantic Scholar "year"
// query parameter value.
func yearParam(startYear, endYear int) string {
	if startYear == 0 && endYear == 0 {
		return ""
	}
	if endYear == 0 {
		return fmt.Sprintf("%d-", startYear)
	}
	if startYear == 0 {
		return fmt.Sprintf("-%d", endYear)
	}
	return fmt.Sprintf("%d-%d", startYear, endYear)
}
