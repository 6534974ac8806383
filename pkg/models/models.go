// Package models holds the shared value types the crawl core produces:
// Article and Author, plus the small enum and comparator helpers that give
// them a stable identity and ordering.
package models

import (
	"sort"
	"strconv"
	"strings"
)

// Qualis is the CAPES journal-quality grade attached to an Article's venue.
type Qualis string

const (
	QualisA1 Qualis = "A1"
	QualisA2 Qualis = "A2"
	QualisA3 Qualis = "A3"
	QualisA4 Qualis = "A4"
	QualisB1 Qualis = "B1"
	QualisB2 Qualis = "B2"
	QualisB3 Qualis = "B3"
	QualisB4 Qualis = "B4"
	QualisB5 Qualis = "B5"
	QualisC  Qualis = "C"
	// QualisNF marks a venue with no Qualis record on file.
	QualisNF Qualis = "NF"
	// QualisNP marks a venue explicitly graded as not applicable.
	QualisNP Qualis = "NP"
)

var validQualis = map[Qualis]struct{}{
	QualisA1: {}, QualisA2: {}, QualisA3: {}, QualisA4: {},
	QualisB1: {}, QualisB2: {}, QualisB3: {}, QualisB4: {}, QualisB5: {},
	QualisC: {}, QualisNF: {}, QualisNP: {},
}

// NormalizeQualis maps an arbitrary string to a known Qualis grade,
// defaulting to QualisNF when the input isn't recognized.
func NormalizeQualis(raw string) Qualis {
	q := Qualis(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := validQualis[q]; ok {
		return q
	}
	return QualisNF
}

// Author is a paper author, identified by (name, profile link).
type Author struct {
	Name        string
	ProfileLink string
	Articles    []*Article
}

// Key returns Author's identity key for deduplication.
func (a *Author) Key() (string, string) {
	return strings.ToLower(strings.TrimSpace(a.Name)), strings.ToLower(strings.TrimSpace(a.ProfileLink))
}

// AddArticle appends article to the author's list if not already present
// (by Article.Key) and keeps the list sorted by title.
func (a *Author) AddArticle(article *Article) {
	if article == nil {
		return
	}
	newTitle, newLink := article.Key()
	for _, existing := range a.Articles {
		existingTitle, existingLink := existing.Key()
		if existingTitle == newTitle && existingLink == newLink {
			return
		}
	}
	a.Articles = append(a.Articles, article)
	sort.Slice(a.Articles, byTitleThenLink(a.Articles))
}

// Article is an accepted paper, as produced by the crawl core.
type Article struct {
	Title          string
	Venue          string
	Year           string
	Citations      string
	Link           string
	Bibtex         string
	CiteType       string
	Abstract       string
	Qualis         Qualis
	Authors        []*Author
	RelevanceScore float64
	Concepts       []string
}

// Key returns Article's identity key for deduplication.
func (a *Article) Key() (string, string) {
	return strings.ToLower(strings.TrimSpace(a.Title)), strings.ToLower(strings.TrimSpace(a.Link))
}

// YearInt parses Year as a non-negative integer, defaulting to 0.
func (a *Article) YearInt() int {
	return parseNonNegativeInt(a.Year)
}

// CitationsInt parses Citations as a non-negative integer, defaulting to 0.
func (a *Article) CitationsInt() int {
	return parseNonNegativeInt(a.Citations)
}

func parseNonNegativeInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// AddAuthor appends author to the article's author list if not already
// present by identity key.
func (a *Article) AddAuthor(author *Author) {
	if author == nil {
		return
	}
	for _, existing := range a.Authors {
		en, el := existing.Key()
		an, al := author.Key()
		if en == an && el == al {
			return
		}
	}
	a.Authors = append(a.Authors, author)
}

// byTitleThenLink orders Articles by title ascending, then by link, the
// stable output ordering the spec requires.
func byTitleThenLink(articles []*Article) func(i, j int) bool {
	return func(i, j int) bool {
		ti, li := articles[i].Key()
		tj, lj := articles[j].Key()
		if ti != tj {
			return ti < tj
		}
		return li < lj
	}
}

// SortArticles sorts articles in place by title ascending, then by link.
func SortArticles(articles []*Article) {
	sort.Slice(articles, byTitleThenLink(articles))
}

// byAuthorName orders Authors by name ascending, then by profile link.
func byAuthorName(authors []*Author) func(i, j int) bool {
	return func(i, j int) bool {
		ni, li := authors[i].Key()
		nj, lj := authors[j].Key()
		if ni != nj {
			return ni < nj
		}
		return li < lj
	}
}

// SortAuthors sorts authors in place by name ascending, then by profile link.
func SortAuthors(authors []*Author) {
	sort.Slice(authors, byAuthorName(authors))
}
