package storage

import (
	"strings"

	"litcrawl/pkg/models"
)

func normalizedKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// articleDTO is the JSON wire shape for a stored Article. Authors are
// stored as (name, profile_link) references rather than embedded authors,
// since Article and Author hold pointers to each other and a naive nested
// encoding would recurse forever.
type articleDTO struct {
	Title          string       `json:"title"`
	Venue          string       `json:"venue"`
	Year           string       `json:"year"`
	Citations      string       `json:"citations"`
	Link           string       `json:"link"`
	Bibtex         string       `json:"bibtex"`
	CiteType       string       `json:"cite_type"`
	Abstract       string       `json:"abstract"`
	Qualis         string       `json:"qualis"`
	RelevanceScore float64      `json:"relevance_score"`
	Concepts       []string     `json:"concepts"`
	AuthorRefs     []authorRef  `json:"author_refs"`
}

type authorRef struct {
	Name        string `json:"name"`
	ProfileLink string `json:"profile_link"`
}

// authorDTO is the JSON wire shape for a stored Author. Articles are
// stored as (title, link) references for the same reason.
type authorDTO struct {
	Name        string      `json:"name"`
	ProfileLink string      `json:"profile_link"`
	ArticleRefs []articleRef `json:"article_refs"`
}

type articleRef struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

func toArticleDTO(a *models.Article) articleDTO {
	refs := make([]authorRef, 0, len(a.Authors))
	for _, author := range a.Authors {
		refs = append(refs, authorRef{Name: author.Name, ProfileLink: author.ProfileLink})
	}
	return articleDTO{
		Title:          a.Title,
		Venue:          a.Venue,
		Year:           a.Year,
		Citations:      a.Citations,
		Link:           a.Link,
		Bibtex:         a.Bibtex,
		CiteType:       a.CiteType,
		Abstract:       a.Abstract,
		Qualis:         string(a.Qualis),
		RelevanceScore: a.RelevanceScore,
		Concepts:       a.Concepts,
		AuthorRefs:     refs,
	}
}

func toAuthorDTO(a *models.Author) authorDTO {
	refs := make([]articleRef, 0, len(a.Articles))
	for _, article := range a.Articles {
		refs = append(refs, articleRef{Title: article.Title, Link: article.Link})
	}
	return authorDTO{Name: a.Name, ProfileLink: a.ProfileLink, ArticleRefs: refs}
}

// linkArticlesAndAuthors reconstructs the bidirectional Article<->Author
// pointers after both collections have been decoded independently.
func linkArticlesAndAuthors(articleDTOs []articleDTO, authorDTOs []authorDTO) ([]*models.Article, []*models.Author) {
	articles := make([]*models.Article, 0, len(articleDTOs))
	articlesByKey := map[string]*models.Article{}
	for _, dto := range articleDTOs {
		a := &models.Article{
			Title:          dto.Title,
			Venue:          dto.Venue,
			Year:           dto.Year,
			Citations:      dto.Citations,
			Link:           dto.Link,
			Bibtex:         dto.Bibtex,
			CiteType:       dto.CiteType,
			Abstract:       dto.Abstract,
			Qualis:         models.NormalizeQualis(dto.Qualis),
			RelevanceScore: dto.RelevanceScore,
			Concepts:       dto.Concepts,
		}
		articles = append(articles, a)
		t, l := a.Key()
		articlesByKey[t+"\x00"+l] = a
	}

	authors := make([]*models.Author, 0, len(authorDTOs))
	authorsByKey := map[string]*models.Author{}
	for _, dto := range authorDTOs {
		a := &models.Author{Name: dto.Name, ProfileLink: dto.ProfileLink}
		authors = append(authors, a)
		n, l := a.Key()
		authorsByKey[n+"\x00"+l] = a
	}

	for i, dto := range articleDTOs {
		article := articles[i]
		for _, ref := range dto.AuthorRefs {
			key := normalizedKey(ref.Name) + "\x00" + normalizedKey(ref.ProfileLink)
			if author, ok := authorsByKey[key]; ok {
				article.AddAuthor(author)
			}
		}
	}
	for i, dto := range authorDTOs {
		author := authors[i]
		for _, ref := range dto.ArticleRefs {
			key := normalizedKey(ref.Title) + "\x00" + normalizedKey(ref.Link)
			if article, ok := articlesByKey[key]; ok {
				author.AddArticle(article)
			}
		}
	}

	return articles, authors
}
