package crawl

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"litcrawl/internal/fetch"
	"litcrawl/internal/notify"
	"litcrawl/internal/qualis"
	"litcrawl/internal/storage"
)

type scriptedTransport struct {
	bodies []string
	calls  int
}

func (t *scriptedTransport) Do(req *http.Request) (*http.Response, error) {
	body := `{"total":0,"data":[]}`
	if t.calls < len(t.bodies) {
		body = t.bodies[t.calls]
	}
	t.calls++
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{},
	}, nil
}

const samplePage = `{
  "total": 2,
  "data": [
    {
      "title": "Mine Detection Dog Performance In Field Trials",
      "venue": "Applied Animal Behaviour Science",
      "year": 2021,
      "citationCount": 12,
      "url": "http://example.test/paper-1",
      "authors": [{"name": "Ada Lovelace", "url": "http://example.test/ada"}],
      "abstract": "TLDR\nThis paper studies mine detection dogs and odor recognition performance. Expand",
      "citationStyles": {"bibtex": "@article{smith2021,\n  title={Mine Detection Dog Performance}\n}"}
    },
    {
      "title": "Unrelated Paper About Cooking",
      "venue": "Journal of Culinary Arts",
      "year": 2019,
      "citationCount": 3,
      "url": "http://example.test/paper-2",
      "authors": [{"name": "Grace Hopper", "url": "http://example.test/grace"}],
      "abstract": "This paper is about baking bread and has nothing to do with the query.",
      "citationStyles": {"bibtex": "@inproceedings{jones2019,\n  title={Cooking}\n}"}
    }
  ]
}`

func newTestController(bodies []string) (*Controller, *storage.Memory, *notify.Recording) {
	transport := &scriptedTransport{bodies: bodies}
	fetcher := fetch.NewFetcher(transport, nil, nil)
	store := storage.NewMemory()
	recorder := notify.NewRecording()
	table := qualis.NewTable()
	controller := NewController(fetcher, store, recorder, table, nil)
	return controller, store, recorder
}

func TestControllerRunAcceptsRelevantArticle(t *testing.T) {
	bodies := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		bodies = append(bodies, samplePage)
	}
	controller, _, _ := newTestController(bodies)

	req := Request{
		Label:   "Mine Detection Dogs",
		Query:   "mine detection dog odor",
		Desired: 1,
	}

	articles, err := controller.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(articles) == 0 {
		t.Fatal("expected at least one accepted article")
	}

	found := false
	for _, a := range articles {
		if a.Title == "Mine Detection Dog Performance In Field Trials" {
			found = true
			if a.CiteType != "article" {
				t.Errorf("expected cite type \"article\", got %q", a.CiteType)
			}
			if a.Qualis == "" {
				t.Error("expected qualis to be populated")
			}
		}
	}
	if !found {
		t.Error("expected the relevant mine-detection-dog article to be accepted")
	}
}

func TestControllerRunPersistsResultsForNextRun(t *testing.T) {
	bodies := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		bodies = append(bodies, samplePage)
	}
	controller, store, _ := newTestController(bodies)

	req := Request{Label: "Mine Detection Dogs", Query: "mine detection dog odor", Desired: 1}
	if _, err := controller.Run(context.Background(), req); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	articles, err := store.LoadArticles(context.Background(), "Mine Detection Dogs")
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}
	if len(articles) == 0 {
		t.Fatal("expected persisted articles after a run")
	}
}

func TestControllerRunDeduplicatesAgainstExisting(t *testing.T) {
	bodies := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		bodies = append(bodies, samplePage)
	}
	controller, store, _ := newTestController(bodies)
	ctx := context.Background()

	req := Request{Label: "Mine Detection Dogs", Query: "mine detection dog odor", Desired: 1}
	if _, err := controller.Run(ctx, req); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := controller.Run(ctx, req); err != nil {
		t.Fatalf("second run: %v", err)
	}

	after, err := store.LoadArticles(ctx, "Mine Detection Dogs")
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}

	seen := map[string]int{}
	for _, a := range after {
		title, link := a.Key()
		seen[title+"\x00"+link]++
	}
	for key, count := range seen {
		if count > 1 {
			t.Errorf("expected no duplicate stored article for key %q, got %d copies", key, count)
		}
	}
}

func TestControllerRunNotifiesEmptyExportWhenNothingAccepted(t *testing.T) {
	emptyPage := `{"total":0,"data":[]}`
	bodies := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		bodies = append(bodies, emptyPage)
	}
	controller, _, recorder := newTestController(bodies)

	req := Request{Label: "Nothing Here", Query: "entirely unrelated topic zzz", Desired: 3}
	articles, err := controller.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no accepted articles, got %d", len(articles))
	}
	if len(recorder.EmptyExports) != 1 {
		t.Errorf("expected exactly one empty-export notification, got %d", len(recorder.EmptyExports))
	}
}

func TestYearParamFormatsRanges(t *testing.T) {
	if got := yearParam(0, 0); got != "" {
		t.Errorf("expected empty year param, got %q", got)
	}
	if got := yearParam(2015, 0); got != "2015-" {
		t.Errorf("expected \"2015-\", got %q", got)
	}
	if got := yearParam(0, 2020); got != "-2020" {
		t.Errorf("expected \"-2020\", got %q", got)
	}
	if got := yearParam(2010, 2020); got != "2010-2020" {
		t.Errorf("expected \"2010-2020\", got %q", got)
	}
}

func TestCiteTypeExtractsBibtexHeader(t *testing.T) {
	if got := citeType("@inproceedings{smith2020,\n  title={X}\n}"); got != "inproceedings" {
		t.Errorf("expected \"inproceedings\", got %q", got)
	}
	if got := citeType(""); got != "" {
		t.Errorf("expected empty cite type for empty bibtex, got %q", got)
	}
}

func TestCleanAbstractStripsTLDRAndExpand(t *testing.T) {
	abstract := "TLDR\nShort summary of the paper. Expand"
	item := apiItem{Abstract: &abstract}
	got := cleanAbstract(item)
	if got != "Short summary of the paper." {
		t.Errorf("unexpected cleaned abstract: %q", got)
	}
}

func TestCleanAbstractFallsBackToPlaceholder(t *testing.T) {
	item := apiItem{}
	if got := cleanAbstract(item); got != "Aucun résumé" {
		t.Errorf("expected placeholder abstract, got %q", got)
	}
}
