package relevance

// ConceptGroup is a cluster of surface forms — a query token, its
// synonyms/inflections, or a phrase and its paraphrases — treated as one
// matchable concept during scoring.
type ConceptGroup struct {
	Name         string
	Terms        map[string]struct{}
	DisplayTerms map[string]struct{}
	Weight       float64
}

// KeywordEntry is a user-supplied mandatory or optional constraint, already
// expanded into its translated/synonym forms by the caller (e.g. a
// TranslatorPort) before being handed to the engine.
type KeywordEntry struct {
	Label        string
	Forms        []string
	DisplayTerms []string
}

type keywordGroup struct {
	label string
	terms map[string]struct{}
}

// Result is the value-typed outcome of scoring one (title, abstract) pair
// against an Engine's concept groups and keyword constraints.
type Result struct {
	Score            float64
	MatchedGroups    int
	TitleOnlyGroups  int
	MatchedTerms     map[string]struct{}
	MatchedConcepts  map[string]struct{}
	CoreMatches      int
	MandatoryHits    map[string]struct{}
	MandatoryMissing map[string]struct{}
	OptionalHits     map[string]struct{}
}
