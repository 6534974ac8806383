// Package relevance implements the scoring core of the crawler: building
// concept groups out of a query plus user keyword constraints, evaluating a
// candidate paper's title and abstract against them, deciding whether to
// keep/reject/fallback a candidate, and generating targeted query
// permutations used to drive additional search strategies.
package relevance

import (
	"math"
	"sort"
	"strings"

	"litcrawl/internal/synonyms"
	"litcrawl/internal/textnorm"
)

// Engine scores candidate papers against a query and a set of user keyword
// constraints. It is built once per crawl run and is read-only afterward.
type Engine struct {
	RawQuery        string
	NormalizedQuery string

	ConceptGroups []ConceptGroup

	keywordGroups []keywordGroup
	keywordTerms  map[string]struct{}

	mandatory []keywordGroup
	optional  []keywordGroup

	totalConceptWeight  float64
	requiredCoreMatches int
	minGroupsRequired   int
	dynamicThreshold    float64
}

// New builds an Engine from a raw user query plus mandatory/optional
// keyword constraints (each already translated/expanded into its surface
// forms by the caller).
func New(rawQuery string, mandatory, optional []KeywordEntry) *Engine {
	e := &Engine{
		RawQuery:        rawQuery,
		NormalizedQuery: textnorm.Normalize(rawQuery),
		keywordTerms:    map[string]struct{}{},
	}

	tokens := tokenize(e.NormalizedQuery)
	phrases, consumed := extractPhrases(tokens)

	for _, phrase := range phrases {
		expanded := expandPhraseSynonyms(phrase)
		normalized := normalizeSet(expanded)
		if len(normalized) == 0 {
			continue
		}
		e.addKeywordGroup(phrase, normalized)
		display := map[string]struct{}{phrase: {}}
		for syn := range synonyms.PhraseSynonyms[phrase] {
			display[syn] = struct{}{}
		}
		e.ConceptGroups = append(e.ConceptGroups, ConceptGroup{
			Name: phrase, Terms: normalized, DisplayTerms: display, Weight: 1.5,
		})
	}

	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		expanded := expandTokenSynonyms(token)
		normalized := normalizeSet(expanded)
		if len(normalized) == 0 {
			continue
		}
		e.addKeywordGroup(token, normalized)
		display := map[string]struct{}{token: {}}
		for syn := range synonyms.TokenSynonyms[token] {
			display[syn] = struct{}{}
		}
		e.ConceptGroups = append(e.ConceptGroups, ConceptGroup{
			Name: token, Terms: normalized, DisplayTerms: display, Weight: 1.0,
		})
	}

	e.integrateUserKeywords(mandatory, optional)

	for _, g := range e.ConceptGroups {
		e.totalConceptWeight += g.Weight
	}

	coreCount := 0
	for _, g := range e.ConceptGroups {
		if g.Weight >= 1.0 {
			coreCount++
		}
	}
	if coreCount >= 2 {
		e.requiredCoreMatches = maxInt(2, ceilInt(float64(coreCount)*0.75))
	} else {
		e.requiredCoreMatches = maxInt(1, coreCount)
	}
	if coreCount > 0 {
		e.minGroupsRequired = maxInt(1, ceilInt(float64(coreCount)*0.5))
	}

	if len(e.keywordGroups) >= 3 {
		e.dynamicThreshold = 42
	} else {
		e.dynamicThreshold = 35
	}

	return e
}

func (e *Engine) addKeywordGroup(label string, terms map[string]struct{}) {
	e.keywordGroups = append(e.keywordGroups, keywordGroup{label: label, terms: terms})
	for t := range terms {
		e.keywordTerms[t] = struct{}{}
	}
}

func (e *Engine) integrateUserKeywords(mandatory, optional []KeywordEntry) {
	process := func(entries []KeywordEntry, weight float64, addToGroups bool) []keywordGroup {
		var out []keywordGroup
		for _, kw := range entries {
			normalizedForms := map[string]struct{}{}
			for _, f := range kw.Forms {
				if n := textnorm.Normalize(f); n != "" {
					normalizedForms[n] = struct{}{}
				}
			}
			if len(normalizedForms) == 0 {
				continue
			}

			label := strings.TrimSpace(kw.Label)
			if label == "" && len(kw.Forms) > 0 {
				label = strings.TrimSpace(kw.Forms[0])
			}

			out = append(out, keywordGroup{label: label, terms: normalizedForms})

			display := map[string]struct{}{}
			source := kw.DisplayTerms
			if len(source) == 0 {
				source = kw.Forms
			}
			for _, d := range source {
				if d != "" {
					display[d] = struct{}{}
				}
			}
			if len(display) == 0 {
				display[label] = struct{}{}
			}

			e.ConceptGroups = append(e.ConceptGroups, ConceptGroup{
				Name: label, Terms: normalizedForms, DisplayTerms: display, Weight: weight,
			})

			if addToGroups {
				e.addKeywordGroup(label, normalizedForms)
			} else {
				for t := range normalizedForms {
					e.keywordTerms[t] = struct{}{}
				}
			}
		}
		return out
	}

	e.mandatory = process(mandatory, 2.0, true)
	e.optional = process(optional, 0.8, false)
}

// Evaluate scores a candidate's title and abstract against the engine's
// concept groups and keyword constraints.
func (e *Engine) Evaluate(title, abstract string) Result {
	normalizedTitle := textnorm.Normalize(title)
	normalizedAbstract := textnorm.Normalize(abstract)
	combined := strings.TrimSpace(normalizedTitle + " " + normalizedAbstract)
	keywordBasis := normalizedAbstract
	if keywordBasis == "" {
		keywordBasis = combined
	}

	result := Result{
		MatchedTerms:     map[string]struct{}{},
		MatchedConcepts:  map[string]struct{}{},
		MandatoryHits:    map[string]struct{}{},
		MandatoryMissing: map[string]struct{}{},
		OptionalHits:     map[string]struct{}{},
	}

	for _, kw := range e.mandatory {
		if keywordBasis != "" && anyTermIn(kw.terms, keywordBasis) {
			result.MandatoryHits[kw.label] = struct{}{}
		} else {
			result.MandatoryMissing[kw.label] = struct{}{}
		}
	}
	for _, kw := range e.optional {
		if keywordBasis != "" && anyTermIn(kw.terms, keywordBasis) {
			result.OptionalHits[kw.label] = struct{}{}
		}
	}

	matchedWeight := 0.0
	for _, g := range e.ConceptGroups {
		abstractHit := normalizedAbstract != "" && anyTermIn(g.Terms, normalizedAbstract)
		titleHit := normalizedTitle != "" && anyTermIn(g.Terms, normalizedTitle)

		switch {
		case abstractHit:
			result.MatchedGroups++
			result.MatchedConcepts[g.Name] = struct{}{}
			matchedWeight += g.Weight
			if g.Weight >= 1.0 {
				result.CoreMatches++
			}
		case titleHit:
			result.TitleOnlyGroups++
			result.MatchedConcepts[g.Name] = struct{}{}
			matchedWeight += g.Weight * 0.4
		}
	}

	keywordCoverage := 0.0
	basis := keywordBasis
	if basis == "" {
		basis = combined
	}
	if basis != "" {
		for t := range e.keywordTerms {
			if t != "" && strings.Contains(basis, t) {
				result.MatchedTerms[t] = struct{}{}
			}
		}
		if len(e.keywordTerms) > 0 {
			keywordCoverage = float64(len(result.MatchedTerms)) / float64(len(e.keywordTerms)) * 100
		}
	}

	ratioTitle := 0.0
	if normalizedTitle != "" {
		ratioTitle = partialRatio(e.NormalizedQuery, normalizedTitle)
	}
	ratioAbstract := 0.0
	if normalizedAbstract != "" {
		ratioAbstract = partialRatio(e.NormalizedQuery, normalizedAbstract)
	}

	coverageRatio := 0.0
	if e.totalConceptWeight > 0 {
		coverageRatio = matchedWeight / e.totalConceptWeight * 100
	} else if len(e.keywordGroups) > 0 {
		coverageRatio = float64(result.MatchedGroups) / float64(len(e.keywordGroups)) * 100
	}

	score := 0.20*ratioTitle + 0.40*ratioAbstract + 0.25*coverageRatio + 0.15*keywordCoverage
	score += 10 * float64(len(result.MandatoryHits))
	score += 6 * float64(len(result.OptionalHits))
	score += 2 * float64(result.TitleOnlyGroups)

	result.Score = math.Round(score*100) / 100
	return result
}

// ShouldKeep decides whether a scored candidate should be accepted,
// put in the fallback pool, or rejected outright (mandatory_missing).
func (e *Engine) ShouldKeep(result Result, currentCount, desired int) bool {
	if len(result.MandatoryMissing) > 0 {
		return false
	}

	if len(e.keywordGroups) == 0 && len(e.mandatory) == 0 {
		return result.Score >= 30 || currentCount < desired
	}

	if result.CoreMatches >= e.requiredCoreMatches {
		return true
	}
	if result.MatchedGroups >= e.minGroupsRequired && result.Score >= e.dynamicThreshold {
		return true
	}
	if result.CoreMatches+1 >= e.requiredCoreMatches && result.Score >= e.dynamicThreshold+5 {
		return true
	}
	if currentCount < desired && result.CoreMatches >= 1 && result.Score >= math.Max(25, e.dynamicThreshold-5) {
		return true
	}
	return false
}

// BuildTargetedQueries generates additional search-query permutations by
// taking the cartesian product of display terms across the engine's first
// maxGroups core groups (weight >= 1.0, in construction order; the first two
// groups of any weight when fewer than two are core), capped so the result
// set stays small.
func (e *Engine) BuildTargetedQueries(maxGroups, maxTermsPerGroup, maxCombinations int) []string {
	if len(e.ConceptGroups) < 2 {
		return nil
	}

	var core []ConceptGroup
	for _, g := range e.ConceptGroups {
		if g.Weight >= 1.0 {
			core = append(core, g)
		}
	}

	var groups []ConceptGroup
	if len(core) < 2 {
		groups = e.ConceptGroups
		if len(groups) > 2 {
			groups = groups[:2]
		}
	} else {
		groups = core
		if len(groups) > maxGroups {
			groups = groups[:maxGroups]
		}
	}

	termLists := make([][]string, 0, len(groups))
	for _, g := range groups {
		terms := rankGroupTerms(g, maxTermsPerGroup)
		if len(terms) > 0 {
			termLists = append(termLists, terms)
		}
	}

	if len(termLists) == 0 {
		return nil
	}

	var queries []string
	seen := map[string]struct{}{}
	var build func(prefix []string, depth int)
	build = func(prefix []string, depth int) {
		if len(queries) >= maxCombinations {
			return
		}
		if depth == len(termLists) {
			if len(prefix) > 0 {
				joined := strings.Join(prefix, " ")
				deduped := textnorm.DedupeAdjacentTokens(joined)
				normalized := textnorm.Normalize(deduped)
				if _, ok := seen[normalized]; ok {
					return
				}
				seen[normalized] = struct{}{}
				queries = append(queries, deduped)
			}
			return
		}
		for _, term := range termLists[depth] {
			if len(queries) >= maxCombinations {
				return
			}
			build(append(prefix, term), depth+1)
		}
	}
	build(nil, 0)

	if len(queries) > maxCombinations {
		queries = queries[:maxCombinations]
	}
	return queries
}

// rankGroupTerms forms the candidate pool display_terms ∪ {name}, sorts it
// descending by word-count then ascending by length, forces the group's
// name into position 0 (it is the option tried first), and caps the result
// at maxTerms.
func rankGroupTerms(g ConceptGroup, maxTerms int) []string {
	source := g.DisplayTerms
	if len(source) == 0 {
		source = g.Terms
	}

	set := make(map[string]struct{}, len(source)+1)
	for t := range source {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	name := strings.TrimSpace(g.Name)
	if name != "" {
		set[name] = struct{}{}
	}

	rest := make([]string, 0, len(set))
	for t := range set {
		if t != name {
			rest = append(rest, t)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		wi, wj := len(strings.Fields(rest[i])), len(strings.Fields(rest[j]))
		if wi != wj {
			return wi > wj
		}
		if len(rest[i]) != len(rest[j]) {
			return len(rest[i]) < len(rest[j])
		}
		return rest[i] < rest[j]
	})

	out := make([]string, 0, len(set))
	if name != "" {
		out = append(out, name)
	}
	out = append(out, rest...)

	if len(out) > maxTerms {
		out = out[:maxTerms]
	}
	return out
}

func anyTermIn(terms map[string]struct{}, text string) bool {
	for t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func tokenize(normalizedQuery string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalizedQuery) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func extractPhrases(tokens []string) ([]string, map[int]bool) {
	var phrases []string
	consumed := map[int]bool{}
	for _, size := range []int{3, 2} {
		for i := 0; i+size <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+size], " ")
			if _, ok := synonyms.PhraseSynonyms[phrase]; ok {
				phrases = append(phrases, phrase)
				for k := i; k < i+size; k++ {
					consumed[k] = true
				}
			}
		}
	}
	return phrases, consumed
}

func expandPhraseSynonyms(phrase string) map[string]struct{} {
	expanded := map[string]struct{}{}
	for syn := range synonyms.PhraseSynonyms[phrase] {
		for p := range textnorm.Pluralize(syn) {
			expanded[p] = struct{}{}
		}
		expanded[syn] = struct{}{}
	}
	return expanded
}

func expandTokenSynonyms(token string) map[string]struct{} {
	words := map[string]struct{}{token: {}}
	for syn := range synonyms.TokenSynonyms[token] {
		words[syn] = struct{}{}
	}

	expanded := map[string]struct{}{}
	for w := range words {
		for p := range textnorm.Pluralize(w) {
			expanded[p] = struct{}{}
		}
		expanded[w] = struct{}{}
	}
	expanded[token] = struct{}{}
	return expanded
}

func normalizeSet(words map[string]struct{}) map[string]struct{} {
	out := map[string]struct{}{}
	for w := range words {
		if n := textnorm.Normalize(w); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ceilInt(v float64) int {
	return int(math.Ceil(v))
}

// sortedKeys returns the sorted keys of a string-set, used wherever the
// spec requires a deterministic/sorted output (e.g. Article.Concepts).
func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SortedConcepts is exported so the crawl controller can build
// Article.Concepts from a Result without reaching into package internals.
func SortedConcepts(r Result) []string {
	if len(r.MatchedConcepts) > 0 {
		return sortedKeys(r.MatchedConcepts)
	}
	return sortedKeys(r.MatchedTerms)
}
