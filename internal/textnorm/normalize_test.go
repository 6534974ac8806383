package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mine Detection Dog!", "mine detection dog"},
		{"  multiple   spaces  ", "multiple spaces"},
		{"land-mine_detection", "land mine detection"},
		{"Déjà vu", "d j vu"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Mine Detection Dog!", "  a -- b__c  ", "already normal"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		base string
		want []string
	}{
		{"detect", []string{"detect", "detects", "detected", "detecting"}},
		{"class", []string{"class", "classes", "classed", "classing"}},
		{"baby", []string{"baby", "babies", "babyed", "babying"}},
		{"cat", nil}, // len < 4, returns only base
	}
	for _, tt := range tests {
		got := Pluralize(tt.base)
		if tt.want == nil {
			if len(got) != 1 {
				t.Errorf("Pluralize(%q) = %v, want only base", tt.base, got)
			}
			continue
		}
		for _, w := range tt.want {
			if _, ok := got[w]; !ok {
				t.Errorf("Pluralize(%q) missing %q, got %v", tt.base, w, got)
			}
		}
	}
}

func TestDedupeAdjacentTokens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dog dog training", "dog training"},
		{"Dog dog DOG training", "Dog training"},
		{"a b c", "a b c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DedupeAdjacentTokens(tt.in); got != tt.want {
			t.Errorf("DedupeAdjacentTokens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDedupeAdjacentTokensIdempotent(t *testing.T) {
	inputs := []string{"dog dog training dog", "a a a a b"}
	for _, in := range inputs {
		once := DedupeAdjacentTokens(in)
		twice := DedupeAdjacentTokens(once)
		if once != twice {
			t.Errorf("DedupeAdjacentTokens not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
