package translate

import (
	"errors"
	"testing"
)

type fakeBackend struct {
	translations map[string]string
	calls        int
	err          error
}

func (f *fakeBackend) TranslateToEnglish(text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.translations[text], nil
}

func TestBuildVariantsWithNilBackendReturnsOriginalOnly(t *testing.T) {
	s := New(nil)
	got := s.BuildVariants("  chien détecteur  ")
	if len(got) != 1 || got[0] != "chien détecteur" {
		t.Errorf("expected only the trimmed original, got %v", got)
	}
}

func TestBuildVariantsAppendsTranslation(t *testing.T) {
	backend := &fakeBackend{translations: map[string]string{"chien détecteur": "detection dog"}}
	s := New(backend)

	got := s.BuildVariants("chien détecteur")
	if len(got) != 2 || got[0] != "chien détecteur" || got[1] != "detection dog" {
		t.Errorf("unexpected variants: %v", got)
	}
}

func TestBuildVariantsSkipsDuplicateTranslation(t *testing.T) {
	backend := &fakeBackend{translations: map[string]string{"dog": "dog"}}
	s := New(backend)

	got := s.BuildVariants("dog")
	if len(got) != 1 {
		t.Errorf("expected no duplicate variant when translation equals original, got %v", got)
	}
}

func TestBuildVariantsCachesSuccessfulTranslation(t *testing.T) {
	backend := &fakeBackend{translations: map[string]string{"chien": "dog"}}
	s := New(backend)

	s.BuildVariants("chien")
	s.BuildVariants("chien")

	if backend.calls != 1 {
		t.Errorf("expected backend to be called once due to caching, got %d calls", backend.calls)
	}
}

func TestBuildVariantsCachesFailureToAvoidRepeatedCalls(t *testing.T) {
	backend := &fakeBackend{err: errors.New("boom")}
	s := New(backend)

	first := s.BuildVariants("chien")
	second := s.BuildVariants("chien")

	if backend.calls != 1 {
		t.Errorf("expected backend to be called once despite failure, got %d calls", backend.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("expected original-only variants on failure, got %v and %v", first, second)
	}
}

func TestBuildVariantsEmptyTextReturnsNil(t *testing.T) {
	s := New(nil)
	if got := s.BuildVariants("   "); got != nil {
		t.Errorf("expected nil for blank input, got %v", got)
	}
}

func TestLRUCacheEvictsOldestEntry(t *testing.T) {
	cache := newLRUCache(2)
	cache.put("a", []string{"a"})
	cache.put("b", []string{"b"})
	cache.put("c", []string{"c"})

	if _, ok := cache.get("a"); ok {
		t.Error("expected \"a\" to have been evicted")
	}
	if _, ok := cache.get("b"); !ok {
		t.Error("expected \"b\" to still be cached")
	}
	if _, ok := cache.get("c"); !ok {
		t.Error("expected \"c\" to still be cached")
	}
	if cache.len() != 2 {
		t.Errorf("expected cache length 2, got %d", cache.len())
	}
}

func TestLRUCacheRecencyOnGet(t *testing.T) {
	cache := newLRUCache(2)
	cache.put("a", []string{"a"})
	cache.put("b", []string{"b"})
	cache.get("a")
	cache.put("c", []string{"c"})

	if _, ok := cache.get("b"); ok {
		t.Error("expected \"b\" to have been evicted after \"a\" was refreshed")
	}
	if _, ok := cache.get("a"); !ok {
		t.Error("expected \"a\" to still be cached after being refreshed")
	}
}
