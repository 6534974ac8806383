package qualis

import (
	"testing"

	"litcrawl/pkg/models"
)

func TestLookupKnownVenueCaseInsensitive(t *testing.T) {
	table := NewTable()
	if got := table.Lookup("  Nature  "); got != models.QualisA1 {
		t.Errorf("expected QualisA1, got %v", got)
	}
	if got := table.Lookup("SENSORS"); got != models.QualisA2 {
		t.Errorf("expected QualisA2, got %v", got)
	}
}

func TestLookupUnknownVenueDefaultsToNF(t *testing.T) {
	table := NewTable()
	if got := table.Lookup("Some Obscure Venue Nobody Has Graded"); got != models.QualisNF {
		t.Errorf("expected QualisNF, got %v", got)
	}
	if got := table.Lookup(""); got != models.QualisNF {
		t.Errorf("expected QualisNF for empty venue, got %v", got)
	}
}
