// Package qualis looks up the CAPES journal-quality grade for a venue
// name. It is a small static table rather than a live remote lookup: the
// spec treats this concern as a pure function the core consumes.
package qualis

import (
	"strings"

	"litcrawl/pkg/models"
)

// Port is the seam the crawl controller depends on for venue grading.
type Port interface {
	Lookup(venue string) models.Qualis
}

// Table is a static, case-insensitive venue-name-to-grade lookup.
type Table struct {
	grades map[string]models.Qualis
}

// NewTable builds a Table from a small set of known venues. Unknown venues
// normalize to models.QualisNF.
func NewTable() *Table {
	return &Table{grades: defaultGrades()}
}

// Lookup implements Port.
func (t *Table) Lookup(venue string) models.Qualis {
	key := normalize(venue)
	if key == "" {
		return models.QualisNF
	}
	if grade, ok := t.grades[key]; ok {
		return grade
	}
	return models.QualisNF
}

func normalize(venue string) string {
	return strings.ToLower(strings.TrimSpace(venue))
}

func defaultGrades() map[string]models.Qualis {
	return map[string]models.Qualis{
		"ieee transactions on pattern analysis and machine intelligence": models.QualisA1,
		"nature":                                            models.QualisA1,
		"science":                                           models.QualisA1,
		"journal of machine learning research":               models.QualisA1,
		"sensors":                                            models.QualisA2,
		"applied sciences":                                   models.QualisA2,
		"ieee access":                                        models.QualisA2,
		"plos one":                                           models.QualisB1,
		"animal cognition":                                   models.QualisA3,
		"applied animal behaviour science":                   models.QualisA2,
		"journal of veterinary behavior":                     models.QualisB1,
		"forensic science international":                     models.QualisA3,
		"robotics and autonomous systems":                    models.QualisA2,
		"arxiv":                                              models.QualisNP,
	}
}

var _ Port = (*Table)(nil)
