// Package engine holds the pure data-shaping logic of the browser:
// summary statistics, predicate filtering and stable column sorting over an
// in-memory company snapshot. Nothing here performs I/O or mutates input.
package engine

import (
	"sort"

	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

// Stats is the aggregate shown above the table.
type Stats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	Acquired   int `json:"acquired"`
	Industries int `json:"industries"`
	// YearsActive is max-min founding year. Zero when HasYears is false.
	YearsActive int  `json:"years_active"`
	HasYears    bool `json:"has_years"`
}

// Summarize computes Stats over the full collection.
func Summarize(companies []models.Company) Stats {
	stats := Stats{
		Total:      len(companies),
		Active:     countStatus(companies, models.Active),
		Inactive:   countStatus(companies, models.Inactive),
		Acquired:   countStatus(companies, models.Acquired),
		Industries: len(tagSet(companies)),
	}

	var minYear, maxYear int
	for _, c := range companies {
		if c.FoundingYear == nil {
			continue
		}
		year := *c.FoundingYear
		if !stats.HasYears {
			minYear, maxYear = year, year
			stats.HasYears = true
			continue
		}
		if year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}
	if stats.HasYears {
		stats.YearsActive = maxYear - minYear
	}
	return stats
}

func countStatus(companies []models.Company, status models.Status) int {
	n := 0
	for _, c := range companies {
		if c.Status == status {
			n++
		}
	}
	return n
}

func tagSet(companies []models.Company) map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range companies {
		for _, tag := range c.IndustryTags {
			set[tag] = struct{}{}
		}
	}
	return set
}

// Industries returns the distinct union of industry tags, sorted, for the
// industry filter options.
func Industries(companies []models.Company) []string {
	set := tagSet(companies)
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
