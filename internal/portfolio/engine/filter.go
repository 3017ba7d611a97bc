package engine

import (
	"strings"

	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

// Predicates are the independently toggled table filters. Zero values are
// pass-through; active predicates are ANDed.
type Predicates struct {
	// Text matches case-insensitively against name and description.
	Text string
	// Status requires an exact status match.
	Status models.Status
	// Industry requires the tag to be present in IndustryTags.
	Industry string
}

// Active reports whether any predicate would exclude rows.
func (p Predicates) Active() bool {
	return strings.TrimSpace(p.Text) != "" || p.Status != "" || p.Industry != ""
}

// Filter returns the companies matching every active predicate, in input
// order. The input slice is never modified.
func Filter(companies []models.Company, p Predicates) []models.Company {
	out := make([]models.Company, 0, len(companies))
	if !p.Active() {
		return append(out, companies...)
	}

	needle := strings.ToLower(strings.TrimSpace(p.Text))
	for _, c := range companies {
		if needle != "" && !matchesText(c, needle) {
			continue
		}
		if p.Status != "" && c.Status != p.Status {
			continue
		}
		if p.Industry != "" && !c.HasTag(p.Industry) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matchesText checks the searchable fields: name, then description.
func matchesText(c models.Company, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	return c.Description != nil && strings.Contains(strings.ToLower(*c.Description), needle)
}
