package engine

import (
	"fmt"
	"sort"
	"strings"

	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

// Column is a sortable table column.
type Column string

const (
	ByNone         Column = ""
	ByName         Column = "name"
	ByStatus       Column = "status"
	ByFoundingYear Column = "founding_year"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the current table ordering. The zero value keeps insertion
// order.
type SortState struct {
	Column    Column
	Direction Direction
}

// ParseColumn validates a column name coming from user input.
func ParseColumn(raw string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ByName):
		return ByName, nil
	case string(ByStatus):
		return ByStatus, nil
	case string(ByFoundingYear), "year", "founded":
		return ByFoundingYear, nil
	default:
		return ByNone, fmt.Errorf("%w: unknown sort column %q", e.ErrInvalidInput, raw)
	}
}

// Toggle returns the next state for a header click on column: a new column
// starts ascending, the same column flips direction.
func (s SortState) Toggle(column Column) SortState {
	if s.Column == column && s.Direction != Desc {
		return SortState{Column: column, Direction: Desc}
	}
	return SortState{Column: column, Direction: Asc}
}

// Sort returns a stably sorted copy. Equal keys keep their relative input
// order in both directions, so descending is not a reversal of ascending.
// Companies without a founding year go last in both directions, so with
// distinct keys descending is the exact reverse of ascending only over the
// companies that have a year.
func Sort(companies []models.Company, s SortState) []models.Company {
	out := append(make([]models.Company, 0, len(companies)), companies...)
	if s.Column == ByNone {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], s)
	})
	return out
}

func less(a, b models.Company, s SortState) bool {
	var c int
	switch s.Column {
	case ByName:
		c = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case ByStatus:
		c = statusRank(a.Status) - statusRank(b.Status)
	case ByFoundingYear:
		if a.FoundingYear == nil {
			return false
		}
		if b.FoundingYear == nil {
			return true
		}
		c = *a.FoundingYear - *b.FoundingYear
	default:
		return false
	}
	if s.Direction == Desc {
		return c > 0
	}
	return c < 0
}

func statusRank(s models.Status) int {
	switch s {
	case models.Active:
		return 0
	case models.Inactive:
		return 1
	case models.Acquired:
		return 2
	default:
		return 3
	}
}

// Query bundles the filter and sort state of the table.
type Query struct {
	Predicates
	Sort SortState
}

// Apply filters then sorts.
func Apply(companies []models.Company, q Query) []models.Company {
	return Sort(Filter(companies, q.Predicates), q.Sort)
}
