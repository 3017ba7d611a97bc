package engine

import (
	"sort"

	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

// DefaultTopN is how many institutions and employers the summary lists.
const DefaultTopN = 10

// AgeDistribution summarizes founder ages derived from estimated birth years.
type AgeDistribution struct {
	Youngest int     `json:"youngest"`
	Oldest   int     `json:"oldest"`
	Average  float64 `json:"average"`
	Median   int     `json:"median"`
	// Known is the number of founders with a birth year.
	Known int `json:"known"`
}

// Count is one entry of a frequency ranking.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FounderStats aggregates loaded founder records.
type FounderStats struct {
	Founders    int             `json:"founders"`
	Ages        AgeDistribution `json:"ages"`
	Education   []Count         `json:"education"`
	Employers   []Count         `json:"employers"`
	HasAgeRange bool            `json:"has_age_range"`
}

// SummarizeFounders aggregates founders as of currentYear, ranking the topN
// most frequent institutions and employers.
func SummarizeFounders(founders []models.Founder, currentYear, topN int) FounderStats {
	stats := FounderStats{Founders: len(founders)}

	ages := make([]int, 0, len(founders))
	for _, f := range founders {
		if f.EstimatedBirthYear != nil {
			ages = append(ages, currentYear-*f.EstimatedBirthYear)
		}
	}
	if len(ages) > 0 {
		sort.Ints(ages)
		sum := 0
		for _, a := range ages {
			sum += a
		}
		stats.HasAgeRange = true
		stats.Ages = AgeDistribution{
			Youngest: ages[0],
			Oldest:   ages[len(ages)-1],
			Average:  float64(sum) / float64(len(ages)),
			Median:   ages[len(ages)/2],
			Known:    len(ages),
		}
	}

	var education, employers []string
	for _, f := range founders {
		education = append(education, f.Education...)
		employers = append(employers, f.Employers...)
	}
	stats.Education = mostCommon(education, topN)
	stats.Employers = mostCommon(employers, topN)
	return stats
}

// mostCommon ranks values by frequency; ties keep first-appearance order.
func mostCommon(values []string, n int) []Count {
	index := make(map[string]int)
	counts := make([]Count, 0)
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Name: v, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// DedupStrings drops repeated values, keeping the first occurrence. A nil
// input yields an empty, non-nil slice.
func DedupStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DedupFounder returns a copy of f with education and employers collapsed.
func DedupFounder(f models.Founder) models.Founder {
	f.Education = DedupStrings(f.Education)
	f.Employers = DedupStrings(f.Employers)
	return f
}
