package engine

import (
	"testing"

	"github.com/gartstein/efportfolio/internal/pkg/utils"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"github.com/stretchr/testify/assert"
)

func TestDedupStrings(t *testing.T) {
	assert.Equal(t, []string{"MIT"}, DedupStrings([]string{"MIT", "MIT"}))
	assert.Equal(t, []string{"b", "a"}, DedupStrings([]string{"b", "a", "b"}))
	assert.NotNil(t, DedupStrings(nil))
	assert.Empty(t, DedupStrings(nil))
}

func TestDedupFounder(t *testing.T) {
	f := models.Founder{
		FirstName: "Ada",
		Education: []string{"MIT", "MIT"},
		Employers: []string{"Google", "CERN", "Google"},
	}

	got := DedupFounder(f)

	assert.Equal(t, []string{"MIT"}, got.Education)
	assert.Equal(t, []string{"Google", "CERN"}, got.Employers)
	assert.Len(t, f.Education, 2, "input founder untouched")
}

func TestSummarizeFounders(t *testing.T) {
	founders := []models.Founder{
		{FirstName: "A", EstimatedBirthYear: utils.Ptr(1990), Education: []string{"Oxford"}, Employers: []string{"McKinsey & Company"}},
		{FirstName: "B", EstimatedBirthYear: utils.Ptr(2000), Education: []string{"Cambridge", "Oxford"}},
		{FirstName: "C", EstimatedBirthYear: utils.Ptr(1972), Employers: []string{"Google", "McKinsey & Company"}},
		{FirstName: "D"},
	}

	stats := SummarizeFounders(founders, 2024, 1)

	assert.Equal(t, 4, stats.Founders)
	assert.True(t, stats.HasAgeRange)
	assert.Equal(t, 24, stats.Ages.Youngest)
	assert.Equal(t, 52, stats.Ages.Oldest)
	assert.Equal(t, 34, stats.Ages.Median)
	assert.InDelta(t, 36.666, stats.Ages.Average, 0.01)
	assert.Equal(t, 3, stats.Ages.Known)
	assert.Equal(t, []Count{{Name: "Oxford", Count: 2}}, stats.Education)
	assert.Equal(t, []Count{{Name: "McKinsey & Company", Count: 2}}, stats.Employers)
}

func TestSummarizeFounders_Empty(t *testing.T) {
	stats := SummarizeFounders(nil, 2024, DefaultTopN)

	assert.Equal(t, 0, stats.Founders)
	assert.False(t, stats.HasAgeRange)
	assert.Empty(t, stats.Education)
	assert.Empty(t, stats.Employers)
}

func TestMostCommon_TiesKeepFirstAppearance(t *testing.T) {
	got := mostCommon([]string{"UCL", "Bath", "Bath", "UCL", "Warwick"}, 3)

	assert.Equal(t, []Count{{"UCL", 2}, {"Bath", 2}, {"Warwick", 1}}, got)
}
