package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanIndustryTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil", input: nil, expected: []string{}},
		{name: "canonical spellings", input: []string{"ai", "ML", "b2b", "B2C", "web3"}, expected: []string{"AI", "Machine Learning", "B2B", "B2C", "Web3"}},
		{name: "compound separators", input: []string{"Fintech or Insurtech", "Health & Wellness", "Climate, Energy", "Robotics Or Hardware", "SaaS/Cloud"},
			expected: []string{"Fintech", "Insurtech", "Health", "Wellness", "Climate", "Energy", "Robotics", "Hardware", "SaaS", "Cloud"}},
		{name: "enterprise variants", input: []string{"Enterprise Software", "enterprise solutions"}, expected: []string{"Enterprise"}},
		{name: "development", input: []string{"Software Development", "Developer Tools"}, expected: []string{"Developer Tools"}},
		{name: "ar vr xr expands", input: []string{"AR VR XR"}, expected: []string{"AR", "VR", "XR"}},
		{name: "science and bio", input: []string{"Environmental Science", "Biotechnology", "Financial services"}, expected: []string{"Environment", "Biotech", "Financial Services"}},
		{name: "duplicates and blanks", input: []string{" AI ", "AI/", "ai"}, expected: []string{"AI"}},
		{name: "unknown kept trimmed", input: []string{"  Deep Tech "}, expected: []string{"Deep Tech"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanIndustryTags(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "éé", truncate("ééé", 2), "cuts on runes")
	assert.Len(t, truncate(strings.Repeat("x", 3000), maxDescriptionLen), maxDescriptionLen)

	assert.Nil(t, truncatePtr(nil, 5))
	empty := ""
	assert.Nil(t, truncatePtr(&empty, 5))
}

func TestIdentityKey(t *testing.T) {
	assert.Equal(t, identityKey("Jean-Luc", "O'Neil", 3), identityKey("jean luc", "ONEIL", 3))
	assert.NotEqual(t, identityKey("Ada", "", 1), identityKey("Ada", "", 2))
	assert.NotEqual(t, identityKey("Ada", "", 11), identityKey("Ada1", "", 1))
}
