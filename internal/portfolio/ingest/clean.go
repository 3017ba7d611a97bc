// Package ingest loads scraped portfolio dumps into the store and keeps
// the founder table free of duplicates.
package ingest

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	maxNameLen        = 255
	maxURLLen         = 255
	maxDescriptionLen = 2000
)

var tagSeparators = strings.NewReplacer(" or ", "/", " & ", "/", ", ", "/", " Or ", "/")

// canonicalTags maps lowercased tag parts to their display form.
var canonicalTags = map[string][]string{
	"ai":                    {"AI"},
	"enterprise software":   {"Enterprise"},
	"enterprise solutions":  {"Enterprise"},
	"environmental science": {"Environment"},
	"biotechnology":         {"Biotech"},
	"web3":                  {"Web3"},
	"b2c":                   {"B2C"},
	"b2b":                   {"B2B"},
	"ar vr xr":              {"AR", "VR", "XR"},
	"ml":                    {"Machine Learning"},
	"financial services":    {"Financial Services"},
}

// CleanIndustryTags splits compound tags, canonicalizes known spellings
// and removes duplicates, keeping first-seen order. Empty parts are dropped.
func CleanIndustryTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	for _, tag := range tags {
		for _, part := range strings.Split(tagSeparators.Replace(tag), "/") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			lower := strings.ToLower(part)
			if canon, ok := canonicalTags[lower]; ok {
				for _, c := range canon {
					add(c)
				}
				continue
			}
			if strings.Contains(lower, "development") {
				add("Developer Tools")
				continue
			}
			add(part)
		}
	}
	return out
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// truncatePtr truncates and maps empty strings to nil.
func truncatePtr(s *string, n int) *string {
	if s == nil || *s == "" {
		return nil
	}
	t := truncate(*s, n)
	return &t
}

// identityKey is the lenient founder identity: lowercased letters and
// digits of both names plus the company id.
func identityKey(first, last string, companyID int64) string {
	var b strings.Builder
	for _, s := range []string{first, last} {
		for _, r := range s {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToLower(r))
			}
		}
	}
	b.WriteByte('#')
	b.WriteString(strconv.FormatInt(companyID, 10))
	return b.String()
}
