// Package models defines the core domain models of the portfolio browser:
// Company, Founder and the closed Status enumeration.
package models

import (
	"encoding/json"
	"fmt"

	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
)

// Status is the lifecycle status of a company.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
	Acquired Status = "acquired"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{Active, Inactive, Acquired}

// ParseStatus converts a raw value into a Status. Anything outside the
// enumeration is a data error.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case Active, Inactive, Acquired:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", e.ErrInvalidStatus, raw)
	}
}

// Label returns the human readable badge text.
func (s Status) Label() string {
	switch s {
	case Active:
		return "Active"
	case Inactive:
		return "Inactive"
	case Acquired:
		return "Acquired"
	default:
		return string(s)
	}
}

// UnmarshalJSON rejects values outside the enumeration.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Company defines the domain model for a portfolio company. A loaded
// snapshot of companies is never mutated.
type Company struct {
	// ID is the store identifier.
	ID int64 `json:"id"`
	// Name is the company’s name.
	Name string `json:"name"`
	// WebsiteURL is the company's own site, if known.
	WebsiteURL *string `json:"website_url"`
	// EFWebsiteURL is the accelerator profile page. Always present.
	EFWebsiteURL string `json:"ef_website_url"`
	// Description is the short pitch shown in the table.
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	DemoVideo   *string `json:"demo_video"`
	// FoundingYear is nil when unknown.
	FoundingYear *int `json:"founding_year"`
	// IndustryTags keeps the stored order.
	IndustryTags []string `json:"industry_tags"`
	Status       Status   `json:"status"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// HasTag reports whether tag appears in the company's industry tags.
func (c *Company) HasTag(tag string) bool {
	for _, t := range c.IndustryTags {
		if t == tag {
			return true
		}
	}
	return false
}
