// Package models contains the persistence rows of the portfolio store,
// configured to work using GORM as the ORM. Array columns are stored as
// JSON so the same schema runs on PostgreSQL and SQLite.
package models

import (
	"time"
)

// Company is a row of the companies table.
type Company struct {
	ID           int64    `gorm:"primaryKey;autoIncrement"`
	Name         string   `gorm:"size:255;not null"`
	EFWebsiteURL string   `gorm:"size:255;not null;uniqueIndex"`
	WebsiteURL   *string  `gorm:"size:255"`
	Description  *string  `gorm:"size:2000"`
	Logo         *string  `gorm:"size:255"`
	DemoVideo    *string  `gorm:"size:255"`
	FoundingYear *int     `gorm:"index"`
	IndustryTags []string `gorm:"serializer:json"`
	Status       string   `gorm:"size:16;not null;default:active;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Founders     []Founder `gorm:"constraint:OnDelete:CASCADE"`
}

// Founder is a row of the founders table, many-to-one with Company.
type Founder struct {
	ID                 int64    `gorm:"primaryKey;autoIncrement"`
	FirstName          string   `gorm:"size:255;not null;uniqueIndex:idx_founder_identity"`
	// LastName is empty rather than NULL so the identity index can match.
	LastName           string   `gorm:"size:255;not null;default:'';uniqueIndex:idx_founder_identity"`
	LinkedInURL        *string  `gorm:"column:linkedin_url;size:255"`
	EstimatedBirthYear *int     `gorm:"column:estimated_birth_year"`
	Education          []string `gorm:"serializer:json"`
	Employers          []string `gorm:"serializer:json"`
	CompanyID          int64    `gorm:"not null;index;uniqueIndex:idx_founder_identity"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
