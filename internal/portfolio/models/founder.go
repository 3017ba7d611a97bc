package models

import "strings"

// Founder is a person associated with exactly one company.
type Founder struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    *string `json:"last_name"`
	LinkedInURL *string `json:"linkedin_url"`
	// EstimatedBirthYear feeds the age distribution, nil when unknown.
	EstimatedBirthYear *int     `json:"estimated_birth_year"`
	Education          []string `json:"education"`
	Employers          []string `json:"employers"`
	CompanyID          int64    `json:"company_id"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// FullName joins first and last name.
func (f *Founder) FullName() string {
	if f.LastName == nil || *f.LastName == "" {
		return f.FirstName
	}
	return strings.TrimSpace(f.FirstName + " " + *f.LastName)
}
