package db

import (
	"fmt"
	"time"

	dbmodels "github.com/gartstein/efportfolio/internal/portfolio/db/models"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

func companyToDomain(row *dbmodels.Company) (models.Company, error) {
	status, err := models.ParseStatus(row.Status)
	if err != nil {
		return models.Company{}, fmt.Errorf("company %d: %w", row.ID, err)
	}
	tags := row.IndustryTags
	if tags == nil {
		tags = []string{}
	}
	return models.Company{
		ID:           row.ID,
		Name:         row.Name,
		WebsiteURL:   row.WebsiteURL,
		EFWebsiteURL: row.EFWebsiteURL,
		Description:  row.Description,
		Logo:         row.Logo,
		DemoVideo:    row.DemoVideo,
		FoundingYear: row.FoundingYear,
		IndustryTags: tags,
		Status:       status,
		CreatedAt:    formatTime(row.CreatedAt),
		UpdatedAt:    formatTime(row.UpdatedAt),
	}, nil
}

func companyToRow(c *models.Company) *dbmodels.Company {
	status := string(c.Status)
	if status == "" {
		status = string(models.Active)
	}
	return &dbmodels.Company{
		Name:         c.Name,
		EFWebsiteURL: c.EFWebsiteURL,
		WebsiteURL:   c.WebsiteURL,
		Description:  c.Description,
		Logo:         c.Logo,
		DemoVideo:    c.DemoVideo,
		FoundingYear: c.FoundingYear,
		IndustryTags: c.IndustryTags,
		Status:       status,
	}
}

func founderToDomain(row *dbmodels.Founder) models.Founder {
	f := models.Founder{
		ID:                 row.ID,
		FirstName:          row.FirstName,
		LinkedInURL:        row.LinkedInURL,
		EstimatedBirthYear: row.EstimatedBirthYear,
		Education:          row.Education,
		Employers:          row.Employers,
		CompanyID:          row.CompanyID,
		CreatedAt:          formatTime(row.CreatedAt),
		UpdatedAt:          formatTime(row.UpdatedAt),
	}
	if row.LastName != "" {
		last := row.LastName
		f.LastName = &last
	}
	if f.Education == nil {
		f.Education = []string{}
	}
	if f.Employers == nil {
		f.Employers = []string{}
	}
	return f
}

func foundersToDomain(rows []dbmodels.Founder) []models.Founder {
	out := make([]models.Founder, 0, len(rows))
	for i := range rows {
		out = append(out, founderToDomain(&rows[i]))
	}
	return out
}

func founderToRow(f *models.Founder) *dbmodels.Founder {
	row := &dbmodels.Founder{
		FirstName:          f.FirstName,
		LinkedInURL:        f.LinkedInURL,
		EstimatedBirthYear: f.EstimatedBirthYear,
		Education:          f.Education,
		Employers:          f.Employers,
		CompanyID:          f.CompanyID,
	}
	if f.LastName != nil {
		row.LastName = *f.LastName
	}
	return row
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
