package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gartstein/efportfolio/internal/portfolio/db"
	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/events"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"go.uber.org/zap"
)

// CompanyRecord is one company of a scraper dump.
type CompanyRecord struct {
	Name         string          `json:"name"`
	EFWebsiteURL string          `json:"ef_website_url"`
	WebsiteURL   *string         `json:"website_url"`
	Description  *string         `json:"description"`
	Logo         *string         `json:"logo"`
	DemoVideo    *string         `json:"demo_video"`
	FoundingYear *int            `json:"founding_year"`
	IndustryTags []string        `json:"industry_tags"`
	Status       string          `json:"status"`
	Founders     []FounderRecord `json:"founders"`
}

// FounderRecord is a founder nested under a CompanyRecord.
type FounderRecord struct {
	FirstName          string   `json:"first_name"`
	LastName           *string  `json:"last_name"`
	LinkedInURL        *string  `json:"linkedin_url"`
	EstimatedBirthYear *int     `json:"estimated_birth_year"`
	Education          []string `json:"education"`
	Employers          []string `json:"employers"`
}

// EventPublisher accepts change notifications without blocking.
type EventPublisher interface {
	Publish(event events.Event)
}

// SnapshotInvalidator drops the cached company list.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Store is the transactional store the importer writes to.
type Store interface {
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// ImportReport counts what an import wrote.
type ImportReport struct {
	Companies int
	Founders  int
	Skipped   int
}

// Importer upserts scraper dumps.
type Importer struct {
	store     Store
	publisher EventPublisher
	cache     SnapshotInvalidator
	logger    *zap.Logger
}

func NewImporter(store Store, publisher EventPublisher, cache SnapshotInvalidator, logger *zap.Logger) *Importer {
	return &Importer{
		store:     store,
		publisher: publisher,
		cache:     cache,
		logger:    logger.Named("importer"),
	}
}

// Import reads a JSON array of CompanyRecord from r and upserts every valid
// record in one transaction. Invalid records are skipped and counted.
// Events are published and the snapshot invalidated only after commit.
func (i *Importer) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	var records []CompanyRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return ImportReport{}, fmt.Errorf("%w: failed to decode dump: %v", e.ErrInvalidInput, err)
	}

	var report ImportReport
	var imported []models.Company
	err := i.store.WithTransaction(ctx, func(repo *db.Repository) error {
		report = ImportReport{}
		imported = imported[:0]
		for idx := range records {
			company, founders, err := normalize(&records[idx])
			if err != nil {
				i.logger.Warn("Skipping record", zap.Int("index", idx), zap.Error(err))
				report.Skipped++
				continue
			}
			if err := repo.UpsertCompany(ctx, &company); err != nil {
				return fmt.Errorf("failed to upsert company %q: %w", company.Name, err)
			}
			for j := range founders {
				founders[j].CompanyID = company.ID
				if err := repo.UpsertFounder(ctx, &founders[j]); err != nil {
					return fmt.Errorf("failed to upsert founder %q: %w", founders[j].FullName(), err)
				}
			}
			report.Companies++
			report.Founders += len(founders)
			imported = append(imported, company)
		}
		return nil
	})
	if err != nil {
		return ImportReport{}, err
	}

	for _, c := range imported {
		i.publisher.Publish(events.Event{Type: events.CompanyImported, CompanyID: c.ID, Name: c.Name})
	}
	if err := i.cache.Invalidate(ctx); err != nil {
		i.logger.Warn("Failed to invalidate snapshot", zap.Error(err))
	}
	i.logger.Info("Import finished",
		zap.Int("companies", report.Companies),
		zap.Int("founders", report.Founders),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

func normalize(rec *CompanyRecord) (models.Company, []models.Founder, error) {
	name := strings.TrimSpace(rec.Name)
	url := strings.TrimSpace(rec.EFWebsiteURL)
	if name == "" || url == "" {
		return models.Company{}, nil, fmt.Errorf("%w: name and ef_website_url are required", e.ErrInvalidInput)
	}
	company := models.Company{
		Name:         truncate(name, maxNameLen),
		EFWebsiteURL: truncate(url, maxURLLen),
		WebsiteURL:   truncatePtr(rec.WebsiteURL, maxURLLen),
		Description:  truncatePtr(rec.Description, maxDescriptionLen),
		Logo:         truncatePtr(rec.Logo, maxURLLen),
		DemoVideo:    truncatePtr(rec.DemoVideo, maxURLLen),
		FoundingYear: rec.FoundingYear,
		IndustryTags: CleanIndustryTags(rec.IndustryTags),
		Status:       models.Active,
	}
	if rec.Status != "" {
		status, err := models.ParseStatus(strings.ToLower(rec.Status))
		if err != nil {
			return models.Company{}, nil, err
		}
		company.Status = status
	}

	founders := make([]models.Founder, 0, len(rec.Founders))
	for _, f := range rec.Founders {
		first := strings.TrimSpace(f.FirstName)
		if first == "" {
			continue
		}
		founders = append(founders, engine.DedupFounder(models.Founder{
			FirstName:          truncate(first, maxNameLen),
			LastName:           truncatePtr(f.LastName, maxNameLen),
			LinkedInURL:        truncatePtr(f.LinkedInURL, maxURLLen),
			EstimatedBirthYear: f.EstimatedBirthYear,
			Education:          f.Education,
			Employers:          f.Employers,
		}))
	}
	return company, founders, nil
}
