package db

import (
	"context"
	"errors"
	"fmt"

	dbmodels "github.com/gartstein/efportfolio/internal/portfolio/db/models"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the libpq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func NewRepository(cfg *Config) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewRepositoryFromDB(db)
}

// OpenSQLite opens a file (or ":memory:") SQLite store, used for local
// browsing and tests. A single connection keeps in-memory databases shared
// across queries.
func OpenSQLite(path string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return NewRepositoryFromDB(db)
}

// NewRepositoryFromDB wraps an open connection and migrates the schema.
func NewRepositoryFromDB(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&dbmodels.Company{}, &dbmodels.Founder{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: db}, nil
}

// ListCompanies returns the full company snapshot ordered by id.
func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var rows []dbmodels.Company
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Company, 0, len(rows))
	for i := range rows {
		c, err := companyToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repository) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	var row dbmodels.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	c, err := companyToDomain(&row)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListFounders is the per-company founder lookup:
// SELECT * FROM founders WHERE company_id = ?.
func (r *Repository) ListFounders(ctx context.Context, companyID int64) ([]models.Founder, error) {
	var rows []dbmodels.Founder
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return foundersToDomain(rows), nil
}

// ListAllFounders returns every founder ordered by id.
func (r *Repository) ListAllFounders(ctx context.Context) ([]models.Founder, error) {
	var rows []dbmodels.Founder
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return foundersToDomain(rows), nil
}

// UpsertCompany inserts a company or refreshes the scraped columns of the
// row with the same profile URL. Status is only set on insert so curated
// values survive re-imports. The stored id is written back to company.
func (r *Repository) UpsertCompany(ctx context.Context, company *models.Company) error {
	row := companyToRow(company)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ef_website_url"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "website_url", "description", "logo", "demo_video",
				"founding_year", "industry_tags", "updated_at",
			}),
		}).
		Create(row)
	if result.Error != nil {
		return result.Error
	}

	var stored dbmodels.Company
	err := r.db.WithContext(ctx).
		Select("id", "status").
		Where("ef_website_url = ?", row.EFWebsiteURL).
		First(&stored).Error
	if err != nil {
		return fmt.Errorf("failed to read back company: %w", err)
	}
	company.ID = stored.ID
	company.Status = models.Status(stored.Status)
	return nil
}

// UpsertFounder inserts a founder or refreshes the row sharing its
// first name, last name and company. The stored id is written back.
func (r *Repository) UpsertFounder(ctx context.Context, founder *models.Founder) error {
	row := founderToRow(founder)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "first_name"}, {Name: "last_name"}, {Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"linkedin_url", "estimated_birth_year", "education", "employers", "updated_at",
			}),
		}).
		Create(row)
	if result.Error != nil {
		return result.Error
	}

	var stored dbmodels.Founder
	err := r.db.WithContext(ctx).
		Select("id").
		Where("first_name = ? AND last_name = ? AND company_id = ?", row.FirstName, row.LastName, row.CompanyID).
		First(&stored).Error
	if err != nil {
		return fmt.Errorf("failed to read back founder: %w", err)
	}
	founder.ID = stored.ID
	return nil
}

func (r *Repository) DeleteFounder(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&dbmodels.Founder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) CountFounders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.Founder{}).Count(&count).Error
	return count, err
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
