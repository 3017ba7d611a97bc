// Package controller implements the read side of the portfolio directory:
// the company snapshot, single company lookup and per-company founders,
// fronted by an optional snapshot cache.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"go.uber.org/zap"
)

// Repository defines the storage reads the directory needs.
type Repository interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	ListFounders(ctx context.Context, companyID int64) ([]models.Founder, error)
	ListAllFounders(ctx context.Context) ([]models.Founder, error)
}

// SnapshotCache holds the serialized company list.
type SnapshotCache interface {
	Companies(ctx context.Context) ([]models.Company, bool, error)
	SetCompanies(ctx context.Context, companies []models.Company) error
	Invalidate(ctx context.Context) error
}

// DirectoryService serves companies and founders from the repository.
type DirectoryService struct {
	repo   Repository
	cache  SnapshotCache
	logger *zap.Logger
}

// NewDirectoryService constructs a DirectoryService. Cache errors are
// logged and treated as misses.
func NewDirectoryService(repo Repository, cache SnapshotCache, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("directory_service"),
	}
}

// ListCompanies returns the full company snapshot in store order.
func (s *DirectoryService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	cached, ok, err := s.cache.Companies(ctx)
	if err != nil {
		s.logger.Warn("Snapshot cache read failed", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if err := s.cache.SetCompanies(ctx, companies); err != nil {
		s.logger.Warn("Snapshot cache write failed", zap.Error(err))
	}
	return companies, nil
}

// GetCompany retrieves a Company by ID, returning an error if not found.
func (s *DirectoryService) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
	}
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListFounders returns the founders of an existing company with their
// education and employer lists deduplicated.
func (s *DirectoryService) ListFounders(ctx context.Context, companyID int64) ([]models.Founder, error) {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}
	founders, err := s.repo.ListFounders(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list founders: %w", err)
	}
	out := make([]models.Founder, 0, len(founders))
	for _, f := range founders {
		out = append(out, engine.DedupFounder(f))
	}
	return out, nil
}

// FounderStats summarizes every stored founder as of currentYear.
func (s *DirectoryService) FounderStats(ctx context.Context, currentYear, topN int) (engine.FounderStats, error) {
	founders, err := s.repo.ListAllFounders(ctx)
	if err != nil {
		return engine.FounderStats{}, fmt.Errorf("failed to list founders: %w", err)
	}
	for i := range founders {
		founders[i] = engine.DedupFounder(founders[i])
	}
	return engine.SummarizeFounders(founders, currentYear, topN), nil
}

// InvalidateSnapshot drops the cached company list.
func (s *DirectoryService) InvalidateSnapshot(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	s.logger.Info("Company snapshot invalidated")
	return nil
}

// LoadCompanies lets the browser read the directory in-process.
func (s *DirectoryService) LoadCompanies(ctx context.Context) ([]models.Company, error) {
	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return nil, &e.NetworkError{Err: err}
	}
	return companies, nil
}

// LoadFounders lets the browser read founders in-process.
func (s *DirectoryService) LoadFounders(ctx context.Context, companyID int64) ([]models.Founder, error) {
	founders, err := s.ListFounders(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: company %d: %w", e.ErrFounderLookup, companyID, err)
	}
	return founders, nil
}
