package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/gartstein/efportfolio/internal/pkg/utils"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockRepository implements the Repository interface for testing
type MockRepository struct {
	listCompanies   func(context.Context) ([]models.Company, error)
	getCompany      func(context.Context, int64) (*models.Company, error)
	listFounders    func(context.Context, int64) ([]models.Founder, error)
	listAllFounders func(context.Context) ([]models.Founder, error)
	listCalls       int
}

func (m *MockRepository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	m.listCalls++
	return m.listCompanies(ctx)
}

func (m *MockRepository) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockRepository) ListFounders(ctx context.Context, companyID int64) ([]models.Founder, error) {
	return m.listFounders(ctx, companyID)
}

func (m *MockRepository) ListAllFounders(ctx context.Context) ([]models.Founder, error) {
	return m.listAllFounders(ctx)
}

// MockCache is an in-memory SnapshotCache.
type MockCache struct {
	companies   []models.Company
	warm        bool
	readErr     error
	writeErr    error
	invalidated int
}

func (m *MockCache) Companies(context.Context) ([]models.Company, bool, error) {
	return m.companies, m.warm, m.readErr
}

func (m *MockCache) SetCompanies(_ context.Context, c []models.Company) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.companies, m.warm = c, true
	return nil
}

func (m *MockCache) Invalidate(context.Context) error {
	m.companies, m.warm = nil, false
	m.invalidated++
	return nil
}

var acme = models.Company{ID: 1, Name: "Acme", Status: models.Active, FoundingYear: utils.Ptr(2015)}

func TestDirectoryService_ListCompanies(t *testing.T) {
	tests := []struct {
		name          string
		cache         *MockCache
		repoErr       error
		expectError   bool
		expectedCalls int
	}{
		{name: "cold cache reads repository", cache: &MockCache{}, expectedCalls: 1},
		{name: "warm cache skips repository", cache: &MockCache{companies: []models.Company{acme}, warm: true}, expectedCalls: 0},
		{name: "cache read error falls back", cache: &MockCache{readErr: errors.New("redis down")}, expectedCalls: 1},
		{name: "cache write error is ignored", cache: &MockCache{writeErr: errors.New("redis down")}, expectedCalls: 1},
		{name: "repository error", cache: &MockCache{}, repoErr: errors.New("db down"), expectError: true, expectedCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{
				listCompanies: func(context.Context) ([]models.Company, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return []models.Company{acme}, nil
				},
			}
			svc := NewDirectoryService(repo, tt.cache, zaptest.NewLogger(t))

			got, err := svc.ListCompanies(context.Background())

			assert.Equal(t, tt.expectedCalls, repo.listCalls)
			if tt.expectError {
				assert.ErrorIs(t, err, tt.repoErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []models.Company{acme}, got)
		})
	}
}

func TestDirectoryService_ListCompaniesPopulatesCache(t *testing.T) {
	repo := &MockRepository{
		listCompanies: func(context.Context) ([]models.Company, error) {
			return []models.Company{acme}, nil
		},
	}
	cache := &MockCache{}
	svc := NewDirectoryService(repo, cache, zaptest.NewLogger(t))

	_, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	_, err = svc.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	require.NoError(t, svc.InvalidateSnapshot(context.Background()))
	_, err = svc.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, 1, cache.invalidated)
}

func TestDirectoryService_CacheErrorsAreLogged(t *testing.T) {
	core, recorded := observer.New(zap.WarnLevel)
	repo := &MockRepository{
		listCompanies: func(context.Context) ([]models.Company, error) { return nil, nil },
	}
	svc := NewDirectoryService(repo, &MockCache{readErr: errors.New("boom")}, zap.New(core))

	_, err := svc.ListCompanies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, recorded.FilterMessage("Snapshot cache read failed").Len())
}

func TestDirectoryService_GetCompany(t *testing.T) {
	tests := []struct {
		name          string
		id            int64
		repoErr       error
		expectedError error
	}{
		{name: "found", id: 1},
		{name: "invalid id", id: 0, expectedError: e.ErrInvalidInput},
		{name: "not found", id: 9, repoErr: e.ErrNotFound, expectedError: e.ErrNotFound},
		{name: "repository error", id: 1, repoErr: errors.New("db"), expectedError: errors.New("db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{
				getCompany: func(_ context.Context, id int64) (*models.Company, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					c := acme
					c.ID = id
					return &c, nil
				},
			}
			svc := NewDirectoryService(repo, &MockCache{}, zaptest.NewLogger(t))

			got, err := svc.GetCompany(context.Background(), tt.id)

			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, e.ErrNotFound) || errors.Is(tt.expectedError, e.ErrInvalidInput) {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.Contains(t, err.Error(), "failed to get company")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
		})
	}
}

func TestDirectoryService_ListFounders(t *testing.T) {
	repo := &MockRepository{
		getCompany: func(_ context.Context, id int64) (*models.Company, error) {
			if id != 1 {
				return nil, e.ErrNotFound
			}
			return &acme, nil
		},
		listFounders: func(_ context.Context, companyID int64) ([]models.Founder, error) {
			return []models.Founder{{
				ID:        3,
				FirstName: "Ada",
				CompanyID: companyID,
				Education: []string{"MIT", "MIT"},
				Employers: []string{"Google", "Google", "CERN"},
			}}, nil
		},
	}
	svc := NewDirectoryService(repo, &MockCache{}, zaptest.NewLogger(t))

	founders, err := svc.ListFounders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, founders, 1)
	assert.Equal(t, []string{"MIT"}, founders[0].Education)
	assert.Equal(t, []string{"Google", "CERN"}, founders[0].Employers)

	_, err = svc.ListFounders(context.Background(), 2)
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = svc.LoadFounders(context.Background(), 2)
	assert.ErrorIs(t, err, e.ErrFounderLookup)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestDirectoryService_LoadCompaniesWrapsNetworkError(t *testing.T) {
	repo := &MockRepository{
		listCompanies: func(context.Context) ([]models.Company, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewDirectoryService(repo, &MockCache{}, zaptest.NewLogger(t))

	_, err := svc.LoadCompanies(context.Background())

	var netErr *e.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, e.ErrNetwork)
}

func TestDirectoryService_FounderStats(t *testing.T) {
	repo := &MockRepository{
		listAllFounders: func(context.Context) ([]models.Founder, error) {
			return []models.Founder{
				{FirstName: "A", EstimatedBirthYear: utils.Ptr(1994), Education: []string{"MIT", "MIT"}},
				{FirstName: "B", EstimatedBirthYear: utils.Ptr(1984), Education: []string{"MIT"}},
			}, nil
		},
	}
	svc := NewDirectoryService(repo, &MockCache{}, zaptest.NewLogger(t))

	stats, err := svc.FounderStats(context.Background(), 2024, 5)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Founders)
	assert.Equal(t, 30, stats.Ages.Youngest)
	assert.Equal(t, 40, stats.Ages.Oldest)
	require.Len(t, stats.Education, 1)
	assert.Equal(t, 2, stats.Education[0].Count, "repeated entries of one founder count once")
}
