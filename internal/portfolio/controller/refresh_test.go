package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestRefreshSnapshot(t *testing.T) {
	repo := &MockRepository{
		listCompanies: func(context.Context) ([]models.Company, error) {
			return []models.Company{acme}, nil
		},
	}
	cache := &MockCache{companies: []models.Company{}, warm: true}
	svc := NewDirectoryService(repo, cache, zaptest.NewLogger(t))

	require.NoError(t, svc.RefreshSnapshot(context.Background()))

	assert.Equal(t, 1, cache.invalidated)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, []models.Company{acme}, cache.companies)
}

func TestNewRefresher_InvalidSchedule(t *testing.T) {
	svc := NewDirectoryService(&MockRepository{}, &MockCache{}, zaptest.NewLogger(t))

	_, err := NewRefresher(svc, "every now and then", zaptest.NewLogger(t))

	assert.Error(t, err)
}

func TestRefresher_RunLogsFailure(t *testing.T) {
	core, recorded := observer.New(zap.ErrorLevel)
	repo := &MockRepository{
		listCompanies: func(context.Context) ([]models.Company, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewDirectoryService(repo, &MockCache{}, zaptest.NewLogger(t))
	r, err := NewRefresher(svc, "@every 1h", zap.New(core))
	require.NoError(t, err)

	r.run()
	r.Start()
	r.Stop()

	assert.Equal(t, 1, recorded.FilterMessage("Snapshot refresh failed").Len())
}
