package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RefreshSnapshot drops the cached list and warms it from the repository.
func (s *DirectoryService) RefreshSnapshot(ctx context.Context) error {
	if err := s.InvalidateSnapshot(ctx); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("Company snapshot refreshed", zap.Int("companies", len(companies)))
	return nil
}

// Refresher rebuilds the snapshot on a cron schedule.
type Refresher struct {
	cron    *cron.Cron
	service *DirectoryService
	logger  *zap.Logger
	timeout time.Duration
}

// NewRefresher schedules RefreshSnapshot with a standard five field cron
// expression or a descriptor such as "@every 10m".
func NewRefresher(service *DirectoryService, schedule string, logger *zap.Logger) (*Refresher, error) {
	r := &Refresher{
		cron:    cron.New(),
		service: service,
		logger:  logger.Named("snapshot_refresher"),
		timeout: 30 * time.Second,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.service.RefreshSnapshot(ctx); err != nil {
		r.logger.Error("Snapshot refresh failed", zap.Error(err))
	}
}

func (r *Refresher) Start() {
	r.logger.Info("Snapshot refresher started")
	r.cron.Start()
}

// Stop waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
