package ingest

import (
	"context"
	"fmt"

	"github.com/gartstein/efportfolio/internal/pkg/utils"
	"github.com/gartstein/efportfolio/internal/portfolio/events"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"go.uber.org/zap"
)

// FounderStore is what the deduplicator reads and deletes.
type FounderStore interface {
	ListAllFounders(ctx context.Context) ([]models.Founder, error)
	DeleteFounder(ctx context.Context, id int64) error
	CountFounders(ctx context.Context) (int64, error)
}

// DedupReport summarizes a deduplication run.
type DedupReport struct {
	Initial    int
	Duplicates int
	Deleted    int
	Final      int64
}

// Deduplicator removes founders that share a lenient identity within one
// company, keeping the lowest id.
type Deduplicator struct {
	store     FounderStore
	publisher EventPublisher
	logger    *zap.Logger
	dryRun    bool
}

func NewDeduplicator(store FounderStore, publisher EventPublisher, logger *zap.Logger, dryRun bool) *Deduplicator {
	return &Deduplicator{
		store:     store,
		publisher: publisher,
		logger:    logger.Named("deduplicator"),
		dryRun:    dryRun,
	}
}

// Run scans every founder once. A failed delete is logged and the scan
// continues.
func (d *Deduplicator) Run(ctx context.Context) (DedupReport, error) {
	founders, err := d.store.ListAllFounders(ctx)
	if err != nil {
		return DedupReport{}, fmt.Errorf("failed to list founders: %w", err)
	}
	report := DedupReport{Initial: len(founders)}

	kept := make(map[string]models.Founder, len(founders))
	for _, f := range founders {
		key := identityKey(f.FirstName, utils.Deref(f.LastName), f.CompanyID)
		existing, ok := kept[key]
		if !ok {
			kept[key] = f
			continue
		}

		report.Duplicates++
		remove := f
		if f.ID < existing.ID {
			kept[key] = f
			remove = existing
		}
		d.logger.Info("Duplicate founder",
			zap.Int64("kept_id", kept[key].ID),
			zap.Int64("removed_id", remove.ID),
			zap.Int64("company_id", f.CompanyID),
			zap.String("name", f.FullName()),
		)
		if d.dryRun {
			continue
		}
		if err := d.store.DeleteFounder(ctx, remove.ID); err != nil {
			d.logger.Error("Failed to delete founder", zap.Int64("founder_id", remove.ID), zap.Error(err))
			continue
		}
		report.Deleted++
		d.publisher.Publish(events.Event{Type: events.FounderRemoved, CompanyID: remove.CompanyID, FounderID: remove.ID})
	}

	final, err := d.store.CountFounders(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to count founders: %w", err)
	}
	report.Final = final
	return report, nil
}
