package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geoattend/attendance-backend-go/internal/domain/door"
)

// DoorJobs holds the periodic door-unlock correlation backfill: recent
// daily records with a hardware check-in but no door_unlock_time yet get
// matched against the device's unlock audit trail.
type DoorJobs struct {
	doorService door.Service
	companyIDs  func(ctx context.Context) ([]string, error)
}

func NewDoorJobs(doorService door.Service, companyIDs func(ctx context.Context) ([]string, error)) *DoorJobs {
	return &DoorJobs{
		doorService: doorService,
		companyIDs:  companyIDs,
	}
}

// CorrelateDoorUnlocks runs one backfill sweep across all companies.
func (j *DoorJobs) CorrelateDoorUnlocks(ctx context.Context) error {
	ids, err := j.companyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies for door correlation: %w", err)
	}

	total := 0
	for _, companyID := range ids {
		n, err := j.doorService.CorrelateRecent(ctx, companyID)
		if err != nil {
			slog.Error("door correlation sweep failed", "company_id", companyID, "error", err)
			continue
		}
		total += n
	}

	if total > 0 {
		slog.Info("door correlation sweep finished", "records_updated", total)
	}
	return nil
}
