package cron

import (
	"context"
	"fmt"

	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/logger"
	"github.com/lotmotors/resale-backend/pkg/metrics"
)

type YardInventoryJobParams struct {
	Logger     *logger.Logger
	Repository yardInventoryRepo
	Metrics    *metrics.LifecycleMetrics
}

type yardInventoryRepo interface {
	CountByStatus(ctx context.Context) (map[enums.VehicleStatus]int64, error)
}

// NewYardInventoryJob builds the job that snapshots the vehicle count per
// status into the inventory gauge. Statuses with no vehicles are reset to
// zero so stale gauge values do not linger after the last vehicle moves on.
func NewYardInventoryJob(params YardInventoryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	if params.Metrics == nil {
		return nil, fmt.Errorf("lifecycle metrics required")
	}
	return &yardInventoryJob{
		logg:    params.Logger,
		repo:    params.Repository,
		metrics: params.Metrics,
	}, nil
}

type yardInventoryJob struct {
	logg    *logger.Logger
	repo    yardInventoryRepo
	metrics *metrics.LifecycleMetrics
}

func (j *yardInventoryJob) Name() string { return "yard-inventory" }

func (j *yardInventoryJob) Run(ctx context.Context) error {
	counts, err := j.repo.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("yard inventory: %w", err)
	}
	var total int64
	for _, status := range enums.VehicleStatuses() {
		count := counts[status]
		j.metrics.SetStatusCount(status, count)
		total += count
	}
	logCtx := j.logg.WithField(ctx, "vehicle_count", total)
	j.logg.Info(logCtx, "yard inventory snapshot complete")
	return nil
}
