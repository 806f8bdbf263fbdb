package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/scenarios"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
)

// PlanCoverage solves ad-hoc site coverage for the week containing week and
// persists the assignments under the coverage scenario. Workers relocating
// between sites mid-day are reported, not forbidden.
func PlanCoverage(ctx context.Context, database db.PlanStore, logger *zap.Logger, ws timeslot.Windows, week time.Time, dryRun bool) (*scenarios.CoverageResult, error) {
	snap, err := loadSnapshot(ctx, database, logger, ws, week)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := scenarios.PlanCoverage(snap.input)
	observeSolveDuration(ScenarioCoverage, start)
	if err != nil {
		recordRunFailure(ScenarioCoverage)
		return nil, fmt.Errorf("failed to solve coverage schedule: %w", err)
	}

	logger.Info("Coverage schedule solved",
		zap.Float64("objective", result.Stats.Objective),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("relocations", len(result.Relocations)))

	for _, r := range result.Relocations {
		logger.Warn("Mid-day relocation",
			zap.String("worker_id", r.WorkerID),
			zap.Time("date", r.Date),
			zap.String("morning", r.MorningCategory),
			zap.String("afternoon", r.AfternoonCategory))
	}

	if err := persistPlan(ctx, database, logger, ScenarioCoverage, snap.from, &result.Result, dryRun); err != nil {
		return nil, err
	}

	return result, nil
}
