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

// PlanBase solves the recurring weekly schedule for the week containing week
// and persists the assignments under the base scenario.
func PlanBase(ctx context.Context, database db.PlanStore, logger *zap.Logger, ws timeslot.Windows, week time.Time, dryRun bool) (*scenarios.Result, error) {
	snap, err := loadSnapshot(ctx, database, logger, ws, week)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := scenarios.PlanBase(snap.input)
	observeSolveDuration(ScenarioBase, start)
	if err != nil {
		recordRunFailure(ScenarioBase)
		return nil, fmt.Errorf("failed to solve base schedule: %w", err)
	}

	logger.Info("Base schedule solved",
		zap.Float64("objective", result.Stats.Objective),
		zap.Int("assignments", len(result.Assignments)),
		zap.Float64("satisfaction_pct", result.Stats.SatisfactionPct),
		zap.Int("nodes_explored", result.Stats.NodesExplored))

	if err := persistPlan(ctx, database, logger, ScenarioBase, snap.from, result, dryRun); err != nil {
		return nil, err
	}

	return result, nil
}
