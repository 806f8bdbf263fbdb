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

// PlanTheatre solves operating-theatre staffing for the week containing week
// and persists the assignments under the theatre scenario. Categories listed
// in frontDeskCategories are staffed at half reward so surgical roles win
// contested workers.
func PlanTheatre(ctx context.Context, database db.PlanStore, logger *zap.Logger, ws timeslot.Windows, frontDeskCategories []string, week time.Time, dryRun bool) (*scenarios.Result, error) {
	snap, err := loadSnapshot(ctx, database, logger, ws, week)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := scenarios.PlanTheatre(scenarios.TheatreInput{
		Input:               snap.input,
		FrontDeskCategories: frontDeskCategories,
	})
	observeSolveDuration(ScenarioTheatre, start)
	if err != nil {
		recordRunFailure(ScenarioTheatre)
		return nil, fmt.Errorf("failed to solve theatre schedule: %w", err)
	}

	logger.Info("Theatre schedule solved",
		zap.Float64("objective", result.Stats.Objective),
		zap.Int("assignments", len(result.Assignments)),
		zap.Float64("satisfaction_pct", result.Stats.SatisfactionPct))

	if err := persistPlan(ctx, database, logger, ScenarioTheatre, snap.from, result, dryRun); err != nil {
		return nil, err
	}

	return result, nil
}
