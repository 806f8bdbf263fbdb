package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/scenarios"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
)

// PlaceFloaters places flexible-quota workers into the week's base schedule
// and persists their placements under the floaters scenario. Base occupants
// displaced by a more valuable placement are deleted from the base scenario.
func PlaceFloaters(ctx context.Context, database db.FloaterStore, logger *zap.Logger, ws timeslot.Windows, week time.Time, dryRun bool) (*scenarios.FloaterResult, error) {
	snap, err := loadSnapshot(ctx, database, logger, ws, week)
	if err != nil {
		return nil, err
	}

	existingRows, err := database.GetAssignments(ctx, snap.from, snap.to, ScenarioBase)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing assignments: %w", err)
	}

	existing := make([]model.Assignment, len(existingRows))
	for i, row := range existingRows {
		existing[i] = row.ToModel()
	}

	start := time.Now()
	result, err := scenarios.PlanFloaters(scenarios.FloaterInput{
		Input:    snap.input,
		Existing: existing,
	})
	observeSolveDuration(ScenarioFloaters, start)
	if err != nil {
		recordRunFailure(ScenarioFloaters)
		return nil, fmt.Errorf("failed to solve floater placement: %w", err)
	}

	logger.Info("Floaters placed",
		zap.Float64("objective", result.Stats.Objective),
		zap.Int("placements", len(result.Assignments)),
		zap.Int("displaced", len(result.Displaced)))

	for _, d := range result.Displaced {
		logger.Warn("Occupant displaced by floater",
			zap.String("worker_id", d.WorkerID),
			zap.Time("date", d.Slot.Date),
			zap.String("half_day", d.Slot.HalfDay.String()),
			zap.String("category", d.Category))
	}

	if err := persistPlan(ctx, database, logger, ScenarioFloaters, snap.from, &result.Result, dryRun); err != nil {
		return nil, err
	}

	if !dryRun {
		ids := displacedRowIDs(existingRows, result.Displaced)
		if err := database.DeleteAssignments(ctx, ids); err != nil {
			return nil, fmt.Errorf("failed to delete displaced assignments: %w", err)
		}
	}

	return result, nil
}

// displacedRowIDs maps displacement reports back to the persisted rows they
// bump, by (worker, slot, category).
func displacedRowIDs(rows []db.AssignmentRow, displaced []scenarios.Displacement) []string {
	type occupantKey struct {
		workerID string
		slot     model.SlotKey
		category string
	}
	byKey := make(map[occupantKey][]string)
	for _, row := range rows {
		a := row.ToModel()
		key := occupantKey{a.WorkerID, a.Slot, a.Category}
		byKey[key] = append(byKey[key], row.ID)
	}

	var ids []string
	for _, d := range displaced {
		key := occupantKey{d.WorkerID, d.Slot, d.Category}
		if rowIDs := byKey[key]; len(rowIDs) > 0 {
			ids = append(ids, rowIDs[0])
			byKey[key] = rowIDs[1:]
		}
	}
	return ids
}
