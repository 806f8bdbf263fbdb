// Package services orchestrates the scheduling runs: each service loads a
// weekly snapshot from the database, hands it to the relevant core package
// and persists the outcome. Services never mutate the snapshot they load.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/availability"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/demand"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/scenarios"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/metrics"
)

// Scenario names tag persisted assignments so concurrent runs write disjoint
// partitions.
const (
	ScenarioBase     = "base"
	ScenarioCoverage = "coverage"
	ScenarioTheatre  = "theatre"
	ScenarioFloaters = "floaters"
)

// WeekStart normalizes any date to the Monday of its week, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(normalized.Weekday()) + 6) % 7
	return normalized.AddDate(0, 0, -offset)
}

// weekRange returns the half-open [from, to) interval of the week containing t.
func weekRange(t time.Time) (time.Time, time.Time) {
	from := WeekStart(t)
	return from, from.AddDate(0, 0, 7)
}

// snapshot is the weekly planning input every assignment scenario starts from.
type snapshot struct {
	input scenarios.Input
	from  time.Time
	to    time.Time
}

// loadSnapshot fetches the week's roster, demand and shifts and derives the
// demand units and availability slots.
func loadSnapshot(ctx context.Context, database db.PlanStore, logger *zap.Logger, ws timeslot.Windows, week time.Time) (*snapshot, error) {
	from, to := weekRange(week)

	logger.Debug("Loading weekly snapshot",
		zap.Time("from", from),
		zap.Time("to", to))

	workerRows, err := database.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	demandRows, err := database.GetDemandRecords(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch demand records: %w", err)
	}

	shiftRows, err := database.GetShiftRecords(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift records: %w", err)
	}

	workers := make([]model.Worker, len(workerRows))
	for i, row := range workerRows {
		workers[i] = row.ToModel()
	}
	demandRecords := make([]model.DemandRecord, len(demandRows))
	for i, row := range demandRows {
		demandRecords[i] = row.ToModel()
	}
	shifts := make([]model.ShiftRecord, len(shiftRows))
	for i, row := range shiftRows {
		shifts[i] = row.ToModel()
	}

	units := demand.Aggregate(ws, demandRecords)
	slots := availability.Build(ws, availability.BuildInput{
		Workers:            workers,
		Shifts:             shifts,
		DemandedCategories: demand.CategoriesBySlot(units),
	})

	logger.Debug("Snapshot loaded",
		zap.Int("workers", len(workers)),
		zap.Int("demand_units", len(units)),
		zap.Int("availability_slots", len(slots)))

	return &snapshot{
		input: scenarios.Input{Units: units, Availability: slots, Workers: workers},
		from:  from,
		to:    to,
	}, nil
}

// assignmentRows converts scenario output to persisted rows, minting ids.
func assignmentRows(scenario string, assignments []model.Assignment) []db.AssignmentRow {
	rows := make([]db.AssignmentRow, len(assignments))
	for i, a := range assignments {
		rows[i] = db.AssignmentRow{
			ID:             uuid.New().String(),
			Scenario:       scenario,
			WorkerID:       a.WorkerID,
			Date:           a.Slot.Date,
			HalfDay:        a.Slot.HalfDay.String(),
			Category:       a.Category,
			LinkedEntityID: a.LinkedEntityID,
			Role:           a.Role.String(),
		}
	}
	return rows
}

// persistPlan writes the assignments and run statistics of one scenario run.
// Skipped entirely under dry-run.
func persistPlan(ctx context.Context, database db.PlanStore, logger *zap.Logger, scenario string, weekStart time.Time, result *scenarios.Result, dryRun bool) error {
	recordRunMetrics(scenario, result.Stats)

	if dryRun {
		logger.Info("Dry run, skipping persistence",
			zap.String("scenario", scenario),
			zap.Int("assignments", len(result.Assignments)))
		return nil
	}

	if err := database.InsertAssignments(ctx, assignmentRows(scenario, result.Assignments)); err != nil {
		return fmt.Errorf("failed to insert assignments: %w", err)
	}

	stats := db.RunStatsRow{
		ID:              uuid.New().String(),
		Scenario:        scenario,
		WeekStart:       weekStart,
		Objective:       result.Stats.Objective,
		TotalDemand:     result.Stats.TotalDemand,
		TotalSatisfied:  result.Stats.TotalSatisfied,
		SatisfactionPct: result.Stats.SatisfactionPct,
		Feasible:        result.Stats.Feasible,
	}
	if err := database.InsertRunStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to insert run stats: %w", err)
	}

	return nil
}

// recordRunMetrics publishes the run statistics of one solved scenario.
func recordRunMetrics(scenario string, stats scenarios.Stats) {
	metrics.SolveRunsTotal.WithLabelValues(scenario, "ok").Inc()
	metrics.SolveNodesExplored.WithLabelValues(scenario).Observe(float64(stats.NodesExplored))
	metrics.DemandCapacityTotal.WithLabelValues(scenario).Set(float64(stats.TotalDemand))
	metrics.DemandSatisfiedTotal.WithLabelValues(scenario).Set(float64(stats.TotalSatisfied))
}

// recordRunFailure publishes a failed scenario run.
func recordRunFailure(scenario string) {
	metrics.SolveRunsTotal.WithLabelValues(scenario, "error").Inc()
}

// observeSolveDuration times one scenario solve.
func observeSolveDuration(scenario string, start time.Time) {
	metrics.SolveDurationSeconds.WithLabelValues(scenario).Observe(time.Since(start).Seconds())
}
