package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/closing"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/metrics"
)

// priorBurdenWindowDays is how far back prior closing roles are loaded to
// seed the burden scores of a new week.
const priorBurdenWindowDays = 28

// AssignClosings distributes the closing-responsibility roles for the week
// containing week, over the base scenario's schedule. Roles already persisted
// for the week are kept as-is and only seed the fairness scores; re-running
// the service after a schedule change re-optimizes the rest.
func AssignClosings(ctx context.Context, database db.ClosingStore, logger *zap.Logger, closingSites []string, week time.Time, dryRun bool) (*closing.Result, error) {
	from, to := weekRange(week)

	scheduleRows, err := database.GetAssignments(ctx, from, to, ScenarioBase)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	assignments := make([]model.Assignment, len(scheduleRows))
	for i, row := range scheduleRows {
		assignments[i] = row.ToModel()
	}

	priorFrom := from.AddDate(0, 0, -priorBurdenWindowDays)
	roleRows, err := database.GetClosingRoles(ctx, priorFrom, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch closing roles: %w", err)
	}

	units := closing.BuildUnits(closing.BuildInput{
		Assignments:      assignments,
		ClosingSites:     closingSites,
		DoctorBySiteDate: doctorBySiteDate(assignments, closingSites),
	})

	base := closing.ScoreTable{}
	decided := 0
	for _, row := range roleRows {
		role := parseClosingRole(row.Role)
		date := time.Date(row.Date.Year(), row.Date.Month(), row.Date.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(from) {
			// Prior weeks only seed the burden scores.
			base = base.Add(row.WorkerID, role)
			continue
		}
		// In-week roles pin their unit; derivedScores counts them from the
		// unit itself, so they must not also feed the base table.
		if unit := findUnit(units, row.Site, date); unit != nil {
			if role == model.RolePrimary {
				unit.Primary = row.WorkerID
			} else {
				unit.Closer = row.WorkerID
			}
			unit.Finalized = true
			decided++
		}
	}

	logger.Debug("Closure units built",
		zap.Int("units", len(units)),
		zap.Int("already_decided_roles", decided),
		zap.Int("prior_roles", len(roleRows)-decided))

	result := closing.Assign(units, base)

	metrics.ClosingUnitsUnassigned.Set(float64(len(result.Unassigned)))
	metrics.ClosingExchangeIterations.Set(float64(result.ExchangeIterations))

	logger.Info("Closing roles assigned",
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("unassigned_units", len(result.Unassigned)),
		zap.Int("fairness_metric", result.Metric),
		zap.Int("exchange_iterations", result.ExchangeIterations))

	for _, u := range result.Unassigned {
		logger.Warn("Closure unit left uncovered",
			zap.String("site", u.Site),
			zap.String("date", u.Date),
			zap.String("reason", u.Reason))
	}

	if dryRun {
		logger.Info("Dry run, skipping persistence")
		return result, nil
	}

	rows := newRoleRows(result.Assignments)
	if err := database.InsertClosingRoles(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to insert closing roles: %w", err)
	}

	return result, nil
}

// doctorBySiteDate extracts the hosted doctor per closure site and date from
// the schedule's linked entities.
func doctorBySiteDate(assignments []model.Assignment, closingSites []string) map[string]map[time.Time]string {
	closingSet := make(map[string]bool, len(closingSites))
	for _, s := range closingSites {
		closingSet[s] = true
	}

	out := make(map[string]map[time.Time]string)
	for _, a := range assignments {
		if a.LinkedEntityID == "" || !closingSet[a.Category] {
			continue
		}
		byDate := out[a.Category]
		if byDate == nil {
			byDate = make(map[time.Time]string)
			out[a.Category] = byDate
		}
		byDate[a.Slot.Date] = a.LinkedEntityID
	}
	return out
}

// findUnit locates the closure unit for one site and date, if any.
func findUnit(units []*closing.Unit, site string, date time.Time) *closing.Unit {
	for _, u := range units {
		if u.Site == site && u.Date.Equal(date) {
			return u
		}
	}
	return nil
}

// newRoleRows converts freshly decided roles to persisted rows. Units pinned
// by an earlier run never appear here, so nothing is written twice.
func newRoleRows(assignments []closing.RoleAssignment) []db.ClosingRoleRow {
	rows := make([]db.ClosingRoleRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, db.ClosingRoleRow{
			ID:       uuid.New().String(),
			Site:     a.Site,
			Date:     a.Date,
			WorkerID: a.WorkerID,
			Role:     a.Role.String(),
		})
	}
	return rows
}

// parseClosingRole maps a persisted role name back to the enum.
func parseClosingRole(s string) model.ClosingRole {
	switch s {
	case model.RolePrimary.String():
		return model.RolePrimary
	case model.RoleSecondary.String():
		return model.RoleSecondary
	case model.RoleTertiary.String():
		return model.RoleTertiary
	}
	return model.RoleNone
}
