package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
)

// GetAssignments retrieves assignments for one scenario whose date falls
// inside the half-open interval [from, to).
func (s *Store) GetAssignments(ctx context.Context, from, to time.Time, scenario string) ([]db.AssignmentRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, scenario, worker_id, assignment_date, half_day, category, linked_entity_id, role
		FROM assignment
		WHERE assignment_date >= $1 AND assignment_date < $2 AND scenario = $3
		ORDER BY assignment_date, half_day, worker_id
	`, from, to, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.AssignmentRow
	for rows.Next() {
		var a db.AssignmentRow
		if err := rows.Scan(&a.ID, &a.Scenario, &a.WorkerID, &a.Date, &a.HalfDay, &a.Category, &a.LinkedEntityID, &a.Role); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertAssignments inserts assignment rows in a single transaction.
func (s *Store) InsertAssignments(ctx context.Context, assignments []db.AssignmentRow) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, scenario, worker_id, assignment_date, half_day, category, linked_entity_id, role)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.Scenario, a.WorkerID, a.Date, a.HalfDay, a.Category, a.LinkedEntityID, a.Role)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteAssignments removes the assignments with the given IDs. Used when
// floater placement displaces an existing occupant.
func (s *Store) DeleteAssignments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `DELETE FROM assignment WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete assignment %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetClosingRoles retrieves the closing roles whose date falls inside the
// half-open interval [from, to).
func (s *Store) GetClosingRoles(ctx context.Context, from, to time.Time) ([]db.ClosingRoleRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, site, role_date, worker_id, role, finalized
		FROM closing_role
		WHERE role_date >= $1 AND role_date < $2
		ORDER BY role_date, site, role
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing roles: %w", err)
	}
	defer rows.Close()

	var roles []db.ClosingRoleRow
	for rows.Next() {
		var r db.ClosingRoleRow
		if err := rows.Scan(&r.ID, &r.Site, &r.Date, &r.WorkerID, &r.Role, &r.Finalized); err != nil {
			return nil, fmt.Errorf("failed to scan closing role: %w", err)
		}
		roles = append(roles, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating closing roles: %w", err)
	}

	return roles, nil
}

// InsertClosingRoles inserts closing role rows in a single transaction.
func (s *Store) InsertClosingRoles(ctx context.Context, roles []db.ClosingRoleRow) error {
	if len(roles) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range roles {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_role (id, site, role_date, worker_id, role, finalized)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.ID, r.Site, r.Date, r.WorkerID, r.Role, r.Finalized)
		if err != nil {
			return fmt.Errorf("failed to insert closing role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertRoomAllocations inserts room allocation rows in a single transaction.
func (s *Store) InsertRoomAllocations(ctx context.Context, allocations []db.RoomAllocationRow) error {
	if len(allocations) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO room_allocation (id, procedure_id, allocation_date, half_day, room)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.ProcedureID, a.Date, a.HalfDay, a.Room)
		if err != nil {
			return fmt.Errorf("failed to insert room allocation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertRunStats persists the statistics of one solver run.
func (s *Store) InsertRunStats(ctx context.Context, stats db.RunStatsRow) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO run_stats (id, scenario, week_start, objective, total_demand, total_satisfied, satisfaction_pct, feasible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, stats.ID, stats.Scenario, stats.WeekStart, stats.Objective, stats.TotalDemand, stats.TotalSatisfied, stats.SatisfactionPct, stats.Feasible)
	if err != nil {
		return fmt.Errorf("failed to insert run stats: %w", err)
	}

	return nil
}
