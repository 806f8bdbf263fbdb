package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
)

// GetWorkers retrieves the full worker roster.
func (s *Store) GetWorkers(ctx context.Context) ([]db.WorkerRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, capability_tags,
		       preferred_site, secondary_site, tertiary_site,
		       prefers_administrative, weekly_target_days
		FROM worker
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []db.WorkerRow
	for rows.Next() {
		var w db.WorkerRow
		if err := rows.Scan(
			&w.ID, &w.FirstName, &w.LastName, &w.CapabilityTags,
			&w.PreferredSite, &w.SecondarySite, &w.TertiarySite,
			&w.PrefersAdministrative, &w.WeeklyTargetDays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	return workers, nil
}

// GetDemandRecords retrieves the raw demand records whose date falls inside
// the half-open interval [from, to).
func (s *Store) GetDemandRecords(ctx context.Context, from, to time.Time) ([]db.DemandRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, record_date, start_time, end_time, category, linked_entity_id, quantity
		FROM demand_record
		WHERE record_date >= $1 AND record_date < $2
		ORDER BY record_date, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query demand records: %w", err)
	}
	defer rows.Close()

	var records []db.DemandRow
	for rows.Next() {
		var r db.DemandRow
		if err := rows.Scan(&r.ID, &r.Date, &r.StartTime, &r.EndTime, &r.Category, &r.LinkedEntityID, &r.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan demand record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating demand records: %w", err)
	}

	return records, nil
}

// InsertDemandRecords inserts demand record rows in a single transaction.
func (s *Store) InsertDemandRecords(ctx context.Context, records []db.DemandRow) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO demand_record (id, record_date, start_time, end_time, category, linked_entity_id, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.ID, r.Date, r.StartTime, r.EndTime, r.Category, r.LinkedEntityID, r.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert demand record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetShiftRecords retrieves the raw worker shift records whose date falls
// inside the half-open interval [from, to).
func (s *Store) GetShiftRecords(ctx context.Context, from, to time.Time) ([]db.ShiftRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, worker_id, record_date, start_time, end_time
		FROM shift_record
		WHERE record_date >= $1 AND record_date < $2
		ORDER BY record_date, worker_id, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift records: %w", err)
	}
	defer rows.Close()

	var records []db.ShiftRow
	for rows.Next() {
		var r db.ShiftRow
		if err := rows.Scan(&r.ID, &r.WorkerID, &r.Date, &r.StartTime, &r.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan shift record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift records: %w", err)
	}

	return records, nil
}

// GetProcedures retrieves the scheduled procedures whose date falls inside
// the half-open interval [from, to).
func (s *Store) GetProcedures(ctx context.Context, from, to time.Time) ([]db.ProcedureRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, record_date, half_day, procedure_type
		FROM procedure_record
		WHERE record_date >= $1 AND record_date < $2
		ORDER BY record_date, half_day, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query procedures: %w", err)
	}
	defer rows.Close()

	var procedures []db.ProcedureRow
	for rows.Next() {
		var p db.ProcedureRow
		if err := rows.Scan(&p.ID, &p.Date, &p.HalfDay, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan procedure: %w", err)
		}
		procedures = append(procedures, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating procedures: %w", err)
	}

	return procedures, nil
}
