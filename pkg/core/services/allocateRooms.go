package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/rooms"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/metrics"
)

// AllocateRooms books operating rooms for the week's procedures and persists
// the bookings. seed drives the tie-break shuffle, so a fixed seed makes the
// whole run reproducible.
func AllocateRooms(ctx context.Context, database db.RoomStore, logger *zap.Logger, cfg rooms.Config, week time.Time, seed int64, dryRun bool) (*rooms.Result, error) {
	from, to := weekRange(week)

	procedureRows, err := database.GetProcedures(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch procedures: %w", err)
	}

	procedures := make([]model.ProcedureRecord, len(procedureRows))
	for i, row := range procedureRows {
		procedures[i] = row.ToModel()
	}

	rng := rand.New(rand.NewSource(seed))
	result := rooms.Allocate(cfg, procedures, rng)

	metrics.RoomsUnassigned.Set(float64(len(result.Unassigned)))

	logger.Info("Rooms allocated",
		zap.Int("procedures", len(procedures)),
		zap.Int("allocations", len(result.Allocations)),
		zap.Int("unassigned", len(result.Unassigned)))

	for _, p := range result.Unassigned {
		logger.Warn("Procedure left without a room",
			zap.String("procedure_id", p.ID),
			zap.Time("date", p.Date),
			zap.String("half_day", p.HalfDay.String()),
			zap.String("type", p.Type))
	}

	if dryRun {
		logger.Info("Dry run, skipping persistence")
		return &result, nil
	}

	rows := make([]db.RoomAllocationRow, len(result.Allocations))
	for i, a := range result.Allocations {
		rows[i] = db.RoomAllocationRow{
			ID:          uuid.New().String(),
			ProcedureID: a.ProcedureID,
			Date:        a.Slot.Date,
			HalfDay:     a.Slot.HalfDay.String(),
			Room:        a.Room,
		}
	}
	if err := database.InsertRoomAllocations(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to insert room allocations: %w", err)
	}

	return &result, nil
}
