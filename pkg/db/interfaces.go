package db

import (
	"context"
	"time"
)

// PlanStore defines the database operations the assignment-planning services
// need: the read-only snapshot plus the output writes. All writes happen
// only after a solve completes.
type PlanStore interface {
	GetWorkers(ctx context.Context) ([]WorkerRow, error)
	GetDemandRecords(ctx context.Context, from, to time.Time) ([]DemandRow, error)
	GetShiftRecords(ctx context.Context, from, to time.Time) ([]ShiftRow, error)
	InsertAssignments(ctx context.Context, rows []AssignmentRow) error
	InsertRunStats(ctx context.Context, row RunStatsRow) error
}

// FloaterStore extends PlanStore with the existing schedule the floaters land
// on, and the removal of displaced occupants.
type FloaterStore interface {
	PlanStore
	GetAssignments(ctx context.Context, from, to time.Time, scenario string) ([]AssignmentRow, error)
	DeleteAssignments(ctx context.Context, ids []string) error
}

// ClosingStore defines the operations of the closing-responsibility service.
type ClosingStore interface {
	GetAssignments(ctx context.Context, from, to time.Time, scenario string) ([]AssignmentRow, error)
	GetClosingRoles(ctx context.Context, from, to time.Time) ([]ClosingRoleRow, error)
	InsertClosingRoles(ctx context.Context, rows []ClosingRoleRow) error
}

// TemplateStore defines the operations of the demand-template expansion
// service.
type TemplateStore interface {
	InsertDemandRecords(ctx context.Context, rows []DemandRow) error
}

// RoomStore defines the operations of the room-allocation service.
type RoomStore interface {
	GetProcedures(ctx context.Context, from, to time.Time) ([]ProcedureRow, error)
	InsertRoomAllocations(ctx context.Context, rows []RoomAllocationRow) error
}

// Database is the union of every store, implemented by the postgres layer
// and handed to the CLI commands.
type Database interface {
	PlanStore
	FloaterStore
	ClosingStore
	TemplateStore
	RoomStore
}
