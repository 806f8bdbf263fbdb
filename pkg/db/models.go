package db

import (
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

// WorkerRow is the persisted worker roster entry.
type WorkerRow struct {
	ID                    string
	FirstName             string
	LastName              string
	CapabilityTags        []string
	PreferredSite         string
	SecondarySite         string
	TertiarySite          string
	PrefersAdministrative bool
	WeeklyTargetDays      int
}

// ToModel converts the row to the core domain type.
func (r WorkerRow) ToModel() model.Worker {
	return model.Worker{
		ID:                    r.ID,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		CapabilityTags:        r.CapabilityTags,
		PreferredSite:         r.PreferredSite,
		SecondarySite:         r.SecondarySite,
		TertiarySite:          r.TertiarySite,
		PrefersAdministrative: r.PrefersAdministrative,
		WeeklyTargetDays:      r.WeeklyTargetDays,
	}
}

// DemandRow is one persisted raw demand record.
type DemandRow struct {
	ID             string
	Date           time.Time
	StartTime      time.Time
	EndTime        time.Time
	Category       string
	LinkedEntityID string
	Quantity       float64
}

// ToModel converts the row to the core domain type.
func (r DemandRow) ToModel() model.DemandRecord {
	return model.DemandRecord{
		ID:             r.ID,
		Date:           r.Date,
		Start:          r.StartTime,
		End:            r.EndTime,
		Category:       r.Category,
		LinkedEntityID: r.LinkedEntityID,
		Quantity:       r.Quantity,
	}
}

// ShiftRow is one persisted raw worker shift record.
type ShiftRow struct {
	ID        string
	WorkerID  string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// ToModel converts the row to the core domain type.
func (r ShiftRow) ToModel() model.ShiftRecord {
	return model.ShiftRecord{
		ID:       r.ID,
		WorkerID: r.WorkerID,
		Date:     r.Date,
		Start:    r.StartTime,
		End:      r.EndTime,
	}
}

// ProcedureRow is one persisted scheduled procedure.
type ProcedureRow struct {
	ID      string
	Date    time.Time
	HalfDay string
	Type    string
}

// ToModel converts the row to the core domain type.
func (r ProcedureRow) ToModel() model.ProcedureRecord {
	half := model.Morning
	if r.HalfDay == model.Afternoon.String() {
		half = model.Afternoon
	}
	return model.ProcedureRecord{ID: r.ID, Date: r.Date, HalfDay: half, Type: r.Type}
}

// AssignmentRow is one persisted assignment, tagged with the scenario that
// produced it so concurrent scenario runs write disjoint partitions.
type AssignmentRow struct {
	ID             string
	Scenario       string
	WorkerID       string
	Date           time.Time
	HalfDay        string
	Category       string
	LinkedEntityID string
	Role           string
}

// ToModel converts the row to the core domain type.
func (r AssignmentRow) ToModel() model.Assignment {
	half := model.Morning
	if r.HalfDay == model.Afternoon.String() {
		half = model.Afternoon
	}
	role := model.RoleNone
	switch r.Role {
	case model.RolePrimary.String():
		role = model.RolePrimary
	case model.RoleSecondary.String():
		role = model.RoleSecondary
	case model.RoleTertiary.String():
		role = model.RoleTertiary
	}
	return model.Assignment{
		ID:             r.ID,
		WorkerID:       r.WorkerID,
		Slot:           model.NewSlotKey(r.Date, half),
		Category:       r.Category,
		LinkedEntityID: r.LinkedEntityID,
		Role:           role,
	}
}

// ClosingRoleRow is one persisted closing-responsibility role.
type ClosingRoleRow struct {
	ID        string
	Site      string
	Date      time.Time
	WorkerID  string
	Role      string
	Finalized bool
}

// RoomAllocationRow is one persisted room booking.
type RoomAllocationRow struct {
	ID          string
	ProcedureID string
	Date        time.Time
	HalfDay     string
	Room        string
}

// RunStatsRow is the persisted per-run solver statistics record.
type RunStatsRow struct {
	ID              string
	Scenario        string
	WeekStart       time.Time
	Objective       float64
	TotalDemand     int
	TotalSatisfied  int
	SatisfactionPct float64
	Feasible        bool
	CreatedAt       time.Time
}
