package model

import "time"

// DemandRecord is one raw demand row: a professional's scheduled presence on
// one date that needs support staff of a given category. Supplied by the
// persistence layer or expanded from recurring templates; never mutated by
// the core.
type DemandRecord struct {
	ID       string
	Date     time.Time
	Start    time.Time
	End      time.Time
	Category string

	// LinkedEntityID ties the record to the doctor or procedure behind it.
	LinkedEntityID string

	// Quantity is the required-support headcount for this presence, possibly
	// fractional (e.g. 0.5 when two doctors share an assistant).
	Quantity float64
}

// ShiftRecord is one raw worker shift row: the worker's planned presence on
// one date. A worker may have several records per date (split shifts).
type ShiftRecord struct {
	ID       string
	WorkerID string
	Date     time.Time
	Start    time.Time
	End      time.Time
}

// ProcedureRecord is one scheduled procedure needing a room.
type ProcedureRecord struct {
	ID      string
	Date    time.Time
	HalfDay HalfDay

	// Type is the procedure type, keyed against room preferences and
	// multi-flow layouts.
	Type string
}
