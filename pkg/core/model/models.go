package model

import "time"

// HalfDay is the atomic scheduling unit: one of the two fixed daily windows.
type HalfDay int

const (
	Morning HalfDay = iota
	Afternoon
)

// String returns a stable lowercase label, used in logs and map keys.
func (h HalfDay) String() string {
	if h == Morning {
		return "morning"
	}
	return "afternoon"
}

// HalfDays lists both windows in chronological order.
var HalfDays = []HalfDay{Morning, Afternoon}

// ClosingRole is the closing-responsibility role a worker holds at a site for
// one date. A worker holds exactly one role per (site, date) unit; modelling
// the role as a single enum (rather than independent booleans) makes holding
// two roles at once unrepresentable.
type ClosingRole int

const (
	RoleNone ClosingRole = iota
	RolePrimary
	RoleSecondary
	RoleTertiary
)

// String returns a stable label for logs and persisted records.
func (r ClosingRole) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	case RoleTertiary:
		return "tertiary"
	default:
		return "none"
	}
}

// BurdenWeight is the running-score contribution of a closing role this week.
// Primary is the lightest duty, tertiary the heaviest.
func (r ClosingRole) BurdenWeight() int {
	switch r {
	case RolePrimary:
		return 1
	case RoleSecondary:
		return 2
	case RoleTertiary:
		return 3
	default:
		return 0
	}
}

// IsClosing reports whether the role is the secondary or tertiary closing duty
// (the person who actually locks up, as opposed to the primary responsible).
func (r ClosingRole) IsClosing() bool {
	return r == RoleSecondary || r == RoleTertiary
}

// Worker represents a member of the interchangeable staff pool. Created and
// updated by external CRUD; read-only to the optimization core.
type Worker struct {
	ID string

	FirstName string
	LastName  string

	// CapabilityTags are the site/specialty/theatre-role categories this
	// worker is competent to cover, in declaration order.
	CapabilityTags []string

	// PreferredSite, SecondarySite and TertiarySite rank the worker's site
	// affinity. Empty strings mean no preference at that rank.
	PreferredSite string
	SecondarySite string
	TertiarySite  string

	// PrefersAdministrative marks workers who should gravitate toward
	// front-desk categories when the formulation allows a choice.
	PrefersAdministrative bool

	// WeeklyTargetDays is the flexible-hours quota (target working days per
	// week). Zero means the worker has a fixed recurring schedule and is not
	// placed by the floater scenario.
	WeeklyTargetDays int
}

// FullName returns "First Last" for logs and reports.
func (w Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}

// IsFloater reports whether the worker is placed by the flexible-floater
// scenario rather than the base schedule.
func (w Worker) IsFloater() bool {
	return w.WeeklyTargetDays > 0
}

// SitePreferenceRank returns 1/2/3 if the site appears in the worker's
// affinity ranking, 0 otherwise.
func (w Worker) SitePreferenceRank(site string) int {
	switch site {
	case "":
		return 0
	case w.PreferredSite:
		return 1
	case w.SecondarySite:
		return 2
	case w.TertiarySite:
		return 3
	}
	return 0
}

// HasCapability reports whether the worker carries the given category tag.
func (w Worker) HasCapability(tag string) bool {
	for _, t := range w.CapabilityTags {
		if t == tag {
			return true
		}
	}
	return false
}

// SlotKey identifies one (date, half-day) occupancy slot. Dates are truncated
// to midnight before keying so time-of-day noise never splits a slot.
type SlotKey struct {
	Date    time.Time
	HalfDay HalfDay
}

// NewSlotKey truncates the date to midnight and builds the key.
func NewSlotKey(date time.Time, half HalfDay) SlotKey {
	y, m, d := date.Date()
	return SlotKey{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), HalfDay: half}
}

// DemandUnit is an aggregated staffing requirement for one category in one
// half-day. Derived fresh on every run; never persisted independently.
type DemandUnit struct {
	Slot     SlotKey
	Category string

	// Quantity is the fractional demand sum (overlap-weighted). Capacity is
	// what the solver enforces: ceil(Quantity).
	Quantity float64

	// LinkedEntityID optionally ties the unit to a specific doctor or
	// procedure record.
	LinkedEntityID string
}

// Capacity returns the integer staffing level the solver may fill, the
// ceiling of the fractional quantity. Zero-quantity units have no capacity.
func (d DemandUnit) Capacity() int {
	if d.Quantity <= 0 {
		return 0
	}
	c := int(d.Quantity)
	if float64(c) < d.Quantity {
		c++
	}
	return c
}

// AvailabilitySlot records that a worker can be assigned in one half-day, and
// which demanded categories they are eligible for there.
type AvailabilitySlot struct {
	WorkerID   string
	Slot       SlotKey
	Categories []string
}

// EligibleFor reports whether the slot covers the given category.
func (a AvailabilitySlot) EligibleFor(category string) bool {
	for _, c := range a.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Assignment is the solver output: one worker covering one demand unit for
// one half-day. Closing roles attach to an existing full-day site assignment;
// they never create a second half-day occupancy.
type Assignment struct {
	ID       string
	WorkerID string
	Slot     SlotKey
	Category string

	LinkedEntityID string
	Role           ClosingRole
}

// BurdenScore accumulates a worker's weighted closing-role counts within one
// optimization week. Ephemeral: recomputed each run from that week's
// assignments.
type BurdenScore struct {
	WorkerID string

	PrimaryCount   int
	SecondaryCount int
	TertiaryCount  int
}

// Raw returns the unweighted-surcharge score: 1 per primary, 2 per secondary,
// 3 per tertiary.
func (b BurdenScore) Raw() int {
	return b.PrimaryCount + 2*b.SecondaryCount + 3*b.TertiaryCount
}

// ClosingCount returns how many secondary/tertiary duties the worker holds.
func (b BurdenScore) ClosingCount() int {
	return b.SecondaryCount + b.TertiaryCount
}

// TotalCount returns how many roles of any kind the worker holds.
func (b BurdenScore) TotalCount() int {
	return b.PrimaryCount + b.SecondaryCount + b.TertiaryCount
}

// Penalized returns the raw score plus overload surcharges: +10 once the
// worker holds two or more closing duties, +5 per role beyond the second of
// any kind. The surcharges break raw-score ties against concentration.
func (b BurdenScore) Penalized() int {
	score := b.Raw()
	if b.ClosingCount() >= 2 {
		score += 10
	}
	if extra := b.TotalCount() - 2; extra > 0 {
		score += 5 * extra
	}
	return score
}

// Add returns a copy of the score with one more role of the given kind.
// The receiver is unchanged, so candidate moves can be simulated on copies.
func (b BurdenScore) Add(role ClosingRole) BurdenScore {
	switch role {
	case RolePrimary:
		b.PrimaryCount++
	case RoleSecondary:
		b.SecondaryCount++
	case RoleTertiary:
		b.TertiaryCount++
	}
	return b
}

// Remove returns a copy of the score with one role of the given kind removed,
// floored at zero.
func (b BurdenScore) Remove(role ClosingRole) BurdenScore {
	switch role {
	case RolePrimary:
		if b.PrimaryCount > 0 {
			b.PrimaryCount--
		}
	case RoleSecondary:
		if b.SecondaryCount > 0 {
			b.SecondaryCount--
		}
	case RoleTertiary:
		if b.TertiaryCount > 0 {
			b.TertiaryCount--
		}
	}
	return b
}
