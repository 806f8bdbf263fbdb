// Package rooms assigns the clinic's small fixed set of operating rooms to
// concurrent procedures, one procedure per room per half-day. The resource
// count is tiny, so this is a deterministic ordered heuristic, not a solver
// formulation: configured multi-flow layouts first, then per-type preferred
// rooms, then any free room.
package rooms

import (
	"math/rand"
	"sort"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

// LayoutKey keys a configured multi-room layout: a procedure type running
// FlowCount concurrent flows.
type LayoutKey struct {
	ProcedureType string
	FlowCount     int
}

// Config is the room configuration snapshot.
type Config struct {
	// Rooms are the named physical rooms, in house order.
	Rooms []string

	// PreferredRoom maps a procedure type to its usual room.
	PreferredRoom map[string]string

	// Layouts maps (procedure type, flow count) to the exact rooms to use
	// when that many same-type procedures run concurrently. Flow counts of
	// 2 and 3 are configured in practice.
	Layouts map[LayoutKey][]string
}

// Allocation is one room booking.
type Allocation struct {
	ProcedureID string
	Slot        model.SlotKey
	Room        string
}

// Result carries the bookings and the procedures left without a room. A
// roomless procedure is a recoverable degraded state, reported rather
// than failed.
type Result struct {
	Allocations []Allocation
	Unassigned  []model.ProcedureRecord
}

// Allocate books rooms for the given procedures. Fallback ordering inside a
// half-day is first-come over the grouped procedures; ties between procedures
// sharing a preferred room are broken by shuffling each group with rng, since
// no fairness requirement exists between concurrent procedures.
func Allocate(cfg Config, procedures []model.ProcedureRecord, rng *rand.Rand) Result {
	// Group concurrent procedures by (date, half-day, type).
	type groupKey struct {
		slot model.SlotKey
		typ  string
	}
	groups := make(map[groupKey][]model.ProcedureRecord)
	for _, p := range procedures {
		key := groupKey{model.NewSlotKey(p.Date, p.HalfDay), p.Type}
		groups[key] = append(groups[key], p)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if !a.slot.Date.Equal(b.slot.Date) {
			return a.slot.Date.Before(b.slot.Date)
		}
		if a.slot.HalfDay != b.slot.HalfDay {
			return a.slot.HalfDay < b.slot.HalfDay
		}
		return a.typ < b.typ
	})

	// occupied tracks room bookings per half-day slot.
	occupied := make(map[model.SlotKey]map[string]bool)
	taken := func(slot model.SlotKey, room string) bool {
		return occupied[slot][room]
	}
	book := func(slot model.SlotKey, room string) {
		if occupied[slot] == nil {
			occupied[slot] = make(map[string]bool)
		}
		occupied[slot][room] = true
	}

	var res Result
	for _, key := range keys {
		group := groups[key]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		// Configured layout: applies only when every layout room is free.
		if layout, ok := cfg.Layouts[LayoutKey{key.typ, len(group)}]; ok {
			free := true
			for _, room := range layout {
				if taken(key.slot, room) {
					free = false
					break
				}
			}
			if free && len(layout) == len(group) {
				for i, p := range group {
					book(key.slot, layout[i])
					res.Allocations = append(res.Allocations, Allocation{ProcedureID: p.ID, Slot: key.slot, Room: layout[i]})
				}
				continue
			}
		}

		// Per-procedure fallback: preferred room first-come, then any free
		// room, else roomless.
		for _, p := range group {
			room := ""
			if preferred, ok := cfg.PreferredRoom[p.Type]; ok && !taken(key.slot, preferred) {
				room = preferred
			} else {
				for _, candidate := range cfg.Rooms {
					if !taken(key.slot, candidate) {
						room = candidate
						break
					}
				}
			}
			if room == "" {
				res.Unassigned = append(res.Unassigned, p)
				continue
			}
			book(key.slot, room)
			res.Allocations = append(res.Allocations, Allocation{ProcedureID: p.ID, Slot: key.slot, Room: room})
		}
	}
	return res
}
