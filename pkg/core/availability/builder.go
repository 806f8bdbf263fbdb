// Package availability turns raw worker shift records into per-half-day
// availability slots, filtered to the categories the worker can actually
// cover that half-day.
package availability

import (
	"sort"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
)

// BuildInput carries the raw data for one build.
type BuildInput struct {
	Workers []model.Worker
	Shifts  []model.ShiftRecord

	// DemandedCategories maps each half-day slot to the categories with
	// demand there (see demand.CategoriesBySlot). A worker's eligible
	// categories for a slot are their capability tags intersected with this.
	DemandedCategories map[model.SlotKey][]string
}

// Build produces one AvailabilitySlot per (worker, date, half-day) the worker
// covers with at least one hour of shift overlap. Workers with no demanded
// category in a slot get no slot there: they cannot be assigned anyway.
//
// Mirrors the demand aggregation: pure, deterministic, no hidden state.
func Build(ws timeslot.Windows, input BuildInput) []model.AvailabilitySlot {
	workers := make(map[string]model.Worker, len(input.Workers))
	for _, w := range input.Workers {
		workers[w.ID] = w
	}

	// A worker is available for a slot if any of their shift records covers
	// it at or above the availability threshold.
	covered := make(map[string]map[model.SlotKey]bool)
	for _, rec := range input.Shifts {
		if _, ok := workers[rec.WorkerID]; !ok {
			continue
		}
		for _, m := range timeslot.Memberships(ws, rec.Start, rec.End, timeslot.AvailabilityThresholdMinutes) {
			slot := model.NewSlotKey(rec.Date, m.HalfDay)
			if covered[rec.WorkerID] == nil {
				covered[rec.WorkerID] = make(map[model.SlotKey]bool)
			}
			covered[rec.WorkerID][slot] = true
		}
	}

	var out []model.AvailabilitySlot
	for workerID, slots := range covered {
		worker := workers[workerID]
		for slot := range slots {
			categories := eligibleCategories(worker, input.DemandedCategories[slot])
			if len(categories) == 0 {
				continue
			}
			out = append(out, model.AvailabilitySlot{
				WorkerID:   workerID,
				Slot:       slot,
				Categories: categories,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkerID != out[j].WorkerID {
			return out[i].WorkerID < out[j].WorkerID
		}
		if !out[i].Slot.Date.Equal(out[j].Slot.Date) {
			return out[i].Slot.Date.Before(out[j].Slot.Date)
		}
		return out[i].Slot.HalfDay < out[j].Slot.HalfDay
	})
	return out
}

// eligibleCategories intersects the worker's capability tags with the
// demanded categories, preserving the worker's declaration order.
func eligibleCategories(w model.Worker, demanded []string) []string {
	demandedSet := make(map[string]bool, len(demanded))
	for _, c := range demanded {
		demandedSet[c] = true
	}

	var out []string
	for _, tag := range w.CapabilityTags {
		if demandedSet[tag] {
			out = append(out, tag)
		}
	}
	return out
}
