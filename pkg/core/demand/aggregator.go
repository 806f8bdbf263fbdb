// Package demand aggregates raw demand records into integer-capacity demand
// units, one per (date, half-day, category).
package demand

import (
	"sort"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
)

// unitKey keys the aggregation map. Distinct categories never merge.
type unitKey struct {
	slot     model.SlotKey
	category string
}

// Aggregate converts raw demand records into DemandUnits. Each record's
// required quantity is split across the half-day windows it covers,
// proportionally to the overlap, with overlaps under the 30-minute demand
// threshold dropped. Pure: identical input always yields identical output.
//
// The linked entity id is kept only while a unit has exactly one source
// record; once two records merge into the same unit the link is cleared,
// since the unit no longer describes a single presence.
func Aggregate(ws timeslot.Windows, records []model.DemandRecord) []model.DemandUnit {
	units := make(map[unitKey]*model.DemandUnit)

	for _, rec := range records {
		if rec.Quantity <= 0 {
			continue
		}
		for _, m := range timeslot.Memberships(ws, rec.Start, rec.End, timeslot.DemandThresholdMinutes) {
			key := unitKey{
				slot:     model.NewSlotKey(rec.Date, m.HalfDay),
				category: rec.Category,
			}
			unit, ok := units[key]
			if !ok {
				unit = &model.DemandUnit{
					Slot:           key.slot,
					Category:       rec.Category,
					LinkedEntityID: rec.LinkedEntityID,
				}
				units[key] = unit
			} else if unit.LinkedEntityID != rec.LinkedEntityID {
				unit.LinkedEntityID = ""
			}
			unit.Quantity += rec.Quantity * m.Proportion
		}
	}

	out := make([]model.DemandUnit, 0, len(units))
	for _, u := range units {
		out = append(out, *u)
	}

	// Deterministic order: date, half-day, category.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Slot.Date.Equal(out[j].Slot.Date) {
			return out[i].Slot.Date.Before(out[j].Slot.Date)
		}
		if out[i].Slot.HalfDay != out[j].Slot.HalfDay {
			return out[i].Slot.HalfDay < out[j].Slot.HalfDay
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TotalCapacity sums the integer capacities of the given units.
func TotalCapacity(units []model.DemandUnit) int {
	total := 0
	for _, u := range units {
		total += u.Capacity()
	}
	return total
}

// CategoriesBySlot indexes the demanded categories per half-day slot. The
// availability builder intersects worker capabilities against this.
func CategoriesBySlot(units []model.DemandUnit) map[model.SlotKey][]string {
	out := make(map[model.SlotKey][]string)
	for _, u := range units {
		out[u.Slot] = append(out[u.Slot], u.Category)
	}
	for _, cats := range out {
		sort.Strings(cats)
	}
	return out
}
