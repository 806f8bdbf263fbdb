package demand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func testWindows(t *testing.T) timeslot.Windows {
	t.Helper()
	morning, err := timeslot.ParseWindow("07:30-12:00")
	require.NoError(t, err)
	afternoon, err := timeslot.ParseWindow("13:00-17:00")
	require.NoError(t, err)
	return timeslot.Windows{Morning: morning, Afternoon: afternoon}
}

func at(hhmm string) time.Time {
	parsed, _ := time.Parse("15:04", hhmm)
	return time.Date(2025, 3, 10, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func TestAggregate_FullDayRecordSplitsAcrossHalfDays(t *testing.T) {
	ws := testWindows(t)

	units := Aggregate(ws, []model.DemandRecord{
		{ID: "d1", Date: testDay, Start: at("07:30"), End: at("17:00"), Category: "ophthalmology", Quantity: 1, LinkedEntityID: "doc-1"},
	})

	require.Len(t, units, 2)
	assert.Equal(t, model.Morning, units[0].Slot.HalfDay)
	assert.InDelta(t, 1.0, units[0].Quantity, 1e-9)
	assert.Equal(t, 1, units[0].Capacity())
	assert.Equal(t, "doc-1", units[0].LinkedEntityID)

	assert.Equal(t, model.Afternoon, units[1].Slot.HalfDay)
	assert.InDelta(t, 1.0, units[1].Quantity, 1e-9)
}

func TestAggregate_FractionalSumsCeil(t *testing.T) {
	ws := testWindows(t)

	// Two half-quantity presences in the same morning merge into one unit
	// with capacity ceil(1.0) = 1; a third pushes it to ceil(1.5) = 2.
	records := []model.DemandRecord{
		{ID: "d1", Date: testDay, Start: at("07:30"), End: at("12:00"), Category: "retina", Quantity: 0.5, LinkedEntityID: "doc-1"},
		{ID: "d2", Date: testDay, Start: at("07:30"), End: at("12:00"), Category: "retina", Quantity: 0.5, LinkedEntityID: "doc-2"},
	}
	units := Aggregate(ws, records)
	require.Len(t, units, 1)
	assert.InDelta(t, 1.0, units[0].Quantity, 1e-9)
	assert.Equal(t, 1, units[0].Capacity())
	assert.Empty(t, units[0].LinkedEntityID, "merged units drop the entity link")

	records = append(records, model.DemandRecord{
		ID: "d3", Date: testDay, Start: at("07:30"), End: at("12:00"), Category: "retina", Quantity: 0.5,
	})
	units = Aggregate(ws, records)
	require.Len(t, units, 1)
	assert.InDelta(t, 1.5, units[0].Quantity, 1e-9)
	assert.Equal(t, 2, units[0].Capacity())
}

func TestAggregate_DistinctCategoriesNeverMerge(t *testing.T) {
	ws := testWindows(t)

	units := Aggregate(ws, []model.DemandRecord{
		{ID: "d1", Date: testDay, Start: at("07:30"), End: at("12:00"), Category: "retina", Quantity: 1},
		{ID: "d2", Date: testDay, Start: at("07:30"), End: at("12:00"), Category: "front-desk", Quantity: 1},
	})
	require.Len(t, units, 2)
	assert.Equal(t, "front-desk", units[0].Category)
	assert.Equal(t, "retina", units[1].Category)
}

func TestAggregate_ShortRecordProportional(t *testing.T) {
	ws := testWindows(t)

	// 40 minutes of a 240-minute afternoon passes the 30-minute threshold and
	// contributes quantity proportional to the overlap.
	units := Aggregate(ws, []model.DemandRecord{
		{ID: "d1", Date: testDay, Start: at("13:00"), End: at("13:40"), Category: "retina", Quantity: 1},
	})
	require.Len(t, units, 1)
	assert.InDelta(t, 40.0/240.0, units[0].Quantity, 1e-9)
	assert.Equal(t, 1, units[0].Capacity())
}

func TestAggregate_BelowThresholdIgnored(t *testing.T) {
	ws := testWindows(t)

	units := Aggregate(ws, []model.DemandRecord{
		{ID: "d1", Date: testDay, Start: at("13:00"), End: at("13:20"), Category: "retina", Quantity: 1},
	})
	assert.Empty(t, units)
}

func TestAggregate_Deterministic(t *testing.T) {
	ws := testWindows(t)
	records := []model.DemandRecord{
		{ID: "d1", Date: testDay, Start: at("07:30"), End: at("17:00"), Category: "retina", Quantity: 0.7},
		{ID: "d2", Date: testDay, Start: at("09:00"), End: at("12:00"), Category: "front-desk", Quantity: 1.2},
		{ID: "d3", Date: testDay.AddDate(0, 0, 1), Start: at("13:00"), End: at("17:00"), Category: "retina", Quantity: 1},
	}

	first := Aggregate(ws, records)
	second := Aggregate(ws, records)
	assert.Equal(t, first, second, "aggregation is a pure function of its input")
}

func TestTotalCapacity(t *testing.T) {
	units := []model.DemandUnit{
		{Quantity: 1.5},
		{Quantity: 2.0},
		{Quantity: 0},
	}
	assert.Equal(t, 4, TotalCapacity(units))
}

func TestCategoriesBySlot(t *testing.T) {
	slot := model.NewSlotKey(testDay, model.Morning)
	units := []model.DemandUnit{
		{Slot: slot, Category: "retina"},
		{Slot: slot, Category: "front-desk"},
		{Slot: model.NewSlotKey(testDay, model.Afternoon), Category: "retina"},
	}
	bySlot := CategoriesBySlot(units)
	assert.Equal(t, []string{"front-desk", "retina"}, bySlot[slot])
	assert.Len(t, bySlot, 2)
}
