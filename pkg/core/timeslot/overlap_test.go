package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

func testWindows(t *testing.T) Windows {
	t.Helper()
	morning, err := ParseWindow("07:30-12:00")
	require.NoError(t, err)
	afternoon, err := ParseWindow("13:00-17:00")
	require.NoError(t, err)
	return Windows{Morning: morning, Afternoon: afternoon}
}

func clock(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return time.Date(2025, 3, 10, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("07:30-12:00")
	require.NoError(t, err)
	assert.Equal(t, 450, w.StartMinute)
	assert.Equal(t, 720, w.EndMinute)
	assert.Equal(t, 270, w.Duration())

	_, err = ParseWindow("12:00-07:30")
	assert.Error(t, err)

	_, err = ParseWindow("not a window")
	assert.Error(t, err)
}

func TestMemberships_FullDayRange(t *testing.T) {
	ws := testWindows(t)

	// A range spanning both windows yields two independent memberships.
	ms := Memberships(ws, clock(t, "07:30"), clock(t, "17:00"), AvailabilityThresholdMinutes)
	require.Len(t, ms, 2)

	assert.Equal(t, model.Morning, ms[0].HalfDay)
	assert.Equal(t, 270, ms[0].OverlapMinutes)
	assert.InDelta(t, 1.0, ms[0].Proportion, 1e-9)

	assert.Equal(t, model.Afternoon, ms[1].HalfDay)
	assert.Equal(t, 240, ms[1].OverlapMinutes)
	assert.InDelta(t, 1.0, ms[1].Proportion, 1e-9)
}

func TestMemberships_BelowAvailabilityThreshold(t *testing.T) {
	ws := testWindows(t)

	// 45 minutes of the morning window: below the 1-hour availability
	// threshold, so no morning membership is produced.
	ms := Memberships(ws, clock(t, "11:15"), clock(t, "12:00"), AvailabilityThresholdMinutes)
	assert.Empty(t, ms)
}

func TestMemberships_DemandThresholdPasses(t *testing.T) {
	ws := testWindows(t)

	// 40 minutes of the afternoon window passes the 30-minute demand
	// threshold and contributes a proportional quantity.
	ms := Memberships(ws, clock(t, "13:00"), clock(t, "13:40"), DemandThresholdMinutes)
	require.Len(t, ms, 1)
	assert.Equal(t, model.Afternoon, ms[0].HalfDay)
	assert.Equal(t, 40, ms[0].OverlapMinutes)
	assert.InDelta(t, 40.0/240.0, ms[0].Proportion, 1e-9)
}

func TestMemberships_PartialBothWindows(t *testing.T) {
	ws := testWindows(t)

	ms := Memberships(ws, clock(t, "10:00"), clock(t, "15:00"), AvailabilityThresholdMinutes)
	require.Len(t, ms, 2)
	assert.Equal(t, 120, ms[0].OverlapMinutes) // 10:00-12:00
	assert.Equal(t, 120, ms[1].OverlapMinutes) // 13:00-15:00
}

func TestMemberships_LunchGapIgnored(t *testing.T) {
	ws := testWindows(t)

	// A range entirely inside the lunch gap touches neither window.
	ms := Memberships(ws, clock(t, "12:00"), clock(t, "13:00"), DemandThresholdMinutes)
	assert.Empty(t, ms)
}

func TestMemberships_InvertedRange(t *testing.T) {
	ws := testWindows(t)
	assert.Nil(t, Memberships(ws, clock(t, "15:00"), clock(t, "10:00"), DemandThresholdMinutes))
}

func TestCovers(t *testing.T) {
	ws := testWindows(t)

	assert.True(t, Covers(ws, clock(t, "07:30"), clock(t, "12:00"), model.Morning, AvailabilityThresholdMinutes))
	assert.False(t, Covers(ws, clock(t, "07:30"), clock(t, "12:00"), model.Afternoon, AvailabilityThresholdMinutes))
	assert.False(t, Covers(ws, clock(t, "11:15"), clock(t, "12:00"), model.Morning, AvailabilityThresholdMinutes))
}
