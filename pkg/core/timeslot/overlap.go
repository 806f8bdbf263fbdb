package timeslot

import (
	"fmt"
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

// Window is one half-day scheduling window, expressed as minutes since
// midnight so that date and timezone noise cannot leak into the arithmetic.
type Window struct {
	StartMinute int
	EndMinute   int
}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	return w.EndMinute - w.StartMinute
}

// ParseWindow parses a "HH:MM-HH:MM" clock range into a Window.
func ParseWindow(s string) (Window, error) {
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(s, "%d:%d-%d:%d", &sh, &sm, &eh, &em); err != nil {
		return Window{}, fmt.Errorf("invalid window %q: %w", s, err)
	}
	w := Window{StartMinute: sh*60 + sm, EndMinute: eh*60 + em}
	if w.Duration() <= 0 {
		return Window{}, fmt.Errorf("invalid window %q: end not after start", s)
	}
	return w, nil
}

// Windows holds the two fixed half-day windows for a scheduling day.
type Windows struct {
	Morning   Window
	Afternoon Window
}

// Window returns the window for the given half-day.
func (ws Windows) Window(h model.HalfDay) Window {
	if h == model.Morning {
		return ws.Morning
	}
	return ws.Afternoon
}

// Overlap thresholds in minutes. A range below the threshold for a window is
// ignored for that window, so a short boundary meeting never creates phantom
// coverage or phantom availability.
const (
	AvailabilityThresholdMinutes = 60
	DemandThresholdMinutes       = 30
)

// Membership describes how much of one half-day window a time range covers.
type Membership struct {
	HalfDay model.HalfDay

	// OverlapMinutes is the raw overlap between the range and the window.
	OverlapMinutes int

	// Proportion is OverlapMinutes / window duration, in (0, 1].
	Proportion float64
}

// Memberships computes the half-day memberships of a [start, end) clock range
// against the configured windows, dropping any window whose overlap is below
// thresholdMinutes. A range spanning both windows yields two independent
// partial memberships.
func Memberships(ws Windows, start, end time.Time, thresholdMinutes int) []Membership {
	startMin := minuteOfDay(start)
	endMin := minuteOfDay(end)
	if endMin <= startMin {
		return nil
	}

	var out []Membership
	for _, h := range model.HalfDays {
		w := ws.Window(h)
		ov := overlapMinutes(startMin, endMin, w)
		if ov < thresholdMinutes {
			continue
		}
		out = append(out, Membership{
			HalfDay:        h,
			OverlapMinutes: ov,
			Proportion:     float64(ov) / float64(w.Duration()),
		})
	}
	return out
}

// Covers reports whether the range covers the given half-day at or above the
// threshold. Convenience wrapper used by the availability builder.
func Covers(ws Windows, start, end time.Time, h model.HalfDay, thresholdMinutes int) bool {
	for _, m := range Memberships(ws, start, end, thresholdMinutes) {
		if m.HalfDay == h {
			return true
		}
	}
	return false
}

func overlapMinutes(startMin, endMin int, w Window) int {
	lo := max(startMin, w.StartMinute)
	hi := min(endMin, w.EndMinute)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
