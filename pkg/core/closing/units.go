// Package closing assigns the closing-responsibility roles (primary,
// secondary/tertiary closer) among workers present a full day at sites that
// need end-of-day closure coverage, while minimizing cumulative unfairness
// over the week. Two phases: a scarcest-first greedy pass, then a bounded
// strictly-improving exchange search.
package closing

import (
	"sort"
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

// Unit is one (site, date) requiring closure coverage.
type Unit struct {
	Site string
	Date time.Time

	// Candidates are the workers assigned to the site for both half-days of
	// the date, sorted by id. Only they may hold a role here.
	Candidates []string

	// CloserRole is the duty the closer carries at this unit: RoleSecondary
	// normally, RoleTertiary when the site hosts the same doctor on two
	// consecutive closure days.
	CloserRole model.ClosingRole

	// Finalized units were decided in an earlier run. Their roles seed the
	// burden scores but the exchange search never touches them.
	Finalized bool

	// Primary and Closer are the assigned worker ids; empty until decided.
	Primary string
	Closer  string
}

// assigned reports whether the unit has both roles (or, degraded, a closer).
func (u *Unit) assigned() bool {
	return u.Closer != ""
}

// eligible reports whether the worker may hold a role at this unit.
func (u *Unit) eligible(workerID string) bool {
	for _, c := range u.Candidates {
		if c == workerID {
			return true
		}
	}
	return false
}

// BuildInput carries the data units are derived from.
type BuildInput struct {
	// Assignments is the week's schedule (closing roles not yet attached).
	Assignments []model.Assignment

	// ClosingSites are the site categories flagged as needing closure
	// coverage.
	ClosingSites []string

	// DoctorBySiteDate maps site -> date -> hosted doctor id, for the
	// tertiary escalation rule.
	DoctorBySiteDate map[string]map[time.Time]string
}

// BuildUnits derives the closure units for a week. The candidate pool of a
// unit is exactly the workers assigned to the site for both half-days of the
// date. The closer duty escalates to tertiary when the same doctor is hosted
// on the previous closure day of that site.
func BuildUnits(in BuildInput) []*Unit {
	closing := make(map[string]bool, len(in.ClosingSites))
	for _, s := range in.ClosingSites {
		closing[s] = true
	}

	// Count half-day presences per (site, date, worker).
	type presenceKey struct {
		site     string
		date     time.Time
		workerID string
	}
	presences := make(map[presenceKey]int)
	for _, a := range in.Assignments {
		if !closing[a.Category] {
			continue
		}
		presences[presenceKey{a.Category, a.Slot.Date, a.WorkerID}]++
	}

	pools := make(map[string]map[time.Time][]string)
	for key, n := range presences {
		if n < 2 {
			continue // full-day presence requires both half-days
		}
		if pools[key.site] == nil {
			pools[key.site] = make(map[time.Time][]string)
		}
		pools[key.site][key.date] = append(pools[key.site][key.date], key.workerID)
	}

	var units []*Unit
	for site, byDate := range pools {
		dates := make([]time.Time, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		for i, date := range dates {
			candidates := byDate[date]
			sort.Strings(candidates)
			units = append(units, &Unit{
				Site:       site,
				Date:       date,
				Candidates: candidates,
				CloserRole: closerRole(in.DoctorBySiteDate[site], dates, i),
			})
		}
	}

	sort.Slice(units, func(i, j int) bool {
		if !units[i].Date.Equal(units[j].Date) {
			return units[i].Date.Before(units[j].Date)
		}
		return units[i].Site < units[j].Site
	})
	return units
}

// closerRole escalates to tertiary when the same doctor is hosted on two
// consecutive closure days of the site.
func closerRole(doctorByDate map[time.Time]string, dates []time.Time, i int) model.ClosingRole {
	if doctorByDate == nil || i == 0 {
		return model.RoleSecondary
	}
	today := doctorByDate[dates[i]]
	previous := doctorByDate[dates[i-1]]
	if today != "" && today == previous && dates[i].Sub(dates[i-1]) <= 24*time.Hour {
		return model.RoleTertiary
	}
	return model.RoleSecondary
}
