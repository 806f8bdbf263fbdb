package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
)

// DemandTemplate is one recurring demand rule: every occurrence of the rrule
// inside the target week yields a demand record with the given category,
// clock window and quantity.
type DemandTemplate struct {
	RRule    string
	Category string
	Window   string
	Quantity float64
}

// SeedDemand expands the recurring demand templates over the week containing
// week and persists the generated records.
func SeedDemand(ctx context.Context, database db.TemplateStore, logger *zap.Logger, templates []DemandTemplate, week time.Time, dryRun bool) ([]db.DemandRow, error) {
	from, to := weekRange(week)

	var rows []db.DemandRow
	for i, tmpl := range templates {
		rule, err := rrule.StrToRRule(tmpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in template %d: %w", i, err)
		}
		window, err := timeslot.ParseWindow(tmpl.Window)
		if err != nil {
			return nil, fmt.Errorf("invalid window in template %d: %w", i, err)
		}

		rule.DTStart(from)
		for _, occurrence := range rule.Between(from, to.Add(-time.Nanosecond), true) {
			date := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, time.UTC)
			rows = append(rows, db.DemandRow{
				ID:        uuid.New().String(),
				Date:      date,
				StartTime: date.Add(time.Duration(window.StartMinute) * time.Minute),
				EndTime:   date.Add(time.Duration(window.EndMinute) * time.Minute),
				Category:  tmpl.Category,
				Quantity:  tmpl.Quantity,
			})
		}
	}

	logger.Info("Demand templates expanded",
		zap.Int("templates", len(templates)),
		zap.Int("records", len(rows)),
		zap.Time("week_start", from))

	if dryRun {
		logger.Info("Dry run, skipping persistence")
		return rows, nil
	}

	if err := database.InsertDemandRecords(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to insert demand records: %w", err)
	}

	return rows, nil
}
