package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/services"
)

// PlanBaseCmd creates the planBase command
func PlanBaseCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planBase",
		Short: "Solve the recurring weekly schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}
			ws, err := app.Cfg.Windows()
			if err != nil {
				return err
			}

			result, err := services.PlanBase(app.Ctx, app.Database, app.Logger, ws, week, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Base schedule solved\n\n")
			fmt.Printf("Week:          %s\n", services.WeekStart(week).Format("2006-01-02"))
			fmt.Printf("Assignments:   %d\n", len(result.Assignments))
			fmt.Printf("Objective:     %.2f\n", result.Stats.Objective)
			fmt.Printf("Satisfaction:  %.1f%% (%d/%d)\n\n",
				result.Stats.SatisfactionPct, result.Stats.TotalSatisfied, result.Stats.TotalDemand)

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}

// PlanCoverageCmd creates the planCoverage command
func PlanCoverageCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planCoverage",
		Short: "Solve ad-hoc site coverage for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}
			ws, err := app.Cfg.Windows()
			if err != nil {
				return err
			}

			result, err := services.PlanCoverage(app.Ctx, app.Database, app.Logger, ws, week, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Coverage schedule solved\n\n")
			fmt.Printf("Assignments:   %d\n", len(result.Assignments))
			fmt.Printf("Objective:     %.2f\n", result.Stats.Objective)

			if len(result.Relocations) > 0 {
				fmt.Printf("\nMid-day relocations (%d):\n", len(result.Relocations))
				for _, r := range result.Relocations {
					fmt.Printf("  - %s on %s: %s -> %s\n",
						r.WorkerID, r.Date.Format("2006-01-02"),
						r.MorningCategory, r.AfternoonCategory)
				}
			}
			fmt.Println()

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}

// PlanTheatreCmd creates the planTheatre command
func PlanTheatreCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planTheatre",
		Short: "Solve operating-theatre staffing for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}
			ws, err := app.Cfg.Windows()
			if err != nil {
				return err
			}

			result, err := services.PlanTheatre(app.Ctx, app.Database, app.Logger, ws, app.Cfg.FrontDeskCategories, week, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Theatre schedule solved\n\n")
			fmt.Printf("Assignments:   %d\n", len(result.Assignments))
			fmt.Printf("Objective:     %.2f\n\n", result.Stats.Objective)

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}

// PlaceFloatersCmd creates the placeFloaters command
func PlaceFloatersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placeFloaters",
		Short: "Place flexible-quota workers into the week's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}
			ws, err := app.Cfg.Windows()
			if err != nil {
				return err
			}

			result, err := services.PlaceFloaters(app.Ctx, app.Database, app.Logger, ws, week, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Floaters placed\n\n")
			fmt.Printf("Placements:    %d\n", len(result.Assignments))
			fmt.Printf("Objective:     %.2f\n", result.Stats.Objective)

			if len(result.Displaced) > 0 {
				fmt.Printf("\nDisplaced occupants (%d):\n", len(result.Displaced))
				for _, d := range result.Displaced {
					fmt.Printf("  - %s from %s %s (%s)\n",
						d.WorkerID, d.Slot.Date.Format("2006-01-02"), d.Slot.HalfDay, d.Category)
				}
			}
			fmt.Println()

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}
