package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/services"
)

// AssignClosingsCmd creates the assignClosings command
func AssignClosingsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignClosings",
		Short: "Distribute closing responsibilities over the week's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}

			result, err := services.AssignClosings(app.Ctx, app.Database, app.Logger, app.Cfg.ClosingSites, week, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Closing roles assigned\n\n")
			fmt.Printf("Roles:             %d\n", len(result.Assignments))
			fmt.Printf("Fairness metric:   %d\n", result.Metric)
			fmt.Printf("Exchange moves:    %d\n", result.ExchangeIterations)

			if len(result.Unassigned) > 0 {
				fmt.Printf("\nUncovered closure units (%d):\n", len(result.Unassigned))
				for _, u := range result.Unassigned {
					fmt.Printf("  - %s on %s: %s\n", u.Site, u.Date, u.Reason)
				}
			}
			fmt.Println()

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}
