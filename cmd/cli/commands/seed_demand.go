package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/services"
)

// SeedDemandCmd creates the seedDemand command
func SeedDemandCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seedDemand",
		Short: "Expand the configured recurring demand templates into a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}

			templates := make([]services.DemandTemplate, len(app.Cfg.DemandTemplates))
			for i, t := range app.Cfg.DemandTemplates {
				templates[i] = services.DemandTemplate{
					RRule:    t.RRule,
					Category: t.Category,
					Window:   t.Window,
					Quantity: t.Quantity,
				}
			}

			rows, err := services.SeedDemand(app.Ctx, app.Database, app.Logger, templates, week, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Demand templates expanded\n\n")
			fmt.Printf("Templates:     %d\n", len(templates))
			fmt.Printf("Records:       %d\n\n", len(rows))

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}
