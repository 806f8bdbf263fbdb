package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/services"
)

// AllocateRoomsCmd creates the allocateRooms command
func AllocateRoomsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocateRooms",
		Short: "Book operating rooms for the week's procedures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			week, dryRun, err := weekFlags(cmd)
			if err != nil {
				return err
			}

			result, err := services.AllocateRooms(app.Ctx, app.Database, app.Logger, app.Cfg.RoomConfig(), week, app.seed(), dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Rooms allocated\n\n")
			fmt.Printf("Bookings:      %d\n", len(result.Allocations))
			fmt.Printf("Unassigned:    %d\n", len(result.Unassigned))

			if len(result.Unassigned) > 0 {
				fmt.Println("\nProcedures without a room:")
				for _, p := range result.Unassigned {
					fmt.Printf("  - %s (%s, %s %s)\n",
						p.ID, p.Type, p.Date.Format("2006-01-02"), p.HalfDay)
				}
			}
			fmt.Println()

			return nil
		},
	}

	addWeekFlags(cmd)
	return cmd
}
