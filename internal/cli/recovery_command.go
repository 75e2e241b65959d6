// filepath: internal/cli/recovery_command.go
package cli

import (
	"fmt"

	"petsapp/internal/logging"
	"petsapp/internal/services"

	"github.com/spf13/cobra"
)

func NewRepairCommand(globalOptions *GlobalOptions) *cobra.Command {

	repairCommand := &cobra.Command{
		Use:   "repair",
		Short: "Fix pets with impossible stored values",
		Long: `Scans the catalog for rows written outside this application, resets genders
outside unknown/male/female to unknown and negative weights to 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return globalOptions.withPetService(func(svc services.PetService) error {
				logging.Log.Info("Starting repair process...")

				fixed, err := svc.Repair()
				if err != nil {
					return err
				}

				logging.Log.Infof("Repair complete. Total values fixed: %d", fixed)
				fmt.Fprintf(cmd.OutOrStdout(), "%d value(s) fixed.\n", fixed)
				return nil
			})
		},
	}

	return repairCommand
}
