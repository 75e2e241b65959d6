// filepath: internal/cli/config_command.go
package cli

import (
	"fmt"
	"os"

	"petsapp/internal/config"

	"github.com/spf13/cobra"
)

type configInitOptions struct {
	Force bool
}

func NewConfigCommand(globalOptions *GlobalOptions) *cobra.Command {

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration file tools",
	}

	opt := &configInitOptions{}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to --config_path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := globalOptions.CfgFilePath
			if _, err := os.Stat(path); err == nil && !opt.Force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.SaveConfig(path, globalOptions.Conf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s.\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&opt.Force, "force", false, "Overwrite an existing file.")

	configCmd.AddCommand(initCmd)
	return configCmd
}
