// filepath: internal/cli/status_command.go
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"petsapp/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func NewStatusCommand(globalOptions *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database location, size, schema version and pet count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := globalOptions.OpenInfoService(globalOptions.Conf)
			if err != nil {
				return err
			}
			defer svc.Close()

			info, err := svc.GetInfo()
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func printInfo(out io.Writer, info models.Info) {
	w := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(w, "Version:\t%s\n", info.Version)
	fmt.Fprintf(w, "Database:\t%s\n", info.DatabasePath)
	fmt.Fprintf(w, "Size:\t%s\n", humanize.Bytes(uint64(info.FileSizeBytes)))
	fmt.Fprintf(w, "Schema version:\t%d\n", info.SchemaVersion)
	fmt.Fprintf(w, "Pets:\t%s\n", humanize.Comma(int64(info.PetCount)))
	w.Flush()
}
