// filepath: internal/cli/seed_command.go
package cli

import (
	"errors"
	"fmt"

	"petsapp/internal/initconfig"
	"petsapp/internal/services"

	"github.com/spf13/cobra"
)

type SeedOptions struct {
	Dummy bool   // Insert the sample pet
	File  string // TOML file with [[pet]] tables
}

func NewSeedCommand(globalOptions *GlobalOptions) *cobra.Command {

	seedOptions := &SeedOptions{}

	seedCommand := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog with sample or prepared pets",
		Long: `With --dummy, inserts the sample pet Toto (Terrier, male, 7 kg).
With --file, inserts every [[pet]] of a TOML file in one transaction; one invalid
entry rejects the whole file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, globalOptions, seedOptions)
		},
	}

	seedOptions.registerFlags(seedCommand)

	return seedCommand
}

func (opt *SeedOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&opt.Dummy, "dummy", false, "Insert the sample pet.")
	cmd.Flags().StringVar(&opt.File, "file", "", "Path to a TOML seed file.")
}

func runSeed(cmd *cobra.Command, globalOptions *GlobalOptions, seedOptions *SeedOptions) error {
	if !seedOptions.Dummy && seedOptions.File == "" {
		return errors.New("nothing to seed: pass --dummy or --file")
	}

	if seedOptions.File == "" {
		return globalOptions.withPetService(func(svc services.PetService) error {
			id, err := svc.InsertDummyPet()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample pet saved with ID %d.\n", id)
			return nil
		})
	}

	// The file is read and checked before the database is touched. With
	// --dummy the sample pet joins the same transaction, after the file's pets.
	inputs, err := initconfig.Inputs(seedOptions.File)
	if err != nil {
		return err
	}
	fromFile := len(inputs)
	if seedOptions.Dummy {
		inputs = append(inputs, services.DummyPet)
	}

	return globalOptions.withPetService(func(svc services.PetService) error {
		ids, err := svc.Seed(inputs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pet(s) seeded from %s.\n", fromFile, seedOptions.File)
		if seedOptions.Dummy {
			fmt.Fprintf(cmd.OutOrStdout(), "Sample pet saved with ID %d.\n", ids[len(ids)-1])
		}
		return nil
	})
}
