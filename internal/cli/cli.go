package cli

import (
	"errors"
	"fmt"
	"os"

	"petsapp/internal/audit"
	"petsapp/internal/config"
	"petsapp/internal/services"

	"github.com/spf13/cobra"
)

// Version of the petsapp binary, reported by the status command.
var Version = "1.0.0"

// actor is recorded as the audit actor for every write made through the CLI.
const actor = "cli"

type GlobalOptions struct {
	CfgFilePath  string
	LogLevel     string
	DBPath       string
	AuditEnabled bool

	Conf *config.Config

	// Service factories. Tests replace them with mocks.
	OpenPetService  func(cfg *config.Config, auditor services.Auditor) (services.PetService, error)
	OpenInfoService func(cfg *config.Config) (services.InfoService, error)
}

// NewGlobalOptions returns options wired to the real SQLite backed services.
func NewGlobalOptions() *GlobalOptions {
	return &GlobalOptions{
		OpenPetService: func(cfg *config.Config, auditor services.Auditor) (services.PetService, error) {
			svc, err := services.OpenPetService(cfg, auditor, actor)
			if err != nil {
				return nil, err
			}
			return svc, nil
		},
		OpenInfoService: func(cfg *config.Config) (services.InfoService, error) {
			svc, err := services.OpenInfoService(cfg, Version)
			if err != nil {
				return nil, err
			}
			return svc, nil
		},
	}
}

func NewRootCMD(globalOptions *GlobalOptions) *cobra.Command {

	rootCMD := &cobra.Command{
		Use:   "petsapp",
		Short: "Pet shelter catalog",
		Long:  "A command line catalog of shelter pets kept in a local SQLite file.",
		// PersistentPreRunE loads the configuration before any command runs.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return globalOptions.initializeConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// register global flags
	globalOptions.registerFlags(rootCMD)

	// add subcommands
	rootCMD.AddCommand(NewAddCommand(globalOptions))
	rootCMD.AddCommand(NewListCommand(globalOptions))
	rootCMD.AddCommand(NewShowCommand(globalOptions))
	rootCMD.AddCommand(NewEditCommand(globalOptions))
	rootCMD.AddCommand(NewDeleteCommand(globalOptions))
	rootCMD.AddCommand(NewDeleteAllCommand(globalOptions))
	rootCMD.AddCommand(NewSeedCommand(globalOptions))
	rootCMD.AddCommand(NewRepairCommand(globalOptions))
	rootCMD.AddCommand(NewStatusCommand(globalOptions))
	rootCMD.AddCommand(NewMigrateCommand(globalOptions))
	rootCMD.AddCommand(NewConfigCommand(globalOptions))

	return rootCMD
}

func (options *GlobalOptions) registerFlags(cmd *cobra.Command) {
	// flags that can be used for each command
	cmd.PersistentFlags().StringVar(&options.CfgFilePath, "config_path", "config.toml", "Path to the base configuration file. (Env: PETSAPP_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "", "Logging level (trace, debug, info, warn, error). (Env: PETSAPP_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&options.DBPath, "db", "", "Path to the pets database file. (Env: PETSAPP_DATABASE_PATH)")
	cmd.PersistentFlags().BoolVar(&options.AuditEnabled, "audit-enabled", false, "Enable audit logging of writes. (Env: PETSAPP_AUDIT_ENABLED=true)")
}

// withPetService opens the pet service for the duration of fn and closes it on every path.
func (options *GlobalOptions) withPetService(fn func(svc services.PetService) error) error {
	svc, err := options.OpenPetService(options.Conf, audit.NewLoggerAuditor(options.Conf.Logging.AuditEnabled))
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

// describeError turns a service error into the message shown to the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fmt.Sprintf("Invalid input: %v", err)
	case errors.Is(err, services.ErrStorageUnavailable):
		return fmt.Sprintf("Cannot open storage: %v", err)
	case errors.Is(err, services.ErrWrite):
		return fmt.Sprintf("Saving failed, please retry: %v", err)
	case errors.Is(err, services.ErrUpdateFailed):
		return fmt.Sprintf("The pet was changed or removed meanwhile, run 'petsapp list' and try again: %v", err)
	case errors.Is(err, services.ErrNotFound):
		return fmt.Sprintf("Nothing to display: %v", err)
	default:
		return err.Error()
	}
}

func Execute() {

	rootCmd := NewRootCMD(NewGlobalOptions())

	// Run the command based on os.Args
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}
