// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"

	"petsapp/internal/config"
	"petsapp/internal/logging"
	"petsapp/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PETSAPP"

// newEnv returns a viper instance reading PETSAPP_* environment variables.
// Keys are the variable names without the prefix, in lower case.
func newEnv() *viper.Viper {
	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.AutomaticEnv()
	return env
}

// initializeConfig loads the config file and applies environment and flag overrides.
// Precedence: defaults < file < environment < flags.
func (options *GlobalOptions) initializeConfig(cmd *cobra.Command) error {
	env := newEnv()

	// 1. Check environment variable for config path first
	if !cmd.Flags().Changed("config_path") {
		if envPath := env.GetString("config_path"); envPath != "" {
			options.CfgFilePath = envPath
		}
	}

	cfg, err := config.LoadConfig(options.CfgFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", options.CfgFilePath, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	options.applyOverrides(cfg, cmd, env)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	if err := logging.InitWithOptions(logging.Options{
		Level:        cfg.Logging.Level,
		File:         cfg.Logging.File,
		MaxSizeBytes: cfg.LogMaxSizeBytes,
		MaxFiles:     cfg.Logging.MaxFiles,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	options.Conf = cfg
	return nil
}

func (options *GlobalOptions) applyOverrides(c *config.Config, cmd *cobra.Command, env *viper.Viper) {
	// --- Environment Variables ---
	if v := env.GetString("database_path"); v != "" {
		c.Database.Path = v
	}
	if v := env.GetString("log_level"); v != "" {
		c.Logging.Level = v
	}
	if v := env.GetString("log_file"); v != "" {
		c.Logging.File = v
	}
	if v := env.GetString("cache_ttl"); v != "" {
		c.Cache.TTL = v
	}
	if env.IsSet("audit_enabled") {
		c.Logging.AuditEnabled = env.GetBool("audit_enabled")
	}

	// --- CLI Flags (Take precedence) ---
	if options.DBPath != "" {
		c.Database.Path = options.DBPath
	}
	if options.LogLevel != "" {
		c.Logging.Level = options.LogLevel
	}
	// Check if flag was explicitly set
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = options.AuditEnabled
	}

	// --- Defaults ---
	if c.Database.Path == "" {
		c.Database.Path = models.DefaultDatabaseName
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
