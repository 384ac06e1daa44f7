package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/rds-power-scheduler/internal/app"
	"github.com/olusolaa/rds-power-scheduler/internal/config"
	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rds-power-scheduler",
	Short: "Brings tagged RDS instances and clusters to a desired power state.",
	Long: `rds-power-scheduler discovers RDS DB instances and DB clusters matching
a tag key/value across one or more regions and starts or stops them,
so non-production database fleets can be powered down outside business
hours and restored automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, bootstrapErr := app.BootstrapFromViper(cmd.Context(), viper.GetViper())
		if bootstrapErr != nil {
			printUserFacing(bootstrapErr)
			return bootstrapErr
		}
		runErr := application.Run(cmd.Context())
		if runErr != nil {
			printUserFacing(runErr)
			return runErr
		}
		return nil
	},
}

func printUserFacing(err error) {
	userMsg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
}

// Execute reports overall invocation status through the process exit code.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .rds-power-scheduler.yaml)")
	rootCmd.Flags().String("action", "", "Action to perform: start (enable, running) or stop (disable, stopped)")
	rootCmd.Flags().String("tag-key", "", "Tag key selecting the resources to act on")
	rootCmd.Flags().String("tag-value", "", "Tag value selecting the resources to act on")
	rootCmd.Flags().String("regions", "", "Comma-separated region list; empty uses the default region, 'all' sweeps the account")
	// Flag defaults mirror config.DefaultConfig; an unchanged flag must not
	// zero out the struct defaults when viper unmarshals.
	defaults := config.DefaultConfig()
	rootCmd.Flags().Int("concurrency", defaults.Settings.Concurrency, "Maximum in-flight transition calls")
	rootCmd.Flags().String("reporter", defaults.Reporter.Type, "Report format (text, json)")
	rootCmd.Flags().String("log-level", string(defaults.Settings.LogLevel), "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", string(defaults.Settings.LogFormat), "Log format (text, json)")

	viper.BindPFlag("action", rootCmd.Flags().Lookup("action"))
	viper.BindPFlag("tag.key", rootCmd.Flags().Lookup("tag-key"))
	viper.BindPFlag("tag.value", rootCmd.Flags().Lookup("tag-value"))
	viper.BindPFlag("regions", rootCmd.Flags().Lookup("regions"))
	viper.BindPFlag("settings.concurrency", rootCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("reporter.type", rootCmd.Flags().Lookup("reporter"))
	viper.BindPFlag("settings.log_level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("settings.log_format", rootCmd.Flags().Lookup("log-format"))

	// Mirrors the original env contract: RDSPS_ACTION, RDSPS_TAG_KEY,
	// RDSPS_TAG_VALUE, RDSPS_REGIONS.
	viper.SetEnvPrefix("RDSPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".rds-power-scheduler")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}
