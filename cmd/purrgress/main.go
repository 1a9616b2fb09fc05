// Command purrgress demos the cat progress displays and inspects the
// installed themes. Configuration flows env file, then PURRGRESS_*
// variables, then flags, later sources win.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/purrgress/purrgress/pkg/logger"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"
	// GitCommit is the git commit SHA at build time
	GitCommit = "unknown"
	// BuildTime is the time of the build
	BuildTime = "unknown"
)

var (
	configFile string
	logLevel   string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "purrgress",
	Short: "Cat themed progress displays for terminals and notebooks",
	Long: `Purrgress wraps long running loops in an animated ASCII cat whose mood
follows completion. The demo subcommands exercise each display style,
themes lists the installed face sets.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(configFile); err != nil {
			return err
		}
		setupLogging(logLevel)
		if noColor {
			color.NoColor = true
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "purrgress %s\n", getVersion())
	},
}

func main() {
	Execute()
}

// Execute wires the subcommands and runs the root command.
func Execute() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(welcomeCmd)
	rootCmd.AddCommand(themesCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadEnvFile loads environment variables from file
func loadEnvFile(configFile string) error {
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		godotenv.Load(".env")
	}
	return nil
}

// setupLogging applies the log level flag on top of PURRGRESS_LOG.
func setupLogging(level string) {
	if level == "" {
		return
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		logger.Warnf("unknown log level %q, keeping current level", level)
		return
	}
	logger.SetLevel(parsed)
}

// getVersion returns the version information
func getVersion() string {
	if Version == "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
	}
	return fmt.Sprintf("v%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to an env file loaded before PURRGRESS_* variables")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
