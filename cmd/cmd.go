// Package cmd defines the command-line interface for lineheat.
package cmd

import (
	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(vcsCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the mode subcommands to the parent mode command
	modeCmd.AddCommand(modeShowCmd)
	modeCmd.AddCommand(modeSetCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("heat-levels", contract.DefaultHeatLevels, "Number of heat buckets from coolest to hottest")
	rootCmd.PersistentFlags().String("heat-color", contract.DefaultHeatColor, "Hottest color as 'r,g,b' or 'r,g,b,a'")
	rootCmd.PersistentFlags().String("cool-color", "", "Coolest color as 'r,g,b,a' (defaults to heat color at zero opacity)")
	rootCmd.PersistentFlags().Bool("show-in-ruler", true, "Show heat blocks in the ruler column")
	rootCmd.PersistentFlags().String("mode", string(schema.AgeMode), "Heat mode: age or line_commit")
	rootCmd.PersistentFlags().String("scale", string(schema.LineLogStrategy), "Count extraction strategy: line-log or hunks")
	rootCmd.PersistentFlags().Bool("follow", false, "Follow renames when walking per-file history")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored terminal paint (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
