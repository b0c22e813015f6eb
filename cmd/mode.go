package cmd

import (
	"fmt"
	"strings"

	"github.com/lineheat/lineheat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// modeSetup loads the config file so mode commands see persisted values.
func modeSetup(_ *cobra.Command, _ []string) error {
	return loadConfigFile()
}

// modeCmd groups default heat mode management.
var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or persist the default heat mode",
	Long: `Manage the default heat mode used when no --mode flag is given.

Modes:
  age         relative recency of each line's last change (default)
  line_commit absolute count of changes touching each line

Subcommands:
  show - Print the configured default mode
  set  - Persist a default mode to the config file`,
}

// modeShowCmd prints the configured default mode.
var modeShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the configured default heat mode",
	PreRunE: modeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(viper.GetString("mode"))
	},
}

// modeSetCmd persists a default mode to the config file.
var modeSetCmd = &cobra.Command{
	Use:   "set <mode>",
	Short: "Persist the default heat mode to the config file",
	Long: `Write the given heat mode into the config file so later runs use it
without a --mode flag. Creates .lineheat.yaml in the current directory
when no config file exists yet.

Examples:
  # Make modification-frequency heat the default
  lineheat mode set line_commit`,
	Args:    cobra.ExactArgs(1),
	PreRunE: modeSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		mode := schema.Mode(strings.ToLower(args[0]))
		if _, ok := schema.ValidModes[mode]; !ok {
			return fmt.Errorf("invalid mode '%s'. must be age or line_commit", args[0])
		}

		viper.Set("mode", string(mode))
		if err := viper.WriteConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("cannot write config file: %w", err)
			}
			// No config file yet: create one in the current directory.
			if err := viper.SafeWriteConfigAs(".lineheat.yaml"); err != nil {
				return fmt.Errorf("cannot create config file: %w", err)
			}
		}

		fmt.Printf("Default mode set to %s.\n", mode)
		return nil
	},
}
