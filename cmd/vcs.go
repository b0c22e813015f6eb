package cmd

import (
	"fmt"

	"github.com/lineheat/lineheat/internal/contract"
	"github.com/spf13/cobra"
)

// vcsCmd reports the detected version control system for a file.
var vcsCmd = &cobra.Command{
	Use:   "vcs <file>",
	Short: "Show which version control system governs a file.",
	Long: `Detect the version control system for a file by walking its ancestor
directories for a VCS marker.

Prints one of: git, perforce, none.

Examples:
  # Check which VCS a file belongs to
  lineheat vcs main.go`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		doc, err := loadTargetDocument()
		if err != nil {
			contract.LogFatal("Cannot detect VCS", err)
		}
		fmt.Println(renderer.VCSType(doc))
	},
}
