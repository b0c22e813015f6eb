package cmd

import (
	"github.com/lineheat/lineheat/core"
	"github.com/lineheat/lineheat/internal/contract"
	"github.com/lineheat/lineheat/internal/tui"
	"github.com/lineheat/lineheat/schema"
	"github.com/spf13/cobra"
)

// viewCmd opens the interactive terminal viewer.
var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open an interactive heatmap viewer for a file.",
	Long: `Browse a file with its line heatmap in a scrollable terminal viewer.

Keys:
  up/down  scroll
  m        toggle between age and line_commit mode
  q        quit

Examples:
  # Inspect recency heat interactively
  lineheat view main.go

  # Start in modification-frequency mode
  lineheat view main.go --mode line_commit`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		doc, err := loadTargetDocument()
		if err != nil {
			return err
		}

		var client contract.VCSClient
		switch core.Detect(doc.Dir()) {
		case schema.GitVCS:
			client = contract.NewLocalGitClient()
		case schema.PerforceVCS:
			client = contract.NewLocalPerforceClient()
		}

		return tui.Run(cfg, doc, client, cacheManager, session.Palette())
	},
}
