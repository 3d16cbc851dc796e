package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osbuild/otk/internal/config"
	"github.com/osbuild/otk/internal/external"
	"github.com/osbuild/otk/internal/ui"
)

var externalsPath []string

// externalsCmd represents the externals command.
var externalsCmd = &cobra.Command{
	Use:   "externals",
	Short: "List external binaries on the search path",
	Long: `List the externals reachable through otk.external.* directives.
An external named NAME is a binary otk-external-NAME in one of the search
path directories (--external-path, OTK_EXTERNAL_PATH, or the packaged
defaults).`,
	Args: cobra.NoArgs,
	Run:  runExternals,
}

func init() {
	externalsCmd.Flags().StringArrayVar(&externalsPath, "external-path", nil, "directory searched for external binaries (repeatable)")

	rootCmd.AddCommand(externalsCmd)
}

func runExternals(cmd *cobra.Command, args []string) {
	cfg := config.Load(externalsPath)
	bridge := external.NewBridge(cfg.ExternalPath)

	names := bridge.List()
	if len(names) == 0 {
		ui.Warning("no externals found on: %v", cfg.ExternalPath)
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}
