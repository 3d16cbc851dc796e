package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/osbuild/otk/internal/compile"
	"github.com/osbuild/otk/internal/config"
	"github.com/osbuild/otk/internal/ui"
)

var validateExternalPath []string

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate OMNIFEST...",
	Short: "Resolve omnifests and report errors",
	Long: `Fully resolve each omnifest and report any failure with its
location in the document. Resolution is all-or-nothing, so a passing
validate means compile will succeed as far as the documents themselves are
concerned.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringArrayVar(&validateExternalPath, "external-path", nil, "directory searched for external binaries (repeatable)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg := config.Load(validateExternalPath)
	opts := compile.Options{ExternalPath: cfg.ExternalPath}

	failed := 0
	for _, path := range args {
		res, err := compile.Document(path, opts)
		if err != nil {
			ui.Error("%s: %v", path, err)
			failed++
			continue
		}
		if res.Version == "" {
			ui.Warning("%s: missing otk.version", path)
		}
		if len(res.Targets) == 0 {
			ui.Warning("%s: no targets", path)
		}
		ui.Success("%s", path)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
