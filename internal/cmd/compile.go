package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osbuild/otk/internal/compile"
	"github.com/osbuild/otk/internal/config"
	"github.com/osbuild/otk/internal/fileutil"
	"github.com/osbuild/otk/internal/tree"
	"github.com/osbuild/otk/internal/ui"
)

var (
	compileOutput       string
	compileTarget       string
	compileJSON         bool
	compileDefines      []string
	compileExternalPath []string
)

// compileCmd represents the compile command.
var compileCmd = &cobra.Command{
	Use:   "compile [flags] OMNIFEST",
	Short: "Resolve an omnifest and emit a build target",
	Long: `Resolve an omnifest into a plain manifest for the builder.

The document is expanded directive by directive in document order; the
selected otk.target.* subtree is written as YAML (or JSON with --json).
With a single target, --target may be omitted.

Examples:
  # Compile the only target to stdout
  otk compile fedora.yaml

  # Select a target and write atomically
  otk compile -t osbuild.qcow2 -o manifest.json -j fedora.yaml

  # Seed a variable before resolution
  otk compile -D arch=aarch64 fedora.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write the manifest to a file instead of stdout")
	compileCmd.Flags().StringVarP(&compileTarget, "target", "t", "", "target to emit, e.g. osbuild.qcow2")
	compileCmd.Flags().BoolVarP(&compileJSON, "json", "j", false, "emit JSON instead of YAML")
	compileCmd.Flags().StringArrayVarP(&compileDefines, "define", "D", nil, "seed a variable binding, name=value (repeatable)")
	compileCmd.Flags().StringArrayVar(&compileExternalPath, "external-path", nil, "directory searched for external binaries (repeatable)")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) {
	cfg := config.Load(compileExternalPath)
	opts := compile.Options{
		Defines:      map[string]string{},
		ExternalPath: cfg.ExternalPath,
	}
	for _, d := range compileDefines {
		name, value, ok := strings.Cut(d, "=")
		if !ok || name == "" {
			ui.Fatal("invalid --define %q, expected name=value", d)
		}
		opts.Defines[name] = value
	}

	res, err := compile.Document(args[0], opts)
	if err != nil {
		ui.Fatal("%v", err)
	}
	if res.Version == "" {
		ui.Fatal("%v", fmt.Errorf("%w: %s", compile.ErrMissingVersion, args[0]))
	}

	target, err := res.Select(compileTarget)
	if err != nil {
		ui.Fatal("%v", err)
	}

	var data []byte
	if compileJSON {
		data, err = tree.EncodeJSON(target.Tree)
	} else {
		data, err = tree.EncodeYAML(target.Tree)
	}
	if err != nil {
		ui.Fatal("encode %s: %v", target.Name, err)
	}

	if compileOutput == "" {
		os.Stdout.Write(data)
		return
	}
	if err := fileutil.WriteFileAtomic(compileOutput, data, 0644); err != nil {
		ui.Fatal("write %s: %v", compileOutput, err)
	}
	if ui.Interactive() {
		ui.Success("%s → %s", target.Name, compileOutput)
	}
}
