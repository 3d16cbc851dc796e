// Package cmd provides the CLI commands for otk.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "otk",
	Short: "Omnifest toolkit - resolve build manifests for osbuild",
	Long: `otk - omnifest toolkit

Resolves declarative omnifest documents into plain build manifests.
Omnifests are YAML trees with otk.* directives for variable definition
(otk.define), file inclusion (otk.include), named operations (otk.op.*),
and external generators (otk.external.*).

COMMANDS
  compile [-o FILE] [-t TARGET] OMNIFEST   Resolve and emit a build target
  validate OMNIFEST...                     Resolve and report errors
  externals                                List discoverable externals`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("otk version {{.Version}}\n")
}
