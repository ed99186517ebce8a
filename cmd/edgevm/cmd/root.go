package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afc/edgevm/internal/vmlog"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "edgevm",
	Short: "edgevm scripting VM",
	Long: `edgevm is an embeddable scripting VM: a C-like expression language
with a generational GC, a tree-walking trampoline evaluator, and a host
embedding API (pkg/vmhost).`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		vmlog.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
