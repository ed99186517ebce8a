package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afc/edgevm/pkg/vmconfig"
	"github.com/afc/edgevm/pkg/vmhost"
)

var (
	runEval        string
	runConfigPath  string
	runIncludePath []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a source file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "YAML config file (vmconfig.LoadFile)")
	runCmd.Flags().StringSliceVar(&runIncludePath, "include-path", nil, "additional #include <...> search directory (repeatable)")
}

func runScript(cmd *cobra.Command, args []string) error {
	name, content, err := readSource(runEval, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.IncludeSearchPaths = append(cfg.IncludeSearchPaths, runIncludePath...)

	engine := vmhost.New(
		vmconfig.WithMaxExponent(cfg.MaxExponent),
		vmconfig.WithMaxBounces(cfg.MaxBounces),
		vmconfig.WithGCLightInterval(cfg.GCLightInterval),
		vmconfig.WithIncludeSearchPaths(cfg.IncludeSearchPaths...),
	)

	result, err := engine.CompileAndRun(name, content)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("run failed")
	}
	if !result.IsVoid() {
		fmt.Println(result.String())
	}
	return nil
}

func loadConfig() (*vmconfig.Config, error) {
	if runConfigPath == "" {
		return vmconfig.New(), nil
	}
	cfg, err := vmconfig.LoadFile(runConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
