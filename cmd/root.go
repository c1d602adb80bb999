// Package cmd wires the command-line interface around the snapshot engine.
package cmd

import (
	"fmt"

	"codesnap/pkg/logging"
	"codesnap/pkg/snapshot"
	"codesnap/pkg/version"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootLogger is the logger handed to Execute; subcommands derive from it.
var rootLogger *zap.Logger

// rootCmd is the base command. Running it without a subcommand performs
// the snapshot of the given directory (default: current directory).
var rootCmd = &cobra.Command{
	Use:   "codesnap [directory]",
	Short: "codesnap concatenates a directory tree into one annotated text file",
	Long: `codesnap recursively walks a directory, skips ignored, oversized and
binary files, and concatenates everything else into a single annotated
output file - a quick textual snapshot of a codebase for LLM input or
archival.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSnapshot,
}

func init() {
	flags := rootCmd.Flags()
	flags.Float64P("threshold", "t", snapshot.DefaultThresholdMB, "maximum file size in MB; larger files are skipped")
	flags.BoolP("include-all", "a", false, "disable size and binary filtering")
	flags.StringP("output", "o", snapshot.DefaultOutputPath, "destination path for the combined snapshot")
	flags.StringSliceP("exclude", "e", nil, "additional ignore rules (name patterns, '!' re-includes)")
	flags.String("tree", "", "also write a directory tree listing to this path")
	flags.BoolP("verbose", "v", false, "enable verbose logging")

	for _, name := range []string{"threshold", "include-all", "output", "exclude", "tree", "verbose"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// Execute runs the root command. The returned error has already been
// logged; the caller only maps it to the process exit code.
func Execute(logger *zap.Logger) error {
	rootLogger = logger
	return rootCmd.Execute()
}

// initConfig layers configuration: flags over environment (CODESNAP_*)
// over an optional .codesnap.yaml in the working directory over defaults.
func initConfig() {
	viper.SetConfigName(".codesnap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("codesnap")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		rootLogger.Debug("Loaded config file", zap.String("file", viper.ConfigFileUsed()))
	}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	initConfig()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg := snapshot.Config{
		ThresholdMB:     viper.GetFloat64("threshold"),
		IncludeAll:      viper.GetBool("include-all"),
		OutputPath:      viper.GetString("output"),
		ExcludePatterns: viper.GetStringSlice("exclude"),
		TreePath:        viper.GetString("tree"),
	}

	logger, err := logging.New(viper.GetBool("verbose"), "codesnap", version.Version)
	if err != nil {
		logger = rootLogger
	}

	engine, err := snapshot.NewEngine(cfg, logger)
	if err != nil {
		pterm.Error.Printfln("Invalid configuration: %v", err)
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Scanning ", root)

	output, stats, err := engine.Run(root)
	if err != nil {
		spinner.Fail("Traversal failed")
		logger.Error("Traversal failed", zap.Error(err))
		return err
	}

	writer := snapshot.NewWriter(logger)
	if err := writer.Write(cfg.OutputPath, output); err != nil {
		spinner.Fail("Write failed")
		logger.Error("Write failed", zap.Error(err))
		return err
	}

	if cfg.TreePath != "" {
		tree, err := engine.TreeString(root)
		if err != nil {
			spinner.Fail("Tree rendering failed")
			logger.Error("Tree rendering failed", zap.Error(err))
			return err
		}
		if err := writer.Write(cfg.TreePath, tree); err != nil {
			spinner.Fail("Tree write failed")
			logger.Error("Tree write failed", zap.Error(err))
			return err
		}
	}

	spinner.Success("Snapshot complete")

	if stats.Processed == 0 {
		pterm.Warning.Printfln("No files qualified; wrote empty snapshot to %s", cfg.OutputPath)
	} else {
		pterm.Success.Printfln("Wrote %d file(s) to %s (%d skipped)",
			stats.Processed, cfg.OutputPath, stats.Skipped)
	}

	return nil
}
