// chaffc compiles and previews chaff exercises: code templates whose
// region-marked blanks are filled from student-edited chaff documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chaffc/internal/config"
)

var (
	// Global flags
	verbose     bool
	exerciseDir string
	configPath  string

	// Loaded in PersistentPreRunE
	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chaffc",
	Short: "chaffc - region-marked chaff compiler and previewer",
	Long: `chaffc works with chaff exercises: a directory holding a code/ tree of
template sources, one *.stencil document, and any number of *.chaff
documents. Regions are delimited by "### Region: <name>" and
"### EndRegion" markers.

Each chaff document defines named fragments. Compiling splices those
fragments into the template sources, re-indented to the template's code
column; regions with no matching fragment stay exactly as authored.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := configPath
		if path == "" {
			path = filepath.Join(exerciseDir, config.DefaultFileName)
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&exerciseDir, "dir", "d", ".", "Exercise directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <dir>/chaffc.yaml)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(regionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
