package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/soiltex/internal/config"
	"github.com/sells-group/soiltex/internal/texture"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "soiltex",
	Short: "Soil texture classification and ternary diagrams",
	Long:  "Classifies soil samples (clay/sand/silt fractions) into texture classes defined by standard systems such as USDA and HYPRES, and renders ternary diagrams.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return registerSystemFiles(cfg.Classify.SystemFiles)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// registerSystemFiles adds user-supplied YAML systems to the default
// registry alongside the built-ins.
func registerSystemFiles(paths []string) error {
	for _, path := range paths {
		sys, err := texture.LoadSystemFile(path)
		if err != nil {
			return err
		}
		if err := texture.Default().Register(sys); err != nil {
			return err
		}
		zap.L().Info("registered texture system",
			zap.String("component", "cli"),
			zap.String("system", sys.Name),
			zap.String("file", path),
		)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
