package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/soiltex/internal/ingest"
	"github.com/sells-group/soiltex/internal/render"
	"github.com/sells-group/soiltex/internal/texture"
)

var (
	plotInput      string
	plotOutput     string
	plotSystem     string
	plotClayCol    string
	plotSandCol    string
	plotSiltCol    string
	plotIDCol      string
	plotShowLabels bool
	plotWidth      int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a texture system as an SVG ternary diagram",
	Long: `Draws the selected texture system's class polygons as a ternary diagram,
optionally with sample points from a dataset.

Examples:
  soiltex plot -s USDA -o usda.svg
  soiltex plot -s HYPRES -i samples.csv --labels -o survey.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		system := plotSystem
		if system == "" {
			system = cfg.Classify.System
		}
		sys, err := texture.Get(system)
		if err != nil {
			return err
		}
		classifier, err := texture.FromSystem(sys)
		if err != nil {
			return err
		}

		var samples *render.Samples
		if plotInput != "" {
			ds, err := ingest.ReadFile(plotInput, ingest.ColumnMap{
				Clay: plotClayCol,
				Sand: plotSandCol,
				Silt: plotSiltCol,
				ID:   plotIDCol,
			})
			if err != nil {
				return err
			}
			samples = &render.Samples{
				IDs:  ds.IDs,
				Clay: ds.Clay,
				Sand: ds.Sand,
				Silt: ds.Silt,
			}
		}

		width := plotWidth
		if width == 0 {
			width = cfg.Plot.Width
		}
		svg, err := render.Diagram(classifier, samples, render.Options{
			Width:      width,
			ShowLabels: plotShowLabels,
			SizeMin:    cfg.Plot.SizeMin,
			SizeMax:    cfg.Plot.SizeMax,
		})
		if err != nil {
			return err
		}

		if plotOutput == "" {
			cmd.Print(svg)
			return nil
		}
		if err := os.WriteFile(plotOutput, []byte(svg), 0o644); err != nil {
			return eris.Wrapf(err, "plot: write %s", plotOutput)
		}
		zap.L().Info("diagram written",
			zap.String("component", "plot"),
			zap.String("system", sys.Name),
			zap.String("output", plotOutput),
		)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVarP(&plotInput, "input", "i", "", "optional sample dataset to scatter on the diagram")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "output SVG path (default: stdout)")
	plotCmd.Flags().StringVarP(&plotSystem, "system", "s", "", "texture system (default from config, USDA)")
	plotCmd.Flags().StringVar(&plotClayCol, "clay-col", "", "clay column name (default: clay)")
	plotCmd.Flags().StringVar(&plotSandCol, "sand-col", "", "sand column name (default: sand)")
	plotCmd.Flags().StringVar(&plotSiltCol, "silt-col", "", "silt column name (default: silt)")
	plotCmd.Flags().StringVar(&plotIDCol, "id-col", "", "sample identifier column name (optional)")
	plotCmd.Flags().BoolVar(&plotShowLabels, "labels", false, "draw sample IDs on markers")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "diagram width in pixels")
	rootCmd.AddCommand(plotCmd)
}
