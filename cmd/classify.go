package main

import (
	"os"
	"runtime"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/soiltex/internal/ingest"
	"github.com/sells-group/soiltex/internal/report"
	"github.com/sells-group/soiltex/internal/texture"
)

var (
	classifyInput   string
	classifyOutput  string
	classifySystem  string
	classifyClayCol string
	classifySandCol string
	classifySiltCol string
	classifyIDCol   string
	classifyWorkers int
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify soil samples from a CSV, XLSX, or shapefile",
	Long: `Reads a tabular dataset, classifies each sample into a texture class,
and writes the samples back out with a texture_class column.

Examples:
  # USDA classification with default column names (clay, sand, silt)
  soiltex classify -i samples.csv -o classified.csv

  # HYPRES with mapped columns
  soiltex classify -i survey.xlsx -s HYPRES --clay-col pct_clay --sand-col pct_sand --silt-col pct_silt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := zap.L().With(zap.String("component", "classify"))

		system := classifySystem
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

		ds, err := ingest.ReadFile(classifyInput, ingest.ColumnMap{
			Clay: classifyClayCol,
			Sand: classifySandCol,
			Silt: classifySiltCol,
			ID:   classifyIDCol,
		})
		if err != nil {
			return err
		}
		log.Info("dataset loaded",
			zap.String("input", classifyInput),
			zap.Int("samples", ds.Len()),
			zap.Int("anomalies", ds.Anomalies),
		)

		workers := classifyWorkers
		if workers == 0 {
			workers = cfg.Classify.Workers
		}
		labels, err := classifyChunked(classifier, ds, workers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if classifyOutput != "" {
			f, err := os.Create(classifyOutput)
			if err != nil {
				return eris.Wrapf(err, "classify: create %s", classifyOutput)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := ingest.WriteClassifiedCSV(out, ds, labels); err != nil {
			return err
		}

		rep := report.New(classifier, labels, ds.Anomalies)
		cmd.PrintErrln(rep.String())
		log.Info("classification complete",
			zap.String("report", rep.ID),
			zap.String("system", sys.Name),
			zap.Int("samples", rep.Samples),
			zap.Int("unknown", rep.Unknown),
		)
		return nil
	},
}

// classifyChunked splits the batch into contiguous chunks classified
// concurrently. The classifier is safe for concurrent use over disjoint
// batches, and chunk results land in disjoint label ranges, so the only
// coordination needed is the errgroup itself.
func classifyChunked(c *texture.Classifier, ds *ingest.Dataset, workers int) ([]string, error) {
	n := ds.Len()
	if workers <= 1 || n < 1000 {
		return c.Classify(ds.Clay, ds.Sand, ds.Silt)
	}
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	labels := make([]string, n)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		g.Go(func() error {
			part, err := c.Classify(ds.Clay[start:end], ds.Sand[start:end], ds.Silt[start:end])
			if err != nil {
				return err
			}
			copy(labels[start:end], part)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyInput, "input", "i", "", "input dataset (.csv, .xlsx, or .shp) (required)")
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "", "output CSV path (default: stdout)")
	classifyCmd.Flags().StringVarP(&classifySystem, "system", "s", "", "texture system (default from config, USDA)")
	classifyCmd.Flags().StringVar(&classifyClayCol, "clay-col", "", "clay column name (default: clay)")
	classifyCmd.Flags().StringVar(&classifySandCol, "sand-col", "", "sand column name (default: sand)")
	classifyCmd.Flags().StringVar(&classifySiltCol, "silt-col", "", "silt column name (default: silt)")
	classifyCmd.Flags().StringVar(&classifyIDCol, "id-col", "", "sample identifier column name (optional)")
	classifyCmd.Flags().IntVar(&classifyWorkers, "workers", 0, "concurrent classification workers for large batches")
	_ = classifyCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(classifyCmd)
}
