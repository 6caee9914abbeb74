package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/export"
	"github.com/Santosestevialima/telemarketing/internal/filterspec"
	"github.com/Santosestevialima/telemarketing/internal/pipeline"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

var (
	flagSpec string
	flagOut  string
)

var filterCmd = &cobra.Command{
	Use:   "filter FILE",
	Short: "Apply a YAML filter spec and write the export spreadsheets",
	Long:  `Filter loads a dataset, applies the age range and per-column selections from a YAML spec, and writes bank_filtered.xlsx, bank_raw_y.xlsx, and bank_filtered_y.xlsx into the output directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read dataset: %w", err)
		}
		t, err := dataset.Load(data, args[0])
		if err != nil {
			return err
		}
		if err := t.RequireColumns(dataset.RequiredColumns()...); err != nil {
			return err
		}

		spec := &filterspec.Spec{}
		if flagSpec != "" {
			spec, err = filterspec.ParseFile(flagSpec)
			if err != nil {
				return err
			}
		}
		rng, ok := spec.Range()
		if !ok {
			// No age restriction in the spec: use the dataset's own bounds
			// so every row survives the range step.
			rng.Min, rng.Max, err = t.IntBounds(dataset.AgeColumn)
			if err != nil {
				return err
			}
		}

		filtered, err := pipeline.Apply(t, rng, spec.Selections())
		if err != nil {
			return err
		}
		rawDist, err := stats.Summarize(t, dataset.OutcomeColumn)
		if err != nil {
			return err
		}
		filtDist, err := stats.Summarize(filtered, dataset.OutcomeColumn)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(flagOut, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		artifacts := []struct {
			name  string
			table *dataset.Table
		}{
			{"bank_filtered.xlsx", filtered},
			{"bank_raw_y.xlsx", export.DistributionTable(rawDist)},
			{"bank_filtered_y.xlsx", export.DistributionTable(filtDist)},
		}
		for _, a := range artifacts {
			blob, err := export.ToXLSX(a.table)
			if err != nil {
				return fmt.Errorf("%s: %w", a.name, err)
			}
			path := filepath.Join(flagOut, a.name)
			if err := export.WriteFileAtomic(path, blob); err != nil {
				return fmt.Errorf("%s: %w", a.name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows)\n", path, a.table.NumRows())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d rows kept\n", filtered.NumRows(), t.NumRows())
		return nil
	},
}

func init() {
	filterCmd.Flags().StringVar(&flagSpec, "spec", "", "YAML filter spec (default keeps every row)")
	filterCmd.Flags().StringVar(&flagOut, "out", ".", "output directory for the export files")
	rootCmd.AddCommand(filterCmd)
}
