package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the schema and outcome distribution of a dataset",
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
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d rows\n", args[0], t.NumRows())
		fmt.Fprintf(out, "columns: %s\n", strings.Join(t.Columns(), ", "))

		lo, hi, err := t.IntBounds(dataset.AgeColumn)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "age: %d-%d\n", lo, hi)

		dist, err := stats.Summarize(t, dataset.OutcomeColumn)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s distribution:\n", dataset.OutcomeColumn)
		for _, b := range dist.Buckets {
			fmt.Fprintf(out, "  %-8s %6.2f%%  (%d)\n", b.Value, b.Percent, b.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
