package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/Santosestevialima/telemarketing/internal/config"
)

var (
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Settings
)

var rootCmd = &cobra.Command{
	Use:   "telemarketing",
	Short: "Telemarketing analysis: filter bank marketing data and summarize campaign outcomes",
	Long:  `Telemarketing analysis loads a bank marketing dataset (semicolon-delimited CSV or XLSX), filters it by age and categorical columns, and reports the acceptance distribution as tables, spreadsheets, and charts. Run "serve" for the browser dashboard or "filter" for non-interactive exports.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML; optional)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c, _ = cfgpkg.Load("")
	}
	cfg = c
}
