// Package cli implements the vitalsynth command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vitalsynth",
	Short: "Synthetic physiological signal generator",
	Long: `vitalsynth generates biologically plausible EMG, ECG, and EOG
waveforms with realistic noise and artifact overlays, for use as
labeled test data for signal-processing pipelines.

Signals are reproducible: the same seed and parameters always yield
the same recording.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}
