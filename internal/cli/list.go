package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalsynth/vitalsynth"
	"github.com/vitalsynth/vitalsynth/preset"
	"github.com/vitalsynth/vitalsynth/synth/ecg"
	"github.com/vitalsynth/vitalsynth/synth/emg"
	"github.com/vitalsynth/vitalsynth/synth/eog"
	"github.com/vitalsynth/vitalsynth/synth/noise"
)

var listPresetDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported families, types, and presets",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listPresetDir, "preset-dir", "", "Directory of preset YAML files to include")
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Println("Signal families:")
	for _, f := range vitalsynth.Families() {
		fmt.Printf("  %s\n", f)
	}

	fmt.Println("\nEMG patterns:")
	for _, p := range []emg.PatternType{emg.Isometric, emg.Dynamic, emg.Repetitive, emg.Complex} {
		fmt.Printf("  %s\n", p)
	}

	fmt.Println("\nECG conditions:")
	for _, c := range []ecg.Condition{
		ecg.NormalSinus, ecg.PVC, ecg.AF, ecg.Bradycardia, ecg.Tachycardia,
		ecg.HeartBlock, ecg.STElevation, ecg.STDepression, ecg.TWaveInversion,
		ecg.QWave, ecg.LBBB, ecg.RBBB, ecg.WPW, ecg.LAFB,
	} {
		fmt.Printf("  %s\n", c)
	}

	fmt.Println("\nEOG movements:")
	for _, m := range []eog.MovementType{eog.Saccades, eog.Pursuit, eog.Fixation} {
		fmt.Printf("  %s\n", m)
	}

	fmt.Println("\nNoise types:")
	for _, t := range []noise.Type{
		noise.Gaussian, noise.Pink, noise.Brown,
		noise.Powerline, noise.BaselineWander, noise.HighFrequency,
	} {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("\nMotion artifacts:")
	for _, t := range []noise.MotionType{
		noise.ElectrodeMovement, noise.CableMotion, noise.SubjectMovement, noise.BaselineShift,
	} {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("\nElectrode artifacts:")
	for _, t := range []noise.ElectrodeType{
		noise.PoorContact, noise.ElectrodePop, noise.ImpedanceChange, noise.DCOffset,
	} {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("\nInterference sources:")
	for _, t := range []noise.InterferenceType{
		noise.EMGCrosstalk, noise.ECGInterference,
		noise.Environmental, noise.DeviceNoise,
	} {
		fmt.Printf("  %s\n", t)
	}

	if listPresetDir != "" {
		registry := preset.NewRegistry()
		if err := registry.LoadFromDir(listPresetDir); err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		fmt.Println("\nPresets:")
		for _, name := range registry.List() {
			p, _ := registry.Get(name)
			fmt.Printf("  %-20s %s\n", name, p.Description)
		}
	}

	return nil
}
