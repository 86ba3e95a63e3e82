package main

import (
	"os"
	"path/filepath"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/service"
	"github.com/spf13/cobra"
)

// outputFlags are shared by every command that writes a report
type outputFlags struct {
	json       bool
	yaml       bool
	csv        bool
	outputPath string
	configFile string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "Write the report as JSON")
	cmd.Flags().BoolVar(&o.yaml, "yaml", false, "Write the report as YAML")
	cmd.Flags().BoolVar(&o.csv, "csv", false, "Write the report as CSV")
	cmd.Flags().StringVarP(&o.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&o.configFile, "config", "c", "", "Path to configuration file")
}

// format returns the format picked by flags; the configured format applies
// when none is set.
func (o *outputFlags) format() (domain.OutputFormat, error) {
	format, _, err := service.NewOutputFormatResolver().Determine(o.json, o.yaml, o.csv, "")
	return format, err
}

// startDirFor returns the directory where configuration discovery starts
// for a command operating on path.
func startDirFor(path string) string {
	if path == "" {
		return "."
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
