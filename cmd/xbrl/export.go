package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xbrlcore/internal/instance"
)

var exportOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export <instance.xml>",
	Short: "Load an instance and serialize it back to XBRL XML",
	Long: `Loads an instance document, binds it to its taxonomy sets and writes the
normalized serialization. Useful to canonicalize instance files or to
round-trip programmatically built instances.

Examples:
  xbrl export report.xml -o normalized.xml
  xbrl export report.xml          # writes to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := buildLogger(cfg)

	loader := instance.NewLoader(logger)
	loader.StrictPresentationParents = cfg.Presentation.StrictParents
	in, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	outputter := instance.NewOutputter(in)
	if exportOutputPath == "" {
		fmt.Print(outputter.XMLString())
		return nil
	}
	if err := outputter.WriteFile(exportOutputPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", exportOutputPath)
	return nil
}
