package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xbrlcore/internal/dts"
)

var (
	labelsLang string
	labelsRole string
)

var labelsCmd = &cobra.Command{
	Use:   "labels <schema.xsd | taxonomy-name>",
	Short: "Print the labels of every concept in a taxonomy",
	Long: `Builds the DTS and prints each concept together with its label from the
label linkbase.

Examples:
  xbrl labels taxonomy/t.xsd
  xbrl labels t.xsd --lang de
  xbrl labels t.xsd --role http://www.xbrl.org/2003/role/documentation`,
	Args: cobra.ExactArgs(1),
	RunE: runLabels,
}

func init() {
	labelsCmd.Flags().StringVar(&labelsLang, "lang", "", "Label language (default: any)")
	labelsCmd.Flags().StringVar(&labelsRole, "role", "", "Label resource role (default: the standard label role)")
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := buildLogger(cfg)

	builder := dts.NewBuilder(logger)
	builder.StrictPresentationParents = cfg.Presentation.StrictParents
	d, err := builder.Build(resolveSchemaPath(args[0]))
	if err != nil {
		return err
	}

	labels := d.LabelLinkbase()
	for _, schema := range d.Schemas() {
		for _, concept := range schema.Concepts() {
			label := labels.LabelFor(concept, labelsRole, labelsLang)
			if label == "" {
				continue
			}
			fmt.Printf("%-40s %s\n", concept.Name, label)
		}
	}
	return nil
}
