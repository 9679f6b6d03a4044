package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"xbrlcore/internal/dts"
	"xbrlcore/internal/xbrlns"
)

var (
	presentationRole     string
	presentationTaxonomy string
	presentationLabels   bool
	presentationLang     string
)

var presentationCmd = &cobra.Command{
	Use:   "presentation <schema.xsd | taxonomy-name>",
	Short: "Print the presentation tree of a taxonomy",
	Long: `Builds the DTS and prints the hierarchical presentation tree of one
extended link role, indented by level.

Examples:
  xbrl presentation taxonomy/t.xsd
  xbrl presentation t.xsd --role http://example.com/role/balance
  xbrl presentation t.xsd --with-labels --lang de`,
	Args: cobra.ExactArgs(1),
	RunE: runPresentation,
}

func init() {
	presentationCmd.Flags().StringVar(&presentationRole, "role", "", "Extended link role (default: the standard link role)")
	presentationCmd.Flags().StringVar(&presentationTaxonomy, "taxonomy", "", "Only show concepts of this taxonomy schema")
	presentationCmd.Flags().BoolVar(&presentationLabels, "with-labels", false, "Show concept labels from the label linkbase")
	presentationCmd.Flags().StringVar(&presentationLang, "lang", "", "Label language (with --with-labels)")
	rootCmd.AddCommand(presentationCmd)
}

func runPresentation(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := buildLogger(cfg)

	builder := dts.NewBuilder(logger)
	builder.StrictPresentationParents = cfg.Presentation.StrictParents
	d, err := builder.Build(resolveSchemaPath(args[0]))
	if err != nil {
		return err
	}

	role := presentationRole
	if role == "" {
		role = xbrlns.DefaultLinkRole
	}

	elements := d.PresentationLinkbase().ElementsForTaxonomy(presentationTaxonomy, role)
	if len(elements) == 0 {
		fmt.Printf("no presentation network in link role %s\n", role)
		return nil
	}

	for _, e := range elements {
		indent := strings.Repeat("  ", e.Level-1)
		line := fmt.Sprintf("%s%s", indent, e.Concept.Name)
		if e.Concept.Abstract {
			line += " (abstract)"
		}
		if presentationLabels {
			if label := d.LabelLinkbase().LabelFor(e.Concept, "", presentationLang); label != "" {
				line += "  [" + label + "]"
			}
		}
		fmt.Println(line)
	}
	return nil
}
