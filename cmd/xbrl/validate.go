package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"xbrlcore/internal/instance"
)

var (
	validateReportPath string
	validatePerFact    bool
)

// validationReport is the YAML document written by --report.
type validationReport struct {
	ID       string        `yaml:"id"`
	Instance string        `yaml:"instance"`
	Valid    bool          `yaml:"valid"`
	Facts    int           `yaml:"facts"`
	Contexts int           `yaml:"contexts"`
	Errors   []reportError `yaml:"errors,omitempty"`
}

type reportError struct {
	Kind     string `yaml:"kind"`
	Concept  string `yaml:"concept,omitempty"`
	Expected string `yaml:"expected,omitempty"`
	Computed string `yaml:"computed,omitempty"`
	LinkRole string `yaml:"linkRole,omitempty"`
	Message  string `yaml:"message"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <instance.xml>",
	Short: "Validate an instance document against its taxonomy sets",
	Long: `Loads an XBRL instance, builds the taxonomy sets it references via
link:schemaRef, and validates every fact against the calculation
networks of those taxonomies.

By default validation stops at the first failing fact. With --per-fact
every fact is checked and all failures are collected.

Examples:
  xbrl validate report.xml
  xbrl validate report.xml --per-fact --report report.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateReportPath, "report", "", "Write a YAML validation report to this path")
	validateCmd.Flags().BoolVar(&validatePerFact, "per-fact", false, "Check every fact instead of stopping at the first failure")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := buildLogger(cfg)

	loader := instance.NewLoader(logger)
	loader.StrictPresentationParents = cfg.Presentation.StrictParents
	in, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	validator := instance.NewValidator(in, logger)
	validator.Float32Compat = cfg.Calculation.Float32Compat

	var failures []error
	if validatePerFact {
		for _, f := range in.Facts() {
			if err := validator.ValidateFact(f); err != nil {
				failures = append(failures, err)
			}
		}
	} else if err := validator.Validate(); err != nil {
		failures = append(failures, err)
	}

	if validateReportPath != "" {
		if err := writeReport(in, failures); err != nil {
			return err
		}
	}

	if len(failures) > 0 {
		for _, err := range failures {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return fmt.Errorf("instance %s is not valid (%d failure(s))", in.FileName, len(failures))
	}
	fmt.Printf("instance %s is valid (%d facts, %d contexts)\n", in.FileName, in.NumFacts(), in.NumContexts())
	return nil
}

func writeReport(in *instance.Instance, failures []error) error {
	report := validationReport{
		ID:       uuid.New().String(),
		Instance: in.FileName,
		Valid:    len(failures) == 0,
		Facts:    in.NumFacts(),
		Contexts: in.NumContexts(),
	}
	for _, err := range failures {
		re := reportError{Kind: "error", Message: err.Error()}
		if calcErr, ok := err.(*instance.CalculationError); ok {
			re.Kind = string(calcErr.Kind)
			re.LinkRole = calcErr.ExtendedLinkRole
			if calcErr.MissingConcept != nil {
				re.Concept = calcErr.MissingConcept.Name
			}
			if calcErr.Expected != nil {
				re.Expected = calcErr.Expected.RatString()
			}
			if calcErr.Computed != nil {
				re.Computed = calcErr.Computed.RatString()
			}
		}
		report.Errors = append(report.Errors, re)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return err
	}
	return os.WriteFile(validateReportPath, data, 0644)
}
