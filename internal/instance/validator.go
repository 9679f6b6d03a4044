package instance

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"xbrlcore/internal/dts"
	"xbrlcore/internal/errors"
	"xbrlcore/internal/logging"
	"xbrlcore/internal/taxonomy"
)

// CalculationErrorKind distinguishes the two calculation failure modes.
type CalculationErrorKind string

const (
	// MissingValues means a summand fact is absent from the instance
	MissingValues CalculationErrorKind = "MissingValues"
	// CalculationMismatch means the weighted sum disagrees with the
	// reported value
	CalculationMismatch CalculationErrorKind = "CalculationMismatch"
)

// CalculationError reports a violated calculation network.
type CalculationError struct {
	Kind             CalculationErrorKind
	DTS              *dts.DTS
	ExtendedLinkRole string

	// MissingConcept is set for MissingValues failures.
	MissingConcept *taxonomy.Concept

	// Expected, Computed and Summands are set for CalculationMismatch
	// failures.
	Expected *big.Rat
	Computed *big.Rat
	Summands []*taxonomy.Concept
}

// Error implements the error interface.
func (e *CalculationError) Error() string {
	switch e.Kind {
	case MissingValues:
		return fmt.Sprintf("[%s] missing value for summand concept %s",
			errors.CalculationValidation, e.MissingConcept.Name)
	default:
		return fmt.Sprintf("[%s] calculated result %s is not equal to reported value %s in extended link role %s",
			errors.CalculationValidation, e.Computed.RatString(), e.Expected.RatString(), e.ExtendedLinkRole)
	}
}

// SchemaValidator validates the serialized instance against its schemas.
// The engine assembles the schema-location string; the XML Schema check
// itself stays a pluggable collaborator.
type SchemaValidator interface {
	Validate(in *Instance, schemaLocation string) error
}

// Validator checks an instance against the calculation networks of its
// taxonomy sets.
type Validator struct {
	// Float32Compat reproduces the float32-coerced arithmetic of older
	// processors instead of exact lexical decimals.
	Float32Compat bool

	instance        *Instance
	schemaValidator SchemaValidator
	logger          *logging.Logger
}

// NewValidator creates a validator for the given instance. A nil logger
// discards output.
func NewValidator(in *Instance, logger *logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Validator{instance: in, logger: logger}
}

// SetSchemaValidator installs the external XML Schema collaborator.
func (v *Validator) SetSchemaValidator(sv SchemaValidator) {
	v.schemaValidator = sv
}

// Validate checks every fact of the instance, reporting the first failure.
func (v *Validator) Validate() error {
	for _, f := range v.instance.Facts() {
		if err := v.ValidateFact(f); err != nil {
			return err
		}
	}
	return nil
}

// SchemaValidation assembles the schema-location string of the instance and
// hands it to the configured collaborator.
func (v *Validator) SchemaValidation() error {
	if v.schemaValidator == nil {
		return errors.New(errors.Internal, "no schema validator configured", nil)
	}
	return v.schemaValidator.Validate(v.instance, v.SchemaLocationString())
}

// SchemaLocationString concatenates "<namespace> <schemaFileName>" pairs for
// the instance namespace and every additional namespace backed by a schema.
func (v *Validator) SchemaLocationString() string {
	var parts []string
	if s := v.instance.SchemaForURI(v.instance.InstanceNamespace().URI); s != nil {
		parts = append(parts, v.instance.InstanceNamespace().URI, s.Name)
	}
	for _, ns := range v.instance.AdditionalNamespaces() {
		if s := v.instance.SchemaForURI(ns.URI); s != nil {
			parts = append(parts, ns.URI, s.Name)
		}
	}
	return strings.Join(parts, " ")
}

// ValidateFact checks one fact against the calculation networks of the first
// taxonomy set (in instance order) declaring its concept; later sets that
// declare the same concept are not checked.
func (v *Validator) ValidateFact(f *Fact) error {
	var owner *dts.DTS
	for _, d := range v.instance.DTSSet() {
		if d.ConceptByID(f.Concept.ID) != nil {
			owner = d
			break
		}
	}
	if owner == nil {
		return errors.NewInstanceValidationError(fmt.Sprintf(
			"no taxonomy schema found for fact %s in instance %s", f.Concept.Name, v.instance.FileName))
	}

	calc := owner.CalculationLinkbase()
	if calc == nil {
		return nil
	}

	for _, elr := range calc.ExtendedLinkRoles() {
		rules := calc.Calculations(f.Concept, elr)
		if len(rules) == 0 {
			continue
		}

		expected, err := v.parseValue(f.Value)
		if err != nil {
			return errors.NewInstanceValidationError(fmt.Sprintf(
				"fact %s has non-numeric value %q", f.Concept.Name, f.Value))
		}

		computed := new(big.Rat)
		var summands []*taxonomy.Concept
		for summand, weight := range rules {
			summands = append(summands, summand)
			g := v.instance.Fact(summand, f.Context)
			if g == nil {
				return &CalculationError{
					Kind:             MissingValues,
					DTS:              owner,
					ExtendedLinkRole: elr,
					MissingConcept:   summand,
				}
			}
			value, err := v.parseValue(g.Value)
			if err != nil {
				return errors.NewInstanceValidationError(fmt.Sprintf(
					"fact %s has non-numeric value %q", summand.Name, g.Value))
			}
			computed.Add(computed, value.Mul(value, v.weightRat(weight)))
		}

		if expected.Cmp(computed) != 0 {
			v.logger.Warn("calculation mismatch", map[string]interface{}{
				"concept":  f.Concept.Name,
				"expected": expected.RatString(),
				"computed": computed.RatString(),
				"linkRole": elr,
			})
			return &CalculationError{
				Kind:             CalculationMismatch,
				DTS:              owner,
				ExtendedLinkRole: elr,
				Expected:         expected,
				Computed:         computed,
				Summands:         summands,
			}
		}
	}
	return nil
}

// parseValue parses a lexical decimal, normalizing a decimal comma. In
// Float32Compat mode the value is routed through float32 first, reproducing
// the binary rounding of older processors.
func (v *Validator) parseValue(s string) (*big.Rat, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if v.Float32Compat {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, err
		}
		rat, _ := new(big.Float).SetFloat64(float64(float32(f))).Rat(nil)
		return rat, nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	return r, nil
}

func (v *Validator) weightRat(weight float64) *big.Rat {
	if v.Float32Compat {
		rat, _ := new(big.Float).SetFloat64(float64(float32(weight))).Rat(nil)
		return rat
	}
	return new(big.Rat).SetFloat64(weight)
}
