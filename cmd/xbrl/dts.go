package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"xbrlcore/internal/dts"
	"xbrlcore/internal/logging"
	"xbrlcore/internal/storage"
)

var (
	dtsNoCache bool
)

// dtsSummary is the cacheable digest of a built DTS shown by `xbrl dts`.
type dtsSummary struct {
	Root       string   `json:"root"`
	Schemas    []string `json:"schemas"`
	Concepts   int      `json:"concepts"`
	Hypercubes int      `json:"hypercubes"`
	Dimensions int      `json:"dimensions"`
	LinkRoles  struct {
		Presentation []string `json:"presentation,omitempty"`
		Definition   []string `json:"definition,omitempty"`
		Calculation  []string `json:"calculation,omitempty"`
		Label        []string `json:"label,omitempty"`
	} `json:"linkRoles"`
}

var dtsCmd = &cobra.Command{
	Use:   "dts <schema.xsd | taxonomy-name>",
	Short: "Build a discoverable taxonomy set and print its summary",
	Long: `Builds the DTS rooted at the given schema (or at a taxonomy declared in
TAXONOMIES.toml) and prints what was discovered: schemas, concepts,
link roles, hypercubes and dimensions.

Summaries are cached in the SQLite cache configured in .xbrl/config.json.

Examples:
  xbrl dts taxonomy/t.xsd
  xbrl dts balance-sheet       # name from TAXONOMIES.toml
  xbrl dts --no-cache taxonomy/t.xsd`,
	Args: cobra.ExactArgs(1),
	RunE: runDTS,
}

func init() {
	dtsCmd.Flags().BoolVar(&dtsNoCache, "no-cache", false, "Bypass the DTS summary cache")
	rootCmd.AddCommand(dtsCmd)
}

func runDTS(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := buildLogger(cfg)
	schemaPath := resolveSchemaPath(args[0])

	var cache *storage.Cache
	var fingerprint string
	if cfg.Cache.Enabled && !dtsNoCache {
		if db, err := storage.Open(cfg.Cache.Path, logger); err == nil {
			defer db.Close()
			cache = storage.NewCache(db)
			if fp, err := storage.Fingerprint([]string{schemaPath}); err == nil {
				fingerprint = fp
				if payload, ok, err := cache.Get(schemaPath, fp); err == nil && ok {
					var summary dtsSummary
					if json.Unmarshal(payload, &summary) == nil {
						printSummary(&summary, true)
						return nil
					}
				}
			}
		} else {
			logger.Warn("cache unavailable", logging.ErrorFields(err))
		}
	}

	builder := dts.NewBuilder(logger)
	builder.StrictPresentationParents = cfg.Presentation.StrictParents
	d, err := builder.Build(schemaPath)
	if err != nil {
		return err
	}

	summary := summarize(d)
	if cache != nil && fingerprint != "" {
		if payload, err := json.Marshal(summary); err == nil {
			ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
			if err := cache.Put(schemaPath, fingerprint, payload, ttl); err != nil {
				logger.Warn("cache write failed", logging.ErrorFields(err))
			}
		}
	}
	printSummary(summary, false)
	return nil
}

func summarize(d *dts.DTS) *dtsSummary {
	s := &dtsSummary{
		Root:     d.TopTaxonomy().Name,
		Concepts: d.NumConcepts(),
	}
	for _, schema := range d.Schemas() {
		s.Schemas = append(s.Schemas, schema.Name)
	}
	s.Hypercubes = len(d.DefinitionLinkbase().Hypercubes())
	s.Dimensions = len(d.DefinitionLinkbase().DimensionConcepts())
	s.LinkRoles.Presentation = d.PresentationLinkbase().ExtendedLinkRoles()
	s.LinkRoles.Definition = d.DefinitionLinkbase().ExtendedLinkRoles()
	s.LinkRoles.Calculation = d.CalculationLinkbase().ExtendedLinkRoles()
	s.LinkRoles.Label = d.LabelLinkbase().ExtendedLinkRoles()
	return s
}

func printSummary(s *dtsSummary, cached bool) {
	w := os.Stdout
	if cached {
		fmt.Fprintf(w, "DTS %s (cached)\n", s.Root)
	} else {
		fmt.Fprintf(w, "DTS %s\n", s.Root)
	}
	fmt.Fprintf(w, "  schemas:    %d\n", len(s.Schemas))
	for _, name := range s.Schemas {
		fmt.Fprintf(w, "    %s\n", name)
	}
	fmt.Fprintf(w, "  concepts:   %d\n", s.Concepts)
	fmt.Fprintf(w, "  hypercubes: %d\n", s.Hypercubes)
	fmt.Fprintf(w, "  dimensions: %d\n", s.Dimensions)
	printRoles := func(kind string, roles []string) {
		if len(roles) == 0 {
			return
		}
		fmt.Fprintf(w, "  %s link roles:\n", kind)
		for _, r := range roles {
			fmt.Fprintf(w, "    %s\n", r)
		}
	}
	printRoles("presentation", s.LinkRoles.Presentation)
	printRoles("definition", s.LinkRoles.Definition)
	printRoles("calculation", s.LinkRoles.Calculation)
	printRoles("label", s.LinkRoles.Label)
}
