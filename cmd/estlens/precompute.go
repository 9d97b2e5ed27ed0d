package main

import (
	"fmt"

	"estlens/internal/aggregate"
	"estlens/internal/config"
	"estlens/internal/errors"
	"estlens/internal/ingest"
	"estlens/internal/logging"
	"estlens/internal/model"
	"estlens/internal/names"
	"estlens/internal/output"
	"estlens/internal/report"
	"estlens/internal/storage"

	"github.com/spf13/cobra"
)

var (
	precomputeInputDir string
	precomputeOutDir   string
	precomputeSource   string
	precomputePretty   bool
	precomputeCompress bool
	precomputeFormat   string
)

var precomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Generate the report artifacts from the input snapshot",
	Long: `Loads the historical estimate snapshot, builds the six report artifacts, and
writes them to the output directory together with a run manifest. The run is
stateless and deterministic: the same input produces byte-identical artifacts.`,
	RunE: runPrecompute,
}

func init() {
	precomputeCmd.Flags().StringVar(&precomputeInputDir, "input-dir", "",
		"Directory containing the input JSON files (default: inputs.dir from config)")
	precomputeCmd.Flags().StringVar(&precomputeOutDir, "out-dir", "",
		"Artifact output directory (default: output.dir from config)")
	precomputeCmd.Flags().StringVar(&precomputeSource, "source", "",
		"Snapshot source: json or sqlite (default: inputs.source from config)")
	precomputeCmd.Flags().BoolVar(&precomputePretty, "pretty", false,
		"Indent the artifact JSON")
	precomputeCmd.Flags().BoolVar(&precomputeCompress, "compress", false,
		"Write artifacts gzipped with a .gz suffix")
	precomputeCmd.Flags().StringVar(&precomputeFormat, "format", "",
		"Log format: human or json (default: logging.format from config)")
	rootCmd.AddCommand(precomputeCmd)
}

func runPrecompute(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		return err
	}
	applyPrecomputeFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	snap, err := loadSnapshot(cfg, logger)
	if err != nil {
		return err
	}

	canon, err := buildCanonicalizer(cfg)
	if err != nil {
		return err
	}
	ranges, err := buildRanges(cfg)
	if err != nil {
		return err
	}

	gen := report.NewGenerator(canon, ranges, logger)
	artifacts := gen.Generate(snap)

	writer := output.NewWriter(cfg.Output.Dir, cfg.Output.Pretty, cfg.Output.Compress)
	manifest, err := gen.WriteArtifacts(writer, artifacts)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d artifacts to %s (run %s)\n",
		len(manifest.Artifacts), cfg.Output.Dir, manifest.RunID)
	return nil
}

// applyPrecomputeFlags layers the CLI flags over the loaded config. Flags
// win; unset flags leave the config value alone.
func applyPrecomputeFlags(cfg *config.Config) {
	if precomputeInputDir != "" {
		cfg.Inputs.Dir = precomputeInputDir
	}
	if precomputeOutDir != "" {
		cfg.Output.Dir = precomputeOutDir
	}
	if precomputeSource != "" {
		cfg.Inputs.Source = precomputeSource
	}
	if precomputePretty {
		cfg.Output.Pretty = true
	}
	if precomputeCompress {
		cfg.Output.Compress = true
	}
	if precomputeFormat != "" {
		cfg.Logging.Format = precomputeFormat
	}
}

func loadSnapshot(cfg *config.Config, logger *logging.Logger) (*model.Snapshot, error) {
	switch cfg.Inputs.Source {
	case "json":
		loader := ingest.NewLoader(cfg.Inputs.Dir, cfg.Inputs.MasterIndex, cfg.Inputs.RateCard)
		return loader.LoadSnapshot()
	case "sqlite":
		db, err := storage.Open(rootFlag, logger)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadSnapshot()
	default:
		return nil, errors.New(errors.ConfigInvalid,
			fmt.Sprintf("unknown snapshot source %q", cfg.Inputs.Source), nil)
	}
}

func buildCanonicalizer(cfg *config.Config) (*names.Canonicalizer, error) {
	if cfg.Aliases.Path == "" {
		return names.New(names.DefaultTable()), nil
	}
	table, err := names.LoadTable(cfg.Aliases.Path)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "unable to load alias table", err)
	}
	return names.New(table), nil
}

func buildRanges(cfg *config.Config) ([]aggregate.Range, error) {
	if cfg.Histogram.RangesPath == "" {
		return aggregate.DefaultRanges(), nil
	}
	ranges, err := aggregate.LoadRanges(cfg.Histogram.RangesPath)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "unable to load histogram ranges", err)
	}
	return ranges, nil
}
