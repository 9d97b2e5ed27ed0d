package main

import (
	"fmt"

	"estlens/internal/config"
	"estlens/internal/ingest"
	"estlens/internal/storage"

	"github.com/spf13/cobra"
)

var (
	importInputDir string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the extraction pipeline's JSON files into the snapshot store",
	Long: `Reads the enriched master index and rate card master from the input directory
and replaces the contents of the local SQLite snapshot store. Subsequent
'estlens precompute --source sqlite' runs read from the store instead of the
JSON files.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importInputDir, "input-dir", "",
		"Directory containing the input JSON files (default: inputs.dir from config)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	inputDir := cfg.Inputs.Dir
	if importInputDir != "" {
		inputDir = importInputDir
	}

	loader := ingest.NewLoader(inputDir, cfg.Inputs.MasterIndex, cfg.Inputs.RateCard)
	snap, err := loader.LoadSnapshot()
	if err != nil {
		return err
	}

	db, err := storage.Open(rootFlag, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ImportSnapshot(snap); err != nil {
		return err
	}

	fmt.Printf("Imported %d events and %d rate card roles into %s\n",
		len(snap.Events), len(snap.RateCard), db.Path())
	return nil
}
