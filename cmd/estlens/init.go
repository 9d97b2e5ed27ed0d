package main

import (
	"fmt"
	"os"
	"path/filepath"

	"estlens/internal/config"
	"estlens/internal/errors"

	"github.com/spf13/cobra"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize estlens configuration",
	Long:  "Creates a .estlens/ directory with default configuration under the project root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Force reinitialization (removes existing .estlens directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := filepath.Join(rootFlag, ".estlens")
	if _, statErr := os.Stat(dir); statErr == nil {
		if !initForce {
			// Idempotent: already initialized is success.
			fmt.Println("estlens already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(dir, "config.json"))
			fmt.Println("\nRun 'estlens init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			return errors.New(errors.InternalError, "unable to remove existing .estlens directory", removeErr)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(rootFlag); err != nil {
		return errors.New(errors.InternalError, "unable to write config file", err)
	}

	fmt.Println("estlens initialized.")
	fmt.Printf("Configuration written to: %s\n", filepath.Join(dir, "config.json"))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Point inputs.dir at the extraction pipeline output")
	fmt.Println("  2. Run 'estlens precompute' to generate the report artifacts")
	return nil
}
