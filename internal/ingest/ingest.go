// Package ingest loads the input snapshot from the extraction pipeline's
// JSON files. A missing input is fatal and names the file; the pipeline
// never produces partial output from an incomplete snapshot.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"estlens/internal/errors"
	"estlens/internal/model"
)

// Loader reads snapshot inputs from a directory.
type Loader struct {
	dir         string
	masterIndex string
	rateCard    string
}

// NewLoader creates a Loader for dir using the given input filenames.
func NewLoader(dir, masterIndex, rateCard string) *Loader {
	return &Loader{dir: dir, masterIndex: masterIndex, rateCard: rateCard}
}

// LoadSnapshot reads both input collections. It fails fast with
// INPUT_MISSING when either file cannot be located, before any aggregation
// begins.
func (l *Loader) LoadSnapshot() (*model.Snapshot, error) {
	var events []model.EventRecord
	if err := l.readJSON(l.masterIndex, &events); err != nil {
		return nil, err
	}

	var rateCard []model.RateCardRecord
	if err := l.readJSON(l.rateCard, &rateCard); err != nil {
		return nil, err
	}

	return &model.Snapshot{Events: events, RateCard: rateCard}, nil
}

func (l *Loader) readJSON(name string, v interface{}) error {
	path := filepath.Join(l.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.InputMissing,
				fmt.Sprintf("%s not found at %s", name, path), err)
		}
		return errors.New(errors.InputMissing,
			fmt.Sprintf("unable to read %s", path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.New(errors.InputMalformed,
			fmt.Sprintf("unable to decode %s", path), err)
	}
	return nil
}
