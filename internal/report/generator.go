package report

import (
	"time"

	"github.com/google/uuid"

	"estlens/internal/aggregate"
	"estlens/internal/errors"
	"estlens/internal/logging"
	"estlens/internal/model"
	"estlens/internal/names"
	"estlens/internal/output"
	"estlens/internal/version"
)

// Artifact filenames, as consumed by the dashboard.
const (
	ExecutiveFile = "executive-summary.json"
	CostsFile     = "cost-analysis.json"
	VarianceFile  = "variance-analysis.json"
	ManagersFile  = "manager-performance.json"
	RateCardFile  = "rate-card-digest.json"
	AIContextFile = "ai-context.json"
	ManifestFile  = "manifest.json"
)

// Artifacts holds the six generated reports for one snapshot.
type Artifacts struct {
	Executive ExecutiveSummary
	Costs     CostAnalysis
	Variance  VarianceAnalysis
	Managers  ManagerPerformance
	RateCard  RateCardDigest
	AIContext AIContext
}

// ArtifactFile records one written artifact in the manifest.
type ArtifactFile struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// Manifest describes one generation run. It is the only output carrying the
// run ID and timestamp; the artifacts themselves stay byte-identical across
// re-runs over the same input.
type Manifest struct {
	RunID       string         `json:"runId"`
	GeneratedAt string         `json:"generatedAt"`
	Version     string         `json:"version"`
	Artifacts   []ArtifactFile `json:"artifacts"`
}

// Generator builds all artifacts from a snapshot. It is stateless across
// runs; the canonicalizer and histogram ranges are fixed at construction.
type Generator struct {
	canon  *names.Canonicalizer
	ranges []aggregate.Range
	logger *logging.Logger
}

// NewGenerator creates a Generator. A nil canonicalizer falls back to the
// built-in alias table, nil ranges to the default histogram buckets.
func NewGenerator(canon *names.Canonicalizer, ranges []aggregate.Range, logger *logging.Logger) *Generator {
	if canon == nil {
		canon = names.New(names.DefaultTable())
	}
	if ranges == nil {
		ranges = aggregate.DefaultRanges()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{canon: canon, ranges: ranges, logger: logger}
}

// Generate builds all six artifacts from the snapshot. Each artifact reads
// the snapshot directly, never another artifact's output.
func (g *Generator) Generate(snap *model.Snapshot) *Artifacts {
	start := time.Now()
	artifacts := &Artifacts{
		Executive: buildExecutiveSummary(snap.Events),
		Costs:     buildCostAnalysis(snap.Events, g.ranges),
		Variance:  buildVarianceAnalysis(snap.Events),
		Managers:  buildManagerPerformance(snap.Events, g.canon),
		RateCard:  buildRateCardDigest(snap.RateCard),
		AIContext: buildAIContext(snap.Events, snap.RateCard),
	}
	g.logger.Info("Artifacts generated", map[string]interface{}{
		"events":     len(snap.Events),
		"rate_roles": len(snap.RateCard),
		"duration":   time.Since(start).String(),
	})
	return artifacts
}

// WriteArtifacts writes the six artifacts plus the manifest through w and
// returns the manifest.
func (g *Generator) WriteArtifacts(w *output.Writer, artifacts *Artifacts) (*Manifest, error) {
	manifest := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
	}

	files := []struct {
		name string
		data interface{}
	}{
		{ExecutiveFile, artifacts.Executive},
		{CostsFile, artifacts.Costs},
		{VarianceFile, artifacts.Variance},
		{ManagersFile, artifacts.Managers},
		{RateCardFile, artifacts.RateCard},
		{AIContextFile, artifacts.AIContext},
	}
	for _, f := range files {
		n, err := w.Write(f.name, f.data)
		if err != nil {
			return nil, errors.New(errors.WriteFailed, "unable to write "+f.name, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, ArtifactFile{Name: f.name, Bytes: n})
		g.logger.Debug("Artifact written", map[string]interface{}{
			"file":  f.name,
			"bytes": n,
		})
	}

	if _, err := w.Write(ManifestFile, manifest); err != nil {
		return nil, errors.New(errors.WriteFailed, "unable to write "+ManifestFile, err)
	}
	g.logger.Info("Run recorded", map[string]interface{}{
		"run_id":    manifest.RunID,
		"artifacts": len(manifest.Artifacts),
	})
	return manifest, nil
}
