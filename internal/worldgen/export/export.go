// Package export builds the JSON-serializable boundary record describing a
// finished (or in-progress) generation run. No raster output is produced
// here; image rendering is out of scope for this module.
package export

import (
	"time"

	"github.com/google/uuid"

	"worldgen-engine/internal/worldgen/state"
)

// Metadata is the boundary contract other services consume after a
// generation run: enough to identify the run and verify its output without
// re-deriving any grid.
type Metadata struct {
	RunID          uuid.UUID          `json:"run_id"`
	Seed           uint64             `json:"seed"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	CurrentStep    string             `json:"current_step"`
	TimingsMs      map[string]float64 `json:"timings_ms"`
	Checksum       string             `json:"checksum"`
	LayerHashes    map[string]string  `json:"layer_hashes"`
	TimestampUnixS int64              `json:"timestamp_unix_s"`
}

// BuildMetadata snapshots w into a Metadata record for run id.
func BuildMetadata(runID uuid.UUID, w *state.World, now time.Time) Metadata {
	timings := make(map[string]float64, len(w.StepTimingsMs))
	for step, ms := range w.StepTimingsMs {
		timings[step.String()] = ms
	}

	layerHashes := make(map[string]string, len(w.Diagnostics.LayerHashes))
	for name, hash := range w.Diagnostics.LayerHashes {
		layerHashes[name] = hash
	}

	return Metadata{
		RunID:          runID,
		Seed:           w.Params.Seed,
		Width:          w.Width,
		Height:         w.Height,
		CurrentStep:    w.CurrentStep.String(),
		TimingsMs:      timings,
		Checksum:       w.Diagnostics.Checksum,
		LayerHashes:    layerHashes,
		TimestampUnixS: now.Unix(),
	}
}
