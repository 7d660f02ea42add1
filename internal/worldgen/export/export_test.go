package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/pipeline"
	"worldgen-engine/internal/worldgen/state"
)

func TestBuildMetadataRoundTripsThroughJSON(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	w := state.New(p)
	pipeline.RunAllSteps(w, p)

	runID := uuid.New()
	now := time.Unix(1700000000, 0)
	meta := BuildMetadata(runID, w, now)

	assert.Equal(t, runID, meta.RunID)
	assert.Equal(t, p.Seed, meta.Seed)
	assert.Equal(t, 256, meta.Width)
	assert.Equal(t, "geology", meta.CurrentStep)
	assert.NotEmpty(t, meta.Checksum)
	assert.Equal(t, int64(1700000000), meta.TimestampUnixS)

	raw, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, meta.Checksum, decoded.Checksum)
	assert.Equal(t, meta.RunID, decoded.RunID)
}

func TestBuildMetadataIncludesAllStepTimings(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	w := state.New(p)
	pipeline.RunAllSteps(w, p)

	meta := BuildMetadata(uuid.New(), w, time.Now())
	for _, step := range state.AllSteps {
		_, ok := meta.TimingsMs[step.String()]
		assert.True(t, ok, "missing timing for %s", step.String())
	}
}
