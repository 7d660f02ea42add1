package biomes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

func TestClassifyOceanTakesPriority(t *testing.T) {
	b := classify(25, 0.9, 0.1, 0.99, 0.5, true)
	assert.Equal(t, state.BiomeOcean, b)
}

func TestClassifyLakeWhenMarked(t *testing.T) {
	b := classify(25, 0.3, 0.6, 0.1, 0.5, true)
	assert.Equal(t, state.BiomeLake, b)
}

func TestClassifyWetlandBeforeAlpine(t *testing.T) {
	// High elevation but also very wet: wetland test runs before the alpine
	// elevation check.
	b := classify(10, 0.9, 0.9, 0.9, 0.5, false)
	assert.Equal(t, state.BiomeWetland, b)
}

func TestClassifyAlpineAboveThreshold(t *testing.T) {
	b := classify(10, 0.1, 0.9, 0.1, 0.5, false)
	assert.Equal(t, state.BiomeAlpine, b)
}

func TestClassifyHotDesert(t *testing.T) {
	b := classify(30, 0.1, 0.6, 0.05, 0.5, false)
	assert.Equal(t, state.BiomeHotDesert, b)
}

func TestClassifyTropicalRainforest(t *testing.T) {
	b := classify(28, 0.7, 0.6, 0.5, 0.5, false)
	assert.Equal(t, state.BiomeTropicalRainforest, b)
}

func TestRunProducesValidBiomeTags(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	w := state.New(p)
	// Populate minimal fields Run depends on.
	for i := range w.Elevation.Slice() {
		w.Elevation.Slice()[i] = 0.6
		w.Rainfall.Slice()[i] = 0.3
		w.Temperature.Slice()[i] = 10
		w.Accumulation.Slice()[i] = 5
	}
	Run(w, p)
	for _, b := range w.Biome.Slice() {
		if b >= state.BiomeCount {
			t.Fatalf("biome tag %d out of range", b)
		}
	}
}

func TestRunLakeNeverAppearsBeforeHydroFinalize(t *testing.T) {
	// On a single base->erosion->biomes pass, lake_id is never written, so
	// Biome.Lake cannot appear. This is an intentional one-pass artifact.
	p := params.Default()
	p.Size = params.Size256
	w := state.New(p)
	for i := range w.Elevation.Slice() {
		w.Elevation.Slice()[i] = 0.6
		w.Accumulation.Slice()[i] = 5
	}
	Run(w, p)
	for _, b := range w.Biome.Slice() {
		assert.NotEqual(t, state.BiomeLake, b)
	}
}
