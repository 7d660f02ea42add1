package geology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

func TestBaseRockPerProvince(t *testing.T) {
	assert.Equal(t, state.RockBasalt, baseRock(state.ProvinceOceanic))
	assert.Equal(t, state.RockGranite, baseRock(state.ProvinceCraton))
	assert.Equal(t, state.RockSchist, baseRock(state.ProvinceOrogen))
	assert.Equal(t, state.RockShale, baseRock(state.ProvinceBasin))
	assert.Equal(t, state.RockRhyolite, baseRock(state.ProvinceVolcanicArc))
}

func TestBaseThresholdOrdering(t *testing.T) {
	assert.Less(t, baseThreshold(state.MineralIron), baseThreshold(state.MineralGem))
}

func TestRunIsDeterministic(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	w1 := state.New(p)
	w2 := state.New(p)
	for i := range w1.Elevation.Slice() {
		w1.Elevation.Slice()[i] = 0.6
		w2.Elevation.Slice()[i] = 0.6
	}
	Run(w1, p)
	Run(w2, p)
	assert.Equal(t, w1.RockType.Slice(), w2.RockType.Slice())
	assert.Equal(t, w1.GeologicProvince.Slice(), w2.GeologicProvince.Slice())
}

func TestStrataLayersMeetMinimum(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	p.Geology.StrataLayers = 2 // below the floor; assignStrataAndRock clamps up to 3
	w := state.New(p)
	Run(w, p)
	stack := w.Strata.Get(10, 10)
	require.GreaterOrEqual(t, len(stack), 3)
}

func TestMineralMasksPopulated(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	p.Geology.OreRichness = 1.0 // lowers thresholds, guaranteeing some hits
	w := state.New(p)
	for i := range w.Elevation.Slice() {
		w.Elevation.Slice()[i] = 0.6
	}
	Run(w, p)

	anySet := false
	for _, g := range w.MineralMasks {
		for _, v := range g.Slice() {
			if v {
				anySet = true
			}
		}
	}
	assert.True(t, anySet, "expected at least one mineral cell with ore_richness=1.0")
}

func TestLocalSlopeZeroOnFlatTerrain(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	w := state.New(p)
	for i := range w.Elevation.Slice() {
		w.Elevation.Slice()[i] = 0.5
	}
	assert.Equal(t, 0.0, localSlope(w, 10, 10))
}
