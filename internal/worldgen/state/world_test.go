package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldgen-engine/internal/worldgen/params"
)

func TestNewWorldDimensions(t *testing.T) {
	p := params.Default()
	w := New(p)
	assert.Equal(t, 512, w.Width)
	assert.Equal(t, 512, w.Height)
}

func TestNewWorldSentinels(t *testing.T) {
	p := params.Default()
	p.Size = params.Size256
	w := New(p)

	require.Equal(t, FlowDirNone, w.FlowDir.Get(10, 10))
	require.Equal(t, BiomeOcean, w.Biome.Get(0, 0))
	require.Equal(t, RockGranite, w.RockType.Get(5, 5))
	require.Equal(t, ProvinceCraton, w.GeologicProvince.Get(0, 0))
	require.Equal(t, uint32(0), w.LakeID.Get(1, 1))
	require.False(t, w.OceanMask.Get(2, 2))
	require.Nil(t, w.Strata.Get(3, 3))
}

func TestNewWorldMineralMasksCoverAllMinerals(t *testing.T) {
	p := params.Default()
	w := New(p)
	assert.Len(t, w.MineralMasks, len(AllMinerals))
	for _, m := range AllMinerals {
		g, ok := w.MineralMasks[m.Key()]
		require.True(t, ok, "missing mineral mask for %s", m.Key())
		assert.False(t, g.Get(0, 0))
	}
}

func TestStepStringOrder(t *testing.T) {
	want := []string{"base_fields", "erosion_hydrology", "biomes", "hydro_finalize", "geology"}
	for i, s := range AllSteps {
		if s.String() != want[i] {
			t.Errorf("AllSteps[%d] = %s, want %s", i, s.String(), want[i])
		}
	}
}

func TestEnumTagValues(t *testing.T) {
	assert.Equal(t, uint8(0), BiomeOcean.AsU8())
	assert.Equal(t, uint8(13), BiomeWetland.AsU8())
	assert.Equal(t, uint8(0), RiverNone.AsU8())
	assert.Equal(t, uint8(3), RiverMajor.AsU8())
	assert.Equal(t, uint8(8), RockRhyolite.AsU8())
	assert.Equal(t, uint8(4), ProvinceVolcanicArc.AsU8())
}
