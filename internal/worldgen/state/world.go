// Package state defines the world's data model: the typed layer grids a
// generation run populates, plus the enums and aggregates those grids are
// built from.
package state

import (
	"worldgen-engine/internal/worldgen/grid"
	"worldgen-engine/internal/worldgen/params"
)

// Diagnostics holds the per-layer hashes and combined checksum produced
// after each pipeline step. See internal/worldgen/diagnostics.
type Diagnostics struct {
	LayerHashes map[string]string
	Checksum    string
}

// NewDiagnostics returns a Diagnostics value in its unset state.
func NewDiagnostics() Diagnostics {
	return Diagnostics{
		LayerHashes: make(map[string]string),
		Checksum:    "unset",
	}
}

// World is the full mutable state a generation run builds up across its
// five pipeline stages.
type World struct {
	Width, Height int

	Elevation   *grid.Grid2D[float64]
	Temperature *grid.Grid2D[float64]
	Rainfall    *grid.Grid2D[float64]
	Pressure    *grid.Grid2D[float64]
	WindU       *grid.Grid2D[float64]
	WindV       *grid.Grid2D[float64]

	FlowDir      *grid.Grid2D[uint8]
	Accumulation *grid.Grid2D[float64]
	Discharge    *grid.Grid2D[float64]
	RiverClass   *grid.Grid2D[RiverClass]
	LakeID       *grid.Grid2D[uint32]
	OceanMask    *grid.Grid2D[bool]

	Biome     *grid.Grid2D[Biome]
	Fertility *grid.Grid2D[float64]

	GeologicProvince *grid.Grid2D[GeologicProvince]
	Strata           *grid.Grid2D[[]StrataLayer]
	RockType         *grid.Grid2D[RockType]
	MineralMasks     map[string]*grid.Grid2D[bool]

	CurrentStep    Step
	StepTimingsMs  map[Step]float64
	Params         params.GenerationParams
	Diagnostics    Diagnostics
}

// FlowDirNone is the sentinel flow-direction value meaning "no outflow
// computed yet / cell cannot drain".
const FlowDirNone uint8 = 255

// New allocates a World sized per p.Size and initializes every layer to its
// documented sentinel value.
func New(p params.GenerationParams) *World {
	w, h := p.Size.Dimensions()

	minerals := make(map[string]*grid.Grid2D[bool], len(AllMinerals))
	for _, m := range AllMinerals {
		minerals[m.Key()] = grid.New(w, h, false)
	}

	return &World{
		Width:  w,
		Height: h,

		Elevation:   grid.New(w, h, 0.0),
		Temperature: grid.New(w, h, 0.0),
		Rainfall:    grid.New(w, h, 0.0),
		Pressure:    grid.New(w, h, 0.0),
		WindU:       grid.New(w, h, 0.0),
		WindV:       grid.New(w, h, 0.0),

		FlowDir:      grid.New(w, h, FlowDirNone),
		Accumulation: grid.New(w, h, 0.0),
		Discharge:    grid.New(w, h, 0.0),
		RiverClass:   grid.New(w, h, RiverNone),
		LakeID:       grid.New(w, h, uint32(0)),
		OceanMask:    grid.New(w, h, false),

		Biome:     grid.New(w, h, BiomeOcean),
		Fertility: grid.New(w, h, 0.0),

		GeologicProvince: grid.New(w, h, ProvinceCraton),
		Strata:           grid.New(w, h, []StrataLayer(nil)),
		RockType:         grid.New(w, h, RockGranite),
		MineralMasks:     minerals,

		CurrentStep:   0,
		StepTimingsMs: make(map[Step]float64),
		Params:        p,
		Diagnostics:   NewDiagnostics(),
	}
}
