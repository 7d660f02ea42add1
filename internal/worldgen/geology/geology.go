// Package geology implements Stage 5: tectonic province tagging, per-cell
// strata stacks with fault-induced swaps, and mineral scoring.
package geology

import (
	"worldgen-engine/internal/rng"
	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

// Run executes Stage 5 against w using p.
func Run(w *state.World, p params.GenerationParams) {
	assignProvinces(w, p)
	assignStrataAndRock(w, p)
	assignMinerals(w, p)
}

func assignProvinces(w *state.World, p params.GenerationParams) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			elev := w.Elevation.Get(x, y)
			slope := localSlope(w, x, y)
			noise := rng.Hash2D(p.Seed^0xABCDEF01, int32(x), int32(y))

			var province state.GeologicProvince
			switch {
			case w.OceanMask.Get(x, y):
				province = state.ProvinceOceanic
			case slope > 0.03 && elev > p.Base.SeaLevel+0.2:
				if noise > 0.72 {
					province = state.ProvinceVolcanicArc
				} else {
					province = state.ProvinceOrogen
				}
			case elev < p.Base.SeaLevel+0.07:
				province = state.ProvinceBasin
			default:
				province = state.ProvinceCraton
			}
			w.GeologicProvince.Set(x, y, province)
		}
	}
}

func assignStrataAndRock(w *state.World, p params.GenerationParams) {
	layers := int(p.Geology.StrataLayers)
	if layers < 3 {
		layers = 3
	}

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			province := w.GeologicProvince.Get(x, y)
			w.RockType.Set(x, y, baseRock(province))

			stack := make([]state.StrataLayer, 0, layers)
			for l := 0; l < layers; l++ {
				n := rng.Hash2D(p.Seed^0x55115511^uint64(l), int32(x), int32(y))
				thickness := 8.0 + n*28.0
				rock := layerRock(province, l, n)
				stack = append(stack, state.StrataLayer{Rock: rock, Thickness: thickness})
			}

			if p.Geology.FaultStrength > 0 {
				fault := rng.Hash2D(p.Seed^0xDEADBEEF, int32(x), int32(y))
				if fault > 1.0-p.Geology.FaultStrength*0.12 && len(stack) > 1 {
					stack[0], stack[1] = stack[1], stack[0]
				}
			}

			w.Strata.Set(x, y, stack)
		}
	}
}

func assignMinerals(w *state.World, p params.GenerationParams) {
	for _, g := range w.MineralMasks {
		g.Fill(false)
	}

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			province := w.GeologicProvince.Get(x, y)
			rock := w.RockType.Get(x, y)

			for _, m := range state.AllMinerals {
				score := mineralScore(p.Seed, x, y, m, rock, province)
				threshold := baseThreshold(m) - p.Geology.OreRichness*0.25
				if score > threshold {
					w.MineralMasks[m.Key()].Set(x, y, true)
				}
			}
		}
	}
}

func baseRock(province state.GeologicProvince) state.RockType {
	switch province {
	case state.ProvinceOceanic:
		return state.RockBasalt
	case state.ProvinceCraton:
		return state.RockGranite
	case state.ProvinceOrogen:
		return state.RockSchist
	case state.ProvinceBasin:
		return state.RockShale
	case state.ProvinceVolcanicArc:
		return state.RockRhyolite
	default:
		return state.RockGranite
	}
}

func layerRock(province state.GeologicProvince, layer int, n float64) state.RockType {
	switch province {
	case state.ProvinceOceanic:
		if layer == 0 || n > 0.6 {
			return state.RockBasalt
		}
		return state.RockGabbro
	case state.ProvinceCraton:
		switch {
		case layer%3 == 0:
			return state.RockGranite
		case n > 0.66:
			return state.RockGneiss
		default:
			return state.RockSandstone
		}
	case state.ProvinceOrogen:
		if n > 0.52 {
			return state.RockSchist
		}
		return state.RockGneiss
	case state.ProvinceBasin:
		switch {
		case n > 0.6:
			return state.RockLimestone
		case n > 0.25:
			return state.RockShale
		default:
			return state.RockSandstone
		}
	case state.ProvinceVolcanicArc:
		if n > 0.55 {
			return state.RockRhyolite
		}
		return state.RockBasalt
	default:
		return state.RockGranite
	}
}

func baseThreshold(m state.Mineral) float64 {
	switch m {
	case state.MineralIron:
		return 0.72
	case state.MineralCopper:
		return 0.78
	case state.MineralGold:
		return 0.9
	case state.MineralTin:
		return 0.82
	case state.MineralCoal:
		return 0.74
	case state.MineralGem:
		return 0.94
	default:
		return 1.0
	}
}

func mineralScore(seed uint64, x, y int, m state.Mineral, rock state.RockType, province state.GeologicProvince) float64 {
	n := rng.Hash2D(seed^(uint64(m.AsU8())<<32), int32(x), int32(y))

	hostBonus := 0.0
	switch {
	case m == state.MineralIron && (rock == state.RockBasalt || rock == state.RockGabbro):
		hostBonus = 0.16
	case m == state.MineralCopper && (rock == state.RockRhyolite || rock == state.RockBasalt):
		hostBonus = 0.18
	case m == state.MineralGold && (rock == state.RockSchist || rock == state.RockGneiss):
		hostBonus = 0.17
	case m == state.MineralTin && rock == state.RockGranite:
		hostBonus = 0.14
	case m == state.MineralCoal && (rock == state.RockShale || rock == state.RockSandstone):
		hostBonus = 0.2
	case m == state.MineralGem && (rock == state.RockSchist || rock == state.RockGneiss || rock == state.RockRhyolite):
		hostBonus = 0.12
	}

	provinceBonus := 0.0
	switch {
	case m == state.MineralIron && (province == state.ProvinceOceanic || province == state.ProvinceVolcanicArc):
		provinceBonus = 0.12
	case m == state.MineralCopper && province == state.ProvinceVolcanicArc:
		provinceBonus = 0.13
	case m == state.MineralGold && province == state.ProvinceOrogen:
		provinceBonus = 0.14
	case m == state.MineralTin && province == state.ProvinceCraton:
		provinceBonus = 0.1
	case m == state.MineralCoal && province == state.ProvinceBasin:
		provinceBonus = 0.16
	case m == state.MineralGem && province == state.ProvinceOrogen:
		provinceBonus = 0.1
	}

	return clamp(n+hostBonus+provinceBonus, 0, 1)
}

func localSlope(w *state.World, x, y int) float64 {
	h := w.Elevation.Get(x, y)
	maxDiff := 0.0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !w.Elevation.InBounds(nx, ny) {
				continue
			}
			nh := w.Elevation.Get(nx, ny)
			diff := h - nh
			if diff < 0 {
				diff = -diff
			}
			if diff > maxDiff {
				maxDiff = diff
			}
		}
	}
	return maxDiff
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
