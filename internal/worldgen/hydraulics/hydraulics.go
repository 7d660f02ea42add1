// Package hydraulics implements Stage 2: depression filling, D8 flow
// routing, multiple-flow-direction accumulation, stream-power erosion, and
// thermal relaxation.
package hydraulics

import (
	"math"
	"sort"

	"worldgen-engine/internal/rng"
	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

// dirs is the canonical 8-neighbor offset order. Flow direction indices
// into the world's FlowDir grid index into this array.
var dirs = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const sqrt2 = math.Sqrt2

// Run executes Stage 2 against w using p.
func Run(w *state.World, p params.GenerationParams) {
	fillDepressions(w, p.Base.SeaLevel)

	for i := 0; i < p.Erosion.Iterations; i++ {
		computeFlowD8(w, p)
		computeAccumulation(w)
		applyHydraulicErosion(w, p)
		applyThermalRelaxation(w, p)
	}

	computeFlowD8(w, p)
	computeAccumulation(w)
}

func fillDepressions(w *state.World, seaLevel float64) {
	const epsilon = 1e-5
	for sweep := 0; sweep < 8; sweep++ {
		changed := false
		for y := 1; y < w.Height-1; y++ {
			for x := 1; x < w.Width-1; x++ {
				cur := w.Elevation.Get(x, y)
				if cur <= seaLevel {
					continue
				}
				minNb := math.Inf(1)
				for _, d := range dirs {
					nb := w.Elevation.Get(x+d[0], y+d[1])
					if nb < minNb {
						minNb = nb
					}
				}
				if cur < minNb {
					w.Elevation.Set(x, y, minNb+epsilon)
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
}

func computeFlowD8(w *state.World, p params.GenerationParams) {
	w.FlowDir.Fill(state.FlowDirNone)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			h := w.Elevation.Get(x, y)
			bestMetric := 0.0
			bestDir := state.FlowDirNone
			bestTie := 0.0

			for i, d := range dirs {
				nx, ny := x+d[0], y+d[1]
				if !w.Elevation.InBounds(nx, ny) {
					continue
				}
				nh := w.Elevation.Get(nx, ny)
				drop := h - nh
				if drop <= 0 {
					continue
				}
				dist := 1.0
				if d[0] != 0 && d[1] != 0 {
					dist = sqrt2
				}
				metric := drop / dist
				tie := rng.Hash2D(p.Seed^0xBADC0FFE, int32(nx)+int32(i), int32(ny)-int32(i))

				if metric > bestMetric+1e-8 || (math.Abs(metric-bestMetric) <= 1e-8 && tie > bestTie) {
					bestMetric = metric
					bestTie = tie
					bestDir = uint8(i)
				}
			}
			w.FlowDir.Set(x, y, bestDir)
		}
	}
}

type flowCell struct {
	x, y int
	elev float64
}

func computeAccumulation(w *state.World) {
	w.Accumulation.Fill(1.0)

	order := make([]flowCell, 0, w.Width*w.Height)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			order = append(order, flowCell{x, y, w.Elevation.Get(x, y)})
		}
	}
	sort.Slice(order, func(i, j int) bool {
		return order[i].elev > order[j].elev
	})

	for _, c := range order {
		x, y := c.x, c.y
		h := w.Elevation.Get(x, y)
		q := w.Accumulation.Get(x, y)

		type target struct {
			x, y int
			w    float64
		}
		var targets []target
		wsum := 0.0
		for _, d := range dirs {
			nx, ny := x+d[0], y+d[1]
			if !w.Elevation.InBounds(nx, ny) {
				continue
			}
			nh := w.Elevation.Get(nx, ny)
			drop := h - nh
			if drop <= 0 {
				continue
			}
			dist := 1.0
			if d[0] != 0 && d[1] != 0 {
				dist = sqrt2
			}
			slope := drop / dist
			weight := math.Pow(slope, 1.15)
			targets = append(targets, target{nx, ny, weight})
			wsum += weight
		}
		if len(targets) == 0 || wsum <= 0 {
			continue
		}
		for _, t := range targets {
			frac := t.w / wsum
			w.Accumulation.Set(t.x, t.y, w.Accumulation.Get(t.x, t.y)+q*frac)
		}
	}

	w.Discharge.CopyFrom(w.Accumulation)
}

func applyHydraulicErosion(w *state.World, p params.GenerationParams) {
	delta := make([]float64, w.Width*w.Height)

	for y := 1; y < w.Height-1; y++ {
		for x := 1; x < w.Width-1; x++ {
			dir := w.FlowDir.Get(x, y)
			if dir == state.FlowDirNone {
				continue
			}
			h := w.Elevation.Get(x, y)
			d := dirs[dir]
			nx, ny := x+d[0], y+d[1]
			nh := w.Elevation.Get(nx, ny)
			slope := math.Max(0, h-nh)
			if slope < p.Erosion.MinSlope {
				continue
			}

			idx := w.Elevation.Idx(x, y)
			nidx := w.Elevation.Idx(nx, ny)

			q := w.Discharge.Get(x, y)
			streamPower := math.Sqrt(q) * slope
			capacity := streamPower * 0.08
			sediment := w.Rainfall.Get(x, y) * 0.4

			if sediment < capacity {
				erode := (capacity - sediment) * p.Erosion.ErosionRate
				delta[idx] -= erode
				delta[nidx] += erode * p.Erosion.DepositionRate
			} else {
				deposit := (sediment - capacity) * p.Erosion.DepositionRate
				delta[idx] += deposit
			}
		}
	}

	slice := w.Elevation.Slice()
	for i, v := range slice {
		nv := v + delta[i]
		if nv < 0 {
			nv = 0
		} else if nv > 1 {
			nv = 1
		}
		slice[i] = nv
	}
}

func applyThermalRelaxation(w *state.World, p params.GenerationParams) {
	out := w.Elevation.Clone()
	for y := 1; y < w.Height-1; y++ {
		for x := 1; x < w.Width-1; x++ {
			h := w.Elevation.Get(x, y)
			sum := 0.0
			for _, d := range dirs {
				sum += w.Elevation.Get(x+d[0], y+d[1])
			}
			avg := sum / 8
			relaxed := h + (avg-h)*p.Erosion.ThermalRate
			out.Set(x, y, relaxed)
		}
	}
	w.Elevation = out
}
