// Package hydrofinal implements Stage 4: ocean connected-component
// detection, river classification by discharge, and strict local-pit lake
// identification via bounded flood fill.
package hydrofinal

import (
	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

var dirs8 = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const maxLakeCells = 6000

// Run executes Stage 4 against w using p.
func Run(w *state.World, p params.GenerationParams) {
	markOceanComponent(w, p.Base.SeaLevel)

	w.RiverClass.Fill(state.RiverNone)
	w.LakeID.Fill(0)

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.OceanMask.Get(x, y) {
				continue
			}
			q := w.Discharge.Get(x, y)
			switch {
			case q >= p.Hydro.MajorThreshold:
				w.RiverClass.Set(x, y, state.RiverMajor)
			case q >= p.Hydro.PerennialThreshold:
				w.RiverClass.Set(x, y, state.RiverPerennial)
			case q >= p.Hydro.EphemeralThreshold:
				w.RiverClass.Set(x, y, state.RiverEphemeral)
			default:
				w.RiverClass.Set(x, y, state.RiverNone)
			}
		}
	}

	identifyLakes(w, p.Base.SeaLevel)
}

type coord struct{ x, y int }

func markOceanComponent(w *state.World, seaLevel float64) {
	w.OceanMask.Fill(false)

	var queue []coord
	for x := 0; x < w.Width; x++ {
		queue = append(queue, coord{x, 0}, coord{x, w.Height - 1})
	}
	for y := 0; y < w.Height; y++ {
		queue = append(queue, coord{0, y}, coord{w.Width - 1, y})
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if w.OceanMask.Get(c.x, c.y) {
			continue
		}
		if w.Elevation.Get(c.x, c.y) > seaLevel {
			continue
		}
		w.OceanMask.Set(c.x, c.y, true)

		for _, d := range dirs8 {
			nx, ny := c.x+d[0], c.y+d[1]
			if w.OceanMask.InBounds(nx, ny) {
				queue = append(queue, coord{nx, ny})
			}
		}
	}
}

func identifyLakes(w *state.World, seaLevel float64) {
	nextLakeID := uint32(1)

	for y := 1; y < w.Height-1; y++ {
		for x := 1; x < w.Width-1; x++ {
			if w.OceanMask.Get(x, y) || w.LakeID.Get(x, y) != 0 {
				continue
			}
			elev := w.Elevation.Get(x, y)
			if elev <= seaLevel {
				continue
			}
			if !isStrictLocalPit(w, x, y, elev) {
				continue
			}
			if w.Accumulation.Get(x, y) < 8.0 {
				continue
			}

			relief := localRelief(w, x, y)
			maxLevel := elev + minFloat(0.008, 0.001+relief*0.3)

			if floodLakeBasin(w, x, y, nextLakeID, maxLevel, maxLakeCells) {
				if nextLakeID < ^uint32(0) {
					nextLakeID++
				}
			}
		}
	}
}

func isStrictLocalPit(w *state.World, x, y int, elev float64) bool {
	const eps = 1e-4
	for _, d := range dirs8 {
		nh := w.Elevation.Get(x+d[0], y+d[1])
		if nh <= elev+eps {
			return false
		}
	}
	return true
}

func localRelief(w *state.World, x, y int) float64 {
	elev := w.Elevation.Get(x, y)
	minH, maxH := elev, elev
	for _, d := range dirs8 {
		nh := w.Elevation.Get(x+d[0], y+d[1])
		if nh < minH {
			minH = nh
		}
		if nh > maxH {
			maxH = nh
		}
	}
	return maxH - minH
}

func floodLakeBasin(w *state.World, sx, sy int, lakeID uint32, maxLevel float64, maxCells int) bool {
	queue := []coord{{sx, sy}}
	var cells []coord
	touchesEdge := false

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		x, y := c.x, c.y

		if w.OceanMask.Get(x, y) || w.LakeID.Get(x, y) == lakeID {
			continue
		}
		if w.Elevation.Get(x, y) > maxLevel {
			continue
		}
		if existing := w.LakeID.Get(x, y); existing != 0 {
			touchesEdge = true
			continue
		}
		if x == 0 || y == 0 || x+1 == w.Width || y+1 == w.Height {
			touchesEdge = true
		}

		w.LakeID.Set(x, y, lakeID)
		cells = append(cells, c)
		if len(cells) > maxCells {
			touchesEdge = true
			break
		}

		for _, d := range dirs8 {
			nx, ny := x+d[0], y+d[1]
			if w.Elevation.InBounds(nx, ny) {
				queue = append(queue, coord{nx, ny})
			}
		}
	}

	if touchesEdge {
		for _, c := range cells {
			w.LakeID.Set(c.x, c.y, 0)
		}
		return false
	}
	return true
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
