// Package basefields implements the first pipeline stage: elevation,
// atmosphere (pressure/wind bands), temperature, and moisture transport.
package basefields

import (
	"math"
	"sort"

	"worldgen-engine/internal/rng"
	"worldgen-engine/internal/worldgen/noise"
	"worldgen-engine/internal/worldgen/params"
	"worldgen-engine/internal/worldgen/state"
)

// dirs8 is the canonical 8-neighbor offset order shared by every stage.
var dirs8 = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const moistureIterations = 42

// Run executes Stage 1 against w using p.
func Run(w *state.World, p params.GenerationParams) {
	buildElevationAndAtmosphere(w, p)
	smoothElevation(w, 2)
	rebalanceElevationDistribution(w, p.Base.SeaLevel)
	buildTemperature(w, p)
	simulateMoistureTransport(w, p)
}

func buildElevationAndAtmosphere(w *state.World, p params.GenerationParams) {
	seed := p.Seed
	width, height := float64(w.Width), float64(w.Height)

	for y := 0; y < w.Height; y++ {
		lat := (float64(y) + 0.5) / height
		hadley := math.Sin(lat * math.Pi * 2 * 3)
		pressureBand := clamp(0.5+0.45*hadley, 0, 1)
		zonal := clamp(math.Sin(lat*math.Pi*2*2), -1, 1)
		meridional := sign(0.5-lat) * (1 - math.Abs(zonal)*0.65)

		for x := 0; x < w.Width; x++ {
			nxv := float64(x) / width
			nyv := float64(y) / height

			warpX := noise.FBM(rng.SeedOffset(seed, 101), nxv*0.9, nyv*0.9, 3, p.Base.Frequency*0.65)
			warpY := noise.FBM(rng.SeedOffset(seed, 202), nxv*0.9, nyv*0.9, 3, p.Base.Frequency*0.65)
			wx := nxv + (warpX-0.5)*p.Base.WarpStrength*1.8
			wy := nyv + (warpY-0.5)*p.Base.WarpStrength*1.8

			continental := noise.FBM(rng.SeedOffset(seed, 303), wx, wy, p.Base.Octaves, p.Base.Frequency*1.05)
			macroPlate := noise.FBM(rng.SeedOffset(seed, 404), wx*0.55, wy*0.55, 4, p.Base.Frequency*0.8)
			ridges := noise.RidgedFBM(rng.SeedOffset(seed, 505), wx, wy, 5, p.Base.Frequency*1.1)
			mountainBelts := noise.RidgedFBM(rng.SeedOffset(seed, 606), wx*0.6, wy*0.6, 4, p.Base.Frequency*1.0)
			basin := noise.FBM(rng.SeedOffset(seed, 707), wx*1.4, wy*1.4, 4, p.Base.Frequency*1.25)

			continentality := clamp((continental-0.5)*1.25+(macroPlate-0.5)*0.7+0.5, 0, 1)
			uplift := clamp(math.Pow(0.55*ridges+0.45*mountainBelts, 1.3), 0, 1)

			elev := continentality*0.76 + uplift*0.24 - basin*0.16
			elev = clamp(elev*elev, 0, 1)

			w.Elevation.Set(x, y, elev)
			w.Pressure.Set(x, y, pressureBand)
			w.WindU.Set(x, y, zonal)
			w.WindV.Set(x, y, meridional)
		}
	}
}

func buildTemperature(w *state.World, p params.GenerationParams) {
	height := float64(w.Height)
	for y := 0; y < w.Height; y++ {
		lat := (float64(y) + 0.5) / height
		latFactor := math.Abs(lat-0.5) * 2
		for x := 0; x < w.Width; x++ {
			elev := w.Elevation.Get(x, y)
			oceanic := 0.0
			if elev <= p.Base.SeaLevel {
				oceanic = 1.0
			}
			elevKm := math.Max(0, elev-p.Base.SeaLevel) * 7.5
			baseTempC := 33 - 57*latFactor
			maritime := oceanic * (1 - latFactor) * 2.5
			temp := baseTempC + maritime - p.Base.LapseRateCPerKm*elevKm
			w.Temperature.Set(x, y, temp)
		}
	}
}

func simulateMoistureTransport(w *state.World, p params.GenerationParams) {
	n := w.Width * w.Height
	moisture := make([]float64, n)
	next := make([]float64, n)
	w.Rainfall.Fill(0)

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			idx := w.Elevation.Idx(x, y)
			if w.Elevation.Get(x, y) <= p.Base.SeaLevel {
				moisture[idx] = 0.9
			} else {
				moisture[idx] = 0.12
			}
		}
	}

	for iter := 0; iter < moistureIterations; iter++ {
		for i := range next {
			next[i] = 0
		}
		for y := 0; y < w.Height; y++ {
			for x := 0; x < w.Width; x++ {
				idx := w.Elevation.Idx(x, y)
				elev := w.Elevation.Get(x, y)
				ocean := elev <= p.Base.SeaLevel
				m := moisture[idx]
				if ocean {
					m += 0.10
				}

				wu := w.WindU.Get(x, y)
				wv := w.WindV.Get(x, y)
				windMag := clamp(math.Sqrt(wu*wu+wv*wv), 0, 1.2)

				upwindX := x
				if wu > 0 {
					if x > 0 {
						upwindX = x - 1
					}
				} else {
					upwindX = minInt(x+1, w.Width-1)
				}
				upwindY := y
				if wv > 0 {
					if y > 0 {
						upwindY = y - 1
					}
				} else {
					upwindY = minInt(y+1, w.Height-1)
				}
				upwindElev := w.Elevation.Get(upwindX, upwindY)
				uplift := math.Max(0, elev-upwindElev)

				temp := w.Temperature.Get(x, y)
				convective := clamp((temp+8)/44, 0, 1)
				precipRate := clamp(0.015+uplift*1.25+convective*0.06+windMag*0.02, 0.01, 0.85)
				precip := math.Min(m, m*precipRate)

				w.Rainfall.Set(x, y, w.Rainfall.Get(x, y)+precip)
				m -= precip

				evap := 0.0
				if ocean {
					evap = 0.06
				}
				m += evap
				m *= 0.992

				advect := clamp(0.12+0.6*windMag, 0.08, 0.8)
				transfer := m * advect
				retain := m - transfer
				next[idx] += retain

				dx := signInt(wu)
				dy := signInt(wv)
				nx := clampInt(x+dx, 0, w.Width-1)
				ny := clampInt(y+dy, 0, w.Height-1)
				next[w.Elevation.Idx(nx, ny)] += transfer
			}
		}
		moisture, next = next, moisture
	}

	maxRain := 0.0
	for _, v := range w.Rainfall.Slice() {
		if v > maxRain {
			maxRain = v
		}
	}
	inv := 1.0
	if maxRain > 0 {
		inv = 1.0 / maxRain
	}
	for i, v := range w.Rainfall.Slice() {
		w.Rainfall.Slice()[i] = clamp(v*inv, 0, 1)
	}
}

func smoothElevation(w *state.World, passes int) {
	for pass := 0; pass < passes; pass++ {
		out := w.Elevation.Clone()
		for y := 1; y < w.Height-1; y++ {
			for x := 1; x < w.Width-1; x++ {
				sum := w.Elevation.Get(x, y) * 0.55
				weight := 0.55
				for _, d := range dirs8 {
					dx, dy := d[0], d[1]
					nw := 0.08
					if dx != 0 && dy != 0 {
						nw = 0.045
					}
					sum += w.Elevation.Get(x+dx, y+dy) * nw
					weight += nw
				}
				out.Set(x, y, clamp(sum/weight, 0, 1))
			}
		}
		w.Elevation = out
	}
}

func rebalanceElevationDistribution(w *state.World, seaLevel float64) {
	values := append([]float64(nil), w.Elevation.Slice()...)
	sort.Float64s(values)

	n := len(values) - 1
	t := params.ClampSeaLevelQuantile(seaLevel)
	kth := int(t * float64(n))
	levelAtQuantile := values[kth]
	shift := seaLevel - levelAtQuantile

	slice := w.Elevation.Slice()
	for i, v := range slice {
		nv := clamp(v+shift, 0, 1)
		d := nv - seaLevel
		slice[i] = clamp(seaLevel+d*1.2, 0, 1)
	}
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

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func signInt(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
