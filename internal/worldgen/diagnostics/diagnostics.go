// Package diagnostics computes per-layer content hashes and a combined
// checksum over a world's current state, so two runs can be compared for
// bit-exact equality without comparing every raw grid.
package diagnostics

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"golang.org/x/crypto/blake2b"

	"worldgen-engine/internal/worldgen/grid"
	"worldgen-engine/internal/worldgen/state"
)

// Update recomputes w.Diagnostics from the current contents of every layer
// grid and writes the result back onto w.
func Update(w *state.World) {
	hashes := make(map[string]string)

	hashes["elevation"] = hashFloat64(w.Elevation)
	hashes["temperature"] = hashFloat64(w.Temperature)
	hashes["rainfall"] = hashFloat64(w.Rainfall)
	hashes["accumulation"] = hashFloat64(w.Accumulation)
	hashes["discharge"] = hashFloat64(w.Discharge)
	hashes["flow_dir"] = hashUint8(w.FlowDir)
	hashes["river_class"] = hashRiverClass(w.RiverClass)
	hashes["lake_id"] = hashUint32(w.LakeID)
	hashes["ocean_mask"] = hashBool(w.OceanMask)
	hashes["biome"] = hashBiome(w.Biome)
	hashes["fertility"] = hashFloat64(w.Fertility)
	hashes["province"] = hashProvince(w.GeologicProvince)
	hashes["rock_type"] = hashRock(w.RockType)

	names := make([]string, 0, len(w.MineralMasks))
	for name := range w.MineralMasks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		hashes["mineral_"+name] = hashBool(w.MineralMasks[name])
	}

	sortedNames := make([]string, 0, len(hashes))
	for name := range hashes {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	combined, err := blake2b.New256(nil)
	if err != nil {
		panic("diagnostics: blake2b.New256 failed: " + err.Error())
	}
	for _, name := range sortedNames {
		combined.Write([]byte(name))
		combined.Write([]byte(hashes[name]))
	}

	w.Diagnostics = state.Diagnostics{
		LayerHashes: hashes,
		Checksum:    hex.EncodeToString(combined.Sum(nil)),
	}
}

func hashFloat64(g *grid.Grid2D[float64]) string {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	for _, v := range g.Slice() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashUint8(g *grid.Grid2D[uint8]) string {
	h, _ := blake2b.New256(nil)
	h.Write(g.Slice())
	return hex.EncodeToString(h.Sum(nil))
}

func hashUint32(g *grid.Grid2D[uint32]) string {
	h, _ := blake2b.New256(nil)
	var buf [4]byte
	for _, v := range g.Slice() {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashBool(g *grid.Grid2D[bool]) string {
	h, _ := blake2b.New256(nil)
	for _, v := range g.Slice() {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashRiverClass(g *grid.Grid2D[state.RiverClass]) string {
	h, _ := blake2b.New256(nil)
	for _, v := range g.Slice() {
		h.Write([]byte{v.AsU8()})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashBiome(g *grid.Grid2D[state.Biome]) string {
	h, _ := blake2b.New256(nil)
	for _, v := range g.Slice() {
		h.Write([]byte{v.AsU8()})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashProvince(g *grid.Grid2D[state.GeologicProvince]) string {
	h, _ := blake2b.New256(nil)
	for _, v := range g.Slice() {
		h.Write([]byte{v.AsU8()})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashRock(g *grid.Grid2D[state.RockType]) string {
	h, _ := blake2b.New256(nil)
	for _, v := range g.Slice() {
		h.Write([]byte{v.AsU8()})
	}
	return hex.EncodeToString(h.Sum(nil))
}
