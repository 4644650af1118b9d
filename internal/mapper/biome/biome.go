// Package biome reads pre-extracted biome data placed next to a
// world by an external extractor tool. The game itself derives biomes
// from the seed at runtime, so this data only exists when the user
// ran the extractor.
package biome

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Extracted biome files live in <worldDir>/biomes as one file per
// region: a raw big-endian uint16 grid of 512×512 per-block biome
// ids, row-major by z.
const (
	dirName  = "biomes"
	gridSize = 512
)

// RegionBiomes is the decoded biome grid for one region.
type RegionBiomes struct {
	X   int
	Y   int
	IDs []uint16 // gridSize*gridSize entries
}

// Available reports whether extracted biome data exists for the
// world.
func Available(worldDir string) bool {
	entries, err := os.ReadDir(filepath.Join(worldDir, dirName))
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".biome" {
			return true
		}
	}
	return false
}

// LoadRegion reads the biome grid for the region at (x, y). A missing
// file means the extractor was never run for that region and is
// reported as (nil, nil).
func LoadRegion(worldDir string, x, y int) (*RegionBiomes, error) {
	path := filepath.Join(worldDir, dirName, fmt.Sprintf("b.%d.%d.biome", x, y))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read biome data: %w", err)
	}

	if len(data) != gridSize*gridSize*2 {
		return nil, fmt.Errorf("biome file %s is %d bytes, want %d", path, len(data), gridSize*gridSize*2)
	}

	ids := make([]uint16, gridSize*gridSize)
	for i := range ids {
		ids[i] = binary.BigEndian.Uint16(data[i*2:])
	}
	return &RegionBiomes{X: x, Y: y, IDs: ids}, nil
}

// At returns the biome id at block position (x, z) local to the
// region, where both run from 0 to 511.
func (r *RegionBiomes) At(x, z int) uint16 {
	return r.IDs[z*gridSize+x]
}
