// Package level reads the world metadata file (level.dat), a
// gzip-compressed NBT compound describing the save.
package level

import (
	"errors"
	"fmt"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// McRegionVersion is the format version written by worlds that store
// chunks in region containers. Any other version is unsupported.
const McRegionVersion = 19132

// ErrUnsupportedFormat indicates the world is not in McRegion format.
var ErrUnsupportedFormat = errors.New("unsupported world format")

// Data holds the fields of the level.dat "Data" compound that the
// mapper cares about.
type Data struct {
	Version    int32  `nbt:"version"`
	LevelName  string `nbt:"LevelName"`
	RandomSeed int64  `nbt:"RandomSeed"`
	LastPlayed int64  `nbt:"LastPlayed"`
	Time       int64  `nbt:"Time"`
	SpawnX     int32  `nbt:"SpawnX"`
	SpawnY     int32  `nbt:"SpawnY"`
	SpawnZ     int32  `nbt:"SpawnZ"`
}

// VerifyMcRegion returns ErrUnsupportedFormat unless the data was
// written in McRegion format.
func (d *Data) VerifyMcRegion() error {
	if d.Version != McRegionVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrUnsupportedFormat, d.Version, McRegionVersion)
	}
	return nil
}

// Read parses the level.dat file at path. It does not check the
// format version; callers that require McRegion data should call
// VerifyMcRegion on the result.
func Read(path string) (*Data, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level data: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	defer gz.Close()

	var root struct {
		Data Data `nbt:"Data"`
	}
	if _, err := nbt.NewDecoder(gz).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &root.Data, nil
}
