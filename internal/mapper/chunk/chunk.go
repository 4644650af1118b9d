// Package chunk decodes the NBT payload of a single chunk into a
// typed voxel volume.
package chunk

import (
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
)

// Chunk dimensions. A chunk is a 16×16 column of voxels, 128 high.
const (
	Width  = 16
	Depth  = 16
	Height = 128
	Volume = Width * Depth * Height
)

// Chunk is a decoded chunk: dense byte arrays indexed by
// (local x, local z, height). Nibble arrays from disk are expanded to
// one byte per voxel.
type Chunk struct {
	X int32
	Z int32

	Blocks     []byte
	Data       []byte
	BlockLight []byte
	SkyLight   []byte
	HeightMap  []byte
}

type payload struct {
	Level struct {
		XPos       int32  `nbt:"xPos"`
		ZPos       int32  `nbt:"zPos"`
		Blocks     []byte `nbt:"Blocks"`
		Data       []byte `nbt:"Data"`
		BlockLight []byte `nbt:"BlockLight"`
		SkyLight   []byte `nbt:"SkyLight"`
		HeightMap  []byte `nbt:"HeightMap"`
	} `nbt:"Level"`
}

// Decode parses a chunk's decompressed NBT stream.
func Decode(r io.Reader) (*Chunk, error) {
	var p payload
	if _, err := nbt.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("parse chunk nbt: %w", err)
	}

	lv := p.Level
	if len(lv.Blocks) != Volume {
		return nil, fmt.Errorf("chunk %d,%d: block array is %d bytes, want %d", lv.XPos, lv.ZPos, len(lv.Blocks), Volume)
	}

	return &Chunk{
		X:          lv.XPos,
		Z:          lv.ZPos,
		Blocks:     lv.Blocks,
		Data:       expandNibbles(lv.Data),
		BlockLight: expandNibbles(lv.BlockLight),
		SkyLight:   expandNibbles(lv.SkyLight),
		HeightMap:  lv.HeightMap,
	}, nil
}

// Index flattens a (local x, local z, height) position into the block
// array layout used on disk.
func Index(x, z, y int) int {
	return x*Depth*Height + z*Height + y
}

// Block returns the material id at the given local position.
func (c *Chunk) Block(x, z, y int) byte {
	return c.Blocks[Index(x, z, y)]
}

// BlockData returns the metadata value at the given local position.
func (c *Chunk) BlockData(x, z, y int) byte {
	return c.Data[Index(x, z, y)]
}

// expandNibbles unpacks a 4-bit-per-voxel array into one byte per
// voxel, low nibble first.
func expandNibbles(nibbles []byte) []byte {
	out := make([]byte, len(nibbles)*2)
	for i, b := range nibbles {
		out[i*2] = b & 0x0F
		out[i*2+1] = b >> 4
	}
	return out
}
