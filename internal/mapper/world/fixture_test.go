package world

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/chunk"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/level"
)

// encodeChunkPayload builds the uncompressed NBT payload for a chunk
// whose block array is given in expanded form.
func encodeChunkPayload(t *testing.T, cx, cy int32, blocks []byte) []byte {
	t.Helper()

	var p struct {
		Level struct {
			XPos       int32  `nbt:"xPos"`
			ZPos       int32  `nbt:"zPos"`
			Blocks     []byte `nbt:"Blocks"`
			Data       []byte `nbt:"Data"`
			BlockLight []byte `nbt:"BlockLight"`
			SkyLight   []byte `nbt:"SkyLight"`
		} `nbt:"Level"`
	}
	p.Level.XPos = cx
	p.Level.ZPos = cy
	p.Level.Blocks = blocks
	p.Level.Data = make([]byte, chunk.Volume/2)
	p.Level.BlockLight = make([]byte, chunk.Volume/2)
	p.Level.SkyLight = make([]byte, chunk.Volume/2)

	var buf bytes.Buffer
	if err := nbt.NewEncoder(&buf).Encode(p, ""); err != nil {
		t.Fatalf("encode chunk payload: %v", err)
	}
	return buf.Bytes()
}

// writeRegionFile lays out a region container at path with the given
// chunk payloads, keyed by chunk coordinate. Payloads are
// zlib-compressed into 4KiB sectors behind a standard location header.
func writeRegionFile(t *testing.T, path string, chunks map[[2]int][]byte) {
	t.Helper()

	header := make([]byte, 2*headerSize) // locations + timestamps
	var body bytes.Buffer
	sector := 2

	for pos, payload := range chunks {
		var comp bytes.Buffer
		zw := zlib.NewWriter(&comp)
		if _, err := zw.Write(payload); err != nil {
			t.Fatalf("compress chunk: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("compress chunk: %v", err)
		}

		record := make([]byte, 5, 5+comp.Len())
		binary.BigEndian.PutUint32(record[:4], uint32(comp.Len()+1))
		record[4] = compressZlib
		record = append(record, comp.Bytes()...)

		sectors := (len(record) + sectorSize - 1) / sectorSize
		record = append(record, make([]byte, sectors*sectorSize-len(record))...)

		slot := chunkSlot(pos[0], pos[1])
		binary.BigEndian.PutUint32(header[slot*4:], uint32(sector)<<8|uint32(sectors))

		body.Write(record)
		sector += sectors
	}

	if err := os.WriteFile(path, append(header, body.Bytes()...), 0o644); err != nil {
		t.Fatalf("write region file: %v", err)
	}
}

// writeLevelDat writes a gzip-compressed level.dat into dir.
func writeLevelDat(t *testing.T, dir string, data level.Data) {
	t.Helper()

	root := struct {
		Data level.Data `nbt:"Data"`
	}{Data: data}

	file, err := os.Create(filepath.Join(dir, "level.dat"))
	if err != nil {
		t.Fatalf("create level.dat: %v", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if err := nbt.NewEncoder(gz).Encode(root, ""); err != nil {
		t.Fatalf("encode level.dat: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
}

// solidColumn returns a block array where the column at (x, z) is
// solid from height from up to (but excluding) height to.
func solidColumn(x, z, from, to int) []byte {
	blocks := make([]byte, chunk.Volume)
	for y := from; y < to; y++ {
		blocks[chunk.Index(x, z, y)] = 1
	}
	return blocks
}
