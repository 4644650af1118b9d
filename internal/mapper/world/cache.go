package world

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Region container layout constants.
const (
	regionChunks = RegionSize * RegionSize
	sectorSize   = 4096
	headerSize   = regionChunks * 4
	compressGzip = 1
	compressZlib = 2
)

// Reader is an open region container plus its parsed chunk location
// header. All chunk reads are positioned, so one Reader can serve
// many goroutines concurrently.
type Reader struct {
	path string
	file *os.File

	// locations[slot] packs the chunk's first sector offset in the
	// high 24 bits and its sector count in the low 8. Zero means the
	// chunk was never written.
	locations [regionChunks]uint32
}

// OpenRegion opens the container at path and parses its chunk
// location header.
func OpenRegion(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region: %w", err)
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(io.NewSectionReader(file, 0, headerSize), header); err != nil {
		file.Close()
		return nil, fmt.Errorf("read region header %s: %w", path, err)
	}

	r := &Reader{path: path, file: file}
	for i := range r.locations {
		r.locations[i] = binary.BigEndian.Uint32(header[i*4:])
	}
	return r, nil
}

// Path returns the container path this reader was opened against.
func (r *Reader) Path() string {
	return r.path
}

// HasChunk reports whether the given chunk's slot is populated.
func (r *Reader) HasChunk(chunkX, chunkY int) bool {
	return r.locations[chunkSlot(chunkX, chunkY)] != 0
}

// Chunk returns a decompressed stream of the chunk's NBT payload, or
// (nil, nil) when the slot is unpopulated.
func (r *Reader) Chunk(chunkX, chunkY int) (io.ReadCloser, error) {
	loc := r.locations[chunkSlot(chunkX, chunkY)]
	if loc == 0 {
		return nil, nil
	}
	offset := int64(loc>>8) * sectorSize

	var head [5]byte
	if _, err := r.file.ReadAt(head[:], offset); err != nil {
		return nil, fmt.Errorf("read chunk header %s@%d: %w", r.path, offset, err)
	}

	// The stored length counts the compression byte.
	length := binary.BigEndian.Uint32(head[:4])
	if length == 0 {
		return nil, fmt.Errorf("zero-length chunk record %s@%d", r.path, offset)
	}

	data := make([]byte, length-1)
	if _, err := r.file.ReadAt(data, offset+5); err != nil {
		return nil, fmt.Errorf("read chunk data %s@%d: %w", r.path, offset, err)
	}

	switch head[4] {
	case compressGzip:
		return gzip.NewReader(bytes.NewReader(data))
	case compressZlib:
		return zlib.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported chunk compression %d in %s", head[4], r.path)
	}
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

func chunkSlot(chunkX, chunkY int) int {
	return (chunkX & (RegionSize - 1)) + (chunkY&(RegionSize-1))*RegionSize
}

// Cache holds one open Reader per region container path. Readers are
// never evicted; a world with thousands of regions keeps thousands of
// handles open for the cache's lifetime.
type Cache struct {
	mu      sync.Mutex
	readers map[string]*Reader
}

// NewCache creates an empty region cache.
func NewCache() *Cache {
	return &Cache{readers: make(map[string]*Reader)}
}

// Get returns the cached reader for path, opening and parsing the
// container the first time the path is seen. Repeat calls return the
// identical reader.
func (c *Cache) Get(path string) (*Reader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.readers[path]; ok {
		return r, nil
	}
	r, err := OpenRegion(path)
	if err != nil {
		return nil, err
	}
	c.readers[path] = r
	return r, nil
}

// LoadChunk returns the decompressed payload stream for a chunk in
// the container at path, or (nil, nil) when the chunk was never
// written.
func (c *Cache) LoadChunk(path string, chunkX, chunkY int) (io.ReadCloser, error) {
	r, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	return r.Chunk(chunkX, chunkY)
}

// Len reports how many containers are currently open.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.readers)
}

// Close closes every open reader. The cache must not be used after.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for _, r := range c.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.readers = nil
	return firstErr
}
