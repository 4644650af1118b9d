package world

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/biome"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/chunk"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/level"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/store"
)

// SidecarName is the side-car metadata file kept next to level.dat.
const SidecarName = "overviewer.dat"

// Options configures World construction.
type Options struct {
	// RegionList, when non-nil, is used as the candidate region paths
	// instead of walking <dir>/region.
	RegionList []string

	// UseBiomeData makes the world check for extracted biome data.
	UseBiomeData bool

	Logger *slog.Logger
}

// World is the index built over one save directory: the region
// index, the open-reader cache, the computed tile-space bounds, the
// spawn point, and the side-car metadata. Construction is a single
// synchronous pass; afterwards the index is read-mostly and safe to
// share across rendering workers.
type World struct {
	dir   string
	log   *slog.Logger
	level *level.Data

	regions map[RegionPos]RegionFile
	cache   *Cache
	bounds  Bounds

	biomeData bool

	// mu guards the POI list and persistent state; everything else is
	// immutable after New returns.
	mu         sync.Mutex
	pois       []store.PointOfInterest
	persistent *store.State
}

// New indexes the world at dir. It fails when the world is not in
// McRegion format or no region containers are discovered.
func New(dir string, opts Options) (*World, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	lv, err := level.Read(filepath.Join(dir, "level.dat"))
	if err != nil {
		return nil, err
	}
	if err := lv.VerifyMcRegion(); err != nil {
		return nil, err
	}

	regions, err := DiscoverRegions(dir, opts.RegionList)
	if err != nil {
		return nil, err
	}

	bounds, err := ComputeBounds(regions)
	if err != nil {
		return nil, err
	}

	// Open every container up front so the header parse cost is paid
	// once, before the index is shared with rendering workers.
	cache := NewCache()
	for _, rf := range regions {
		if _, err := cache.Get(rf.Path); err != nil {
			cache.Close()
			return nil, err
		}
	}

	persistent, err := store.Load(filepath.Join(dir, SidecarName))
	if err != nil {
		cache.Close()
		return nil, err
	}

	w := &World{
		dir:        dir,
		log:        log,
		level:      lv,
		regions:    regions,
		cache:      cache,
		bounds:     bounds,
		persistent: persistent,
	}

	spawn, err := LocateSpawn(lv, regions, cache)
	if err != nil {
		cache.Close()
		return nil, err
	}
	w.pois = append(w.pois, spawn)

	if opts.UseBiomeData {
		w.biomeData = biome.Available(dir)
		if !w.biomeData {
			log.Warn("biome data requested but not found", "dir", dir)
		}
	}

	log.Info("world indexed",
		"name", lv.LevelName,
		"regions", len(regions),
		"cols", [2]int{bounds.MinCol, bounds.MaxCol},
		"rows", [2]int{bounds.MinRow, bounds.MaxRow},
		"spawn", [3]int{spawn.X, spawn.Y, spawn.Z},
	)
	return w, nil
}

// Dir returns the world directory this index was built over.
func (w *World) Dir() string {
	return w.dir
}

// Level returns the parsed world metadata.
func (w *World) Level() *level.Data {
	return w.level
}

// Bounds returns the tile-space bounding box of the explored world.
func (w *World) Bounds() Bounds {
	return w.bounds
}

// HasBiomeData reports whether extracted biome data was found.
func (w *World) HasBiomeData() bool {
	return w.biomeData
}

// RegionPath returns the container path for the region holding the
// given chunk, or false when that region was never discovered.
func (w *World) RegionPath(chunkX, chunkY int) (string, bool) {
	rf, ok := w.regions[RegionAt(chunkX, chunkY)]
	if !ok {
		return "", false
	}
	return rf.Path, true
}

// Regions exposes the region index. Callers must not mutate it.
func (w *World) Regions() map[RegionPos]RegionFile {
	return w.regions
}

// Cache exposes the region reader cache for consumers that stream
// raw chunk payloads themselves.
func (w *World) Cache() *Cache {
	return w.cache
}

// LoadChunk reads and decodes the chunk at (chunkX, chunkY) from the
// container at path. An unpopulated chunk slot yields (nil, nil).
func (w *World) LoadChunk(path string, chunkX, chunkY int) (*chunk.Chunk, error) {
	rc, err := w.cache.LoadChunk(path, chunkX, chunkY)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, nil
	}
	defer rc.Close()
	return chunk.Decode(rc)
}

// POIs returns a copy of the runtime point-of-interest list. The
// spawn marker is always first.
func (w *World) POIs() []store.PointOfInterest {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]store.PointOfInterest, len(w.pois))
	copy(out, w.pois)
	return out
}

// AddPOI appends a point of interest to the runtime list.
func (w *World) AddPOI(p store.PointOfInterest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pois = append(w.pois, p)
}

// Persistent returns the side-car state loaded at construction.
// Mutations are not flushed automatically; call Save.
func (w *World) Persistent() *store.State {
	return w.persistent
}

// Save writes the side-car state back to disk.
func (w *World) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := store.Save(filepath.Join(w.dir, SidecarName), w.persistent); err != nil {
		return fmt.Errorf("save world metadata: %w", err)
	}
	return nil
}

// Close releases every open region reader. The index and its readers
// share one lifetime.
func (w *World) Close() error {
	return w.cache.Close()
}
