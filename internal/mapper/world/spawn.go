package world

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/chunk"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/level"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/store"
)

// LocateSpawn resolves the true spawn: the first air voxel at or
// above the spawn position declared in the world metadata. The spawn
// chunk must lie within a discovered region.
func LocateSpawn(lv *level.Data, regions map[RegionPos]RegionFile, cache *Cache) (store.PointOfInterest, error) {
	spawnX := int(lv.SpawnX)
	spawnY := int(lv.SpawnY)
	spawnZ := int(lv.SpawnZ)

	chunkX := DivFloor(spawnX, chunk.Width)
	chunkY := DivFloor(spawnZ, chunk.Depth)

	rf, ok := regions[RegionAt(chunkX, chunkY)]
	if !ok {
		return store.PointOfInterest{}, fmt.Errorf("spawn chunk (%d,%d) is not in any discovered region", chunkX, chunkY)
	}

	rc, err := cache.LoadChunk(rf.Path, chunkX, chunkY)
	if err != nil {
		return store.PointOfInterest{}, fmt.Errorf("load spawn chunk: %w", err)
	}
	if rc == nil {
		return store.PointOfInterest{}, fmt.Errorf("spawn chunk (%d,%d) missing from region %s", chunkX, chunkY, rf.Path)
	}
	defer rc.Close()

	ck, err := chunk.Decode(rc)
	if err != nil {
		return store.PointOfInterest{}, fmt.Errorf("decode spawn chunk: %w", err)
	}

	inChunkX := spawnX - chunkX*chunk.Width
	inChunkZ := spawnZ - chunkY*chunk.Depth

	// Climb until the column turns to air, stopping unconditionally
	// at the volume ceiling.
	y := max(spawnY, 0)
	for y < chunk.Height && ck.Block(inChunkX, inChunkZ, y) != 0 {
		y++
	}

	poi := store.NewPOI(spawnX, y, spawnZ, "Spawn", "spawn")
	poi.Extra = map[string]any{
		"chunkLocalX": inChunkX,
		"chunkLocalZ": inChunkZ,
	}
	return poi, nil
}
