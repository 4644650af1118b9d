package world

import "errors"

// ErrNoRegions indicates a world with zero discovered region
// containers; there is nothing to render.
var ErrNoRegions = errors.New("no region files found")

// Bounds is the tile-space bounding box of the explored world.
type Bounds struct {
	MinCol int
	MaxCol int
	MinRow int
	MaxRow int
}

// ComputeBounds derives the tile-space bounding box covering every
// discovered region. The diagonal transform is a 45° rotation, so the
// box must come from all four corners of the chunk-space rectangle;
// two opposite corners under-estimate it.
func ComputeBounds(regions map[RegionPos]RegionFile) (Bounds, error) {
	if len(regions) == 0 {
		return Bounds{}, ErrNoRegions
	}

	first := true
	var minX, maxX, minY, maxY int
	for pos := range regions {
		if first {
			minX, maxX, minY, maxY = pos.X, pos.X, pos.Y, pos.Y
			first = false
			continue
		}
		minX = min(minX, pos.X)
		maxX = max(maxX, pos.X)
		minY = min(minY, pos.Y)
		maxY = max(maxY, pos.Y)
	}

	// Chunk extent of the region rectangle; the max edge is one past
	// the last valid chunk so the full region width is covered.
	minX *= RegionSize
	minY *= RegionSize
	maxX = maxX*RegionSize + RegionSize
	maxY = maxY*RegionSize + RegionSize

	var b Bounds
	corners := [4][2]int{{minX, minY}, {minX, maxY}, {maxX, minY}, {maxX, maxY}}
	for i, c := range corners {
		col, row := Convert(c[0], c[1])
		if i == 0 {
			b = Bounds{MinCol: col, MaxCol: col, MinRow: row, MaxRow: row}
			continue
		}
		b.MinCol = min(b.MinCol, col)
		b.MaxCol = max(b.MaxCol, col)
		b.MinRow = min(b.MinRow, row)
		b.MaxRow = max(b.MaxRow, row)
	}
	return b, nil
}
