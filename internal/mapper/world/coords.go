package world

// Chunks per region along each axis.
const RegionSize = 32

// Convert maps a chunk coordinate into the diagonal tile coordinate
// system used by the renderer: columns are the sum of the chunk
// coordinates, rows the difference. Change this and Unconvert must
// change with it.
func Convert(chunkX, chunkY int) (col, row int) {
	return chunkX + chunkY, chunkY - chunkX
}

// Unconvert inverts Convert. col−row and col+row are always even for
// pairs produced by Convert, so the halving is exact and Go's
// truncating division agrees with floor division here.
func Unconvert(col, row int) (chunkX, chunkY int) {
	return (col - row) / 2, (col + row) / 2
}

// DivFloor divides a by b rounding toward negative infinity. Go's
// integer division truncates toward zero, which is wrong for negative
// chunk coordinates.
func DivFloor(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// RegionAt returns the region that contains the given chunk.
func RegionAt(chunkX, chunkY int) RegionPos {
	return RegionPos{X: DivFloor(chunkX, RegionSize), Y: DivFloor(chunkY, RegionSize)}
}
