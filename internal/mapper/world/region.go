// Package world indexes a save's region containers and exposes
// chunk-addressed access to them, along with the diagonal tile
// coordinate math used by the renderer.
package world

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// dimensionMarker tags directories that belong to an alternate
// dimension; their region files are not part of the overworld map.
const dimensionMarker = "DIM-1"

// regionFileName matches region container file names: r.<x>.<y>.<ext>
// with signed integer coordinates.
var regionFileName = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.\w+$`)

// RegionPos identifies a region by its coordinates on the region grid.
type RegionPos struct {
	X int
	Y int
}

// RegionFile records where a region's container lives on disk.
type RegionFile struct {
	X    int
	Y    int
	Path string
}

// ListRegionFiles enumerates candidate region container paths under
// <worldRoot>/region. Only leaf directories (no subdirectories) that
// contain files are considered, and directories under the alternate
// dimension marker are skipped. A missing region directory yields an
// empty list, not an error.
func ListRegionFiles(worldRoot string) ([]string, error) {
	root := filepath.Join(worldRoot, "region")
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	if err := listRegionDir(root, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func listRegionDir(dir string, out *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read region directory: %w", err)
	}

	var files []string
	leaf := true
	for _, e := range entries {
		if e.IsDir() {
			leaf = false
			if err := listRegionDir(filepath.Join(dir, e.Name()), out); err != nil {
				return err
			}
			continue
		}
		files = append(files, e.Name())
	}

	if !leaf || len(files) == 0 || strings.Contains(dir, dimensionMarker) {
		return nil
	}
	for _, name := range files {
		*out = append(*out, filepath.Join(dir, name))
	}
	return nil
}

// BuildIndex parses candidate paths into a region index. Entries are
// stripped of trailing line terminators; file names that do not match
// the region naming pattern are ignored. Paths are not required to
// exist. When two entries map to the same region, the later one wins.
func BuildIndex(paths []string) map[RegionPos]RegionFile {
	regions := make(map[RegionPos]RegionFile, len(paths))
	for _, p := range paths {
		p = strings.TrimRight(p, "\r\n")

		m := regionFileName.FindStringSubmatch(filepath.Base(p))
		if m == nil {
			continue
		}
		x, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		y, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		regions[RegionPos{X: x, Y: y}] = RegionFile{X: x, Y: y, Path: p}
	}
	return regions
}

// DiscoverRegions builds the region index for a world. When
// regionList is non-nil its entries are used as the candidate paths
// instead of walking the filesystem.
func DiscoverRegions(worldRoot string, regionList []string) (map[RegionPos]RegionFile, error) {
	if regionList != nil {
		return BuildIndex(regionList), nil
	}
	paths, err := ListRegionFiles(worldRoot)
	if err != nil {
		return nil, err
	}
	return BuildIndex(paths), nil
}
