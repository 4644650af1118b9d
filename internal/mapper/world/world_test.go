package world

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/level"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/store"
)

// newTestWorld lays out a save directory with one region at (0,0) and
// a populated spawn chunk.
func newTestWorld(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeLevelDat(t, dir, level.Data{
		Version:   level.McRegionVersion,
		LevelName: "Testworld",
		SpawnX:    8,
		SpawnY:    64,
		SpawnZ:    9,
	})

	regionDir := filepath.Join(dir, "region")
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeRegionFile(t, filepath.Join(regionDir, "r.0.0.mcr"), map[[2]int][]byte{
		{0, 0}: encodeChunkPayload(t, 0, 0, solidColumn(8, 9, 0, 66)),
	})
	return dir
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWorld(t *testing.T) {
	dir := newTestWorld(t)

	w, err := New(dir, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if w.Level().LevelName != "Testworld" {
		t.Errorf("LevelName = %q, want %q", w.Level().LevelName, "Testworld")
	}

	want := Bounds{MinCol: 0, MaxCol: 64, MinRow: -32, MaxRow: 32}
	if w.Bounds() != want {
		t.Errorf("Bounds = %+v, want %+v", w.Bounds(), want)
	}

	pois := w.POIs()
	if len(pois) != 1 || pois[0].Kind != "spawn" {
		t.Fatalf("POIs = %+v, want one spawn marker", pois)
	}
	if pois[0].Y != 66 {
		t.Errorf("true spawn Y = %d, want 66", pois[0].Y)
	}

	// Every region container was opened during construction.
	if w.Cache().Len() != 1 {
		t.Errorf("open readers = %d, want 1", w.Cache().Len())
	}
}

func TestWorldRegionPathConsistency(t *testing.T) {
	dir := newTestWorld(t)

	w, err := New(dir, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	wantPath := filepath.Join(dir, "region", "r.0.0.mcr")
	for _, pos := range [][2]int{{0, 0}, {31, 31}, {15, 7}} {
		got, ok := w.RegionPath(pos[0], pos[1])
		if !ok || got != wantPath {
			t.Errorf("RegionPath(%d,%d) = %q, %v; want %q", pos[0], pos[1], got, ok, wantPath)
		}
	}
	for _, pos := range [][2]int{{32, 0}, {-1, 0}, {0, 32}, {-1, -1}} {
		if got, ok := w.RegionPath(pos[0], pos[1]); ok {
			t.Errorf("RegionPath(%d,%d) = %q, want not found", pos[0], pos[1], got)
		}
	}
}

func TestWorldLoadChunk(t *testing.T) {
	dir := newTestWorld(t)

	w, err := New(dir, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	path, ok := w.RegionPath(0, 0)
	if !ok {
		t.Fatal("RegionPath(0,0) not found")
	}

	c, err := w.LoadChunk(path, 0, 0)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if c == nil {
		t.Fatal("LoadChunk(0,0) = nil, want chunk")
	}
	if got := c.Block(8, 9, 65); got != 1 {
		t.Errorf("Block(8,9,65) = %d, want 1", got)
	}

	// An unpopulated slot in a valid region is absent, not an error.
	c, err = w.LoadChunk(path, 3, 3)
	if err != nil {
		t.Fatalf("LoadChunk(3,3): %v", err)
	}
	if c != nil {
		t.Error("LoadChunk(3,3) returned a chunk for an unpopulated slot")
	}
}

func TestWorldSidecarRoundTrip(t *testing.T) {
	dir := newTestWorld(t)

	w, err := New(dir, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w.Persistent().POIs = append(w.Persistent().POIs, store.NewPOI(10, 70, -4, "Home base", "marker"))
	w.Persistent().Extensions["north"] = "upper-left"
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	w.Close()

	reopened, err := New(dir, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New after save: %v", err)
	}
	defer reopened.Close()

	st := reopened.Persistent()
	if len(st.POIs) != 1 || st.POIs[0].Message != "Home base" {
		t.Errorf("persistent POIs = %+v", st.POIs)
	}
	if st.Extensions["north"] != "upper-left" {
		t.Errorf("persistent Extensions = %v", st.Extensions)
	}
}

func TestNewWorldRejectsWrongVersion(t *testing.T) {
	dir := t.TempDir()
	writeLevelDat(t, dir, level.Data{Version: 42, LevelName: "Old"})

	_, err := New(dir, Options{Logger: quietLogger()})
	if !errors.Is(err, level.ErrUnsupportedFormat) {
		t.Errorf("New = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNewWorldRequiresRegions(t *testing.T) {
	dir := t.TempDir()
	writeLevelDat(t, dir, level.Data{Version: level.McRegionVersion, LevelName: "Empty"})
	if err := os.MkdirAll(filepath.Join(dir, "region"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := New(dir, Options{Logger: quietLogger()})
	if !errors.Is(err, ErrNoRegions) {
		t.Errorf("New = %v, want ErrNoRegions", err)
	}
}

func TestWorldExplicitRegionList(t *testing.T) {
	dir := newTestWorld(t)

	w, err := New(dir, Options{
		RegionList: []string{filepath.Join(dir, "region", "r.0.0.mcr") + "\n"},
		Logger:     quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if _, ok := w.RegionPath(0, 0); !ok {
		t.Error("RegionPath(0,0) not found with explicit region list")
	}
}
