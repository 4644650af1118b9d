// Package store persists small cross-run metadata (points of
// interest) in a side-car file next to the world.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// PointOfInterest is a labeled world location persisted across runs
// for map annotation.
type PointOfInterest struct {
	ID      string         `json:"id,omitempty"`
	X       int            `json:"x"`
	Y       int            `json:"y"`
	Z       int            `json:"z"`
	Message string         `json:"msg"`
	Kind    string         `json:"type"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// NewPOI creates a point of interest with a fresh ID.
func NewPOI(x, y, z int, message, kind string) PointOfInterest {
	return PointOfInterest{
		ID:      uuid.NewString(),
		X:       x,
		Y:       y,
		Z:       z,
		Message: message,
		Kind:    kind,
	}
}

// State is the side-car payload. Extensions holds free-form data for
// downstream tools that want to stash values between runs.
type State struct {
	POIs       []PointOfInterest `json:"poi"`
	Extensions map[string]any    `json:"extensions,omitempty"`
}

// Load reads the side-car file at path. A missing file is not an
// error; it yields an empty state.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{POIs: []PointOfInterest{}, Extensions: map[string]any{}}, nil
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	if st.POIs == nil {
		st.POIs = []PointOfInterest{}
	}
	if st.Extensions == nil {
		st.Extensions = map[string]any{}
	}
	return &st, nil
}

// Save overwrites the side-car file at path. Nothing calls this
// automatically; mutations are lost unless the caller flushes them.
func Save(path string, st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
