// Package saves finds the game's local save directory and enumerates
// the worlds inside it.
package saves

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/level"
)

// DefaultDir returns the platform's default saves directory: the
// Windows roaming profile, the macOS application-support tree, or the
// home dotdir, whichever exists first.
func DefaultDir() (string, bool) {
	var candidates []string
	if appData := os.Getenv("APPDATA"); appData != "" {
		candidates = append(candidates, filepath.Join(appData, ".minecraft", "saves"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates,
			filepath.Join(home, "Library", "Application Support", "minecraft", "saves"),
			filepath.Join(home, ".minecraft", "saves"),
		)
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// Save is one world found in a saves directory.
type Save struct {
	// Name is the world's LevelName when set, otherwise the directory
	// name.
	Name string
	Dir  string
	Data *level.Data
}

// List enumerates the worlds under saveDir. Directories without a
// readable level.dat are skipped; the format version is not checked
// here so pre-McRegion worlds still show up in listings.
func List(saveDir string) ([]Save, error) {
	entries, err := os.ReadDir(saveDir)
	if err != nil {
		return nil, fmt.Errorf("read saves directory: %w", err)
	}

	var saves []Save
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(saveDir, e.Name())
		data, err := level.Read(filepath.Join(dir, "level.dat"))
		if err != nil {
			continue
		}

		name := data.LevelName
		if name == "" {
			name = e.Name()
		}
		saves = append(saves, Save{Name: name, Dir: dir, Data: data})
	}

	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return saves, nil
}
