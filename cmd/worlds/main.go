package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/level"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/saves"
)

func main() {
	dir := flag.String("dir", "", "saves directory (default: the game's local saves)")
	flag.Parse()

	saveDir := *dir
	if saveDir == "" {
		found, ok := saves.DefaultDir()
		if !ok {
			fmt.Fprintln(os.Stderr, "no local saves directory found, use -dir")
			os.Exit(1)
		}
		saveDir = found
	}

	worlds, err := saves.List(saveDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, s := range worlds {
		format := "mcregion"
		if s.Data.Version != level.McRegionVersion {
			format = fmt.Sprintf("unsupported (version %d)", s.Data.Version)
		}
		played := time.UnixMilli(s.Data.LastPlayed).Format("2006-01-02 15:04")
		fmt.Printf("%-24s %-12s last played %s  %s\n", s.Name, format, played, s.Dir)
	}
}
