package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/saves"
)

// fetch downloads a world directory or archive into the local saves
// directory so it can be indexed and rendered.
func main() {
	var (
		url  = flag.String("url", "", "go-getter source URL of the world (http, git, s3, ...)")
		name = flag.String("name", "", "directory name for the downloaded world")
		out  = flag.String("o", "", "destination saves directory (default: the game's local saves)")
	)
	flag.Parse()

	if *url == "" {
		panic("source url required")
	}
	if *name == "" {
		panic("world name required")
	}

	dest := *out
	if dest == "" {
		found, ok := saves.DefaultDir()
		if !ok {
			panic("no local saves directory found, use -o")
		}
		dest = found
	}

	path := filepath.Join(dest, *name)
	if err := os.RemoveAll(path); err != nil {
		panic(err)
	}

	log.Default().Printf("start downloading world to %s", path)

	if err := get.Get(path, *url); err != nil {
		panic(err)
	}

	log.Default().Printf("done downloading world %s", path)
}
