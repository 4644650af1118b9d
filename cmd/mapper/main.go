package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/config"
	"github.com/OCharnyshevich/minecraft-mapper/internal/mapper/world"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.WorldDir, "world", cfg.WorldDir, "path to the world directory")
	flag.StringVar(&cfg.RegionList, "regionlist", cfg.RegionList, "file listing region containers to index, one per line")
	flag.BoolVar(&cfg.UseBiomeData, "biomes", cfg.UseBiomeData, "use extracted biome data if present")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	configPath := flag.String("config", "mapper.json", "path to config file")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	if cfg.WorldDir == "" {
		log.Error("no world directory given, use -world")
		os.Exit(1)
	}

	var regionList []string
	if cfg.RegionList != "" {
		regionList, err = readRegionList(cfg.RegionList)
		if err != nil {
			log.Error("read region list", "error", err)
			os.Exit(1)
		}
	}

	w, err := world.New(cfg.WorldDir, world.Options{
		RegionList:   regionList,
		UseBiomeData: cfg.UseBiomeData,
		Logger:       log,
	})
	if err != nil {
		log.Error("index world", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	b := w.Bounds()
	fmt.Printf("world: %s\n", w.Level().LevelName)
	fmt.Printf("tile bounds: cols %d..%d, rows %d..%d\n", b.MinCol, b.MaxCol, b.MinRow, b.MaxRow)
	for _, poi := range w.POIs() {
		fmt.Printf("%s %q at (%d, %d, %d)\n", poi.Kind, poi.Message, poi.X, poi.Y, poi.Z)
	}
	fmt.Printf("regions open: %d\n", w.Cache().Len())
	fmt.Printf("sidecar POIs: %d (%s)\n", len(w.Persistent().POIs), filepath.Join(cfg.WorldDir, world.SidecarName))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// readRegionList loads region container paths from a file, one per
// line. Lines keep their trailing terminators; the index strips them.
func readRegionList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if scanner.Text() != "" {
			lines = append(lines, scanner.Text())
		}
	}
	return lines, scanner.Err()
}
