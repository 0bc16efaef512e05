package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/peek/internal/artwork"
	"github.com/tinytelemetry/peek/internal/catalog"
	"github.com/tinytelemetry/peek/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

const preloadTimeout = 3 * time.Second

func main() {
	var configPath string
	var catalogPath string
	var logFile string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/peek/config.yml)")
	flag.StringVar(&catalogPath, "catalog", "", "roster catalog file (default is the built-in sample)")
	flag.StringVar(&logFile, "log-file", "", "log file path, - for stderr (default is $HOME/.local/state/peek/peek.log)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Peek - Roster Browser\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if catalogPath != "" {
		cfg.Catalog = catalogPath
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger(cfg)
	defer cleanupLogger()

	if err := tui.InitializeSkin(cfg.Skin); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using default)\n", err)
	}

	cat, loader, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	log.Printf("peek: loaded %q with %d sections", cat.Title, len(cat.Sections))

	geometry := cfg.geometry()
	ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
	if err := tui.PreloadArtwork(ctx, cat, loader, geometry); err != nil {
		log.Printf("peek: artwork preload incomplete: %v", err)
	}
	cancel()

	roster := tui.NewRosterPage(cat, loader, tui.RosterOptions{
		Geometry:    geometry,
		GracePeriod: cfg.GracePeriod,
	})
	app := tui.NewApp(roster)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func openCatalog(cfg appConfig) (catalog.Catalog, *artwork.Loader, error) {
	opts := []artwork.Option{
		artwork.WithCacheSize(cfg.ArtCacheSize),
		artwork.WithConcurrency(cfg.PreloadConcurrency),
	}
	if cfg.Catalog == "" {
		opts = append(opts, artwork.WithFS(catalog.SampleFS()))
		return catalog.Sample(), artwork.New(opts...), nil
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return catalog.Catalog{}, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, artwork.New(opts...), nil
}
