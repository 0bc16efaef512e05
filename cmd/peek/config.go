package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/peek/internal/model"
	"github.com/tinytelemetry/peek/internal/placement"
)

const (
	defaultLogMaxSizeMB  = 5
	defaultLogMaxBackups = 3

	// Smallest card that still fits its border, padding and one text cell.
	minCardWidth  = 5
	minCardHeight = 3
)

// appConfig holds runtime configuration for the peek binary.
type appConfig struct {
	Catalog            string        `mapstructure:"catalog"` // empty = built-in sample
	Skin               string        `mapstructure:"skin"`
	GracePeriod        time.Duration `mapstructure:"grace-period"`
	CardWidth          int           `mapstructure:"card-width"`
	CardHeight         int           `mapstructure:"card-height"`
	CardOffset         int           `mapstructure:"card-offset"`
	CardPadding        int           `mapstructure:"card-padding"`
	ArtCacheSize       int           `mapstructure:"art-cache-size"`
	PreloadConcurrency int           `mapstructure:"preload-concurrency"`
	LogFile            string        `mapstructure:"log-file"` // "-" = stderr
	LogMaxSizeMB       int           `mapstructure:"log-max-size-mb"`
	LogMaxBackups      int           `mapstructure:"log-max-backups"`
	ConfigPath         string        `mapstructure:"-"` // not from config file
}

// geometry returns the card geometry used for placement and rendering.
func (c appConfig) geometry() placement.Geometry {
	return placement.Geometry{
		Width:   c.CardWidth,
		Height:  c.CardHeight,
		Offset:  c.CardOffset,
		Padding: c.CardPadding,
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PEEK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("catalog", "")
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("grace-period", model.DefaultGracePeriod)
	v.SetDefault("card-width", model.DefaultCardWidth)
	v.SetDefault("card-height", model.DefaultCardHeight)
	v.SetDefault("card-offset", model.DefaultCardOffset)
	v.SetDefault("card-padding", model.DefaultCardPadding)
	v.SetDefault("art-cache-size", model.DefaultArtCacheSize)
	v.SetDefault("preload-concurrency", model.DefaultPreloadConcurrency)
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "peek", "peek.log"))
	v.SetDefault("log-max-size-mb", defaultLogMaxSizeMB)
	v.SetDefault("log-max-backups", defaultLogMaxBackups)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "peek", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	// Expand ~ in paths
	cfg.Catalog = expandHome(home, cfg.Catalog)
	cfg.LogFile = expandHome(home, cfg.LogFile)

	return cfg, nil
}

func (c appConfig) validate() error {
	if c.CardWidth < minCardWidth || c.CardHeight < minCardHeight {
		return fmt.Errorf("invalid card size %dx%d: minimum is %dx%d",
			c.CardWidth, c.CardHeight, minCardWidth, minCardHeight)
	}
	if c.CardOffset < 0 {
		return fmt.Errorf("invalid card-offset: %d", c.CardOffset)
	}
	if c.CardPadding < 0 {
		return fmt.Errorf("invalid card-padding: %d", c.CardPadding)
	}
	if c.GracePeriod < 0 {
		return fmt.Errorf("invalid grace-period: %s", c.GracePeriod)
	}
	return nil
}

func expandHome(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
