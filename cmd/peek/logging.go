package main

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// configureRuntimeLogger points the standard logger at a rotating file, since
// the terminal belongs to the TUI. It falls back to stderr when the file
// cannot be used.
func configureRuntimeLogger(cfg appConfig) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.LogFile == "" || cfg.LogFile == "-" {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	w := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}
	log.SetOutput(w)
	return func() {
		_ = w.Close()
	}
}
