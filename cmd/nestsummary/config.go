package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"nestsummary/core"
	"nestsummary/storage"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	logLevel   string
	storePath  string
	configPath string
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("bad --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// openStore opens the badger store at path, or an in-memory store when path
// is empty.
func openStore(path string, logger *slog.Logger) (*core.TableStore, error) {
	config := &core.StoreConfig{CacheEnabled: true}
	if path != "" {
		config.BadgerConfig = &storage.BadgerBackendConfig{Path: path}
	}
	store, err := core.OpenTableStore(config)
	if err != nil {
		return nil, err
	}
	return store.SetLogger(logger), nil
}

func loadOptions(path string) (core.Options, error) {
	if path == "" {
		return core.Options{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return core.Options{}, err
	}
	defer f.Close()
	opts, err := core.DecodeOptions(f)
	if err != nil {
		return core.Options{}, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}

func loadGainOptions(path string) (core.GainOptions, error) {
	if path == "" {
		return core.GainOptions{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return core.GainOptions{}, err
	}
	defer f.Close()
	opts, err := core.DecodeGainOptions(f)
	if err != nil {
		return core.GainOptions{}, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}
