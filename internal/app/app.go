// Package app wires the skycat components together from configuration.
// The CLIs build an App and use its reconstructors and clients; library
// consumers can also wire the pieces by hand.
package app

import (
	"context"
	"fmt"

	"github.com/skycat/skycat/internal/cache"
	"github.com/skycat/skycat/internal/config"
	"github.com/skycat/skycat/internal/frame"
	"github.com/skycat/skycat/internal/skyserver"
	"github.com/skycat/skycat/internal/spectro"
	"github.com/skycat/skycat/internal/storage"
)

// App holds the wired skycat components.
type App struct {
	Config    *config.Config
	Mounts    *storage.Mounts
	SkyServer *skyserver.Client
	Spectra   *spectro.Reconstructor
	Frames    *frame.Reconstructor
}

// New wires an App from configuration. The context is used only for
// backend initialization (AWS config loading); it is not retained.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mounts := storage.NewMounts()
	mounts.Mount(cfg.Archive.Scheme, store)

	memo, err := buildMemo(cfg)
	if err != nil {
		return nil, err
	}

	frames := frame.New(mounts, cfg.Archive.Scheme, memo)
	if cfg.Cache.SpoolDir != "" {
		spool, err := cache.NewSpool(cfg.Cache.SpoolDir, cfg.Cache.SpoolMaxBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to open spool: %w", err)
		}
		frames = frames.WithSpool(spool)
	}

	return &App{
		Config:    cfg,
		Mounts:    mounts,
		SkyServer: skyserver.New(cfg.SkyServer.Endpoint, cfg.SkyServer.Timeout),
		Spectra:   spectro.New(mounts, cfg.Archive.Scheme, cfg.Archive.Run2D),
		Frames:    frames,
	}, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.Archive.Type {
	case "http":
		return storage.NewHTTPStore(cfg.Archive.BaseURL, cfg.Archive.Timeout), nil
	case "local":
		return storage.NewLocalStore(cfg.Archive.Path)
	case "s3":
		return storage.NewS3Store(ctx, cfg.Archive.S3.Bucket, storage.S3Config{
			Region:       cfg.Archive.S3.Region,
			Endpoint:     cfg.Archive.S3.Endpoint,
			UsePathStyle: cfg.Archive.S3.UsePathStyle,
			Prefix:       cfg.Archive.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown archive type %q", cfg.Archive.Type)
	}
}

func buildMemo(cfg *config.Config) (cache.FrameCache, error) {
	switch cfg.Cache.Policy {
	case "lru":
		return cache.NewLRU(cfg.Cache.MaxEntries), nil
	case "unbounded", "":
		return cache.NewUnbounded(), nil
	default:
		return nil, fmt.Errorf("unknown cache policy %q", cfg.Cache.Policy)
	}
}
