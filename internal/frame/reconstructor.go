// Package frame reconstructs calibrated imaging frames: it resolves the
// archive path for a (run, camcol, field, band) tuple, fetches and
// decompresses the bz2-encoded FITS file, and memoizes the decoded pixel
// array so repeated requests hit the injected cache instead of the archive.
package frame

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dsnet/compress/bzip2"

	"github.com/skycat/skycat/internal/cache"
	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/internal/fits"
	"github.com/skycat/skycat/internal/observability"
	"github.com/skycat/skycat/internal/sas"
	"github.com/skycat/skycat/internal/storage"
	"github.com/skycat/skycat/pkg/types"
)

// Reconstructor fetches and decodes imaging frames.
type Reconstructor struct {
	mounts *storage.Mounts
	scheme string
	memo   cache.FrameCache
	spool  *cache.Spool
	stats  *observability.FetchStats
}

// New creates a frame reconstructor reading from the given mount table.
// memo is the decoded-frame memoization cache; pass cache.NewUnbounded()
// for the reference process-lifetime behavior, or a fresh cache per test.
func New(mounts *storage.Mounts, scheme string, memo cache.FrameCache) *Reconstructor {
	if memo == nil {
		memo = cache.NewUnbounded()
	}
	return &Reconstructor{
		mounts: mounts,
		scheme: scheme,
		memo:   memo,
		stats:  observability.NewFetchStats(),
	}
}

// WithSpool attaches an on-disk spool for raw fetched files, consulted
// between the memo cache and the archive.
func (r *Reconstructor) WithSpool(spool *cache.Spool) *Reconstructor {
	r.spool = spool
	return r
}

// Stats returns the reconstructor's fetch statistics tracker.
func (r *Reconstructor) Stats() *observability.FetchStats {
	return r.stats
}

// Frame returns the calibrated frame for (run, camcol, field, band) in
// linear nanomaggies. The band is validated before any fetch. Identical
// requests within the memo cache's lifetime invoke the storage
// collaborator exactly once.
func (r *Reconstructor) Frame(ctx context.Context, run, camcol, field int, band types.Band) (*types.FrameImage, error) {
	if !band.Valid() {
		return nil, errors.NewInvalidBand(string(band))
	}

	virtualPath := sas.VirtualFramePath(r.scheme, run, camcol, field, band)

	if img, ok := r.memo.Get(virtualPath); ok {
		r.stats.RecordHit(virtualPath)
		observability.FrameCacheHits.Inc()
		return img, nil
	}
	observability.FrameCacheMisses.Inc()

	raw, err := r.fetchRaw(ctx, virtualPath)
	if err != nil {
		return nil, err
	}

	img, err := decodeFrame(raw, run, camcol, field, band)
	if err != nil {
		return nil, err
	}

	r.memo.Put(virtualPath, img)
	return img, nil
}

// fetchRaw returns the compressed frame bytes, consulting the spool first.
func (r *Reconstructor) fetchRaw(ctx context.Context, virtualPath string) ([]byte, error) {
	if r.spool != nil {
		if data := r.spool.Get(virtualPath); data != nil {
			r.stats.RecordHit(virtualPath)
			return data, nil
		}
	}

	start := time.Now()
	data, err := r.mounts.Fetch(ctx, virtualPath)
	if err != nil {
		return nil, err
	}
	observability.FrameFetchDuration.Observe(time.Since(start).Seconds())
	r.stats.RecordFetch(virtualPath, int64(len(data)))
	log.Printf("frame: fetched %s (%d bytes)", virtualPath, len(data))

	if r.spool != nil {
		if err := r.spool.Put(virtualPath, data); err != nil {
			log.Printf("frame: spool write failed for %s: %v", virtualPath, err)
		}
	}
	return data, nil
}

// decodeFrame decompresses the bz2 stream and decodes the FITS primary HDU.
func decodeFrame(raw []byte, run, camcol, field int, band types.Band) (*types.FrameImage, error) {
	zr, err := bzip2.NewReader(bytes.NewReader(raw), nil)
	if err != nil {
		return nil, errors.NewFormatError("failed to open bz2 stream", err)
	}
	decompressed, err := io.ReadAll(zr)
	if err != nil {
		zr.Close()
		return nil, errors.NewFormatError("failed to decompress frame", err)
	}
	if err := zr.Close(); err != nil {
		return nil, errors.NewFormatError("bz2 stream truncated", err)
	}

	f, err := fits.Decode(decompressed)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pixels, axes, err := f.Image(0)
	if err != nil {
		return nil, err
	}
	if len(axes) != 2 {
		return nil, errors.NewFormatError(
			fmt.Sprintf("frame primary HDU has %d axes, want 2", len(axes)), nil)
	}

	return &types.FrameImage{
		Run:    run,
		Camcol: camcol,
		Field:  field,
		Band:   band,
		NAxis1: axes[0],
		NAxis2: axes[1],
		Pixels: pixels,
	}, nil
}
