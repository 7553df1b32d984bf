// Package spectro reconstructs calibrated BOSS spectra from spPlate files:
// it resolves the archive path for a (plate, mjd) pair, decodes the
// multi-extension file, slices out one fiber's rows, and rebuilds the
// wavelength solution from the log-linear WCS coefficients.
package spectro

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/internal/fits"
	"github.com/skycat/skycat/internal/sas"
	"github.com/skycat/skycat/internal/storage"
	"github.com/skycat/skycat/pkg/types"
)

// spPlate extension layout. The file carries more extensions than these;
// only the ones the record needs are read.
const (
	hduFlux = 0
	hduIvar = 1
	hduSky  = 6
)

// Reconstructor extracts single-fiber spectra from spPlate files.
type Reconstructor struct {
	mounts *storage.Mounts
	scheme string
	run2d  string
}

// New creates a spectral reconstructor reading from the given mount table.
// scheme selects the archive mount; run2d is the reduction version used in
// path templating (e.g. "v5_10_0").
func New(mounts *storage.Mounts, scheme, run2d string) *Reconstructor {
	return &Reconstructor{mounts: mounts, scheme: scheme, run2d: run2d}
}

// Spectrum fetches the spPlate file for (plate, mjd) and extracts fiber's
// spectrum. Fiber numbering is 1-based. Storage failures propagate
// unchanged; structural problems in the file are FormatError; a fiber
// outside [1, NAXIS2] is IndexOutOfRange.
func (r *Reconstructor) Spectrum(ctx context.Context, plate, mjd, fiber int) (*types.SpectrumRecord, error) {
	virtualPath := sas.VirtualSpectrumPath(r.scheme, r.run2d, plate, mjd)

	data, err := r.mounts.Fetch(ctx, virtualPath)
	if err != nil {
		return nil, err
	}
	log.Printf("spectro: fetched %s (%d bytes)", virtualPath, len(data))

	f, err := fits.Decode(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if f.NumHDUs() <= hduSky {
		return nil, errors.NewFormatError(
			fmt.Sprintf("spPlate file has %d HDUs, want at least %d", f.NumHDUs(), hduSky+1), nil)
	}

	flux2d, axes, err := f.Image(hduFlux)
	if err != nil {
		return nil, err
	}
	if len(axes) != 2 {
		return nil, errors.NewFormatError(
			fmt.Sprintf("spPlate flux HDU has %d axes, want 2", len(axes)), nil)
	}
	npix, nfiber := axes[0], axes[1]

	if fiber < 1 || fiber > nfiber {
		return nil, errors.NewIndexOutOfRange(
			fmt.Sprintf("fiber %d outside [1, %d] on plate %d", fiber, nfiber, plate))
	}

	coeff0, err := f.HeaderFloat(hduFlux, "COEFF0")
	if err != nil {
		return nil, err
	}
	coeff1, err := f.HeaderFloat(hduFlux, "COEFF1")
	if err != nil {
		return nil, err
	}

	flux := fiberRow(flux2d, npix, fiber)

	ivar, err := r.extensionRow(f, hduIvar, npix, nfiber, fiber)
	if err != nil {
		return nil, err
	}
	sky, err := r.extensionRow(f, hduSky, npix, nfiber, fiber)
	if err != nil {
		return nil, err
	}

	// Log-linear wavelength solution: lambda_i = 10^(COEFF0 + COEFF1*i).
	wavelength := make([]float64, npix)
	for i := 0; i < npix; i++ {
		wavelength[i] = math.Pow(10, coeff0+coeff1*float64(i))
	}

	rec, err := types.NewSpectrumRecord(plate, mjd, fiber, r.run2d, wavelength, flux, ivar, sky)
	if err != nil {
		return nil, errors.NewFormatError("spPlate extensions disagree in length", err)
	}
	return rec, nil
}

// extensionRow reads one fiber's row from an extension and verifies the
// extension is congruent with the flux HDU.
func (r *Reconstructor) extensionRow(f *fits.File, hdu, npix, nfiber, fiber int) ([]float64, error) {
	data, axes, err := f.Image(hdu)
	if err != nil {
		return nil, err
	}
	if len(axes) != 2 || axes[0] != npix || axes[1] != nfiber {
		return nil, errors.NewFormatError(
			fmt.Sprintf("spPlate HDU %d shape %v does not match flux shape [%d %d]", hdu, axes, npix, nfiber), nil)
	}
	return fiberRow(data, npix, fiber), nil
}

// fiberRow slices the 1-based fiber's row out of row-major 2-D data.
func fiberRow(data []float64, npix, fiber int) []float64 {
	row := make([]float64, npix)
	copy(row, data[(fiber-1)*npix:fiber*npix])
	return row
}
