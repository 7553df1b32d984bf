package photometry

import (
	"math"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/pkg/types"
)

// Softening holds the per-band asinh softening parameter b (Lupton, Gunn &
// Szalay 1999), as tabulated for SDSS calibrated imaging. The values are a
// published contract and must not be adjusted.
var Softening = map[types.Band]float64{
	types.BandU: 1.4e-10,
	types.BandG: 0.9e-10,
	types.BandR: 1.2e-10,
	types.BandI: 1.8e-10,
	types.BandZ: 7.4e-10,
}

// PogsonScale is the magnitude scale factor -2.5/ln(10).
var PogsonScale = -2.5 / math.Ln10

// AsinhMagnitudes converts linear fluxes in nanomaggies to asinh
// magnitudes for the given band:
//
//	mag = C * (asinh(f*1e-9/(2b)) + ln(b)),  C = -2.5/ln(10)
//
// The band is validated before any array work; an unknown band returns
// InvalidBand and leaves the input untouched. Zero flux maps to the finite
// value C*ln(b), which is the point of the asinh form.
func AsinhMagnitudes(flux []float64, band types.Band) ([]float64, error) {
	b, ok := Softening[band]
	if !ok {
		return nil, errors.NewInvalidBand(string(band))
	}

	lnb := math.Log(b)
	out := make([]float64, len(flux))
	for j, f := range flux {
		out[j] = PogsonScale * (math.Asinh(f*1e-9/(2*b)) + lnb)
	}
	return out, nil
}

// AsinhMagnitudeImage converts a frame's pixels to asinh magnitudes using
// the frame's own band. The returned slice is row-major with the frame's
// dimensions; the frame itself is not modified.
func AsinhMagnitudeImage(img *types.FrameImage) ([]float64, error) {
	return AsinhMagnitudes(img.Pixels, img.Band)
}
