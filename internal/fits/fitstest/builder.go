// Package fitstest builds small synthetic FITS files for tests.
package fitstest

import (
	"bytes"
	"fmt"

	"github.com/astrogo/fitsio"
)

// ImageSpec describes one image HDU of a synthetic file.
type ImageSpec struct {
	// Bitpix is the FITS pixel type code (-32 for float32, etc.)
	Bitpix int

	// Axes holds the axis lengths, NAXIS1 first.
	Axes []int

	// Data is a slice matching Bitpix ([]float32 for -32, ...), row-major.
	Data interface{}

	// Cards are extra header fields to append.
	Cards []fitsio.Card
}

// Build serializes the given image HDUs into a FITS byte slice. The first
// spec becomes the primary HDU.
func Build(specs ...ImageSpec) ([]byte, error) {
	buf := new(bytes.Buffer)
	f, err := fitsio.Create(buf)
	if err != nil {
		return nil, fmt.Errorf("fitstest: create: %w", err)
	}

	for i, spec := range specs {
		img := fitsio.NewImage(spec.Bitpix, spec.Axes)
		if len(spec.Cards) > 0 {
			if err := img.Header().Append(spec.Cards...); err != nil {
				img.Close()
				return nil, fmt.Errorf("fitstest: HDU %d header: %w", i, err)
			}
		}
		if spec.Data != nil {
			if err := img.Write(spec.Data); err != nil {
				img.Close()
				return nil, fmt.Errorf("fitstest: HDU %d data: %w", i, err)
			}
		}
		if err := f.Write(img); err != nil {
			img.Close()
			return nil, fmt.Errorf("fitstest: HDU %d write: %w", i, err)
		}
		img.Close()
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("fitstest: close: %w", err)
	}
	return buf.Bytes(), nil
}

// Float32Image is a convenience for the common float32 2-D case.
func Float32Image(naxis1, naxis2 int, data []float32, cards ...fitsio.Card) ImageSpec {
	return ImageSpec{
		Bitpix: -32,
		Axes:   []int{naxis1, naxis2},
		Data:   &data,
		Cards:  cards,
	}
}
