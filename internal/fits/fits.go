// Package fits wraps the fitsio codec with the small set of operations the
// reconstructors need: open a file from bytes, pull a 2-D image HDU out as
// float64 data, and read scalar header fields. Structural problems are
// reported as FormatError with the codec's message preserved.
package fits

import (
	"bytes"
	"fmt"

	"github.com/astrogo/fitsio"

	"github.com/skycat/skycat/internal/errors"
)

// File is a decoded multi-extension FITS file.
type File struct {
	f *fitsio.File
}

// Decode parses a FITS file from a byte slice.
func Decode(data []byte) (*File, error) {
	f, err := fitsio.Open(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewFormatError("failed to decode FITS file", err)
	}
	return &File{f: f}, nil
}

// Close releases the underlying codec resources.
func (f *File) Close() error {
	return f.f.Close()
}

// NumHDUs returns the number of header-data units in the file.
func (f *File) NumHDUs() int {
	return len(f.f.HDUs())
}

// Image extracts HDU i as a float64 pixel slice plus its axis lengths
// (NAXIS1 first). Fails with FormatError when the HDU is absent, is not
// an image, or carries an unsupported BITPIX.
func (f *File) Image(i int) ([]float64, []int, error) {
	if i < 0 || i >= f.NumHDUs() {
		return nil, nil, errors.NewFormatError(
			fmt.Sprintf("HDU %d absent (file has %d)", i, f.NumHDUs()), nil)
	}

	img, ok := f.f.HDUs()[i].(fitsio.Image)
	if !ok {
		return nil, nil, errors.NewFormatError(fmt.Sprintf("HDU %d is not an image", i), nil)
	}

	hdr := img.Header()
	axes := hdr.Axes()
	n := 1
	for _, ax := range axes {
		n *= ax
	}
	if len(axes) == 0 || n == 0 {
		return []float64{}, axes, nil
	}

	// The codec resizes the destination with reflect.Value.SetLen, so each
	// buffer must be allocated to the full axis product up front.
	out := make([]float64, n)
	switch hdr.Bitpix() {
	case -64:
		if err := img.Read(&out); err != nil {
			return nil, nil, errors.NewFormatError(fmt.Sprintf("failed to read HDU %d data", i), err)
		}
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return nil, nil, errors.NewFormatError(fmt.Sprintf("failed to read HDU %d data", i), err)
		}
		for j, v := range raw {
			out[j] = float64(v)
		}
	case 8:
		raw := make([]int8, n)
		if err := img.Read(&raw); err != nil {
			return nil, nil, errors.NewFormatError(fmt.Sprintf("failed to read HDU %d data", i), err)
		}
		for j, v := range raw {
			out[j] = float64(v)
		}
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return nil, nil, errors.NewFormatError(fmt.Sprintf("failed to read HDU %d data", i), err)
		}
		for j, v := range raw {
			out[j] = float64(v)
		}
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return nil, nil, errors.NewFormatError(fmt.Sprintf("failed to read HDU %d data", i), err)
		}
		for j, v := range raw {
			out[j] = float64(v)
		}
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, nil, errors.NewFormatError(fmt.Sprintf("failed to read HDU %d data", i), err)
		}
		for j, v := range raw {
			out[j] = float64(v)
		}
	default:
		return nil, nil, errors.NewFormatError(
			fmt.Sprintf("HDU %d has unsupported BITPIX %d", i, hdr.Bitpix()), nil)
	}
	return out, axes, nil
}

// HeaderFloat reads a scalar numeric header field from HDU i.
func (f *File) HeaderFloat(i int, key string) (float64, error) {
	if i < 0 || i >= f.NumHDUs() {
		return 0, errors.NewFormatError(
			fmt.Sprintf("HDU %d absent (file has %d)", i, f.NumHDUs()), nil)
	}

	card := f.f.HDUs()[i].Header().Get(key)
	if card == nil {
		return 0, errors.NewFormatError(fmt.Sprintf("header field %s absent in HDU %d", key, i), nil)
	}
	switch v := card.Value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, errors.NewFormatError(
			fmt.Sprintf("header field %s in HDU %d is not numeric (%T)", key, i, card.Value), nil)
	}
}
