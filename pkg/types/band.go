// Package types provides core data types for the skycat library.
package types

// Band identifies one of the five SDSS photometric filters.
type Band string

const (
	BandU Band = "u"
	BandG Band = "g"
	BandR Band = "r"
	BandI Band = "i"
	BandZ Band = "z"
)

// Bands lists the five filters in wavelength order.
var Bands = []Band{BandU, BandG, BandR, BandI, BandZ}

// Valid reports whether b names a known SDSS filter.
func (b Band) Valid() bool {
	switch b {
	case BandU, BandG, BandR, BandI, BandZ:
		return true
	}
	return false
}

func (b Band) String() string {
	return string(b)
}
