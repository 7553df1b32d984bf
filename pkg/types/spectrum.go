package types

import "fmt"

// SpectrumRecord holds one calibrated BOSS spectrum extracted from an
// spPlate file. The four arrays are parallel: element i of each refers to
// the same wavelength bin.
type SpectrumRecord struct {
	// Plate is the spectroscopic plate number
	Plate int `json:"plate"`

	// MJD is the modified Julian date of the observation
	MJD int `json:"mjd"`

	// Fiber is the 1-based fiber number on the plate
	Fiber int `json:"fiber"`

	// Run2D is the 2D reduction pipeline version (e.g. "v5_10_0")
	Run2D string `json:"run2d"`

	// Wavelength is the vacuum wavelength per bin, Angstroms
	Wavelength []float64 `json:"wavelength"`

	// Flux is the calibrated flux per bin, 1e-17 erg/s/cm^2/Angstrom
	Flux []float64 `json:"flux"`

	// Ivar is the inverse variance of Flux
	Ivar []float64 `json:"ivar"`

	// Sky is the subtracted sky flux per bin
	Sky []float64 `json:"sky"`
}

// NewSpectrumRecord builds a SpectrumRecord, enforcing that the four
// arrays have equal length.
func NewSpectrumRecord(plate, mjd, fiber int, run2d string, wavelength, flux, ivar, sky []float64) (*SpectrumRecord, error) {
	n := len(wavelength)
	if len(flux) != n || len(ivar) != n || len(sky) != n {
		return nil, fmt.Errorf("spectrum arrays disagree: wavelength=%d flux=%d ivar=%d sky=%d",
			n, len(flux), len(ivar), len(sky))
	}
	return &SpectrumRecord{
		Plate:      plate,
		MJD:        mjd,
		Fiber:      fiber,
		Run2D:      run2d,
		Wavelength: wavelength,
		Flux:       flux,
		Ivar:       ivar,
		Sky:        sky,
	}, nil
}

// Len returns the number of wavelength bins.
func (s *SpectrumRecord) Len() int {
	return len(s.Wavelength)
}
