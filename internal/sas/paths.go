// Package sas derives Science Archive Server object paths from survey
// identifiers. The templates are a compatibility contract with the archive
// layout and must be reproduced bit-exact; do not reformat them.
package sas

import (
	"fmt"

	"github.com/skycat/skycat/pkg/types"
)

// DefaultScheme is the virtual-path scheme for the DR14 archive mount.
const DefaultScheme = "sdss_dr14"

// SpectrumPath returns the archive-relative path of the spPlate file for
// a (run2d, plate, mjd) tuple:
//
//	sdss/spectro/redux/<run2d>/<plate:04d>/spPlate-<plate:04d>-<mjd:05d>.fits
func SpectrumPath(run2d string, plate, mjd int) string {
	return fmt.Sprintf("sdss/spectro/redux/%s/%04d/spPlate-%04d-%05d.fits", run2d, plate, plate, mjd)
}

// FramePath returns the archive-relative path of the calibrated imaging
// frame for a (run, camcol, field, band) tuple:
//
//	eboss/photoObj/frames/301/<run:d>/<camcol:d>/frame-<band>-<run:06d>-<camcol:d>-<field:04d>.fits.bz2
func FramePath(run, camcol, field int, band types.Band) string {
	return fmt.Sprintf("eboss/photoObj/frames/301/%d/%d/frame-%s-%06d-%d-%04d.fits.bz2",
		run, camcol, band, run, camcol, field)
}

// VirtualSpectrumPath returns the scheme-prefixed virtual path of an
// spPlate file under the given mount scheme.
func VirtualSpectrumPath(scheme, run2d string, plate, mjd int) string {
	return scheme + "://" + SpectrumPath(run2d, plate, mjd)
}

// VirtualFramePath returns the scheme-prefixed virtual path of a frame
// file under the given mount scheme.
func VirtualFramePath(scheme string, run, camcol, field int, band types.Band) string {
	return scheme + "://" + FramePath(run, camcol, field, band)
}
