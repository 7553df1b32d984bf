package sas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skycat/skycat/pkg/types"
)

// The archive layout is a compatibility contract; these strings are
// pinned bit-exact against known SAS paths.

func TestSpectrumPath(t *testing.T) {
	assert.Equal(t,
		"sdss/spectro/redux/v5_10_0/3586/spPlate-3586-55181.fits",
		SpectrumPath("v5_10_0", 3586, 55181))

	// Zero padding: plate to 4 digits, mjd to 5.
	assert.Equal(t,
		"sdss/spectro/redux/v5_10_0/0266/spPlate-0266-51602.fits",
		SpectrumPath("v5_10_0", 266, 51602))
}

func TestFramePath(t *testing.T) {
	assert.Equal(t,
		"eboss/photoObj/frames/301/3918/3/frame-r-003918-3-0213.fits.bz2",
		FramePath(3918, 3, 213, types.BandR))

	// Run pads to 6 digits, field to 4; camcol never pads.
	assert.Equal(t,
		"eboss/photoObj/frames/301/94/6/frame-z-000094-6-0012.fits.bz2",
		FramePath(94, 6, 12, types.BandZ))
}

func TestVirtualPaths(t *testing.T) {
	assert.Equal(t,
		"sdss_dr14://sdss/spectro/redux/v5_10_0/3586/spPlate-3586-55181.fits",
		VirtualSpectrumPath(DefaultScheme, "v5_10_0", 3586, 55181))
	assert.Equal(t,
		"sdss_dr14://eboss/photoObj/frames/301/3918/3/frame-g-003918-3-0213.fits.bz2",
		VirtualFramePath(DefaultScheme, 3918, 3, 213, types.BandG))
}
