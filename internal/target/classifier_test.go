package target

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/internal/photometry"
	"github.com/skycat/skycat/pkg/types"
)

// galaxyBatch builds a one-row batch that passes both the LOWZ and CMASS
// cuts: model colors g-r=2.0, r-i=0.85 give c_perp=0.17, d_perp=0.6.
func galaxyBatch() *types.CatalogBatch {
	return &types.CatalogBatch{
		RA:  []float64{184.9},
		Dec: []float64{12.2},
		Model: types.BandColumns{
			U: []float64{22.3},
			G: []float64{20.85},
			R: []float64{18.85},
			I: []float64{18.0},
			Z: []float64{17.5},
		},
		CModel: types.BandColumns{
			U: []float64{22.2},
			G: []float64{20.8},
			R: []float64{18.0},
			I: []float64{18.0},
			Z: []float64{17.4},
		},
		PSF: types.BandColumns{
			U: []float64{23.0},
			G: []float64{21.5},
			R: []float64{18.5},
			I: []float64{18.7},
			Z: []float64{18.7},
		},
		Fiber2: types.BandColumns{
			U: []float64{23.5},
			G: []float64{22.0},
			R: []float64{20.5},
			I: []float64{20.0},
			Z: []float64{19.5},
		},
		DevRadI:       []float64{5.0},
		ResolveStatus: []int64{1},
		BossTarget1:   []int64{3},
	}
}

func auxFor(t *testing.T, batch *types.CatalogBatch) *types.AuxiliaryColors {
	t.Helper()
	aux, err := photometry.AuxiliaryColorsForBatch(batch)
	require.NoError(t, err)
	return aux
}

func TestSelectors_NotMutuallyExclusive(t *testing.T) {
	batch := galaxyBatch()
	aux := auxFor(t, batch)

	lowz, err := LowZ(batch, aux)
	require.NoError(t, err)
	cmass, err := CMass(batch, aux)
	require.NoError(t, err)

	// Real targeting allows multiple selection reasons per object.
	assert.True(t, lowz[0])
	assert.True(t, cmass[0])
}

func TestLowZ_FaintLimit(t *testing.T) {
	batch := galaxyBatch()
	batch.CModel.R[0] = 19.7 // past the 19.6 faint bound
	aux := auxFor(t, batch)

	lowz, err := LowZ(batch, aux)
	require.NoError(t, err)
	assert.False(t, lowz[0])
}

func TestCMass_DevRadBoundary(t *testing.T) {
	// devrad_i = 7.92 arcsec is exactly 20.0 pixels at the 0.396"/pix
	// plate scale; the cut is strict, so the boundary row fails.
	batch := galaxyBatch()
	batch.DevRadI[0] = 7.92
	aux := auxFor(t, batch)

	cmass, err := CMass(batch, aux)
	require.NoError(t, err)
	assert.False(t, cmass[0])

	batch.DevRadI[0] = 7.91
	cmass, err = CMass(batch, aux)
	require.NoError(t, err)
	assert.True(t, cmass[0])
}

func TestCMass_DevRadPixelConversion(t *testing.T) {
	assert.Equal(t, 20.0, 7.92/arcsecPerPixel)
}

func TestSelectors_NaNFieldsEvaluateFalse(t *testing.T) {
	batch := galaxyBatch()
	batch.CModel.R[0] = math.NaN()
	batch.CModel.I[0] = math.NaN()
	aux := auxFor(t, batch)

	lowz, err := LowZ(batch, aux)
	require.NoError(t, err)
	cmass, err := CMass(batch, aux)
	require.NoError(t, err)

	assert.False(t, lowz[0])
	assert.False(t, cmass[0])
}

func TestSelectors_ShapeMismatch(t *testing.T) {
	batch := galaxyBatch()
	batch.DevRadI = []float64{5.0, 6.0}
	aux := auxFor(t, batch)

	_, err := CMass(batch, aux)
	assert.Error(t, err)
	assert.Equal(t, errors.CodeShapeMismatch, errors.GetCode(err))
}

func TestSelectors_Map(t *testing.T) {
	batch := galaxyBatch()
	aux := auxFor(t, batch)

	for name, pred := range Selectors {
		mask, err := pred(batch, aux)
		require.NoError(t, err, "selector %s", name)
		assert.Len(t, mask, batch.Len())
	}
}

func TestFromBitmask(t *testing.T) {
	bitmask := []int64{
		0,      // neither
		1 << 0, // LOWZ
		1 << 1, // CMASS
		3,      // both
	}

	lowz, err := FromBitmask("LOWZ", bitmask)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, lowz)

	cmass, err := FromBitmask("CMASS", bitmask)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, true}, cmass)
}

func TestFromBitmask_UnknownClass(t *testing.T) {
	_, err := FromBitmask("QSO", []int64{1})
	assert.Error(t, err)
	assert.Equal(t, errors.CodeUnknownClass, errors.GetCode(err))
}

// TestBitmaskAgreesWithCuts pins the two mechanisms apart: the bitmask
// reflects the recorded targeting decision even when the photometry says
// otherwise.
func TestBitmaskAgreesWithCuts(t *testing.T) {
	batch := galaxyBatch()
	batch.CModel.R[0] = 21.0 // photometric LOWZ fails
	aux := auxFor(t, batch)

	lowzCut, err := LowZ(batch, aux)
	require.NoError(t, err)
	lowzBit, err := FromBitmask("LOWZ", batch.BossTarget1)
	require.NoError(t, err)

	assert.False(t, lowzCut[0])
	assert.True(t, lowzBit[0])
}
