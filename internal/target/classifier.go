// Package target implements BOSS spectroscopic target selection over
// photometric catalog batches. Two mechanisms exist and must not be
// conflated: the photometric cuts below approximate targeting from raw
// photometry, while the BOSS_TARGET1 bitmask (bitmask.go) reflects the
// targeting decision already recorded in the catalog.
package target

import (
	"fmt"
	"math"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/pkg/types"
)

// Selection cut constants, reproduced verbatim from the published BOSS
// galaxy target selection (Dawson et al. 2013, sections 3.1-3.2). These
// are an external contract: verify against the reference, never re-derive.
const (
	lowzSlidingZero  = 13.5
	lowzCParScale    = 0.3
	lowzCPerpWindow  = 0.2
	lowzFaintLimit   = 19.6
	lowzBrightLimit  = 16.0
	lowzStarGalaxy   = 0.3
	cmassSlidingZero = 19.86
	cmassSlidingGain = 1.6
	cmassDPerpPivot  = 0.8
	cmassBrightLimit = 17.5
	cmassFaintLimit  = 19.9
	cmassDPerpFloor  = 0.55
	cmassRILimit     = 2.0
	cmassFiber2Limit = 21.5
	cmassDevRadPix   = 20.0

	// arcsecPerPixel is the SDSS imaging plate scale.
	arcsecPerPixel = 0.396
)

// Predicate computes one named selection mask over a batch.
type Predicate func(batch *types.CatalogBatch, aux *types.AuxiliaryColors) ([]bool, error)

// Selectors maps class names to their photometric predicates. Classes are
// not mutually exclusive: a row may satisfy zero, one, or both.
var Selectors = map[string]Predicate{
	"LOWZ":  LowZ,
	"CMASS": CMass,
}

// LowZ computes the LOWZ galaxy selection mask:
//
//	cmodel_r < 13.5 + c_par/0.3
//	|c_perp| < 0.2
//	16.0 < cmodel_r < 19.6
//	psf_r - cmodel_r > 0.3
//
// Rows with NaN in any compared field evaluate to false, per IEEE 754
// comparison semantics.
func LowZ(batch *types.CatalogBatch, aux *types.AuxiliaryColors) ([]bool, error) {
	if err := checkShapes(batch, aux); err != nil {
		return nil, err
	}

	n := batch.Len()
	mask := make([]bool, n)
	for j := 0; j < n; j++ {
		cmodelR := batch.CModel.R[j]
		psfR := batch.PSF.R[j]
		mask[j] = cmodelR < lowzSlidingZero+aux.CPar[j]/lowzCParScale &&
			math.Abs(aux.CPerp[j]) < lowzCPerpWindow &&
			cmodelR > lowzBrightLimit && cmodelR < lowzFaintLimit &&
			psfR-cmodelR > lowzStarGalaxy
	}
	return mask, nil
}

// CMass computes the CMASS galaxy selection mask:
//
//	cmodel_i < 19.86 + 1.6*(d_perp - 0.8)
//	17.5 < cmodel_i < 19.9
//	d_perp > 0.55
//	psf_i - model_i > 0.2 + 0.2*(20.0 - model_i)
//	psf_z - model_z > 9.125 - 0.46*model_z
//	model_r - model_i < 2
//	fiber2_i < 21.5
//	devrad_i / 0.396 < 20   (profile radius in pixels)
func CMass(batch *types.CatalogBatch, aux *types.AuxiliaryColors) ([]bool, error) {
	if err := checkShapes(batch, aux); err != nil {
		return nil, err
	}

	n := batch.Len()
	mask := make([]bool, n)
	for j := 0; j < n; j++ {
		cmodelI := batch.CModel.I[j]
		modelI := batch.Model.I[j]
		modelR := batch.Model.R[j]
		modelZ := batch.Model.Z[j]
		dperp := aux.DPerp[j]
		mask[j] = cmodelI < cmassSlidingZero+cmassSlidingGain*(dperp-cmassDPerpPivot) &&
			cmodelI > cmassBrightLimit && cmodelI < cmassFaintLimit &&
			dperp > cmassDPerpFloor &&
			batch.PSF.I[j]-modelI > 0.2+0.2*(20.0-modelI) &&
			batch.PSF.Z[j]-modelZ > 9.125-0.46*modelZ &&
			modelR-modelI < cmassRILimit &&
			batch.Fiber2.I[j] < cmassFiber2Limit &&
			batch.DevRadI[j]/arcsecPerPixel < cmassDevRadPix
	}
	return mask, nil
}

// checkShapes verifies that every column a predicate reads is parallel to
// the batch and that the auxiliary colors were derived from a batch of the
// same length.
func checkShapes(batch *types.CatalogBatch, aux *types.AuxiliaryColors) error {
	n := batch.Len()
	cols := map[string]int{
		"cmodel_r": len(batch.CModel.R),
		"cmodel_i": len(batch.CModel.I),
		"model_r":  len(batch.Model.R),
		"model_i":  len(batch.Model.I),
		"model_z":  len(batch.Model.Z),
		"psf_r":    len(batch.PSF.R),
		"psf_i":    len(batch.PSF.I),
		"psf_z":    len(batch.PSF.Z),
		"fiber2_i": len(batch.Fiber2.I),
		"devrad_i": len(batch.DevRadI),
	}
	for name, l := range cols {
		if l != n {
			return errors.NewShapeMismatch(fmt.Sprintf("column %s has %d rows, batch has %d", name, l, n))
		}
	}
	if aux.Len() != n {
		return errors.NewShapeMismatch(fmt.Sprintf("auxiliary colors have %d rows, batch has %d", aux.Len(), n))
	}
	return nil
}
