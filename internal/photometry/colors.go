// Package photometry implements the closed-form photometric transformations
// used by BOSS target selection: the auxiliary color indices derived from
// model magnitudes, and the asinh ("luptitude") magnitude conversion for
// calibrated imaging.
package photometry

import (
	"fmt"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/pkg/types"
)

// BOSS auxiliary color definitions (Dawson et al. 2013, eqs. 1-3):
//
//	c_par  = 0.7*(g-r) + 1.2*((r-i) - 0.18)
//	c_perp = (r-i) - (g-r)/4 - 0.18
//	d_perp = (r-i) - (g-r)/8
//
// All three are total over real inputs; NaN magnitudes propagate through
// per IEEE 754.

// AuxiliaryColors computes the three BOSS selection colors element-wise
// over equal-length g/r/i model-magnitude columns. The three inputs must
// have the same length or a ShapeMismatch error is returned.
func AuxiliaryColors(g, r, i []float64) (*types.AuxiliaryColors, error) {
	n := len(g)
	if len(r) != n || len(i) != n {
		return nil, errors.NewShapeMismatch(
			fmt.Sprintf("magnitude columns disagree: g=%d r=%d i=%d", n, len(r), len(i)))
	}

	aux := &types.AuxiliaryColors{
		CPar:  make([]float64, n),
		CPerp: make([]float64, n),
		DPerp: make([]float64, n),
	}
	for j := 0; j < n; j++ {
		gr := g[j] - r[j]
		ri := r[j] - i[j]
		aux.CPar[j] = 0.7*gr + 1.2*(ri-0.18)
		aux.CPerp[j] = ri - gr/4 - 0.18
		aux.DPerp[j] = ri - gr/8
	}
	return aux, nil
}

// AuxiliaryColorsForBatch computes the selection colors from a batch's
// model magnitudes.
func AuxiliaryColorsForBatch(batch *types.CatalogBatch) (*types.AuxiliaryColors, error) {
	return AuxiliaryColors(batch.Model.G, batch.Model.R, batch.Model.I)
}
