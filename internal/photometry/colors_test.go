package photometry

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/skycat/skycat/internal/errors"
)

func TestAuxiliaryColors_KnownValues(t *testing.T) {
	// g-r = 2.0, r-i = 0.85
	g := []float64{20.85}
	r := []float64{18.85}
	i := []float64{18.0}

	aux, err := AuxiliaryColors(g, r, i)
	assert.NoError(t, err)
	assert.Equal(t, 1, aux.Len())

	assert.InDelta(t, 0.7*2.0+1.2*(0.85-0.18), aux.CPar[0], 1e-12)
	assert.InDelta(t, 0.85-2.0/4-0.18, aux.CPerp[0], 1e-12)
	assert.InDelta(t, 0.85-2.0/8, aux.DPerp[0], 1e-12)
}

func TestAuxiliaryColors_ShapeMismatch(t *testing.T) {
	_, err := AuxiliaryColors([]float64{1, 2}, []float64{1}, []float64{1, 2})
	assert.Error(t, err)
	assert.Equal(t, errors.CodeShapeMismatch, errors.GetCode(err))
}

func TestAuxiliaryColors_NaNPropagates(t *testing.T) {
	aux, err := AuxiliaryColors([]float64{math.NaN()}, []float64{18.0}, []float64{17.5})
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(aux.CPar[0]))
	assert.True(t, math.IsNaN(aux.CPerp[0]))
	assert.True(t, math.IsNaN(aux.DPerp[0]))
}

func TestAuxiliaryColors_EmptyBatch(t *testing.T) {
	aux, err := AuxiliaryColors(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, aux.Len())
}

// TestProperty_CPerpLinearity checks that c_perp is linear in (g-r):
// perturbing g-r by delta while holding r-i fixed changes c_perp by
// exactly -delta/4.
func TestProperty_CPerpLinearity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("delta(c_perp) = -0.25*delta(g-r) at fixed r-i", prop.ForAll(
		func(r, gr, ri, delta float64) bool {
			g1 := r + gr
			g2 := r + gr + delta
			i := r - ri

			aux1, err := AuxiliaryColors([]float64{g1}, []float64{r}, []float64{i})
			if err != nil {
				return false
			}
			aux2, err := AuxiliaryColors([]float64{g2}, []float64{r}, []float64{i})
			if err != nil {
				return false
			}

			got := aux2.CPerp[0] - aux1.CPerp[0]
			return math.Abs(got-(-delta/4)) < 1e-9
		},
		gen.Float64Range(14, 24),
		gen.Float64Range(-2, 4),
		gen.Float64Range(-2, 4),
		gen.Float64Range(-4, 4),
	))

	properties.Property("d_perp is independent of an overall magnitude shift", prop.ForAll(
		func(g, r, i, shift float64) bool {
			aux1, err := AuxiliaryColors([]float64{g}, []float64{r}, []float64{i})
			if err != nil {
				return false
			}
			aux2, err := AuxiliaryColors([]float64{g + shift}, []float64{r + shift}, []float64{i + shift})
			if err != nil {
				return false
			}
			return math.Abs(aux2.DPerp[0]-aux1.DPerp[0]) < 1e-9
		},
		gen.Float64Range(14, 24),
		gen.Float64Range(14, 24),
		gen.Float64Range(14, 24),
		gen.Float64Range(-5, 5),
	))

	properties.TestingRun(t)
}
