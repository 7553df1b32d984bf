package types

// BandColumns holds one column of per-object values for each of the five
// SDSS filters. All five slices are parallel to the owning batch.
type BandColumns struct {
	U []float64 `json:"u"`
	G []float64 `json:"g"`
	R []float64 `json:"r"`
	I []float64 `json:"i"`
	Z []float64 `json:"z"`
}

// Get returns the column for the given band.
func (c *BandColumns) Get(b Band) []float64 {
	switch b {
	case BandU:
		return c.U
	case BandG:
		return c.G
	case BandR:
		return c.R
	case BandI:
		return c.I
	case BandZ:
		return c.Z
	}
	return nil
}

// CatalogBatch is a columnar batch of photometric catalog rows as returned
// by a SkyServer query. Columns are parallel: index j across every slice
// refers to the same object. A batch is immutable once decoded.
type CatalogBatch struct {
	// RA is the right ascension in degrees (J2000)
	RA []float64 `json:"ra"`

	// Dec is the declination in degrees (J2000)
	Dec []float64 `json:"dec"`

	// Model holds modelMag_* magnitudes per band
	Model BandColumns `json:"model"`

	// CModel holds cModelMag_* magnitudes per band
	CModel BandColumns `json:"cmodel"`

	// PSF holds psfMag_* magnitudes per band
	PSF BandColumns `json:"psf"`

	// Fiber2 holds fiber2Mag_* magnitudes per band
	Fiber2 BandColumns `json:"fiber2"`

	// DevRadI is the de Vaucouleurs profile radius in the i band, arcsec
	DevRadI []float64 `json:"devrad_i"`

	// ResolveStatus is the survey resolve-status bitmask
	ResolveStatus []int64 `json:"resolve_status"`

	// BossTarget1 is the BOSS_TARGET1 spectroscopic targeting bitmask
	BossTarget1 []int64 `json:"boss_target1"`
}

// Len returns the number of rows in the batch, taken from the RA column.
func (b *CatalogBatch) Len() int {
	return len(b.RA)
}

// AuxiliaryColors holds the derived BOSS selection colors, one value per
// catalog row. Created by the color-index calculator and never mutated.
type AuxiliaryColors struct {
	// CPar is the c_parallel composite color
	CPar []float64 `json:"c_par"`

	// CPerp is the c_perpendicular composite color
	CPerp []float64 `json:"c_perp"`

	// DPerp is the d_perpendicular composite color
	DPerp []float64 `json:"d_perp"`
}

// Len returns the number of rows the colors were derived from.
func (a *AuxiliaryColors) Len() int {
	return len(a.CPar)
}
