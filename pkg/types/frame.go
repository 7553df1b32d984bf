package types

// FrameImage is one calibrated imaging frame in linear flux units
// (nanomaggies). Pixels are stored row-major: the value at column x,
// row y is Pixels[y*NAxis1+x].
type FrameImage struct {
	// Run is the imaging run number
	Run int `json:"run"`

	// Camcol is the camera column (1-6)
	Camcol int `json:"camcol"`

	// Field is the field number within the run
	Field int `json:"field"`

	// Band is the photometric filter the frame was taken in
	Band Band `json:"band"`

	// NAxis1 is the image width in pixels
	NAxis1 int `json:"naxis1"`

	// NAxis2 is the image height in pixels
	NAxis2 int `json:"naxis2"`

	// Pixels holds NAxis1*NAxis2 flux values in nanomaggies, row-major
	Pixels []float64 `json:"pixels"`
}

// At returns the flux at column x, row y.
func (f *FrameImage) At(x, y int) float64 {
	return f.Pixels[y*f.NAxis1+x]
}

// Len returns the total pixel count.
func (f *FrameImage) Len() int {
	return len(f.Pixels)
}
