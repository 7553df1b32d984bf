package frame

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/skycat/skycat/pkg/types"
)

// WritePGM renders a frame as an 8-bit binary PGM (P5) grayscale image,
// linearly scaled between the finite minimum and maximum pixel values.
// NaN pixels render black. A constant image renders mid-gray.
func WritePGM(w io.Writer, img *types.FrameImage) error {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range img.Pixels {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", img.NAxis1, img.NAxis2); err != nil {
		return err
	}

	span := hi - lo
	for _, v := range img.Pixels {
		var b byte
		switch {
		case math.IsNaN(v):
			b = 0
		case span == 0 || math.IsInf(span, 0):
			b = 128
		default:
			b = byte(math.Round((v - lo) / span * 255))
		}
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	return bw.Flush()
}
