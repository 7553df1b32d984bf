package target

import (
	"fmt"

	"github.com/skycat/skycat/internal/errors"
)

// TargetBits maps selection class names to their BOSS_TARGET1 bit values.
// These follow the survey's own bit assignments; membership is recorded by
// the survey at targeting time and is authoritative, unlike the photometric
// approximations in classifier.go. New classes are added here, not in the
// classifier.
var TargetBits = map[string]int64{
	"LOWZ":  1 << 0,
	"CMASS": 1 << 1,
}

// FromBitmask computes a membership mask for the named class from a
// BOSS_TARGET1 bitmask column. A row is a member when the class bit is
// set, regardless of any photometric cut.
func FromBitmask(class string, bitmask []int64) ([]bool, error) {
	bit, ok := TargetBits[class]
	if !ok {
		return nil, errors.New(errors.ErrCategoryValidation, errors.CodeUnknownClass,
			fmt.Sprintf("unknown target class %q", class))
	}

	mask := make([]bool, len(bitmask))
	for j, v := range bitmask {
		mask[j] = v&bit != 0
	}
	return mask, nil
}
