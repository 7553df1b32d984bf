package skyserver

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/pkg/types"
)

// DecodeCSV decodes a SkyServer CSV result body into a columnar catalog
// batch. SkyServer prefixes results with a "#Table1" comment line, which
// is skipped. Columns are matched by name (case-insensitive); recognized
// columns fill the batch, unknown columns are ignored. Empty and "null"
// cells decode to NaN for float columns and 0 for bitmask columns.
func DecodeCSV(body []byte) (*types.CatalogBatch, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.Comment = '#'
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.NewFormatError("malformed CSV result", err)
	}
	if len(records) == 0 {
		return nil, errors.NewFormatError("empty CSV result (no header)", nil)
	}

	header := records[0]
	rows := records[1:]
	n := len(rows)

	batch := &types.CatalogBatch{}
	floatCols := map[string]*[]float64{
		"ra":           &batch.RA,
		"dec":          &batch.Dec,
		"modelmag_u":   &batch.Model.U,
		"modelmag_g":   &batch.Model.G,
		"modelmag_r":   &batch.Model.R,
		"modelmag_i":   &batch.Model.I,
		"modelmag_z":   &batch.Model.Z,
		"cmodelmag_u":  &batch.CModel.U,
		"cmodelmag_g":  &batch.CModel.G,
		"cmodelmag_r":  &batch.CModel.R,
		"cmodelmag_i":  &batch.CModel.I,
		"cmodelmag_z":  &batch.CModel.Z,
		"psfmag_u":     &batch.PSF.U,
		"psfmag_g":     &batch.PSF.G,
		"psfmag_r":     &batch.PSF.R,
		"psfmag_i":     &batch.PSF.I,
		"psfmag_z":     &batch.PSF.Z,
		"fiber2mag_u":  &batch.Fiber2.U,
		"fiber2mag_g":  &batch.Fiber2.G,
		"fiber2mag_r":  &batch.Fiber2.R,
		"fiber2mag_i":  &batch.Fiber2.I,
		"fiber2mag_z":  &batch.Fiber2.Z,
		"devrad_i":     &batch.DevRadI,
	}
	intCols := map[string]*[]int64{
		"resolvestatus": &batch.ResolveStatus,
		"boss_target1":  &batch.BossTarget1,
	}

	for col, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))

		if dst, ok := floatCols[key]; ok {
			vals := make([]float64, n)
			for j, row := range rows {
				if col >= len(row) {
					return nil, errors.NewFormatError(
						fmt.Sprintf("row %d has %d cells, header has %d", j+1, len(row), len(header)), nil)
				}
				vals[j] = parseFloatCell(row[col])
			}
			*dst = vals
			continue
		}

		if dst, ok := intCols[key]; ok {
			vals := make([]int64, n)
			for j, row := range rows {
				if col >= len(row) {
					return nil, errors.NewFormatError(
						fmt.Sprintf("row %d has %d cells, header has %d", j+1, len(row), len(header)), nil)
				}
				v, err := strconv.ParseInt(strings.TrimSpace(row[col]), 10, 64)
				if err != nil {
					v = 0
				}
				vals[j] = v
			}
			*dst = vals
		}
	}

	if batch.RA == nil {
		return nil, errors.NewFormatError("CSV result carries no ra column", nil)
	}
	return batch, nil
}

func parseFloatCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "null") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
