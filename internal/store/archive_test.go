package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycat/skycat/pkg/types"
)

func openArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "queries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func sampleBatch() *types.CatalogBatch {
	return &types.CatalogBatch{
		RA:          []float64{184.9, 185.1},
		Dec:         []float64{12.2, 12.5},
		Model:       types.BandColumns{R: []float64{18.85, 19.2}, I: []float64{18.0, 18.4}},
		CModel:      types.BandColumns{R: []float64{18.0, 18.9}},
		BossTarget1: []int64{3, 0},
	}
}

func TestArchive_SaveLoadRoundtrip(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()

	runID, err := a.SaveBatch(ctx, "SELECT TOP 2 ...", sampleBatch())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	got, err := a.LoadBatch(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, sampleBatch(), got)
}

func TestArchive_LoadUnknownRun(t *testing.T) {
	a := openArchive(t)

	_, err := a.LoadBatch(context.Background(), "no-such-run")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestArchive_ListRuns(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()

	id1, err := a.SaveBatch(ctx, "SELECT lowz", sampleBatch())
	require.NoError(t, err)
	id2, err := a.SaveBatch(ctx, "SELECT cmass", sampleBatch())
	require.NoError(t, err)

	runs, err := a.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].RunID, runs[1].RunID}
	assert.Contains(t, ids, id1)
	assert.Contains(t, ids, id2)
	assert.Equal(t, 2, runs[0].RowCount)

	// Limit applies.
	runs, err = a.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestArchive_DistinctRunIDs(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()

	id1, err := a.SaveBatch(ctx, "SELECT a", sampleBatch())
	require.NoError(t, err)
	id2, err := a.SaveBatch(ctx, "SELECT a", sampleBatch())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "same SQL archives under fresh run IDs")
}

func TestArchive_NaNSurvivesRoundtrip(t *testing.T) {
	// Missing photometry decodes to NaN; archived batches must carry it.
	a := openArchive(t)
	ctx := context.Background()

	batch := sampleBatch()
	batch.Dec[0] = math.NaN()

	runID, err := a.SaveBatch(ctx, "SELECT nan", batch)
	require.NoError(t, err)

	got, err := a.LoadBatch(ctx, runID)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Dec[0]))
	assert.Equal(t, 12.5, got.Dec[1])
}
