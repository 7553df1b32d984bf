// Package integration exercises the full catalog pipeline against local
// fixtures: a fake SkyServer endpoint for queries and a local SAS mirror
// for spectra and frames.
package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/astrogo/fitsio"
	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycat/skycat/internal/app"
	"github.com/skycat/skycat/internal/config"
	"github.com/skycat/skycat/internal/fits/fitstest"
	"github.com/skycat/skycat/internal/photometry"
	"github.com/skycat/skycat/internal/sas"
	"github.com/skycat/skycat/internal/storage"
	"github.com/skycat/skycat/internal/target"
	"github.com/skycat/skycat/pkg/types"
)

// Two rows: the first passes both LOWZ and CMASS, the second is a faint
// object that fails both.
const fixtureCSV = "#Table1\n" +
	"ra,dec,modelMag_u,modelMag_g,modelMag_r,modelMag_i,modelMag_z," +
	"cmodelMag_r,cmodelMag_i,psfMag_r,psfMag_i,psfMag_z," +
	"fiber2Mag_i,devRad_i,resolveStatus,boss_target1\n" +
	"184.9,12.2,22.3,20.85,18.85,18.0,17.5,18.0,18.0,18.5,18.7,18.7,20.0,5.0,1,3\n" +
	"185.1,12.5,24.0,23.0,22.0,21.5,21.0,22.0,21.5,22.1,21.7,21.3,22.0,1.0,1,0\n"

func testApp(t *testing.T, skyserverURL, mirrorDir string) *app.App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.SkyServer.Endpoint = skyserverURL
	cfg.SkyServer.Timeout = 5 * time.Second
	cfg.Archive.Type = "local"
	cfg.Archive.Path = mirrorDir

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	return a
}

func TestQueryToClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Contains(t, r.URL.Query().Get("cmd"), "PhotoObj")
		w.Write([]byte(fixtureCSV))
	}))
	defer srv.Close()

	a := testApp(t, srv.URL, t.TempDir())
	ctx := context.Background()

	batch, err := a.SkyServer.QueryCatalog(ctx, "SELECT TOP 2 ... FROM PhotoObj")
	require.NoError(t, err)
	require.Equal(t, 2, batch.Len())

	aux, err := photometry.AuxiliaryColorsForBatch(batch)
	require.NoError(t, err)
	assert.InDelta(t, 0.17, aux.CPerp[0], 1e-12)
	assert.InDelta(t, 0.60, aux.DPerp[0], 1e-12)

	lowz, err := target.LowZ(batch, aux)
	require.NoError(t, err)
	cmass, err := target.CMass(batch, aux)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, lowz)
	assert.Equal(t, []bool{true, false}, cmass)

	// The recorded targeting bits agree for these rows.
	lowzBit, err := target.FromBitmask("LOWZ", batch.BossTarget1)
	require.NoError(t, err)
	assert.Equal(t, lowz, lowzBit)
}

func TestSpectrumFromLocalMirror(t *testing.T) {
	mirror := t.TempDir()
	local, err := storage.NewLocalStore(mirror)
	require.NoError(t, err)

	npix, nfiber := 3, 2
	flux := []float32{10, 11, 12, 20, 21, 22}
	ivar := []float32{1, 1, 1, 2, 2, 2}
	pad := make([]float32, npix*nfiber)
	sky := []float32{5, 5, 5, 6, 6, 6}

	specs := []fitstest.ImageSpec{
		fitstest.Float32Image(npix, nfiber, flux,
			fitsio.Card{Name: "COEFF0", Value: 3.6},
			fitsio.Card{Name: "COEFF1", Value: 0.0001},
		),
		fitstest.Float32Image(npix, nfiber, ivar),
	}
	for i := 2; i < 6; i++ {
		specs = append(specs, fitstest.Float32Image(npix, nfiber, pad))
	}
	specs = append(specs, fitstest.Float32Image(npix, nfiber, sky))

	plate, err := fitstest.Build(specs...)
	require.NoError(t, err)
	require.NoError(t, local.Put(sas.SpectrumPath("v5_10_0", 3586, 55181), plate))

	a := testApp(t, "http://unused.invalid", mirror)

	rec, err := a.Spectra.Spectrum(context.Background(), 3586, 55181, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 21, 22}, rec.Flux)
	assert.Equal(t, []float64{2, 2, 2}, rec.Ivar)
	assert.Equal(t, []float64{6, 6, 6}, rec.Sky)
	assert.InDelta(t, 3981.0717055349733, rec.Wavelength[0], 1e-6)
}

func TestFrameToMagnitudes(t *testing.T) {
	mirror := t.TempDir()
	local, err := storage.NewLocalStore(mirror)
	require.NoError(t, err)

	fitsData, err := fitstest.Build(fitstest.Float32Image(2, 1, []float32{0, 100}))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw, err := bzip2.NewWriter(&buf, nil)
	require.NoError(t, err)
	_, err = zw.Write(fitsData)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, local.Put(sas.FramePath(3918, 3, 213, types.BandI), buf.Bytes()))

	a := testApp(t, "http://unused.invalid", mirror)
	ctx := context.Background()

	img, err := a.Frames.Frame(ctx, 3918, 3, 213, types.BandI)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 100}, img.Pixels)

	mags, err := photometry.AsinhMagnitudeImage(img)
	require.NoError(t, err)
	assert.Less(t, mags[1], mags[0])

	// Second request is served from the memo cache.
	again, err := a.Frames.Frame(ctx, 3918, 3, 213, types.BandI)
	require.NoError(t, err)
	assert.Same(t, img, again)
}
