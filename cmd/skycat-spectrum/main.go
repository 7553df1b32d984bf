// Package main implements the skycat-spectrum binary: it fetches one
// fiber's spectrum from an spPlate file and emits it as TSV.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skycat/skycat/internal/app"
	"github.com/skycat/skycat/internal/config"
)

func main() {
	var (
		configFile string
		plate      int
		mjd        int
		fiber      int
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.IntVar(&plate, "plate", 0, "Spectroscopic plate number")
	flag.IntVar(&mjd, "mjd", 0, "Modified Julian date of the observation")
	flag.IntVar(&fiber, "fiber", 0, "Fiber number (1-based)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "skycat-spectrum - extract one fiber's spectrum from an spPlate file\n\n")
		fmt.Fprintf(os.Stderr, "Usage: skycat-spectrum -plate N -mjd N -fiber N\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skycat-spectrum -plate 3586 -mjd 55181 -fiber 160\n")
	}

	flag.Parse()

	if plate <= 0 || mjd <= 0 || fiber <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	rec, err := a.Spectra.Spectrum(ctx, plate, mjd, fiber)
	if err != nil {
		log.Fatalf("Spectrum reconstruction failed: %v", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	fmt.Fprintf(w, "# plate=%d mjd=%d fiber=%d run2d=%s bins=%d\n",
		rec.Plate, rec.MJD, rec.Fiber, rec.Run2D, rec.Len())
	fmt.Fprintln(w, "wavelength\tflux\tivar\tsky")
	for i := 0; i < rec.Len(); i++ {
		fmt.Fprintf(w, "%.4f\t%.6g\t%.6g\t%.6g\n",
			rec.Wavelength[i], rec.Flux[i], rec.Ivar[i], rec.Sky[i])
	}
}
