// Package main implements the skycat-frame binary: it fetches a calibrated
// imaging frame and reports its dimensions and flux statistics, optionally
// in asinh magnitudes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/skycat/skycat/internal/app"
	"github.com/skycat/skycat/internal/config"
	"github.com/skycat/skycat/internal/frame"
	"github.com/skycat/skycat/internal/photometry"
	"github.com/skycat/skycat/pkg/types"
)

func main() {
	var (
		configFile string
		run        int
		camcol     int
		field      int
		band       string
		asinh      bool
		pgmPath    string
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.IntVar(&run, "run", 0, "Imaging run number")
	flag.IntVar(&camcol, "camcol", 0, "Camera column (1-6)")
	flag.IntVar(&field, "field", 0, "Field number")
	flag.StringVar(&band, "band", "r", "Photometric band: u, g, r, i, z")
	flag.BoolVar(&asinh, "asinh", false, "Report statistics in asinh magnitudes")
	flag.StringVar(&pgmPath, "pgm", "", "Write the frame as an 8-bit PGM image to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "skycat-frame - fetch a calibrated imaging frame\n\n")
		fmt.Fprintf(os.Stderr, "Usage: skycat-frame -run N -camcol N -field N [-band b] [-asinh]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  skycat-frame -run 3918 -camcol 3 -field 213 -band r -asinh\n")
		fmt.Fprintf(os.Stderr, "  skycat-frame -run 3918 -camcol 3 -field 213 -band r -pgm frame.pgm\n")
	}

	flag.Parse()

	if run <= 0 || camcol <= 0 || field <= 0 {
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

	img, err := a.Frames.Frame(ctx, run, camcol, field, types.Band(band))
	if err != nil {
		log.Fatalf("Frame reconstruction failed: %v", err)
	}

	values := img.Pixels
	unit := "nanomaggies"
	if asinh {
		values, err = photometry.AsinhMagnitudeImage(img)
		if err != nil {
			log.Fatalf("asinh conversion failed: %v", err)
		}
		unit = "asinh mag"
	}

	min, max, mean := summarize(values)
	fmt.Printf("frame run=%d camcol=%d field=%d band=%s\n", img.Run, img.Camcol, img.Field, img.Band)
	fmt.Printf("size  %dx%d pixels\n", img.NAxis1, img.NAxis2)
	fmt.Printf("flux  min=%.6g max=%.6g mean=%.6g (%s)\n", min, max, mean, unit)

	if pgmPath != "" {
		f, err := os.Create(pgmPath)
		if err != nil {
			log.Fatalf("Failed to create PGM file: %v", err)
		}
		defer f.Close()

		render := img
		if asinh {
			render = &types.FrameImage{
				Run: img.Run, Camcol: img.Camcol, Field: img.Field, Band: img.Band,
				NAxis1: img.NAxis1, NAxis2: img.NAxis2,
				Pixels: values,
			}
		}
		if err := frame.WritePGM(f, render); err != nil {
			log.Fatalf("Failed to write PGM: %v", err)
		}
		fmt.Printf("wrote  %s\n", pgmPath)
	}
}

func summarize(values []float64) (min, max, mean float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		n++
	}
	if n > 0 {
		mean = sum / float64(n)
	}
	return min, max, mean
}
