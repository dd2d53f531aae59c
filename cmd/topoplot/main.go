package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"topoplot-renderer/internal/batch"
	"topoplot-renderer/internal/config"
	"topoplot-renderer/internal/pipeline"
	"topoplot-renderer/internal/positions"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json with renders to produce")
	posFile := flag.String("positions", "", "Electrode position file (.sph/.xyz, delimited text with headers)")
	imageFiles := flag.String("images", "", "Comma-separated image paths, one per electrode")
	outputFile := flag.String("output", "./topoplot.png", "Output image path (.png, .webp, .jpg)")
	headRadius := flag.Int("radius", 1000, "Head radius in pixels")
	convention := flag.String("convention", "", "Axis convention for Cartesian input: default or EEGLab")
	scale := flag.Float64("scale", 1, "Scale factor applied to pasted images")
	crop := flag.String("crop", "", "Crop margins in source pixels: L,T,R,D")
	labels := flag.Bool("labels", false, "Draw electrode names next to markers")
	lineWidth := flag.Int("width", 0, "Head outline width in pixels (default: 5)")
	workers := flag.Int("workers", 0, "Parallel renders (default: NumCPU)")
	manifest := flag.String("manifest", "", "Write a JSON manifest of results to this path")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	err := cfg.Resolve(config.Flags{
		PositionFile:   *posFile,
		ImageFiles:     *imageFiles,
		OutputFile:     *outputFile,
		HeadRadius:     *headRadius,
		AxisConvention: *convention,
		Scale:          *scale,
		Crop:           *crop,
		DrawLabels:     *labels,
		LineWidth:      *lineWidth,
		Workers:        *workers,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *manifest != "" {
		cfg.Manifest = *manifest
	}

	if len(cfg.Renders) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to render. Use -positions or a config file with renders.")
		flag.Usage()
		os.Exit(1)
	}

	// Build jobs
	jobs := make([]batch.Job, 0, len(cfg.Renders))
	for _, r := range cfg.Renders {
		conv, err := positions.ParseConvention(r.AxisConvention)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		jobs = append(jobs, batch.Job{
			Name: r.OutputFile,
			Config: pipeline.Config{
				HeadRadiusPx: r.HeadRadiusPixels,
				PositionFile: r.PositionFile,
				ImageFiles:   r.ImageFiles,
				Convention:   conv,
				OutputFile:   r.OutputFile,
				ScaleImages:  r.ScaleImages,
				CropImages:   r.CropImages,
				LineWidth:    cfg.LineWidth,
				DrawLabels:   r.DrawLabels,
			},
		})
	}

	fmt.Printf("Topoplot renderer\n")
	fmt.Printf("Plots: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(jobs, cfg.Workers)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			fmt.Println(r.Output)
		} else {
			failed++
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, r := range results {
			if !r.Success {
				fmt.Printf("  %s: %s\n", r.Name, r.Error)
			}
		}
	}

	if cfg.Manifest != "" {
		if err := batch.WriteManifest(cfg.Manifest, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", cfg.Manifest)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
