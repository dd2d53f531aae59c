package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Render describes one topoplot to produce.
type Render struct {
	HeadRadiusPixels int      `json:"head_radius_pixels"`
	PositionFile     string   `json:"position_file"`
	ImageFiles       []string `json:"image_files"`
	AxisConvention   string   `json:"axis_convention"`
	OutputFile       string   `json:"output_file"`
	ScaleImages      float64  `json:"scale_images"`
	CropImages       []int    `json:"crop_images"`
	DrawLabels       bool     `json:"draw_labels"`
}

// Config holds all settings for one invocation: shared render settings
// plus the list of topoplots to produce.
type Config struct {
	Renders   []Render `json:"renders"`
	LineWidth int      `json:"line_width"`
	Workers   int      `json:"workers"`
	Manifest  string   `json:"manifest"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. A
// position file given on the command line adds one render on top of
// whatever the config file lists.
type Flags struct {
	PositionFile   string
	ImageFiles     string // comma-separated paths
	OutputFile     string
	HeadRadius     int
	AxisConvention string
	Scale          float64
	Crop           string // "L,T,R,D" pixel margins
	DrawLabels     bool
	LineWidth      int
	Workers        int
}

// Resolve applies CLI overrides and fills defaults. Per-render
// validation happens in the pipeline; this only shapes the config.
func (c *Config) Resolve(flags Flags) error {
	if flags.PositionFile != "" {
		r := Render{
			HeadRadiusPixels: flags.HeadRadius,
			PositionFile:     flags.PositionFile,
			OutputFile:       flags.OutputFile,
			AxisConvention:   flags.AxisConvention,
			ScaleImages:      flags.Scale,
			DrawLabels:       flags.DrawLabels,
		}
		if flags.ImageFiles != "" {
			r.ImageFiles = strings.Split(flags.ImageFiles, ",")
		}
		if flags.Crop != "" {
			crop, err := parseCrop(flags.Crop)
			if err != nil {
				return err
			}
			r.CropImages = crop
		}
		c.Renders = append(c.Renders, r)
	}

	if flags.LineWidth > 0 {
		c.LineWidth = flags.LineWidth
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.LineWidth <= 0 {
		c.LineWidth = 5
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	for i := range c.Renders {
		if c.Renders[i].ScaleImages == 0 {
			c.Renders[i].ScaleImages = 1
		}
		if c.Renders[i].OutputFile == "" {
			c.Renders[i].OutputFile = "./topoplot.png"
		}
	}
	return nil
}

// parseCrop reads "L,T,R,D" pixel margins.
func parseCrop(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("config: crop needs 4 comma-separated margins, got %q", s)
	}
	crop := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("config: crop margin %q: %w", p, err)
		}
		crop[i] = v
	}
	return crop, nil
}
