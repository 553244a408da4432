package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the reduction and presentation settings. Every field is
// optional; the Get* accessors supply defaults for anything left unset, so a
// partial JSON file is safe.
type Config struct {
	// Capture layout
	HeaderTokens *int `json:"header_tokens,omitempty"`
	FilesPerRun  *int `json:"files_per_run,omitempty"`

	// Presentation
	Decimals *int     `json:"decimals,omitempty"`
	Palette  []string `json:"palette,omitempty"` // consumed from the end, one colour per run

	// Plot geometry
	PlotWidthIn    *float64 `json:"plot_width_in,omitempty"`
	PlotHeightIn   *float64 `json:"plot_height_in,omitempty"`
	MarkerRadiusPt *float64 `json:"marker_radius_pt,omitempty"`

	OutputDir *string `json:"output_dir,omitempty"`
}

// DefaultPalette mirrors the single-letter colour codes of the lab's plotting
// scripts. Runs take colours from the end: blue first, black last.
var DefaultPalette = []string{"k", "m", "y", "c", "r", "g", "b"}

var knownColours = map[string]bool{
	"k": true, "m": true, "y": true, "c": true, "r": true, "g": true, "b": true,
}

func ptrInt(v int) *int             { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyConfig returns a Config with all fields unset.
func EmptyConfig() *Config {
	return &Config{}
}

// DefaultConfig returns a Config with every field populated with its default.
func DefaultConfig() *Config {
	return &Config{
		HeaderTokens:   ptrInt(7),
		FilesPerRun:    ptrInt(64),
		Decimals:       ptrInt(2),
		Palette:        append([]string(nil), DefaultPalette...),
		PlotWidthIn:    ptrFloat64(8),
		PlotHeightIn:   ptrFloat64(5),
		MarkerRadiusPt: ptrFloat64(2),
		OutputDir:      ptrString("plots"),
	}
}

// LoadConfig loads a Config from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.HeaderTokens != nil && *c.HeaderTokens < 0 {
		return fmt.Errorf("header_tokens must be non-negative, got %d", *c.HeaderTokens)
	}
	if c.FilesPerRun != nil && (*c.FilesPerRun < 1 || *c.FilesPerRun > 99) {
		// File names carry a two-digit index.
		return fmt.Errorf("files_per_run must be between 1 and 99, got %d", *c.FilesPerRun)
	}
	if c.Decimals != nil && (*c.Decimals < 0 || *c.Decimals > 10) {
		return fmt.Errorf("decimals must be between 0 and 10, got %d", *c.Decimals)
	}
	for _, colour := range c.Palette {
		if !knownColours[colour] {
			return fmt.Errorf("unknown palette colour %q (want one of k, m, y, c, r, g, b)", colour)
		}
	}
	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeightIn)
	}
	if c.MarkerRadiusPt != nil && *c.MarkerRadiusPt <= 0 {
		return fmt.Errorf("marker_radius_pt must be positive, got %f", *c.MarkerRadiusPt)
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// GetHeaderTokens returns the number of leading tokens skipped in each capture file.
func (c *Config) GetHeaderTokens() int {
	if c.HeaderTokens == nil {
		return 7
	}
	return *c.HeaderTokens
}

// GetFilesPerRun returns the number of waveform files expected in a run folder.
func (c *Config) GetFilesPerRun() int {
	if c.FilesPerRun == nil {
		return 64
	}
	return *c.FilesPerRun
}

// GetDecimals returns the rounding precision for printed values.
func (c *Config) GetDecimals() int {
	if c.Decimals == nil {
		return 2
	}
	return *c.Decimals
}

// GetPalette returns a copy of the run colour palette.
func (c *Config) GetPalette() []string {
	if len(c.Palette) == 0 {
		return append([]string(nil), DefaultPalette...)
	}
	return append([]string(nil), c.Palette...)
}

// GetPlotWidthIn returns the PNG width in inches.
func (c *Config) GetPlotWidthIn() float64 {
	if c.PlotWidthIn == nil {
		return 8
	}
	return *c.PlotWidthIn
}

// GetPlotHeightIn returns the PNG height in inches.
func (c *Config) GetPlotHeightIn() float64 {
	if c.PlotHeightIn == nil {
		return 5
	}
	return *c.PlotHeightIn
}

// GetMarkerRadiusPt returns the scatter marker radius in points.
func (c *Config) GetMarkerRadiusPt() float64 {
	if c.MarkerRadiusPt == nil {
		return 2
	}
	return *c.MarkerRadiusPt
}

// GetOutputDir returns the directory charts are written to.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == nil {
		return "plots"
	}
	return *c.OutputDir
}
