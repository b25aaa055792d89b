package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// DefaultFile is the config file read when --config is not given, if it exists
const DefaultFile = "raytracer.toml"

// Config holds render settings. Zero width or height means the scene's own size.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Output string `toml:"output"`

	// Scene is a built-in scene name or a path to a .yaml scene file
	Scene string `toml:"scene"`

	// Workers is the render goroutine count; zero or less uses every CPU
	Workers   int    `toml:"workers"`
	Partition string `toml:"partition"`

	MaxDepth        int `toml:"max_depth"`
	DivideThreshold int `toml:"divide_threshold"` // Zero keeps the scene's threshold, negative disables
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Output:    "output.ppm",
		Scene:     "default",
		Partition: renderer.PartitionStriped.String(),
		MaxDepth:  5,
	}
}

// Load reads path over the defaults. Keys not in Config are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "expand %s", path)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode %s", path)
	}
	return cfg, nil
}

// LoadOptional loads path when it exists and returns the defaults otherwise
func LoadOptional(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Default(), errors.Wrapf(err, "expand %s", path)
	}
	if _, err := os.Stat(expanded); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks ranges and names and expands ~ in paths
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.MaxDepth < 0 {
		return errors.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Scene == "" {
		return errors.New("scene must be set")
	}
	if _, err := renderer.ParsePartition(c.Partition); err != nil {
		return err
	}

	if c.Output == "" {
		return errors.New("output must be set")
	}
	output, err := homedir.Expand(c.Output)
	if err != nil {
		return errors.Wrapf(err, "expand output %s", c.Output)
	}
	if _, err := canvas.FormatFromPath(output); err != nil {
		return err
	}
	c.Output = output

	scene, err := homedir.Expand(c.Scene)
	if err != nil {
		return errors.Wrapf(err, "expand scene %s", c.Scene)
	}
	c.Scene = scene
	return nil
}
