package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Sphere struct {
	Sides       int     `yaml:"sides"`
	Segments    int     `yaml:"segments"`
	Radius      float64 `yaml:"radius"`
	FlipNormals bool    `yaml:"flip_normals"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type Decals struct {
	Count        int     `yaml:"count"`
	Seed         int64   `yaml:"seed"`
	Workers      int     `yaml:"workers"`   // 0 = GOMAXPROCS
	Extents      Vec3    `yaml:"extents"`   // projector box size
	Distance     float64 `yaml:"distance"`  // projector distance from origin
	TargetSpread float64 `yaml:"target_spread"`
	MaxRoll      float64 `yaml:"max_roll"` // degrees
}

type Output struct {
	PLY    string `yaml:"ply,omitempty"`
	PNG    string `yaml:"png,omitempty"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Config struct {
	// Source replaces the generated sphere with a PLY or DXF file.
	Source string `yaml:"source,omitempty"`
	Sphere Sphere `yaml:"sphere"`
	Decals Decals `yaml:"decals"`
	Output Output `yaml:"output"`
}

// Default is a 24x24 unit sphere carrying 1000 decals.
func Default() *Config {
	return &Config{
		Sphere: Sphere{Sides: 24, Segments: 24, Radius: 1.0},
		Decals: Decals{
			Count:        1000,
			Seed:         1,
			Extents:      Vec3{X: 0.5, Y: 0.5, Z: 4.0},
			Distance:     1.2,
			TargetSpread: 0.75,
			MaxRoll:      45,
		},
		Output: Output{Width: 960, Height: 960},
	}
}

// Load reads path over the defaults, so a file only needs the fields it
// changes.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
