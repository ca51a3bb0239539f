package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avalamontes/cepsim/internal/cycle"
	"github.com/avalamontes/cepsim/internal/phase"
)

const (
	DefaultCycles   = 5
	DefaultSize     = 20
	DefaultStrings  = 50
	DefaultDeltaChi = 1e-8
	DefaultSigma    = 1.0
	DefaultSamples  = 10
	DefaultFactor   = 4
	DefaultPower    = 3
	DefaultSteps    = 50
	DefaultEpsilon  = 0.01
	DefaultOmega    = 0.2 * math.Pi
)

type Config struct {
	Cycles     int           `yaml:"cycles" json:"cycles"`
	Seed       int64         `yaml:"seed" json:"seed"`
	Parallel   bool          `yaml:"parallel" json:"parallel"`
	SaveFields bool          `yaml:"save_fields" json:"save_fields"`
	Grid       GridConfig    `yaml:"grid" json:"grid"`
	Stretch    StretchConfig `yaml:"stretch" json:"stretch"`
	Reheat     ReheatConfig  `yaml:"reheat" json:"reheat"`
}

type GridConfig struct {
	Size     int     `yaml:"size" json:"size"`
	Strings  int     `yaml:"strings" json:"strings"`
	DeltaChi float64 `yaml:"delta_chi" json:"delta_chi"`
	Sigma    float64 `yaml:"sigma" json:"sigma"`
	Samples  int     `yaml:"samples" json:"samples"`
}

type StretchConfig struct {
	Factor int `yaml:"factor" json:"factor"`
	Power  int `yaml:"power" json:"power"`
}

type ReheatConfig struct {
	Steps   int     `yaml:"steps" json:"steps"`
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
	Omega   float64 `yaml:"omega" json:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Cycles: DefaultCycles,
		Grid: GridConfig{
			Size:     DefaultSize,
			Strings:  DefaultStrings,
			DeltaChi: DefaultDeltaChi,
			Sigma:    DefaultSigma,
			Samples:  DefaultSamples,
		},
		Stretch: StretchConfig{
			Factor: DefaultFactor,
			Power:  DefaultPower,
		},
		Reheat: ReheatConfig{
			Steps:   DefaultSteps,
			Epsilon: DefaultEpsilon,
			Omega:   DefaultOmega,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Cycles <= 0 {
		return fmt.Errorf("config: cycles must be positive, got %d", c.Cycles)
	}
	if c.Grid.Size <= 0 {
		return fmt.Errorf("config: grid size must be positive, got %d", c.Grid.Size)
	}
	if c.Grid.Strings < 0 {
		return fmt.Errorf("config: string count must be non-negative, got %d", c.Grid.Strings)
	}
	if math.Abs(c.Grid.DeltaChi) > 1 {
		return fmt.Errorf("config: asymmetry %g outside [-1,1]", c.Grid.DeltaChi)
	}
	if c.Grid.Sigma <= 0 {
		return fmt.Errorf("config: sigma must be positive, got %g", c.Grid.Sigma)
	}
	if c.Grid.Samples < 2 {
		return fmt.Errorf("config: samples must be at least 2, got %d", c.Grid.Samples)
	}
	if c.Stretch.Factor < 1 {
		return fmt.Errorf("config: stretch factor must be >= 1, got %d", c.Stretch.Factor)
	}
	if c.Stretch.Power < 0 {
		return fmt.Errorf("config: dilution power must be non-negative, got %d", c.Stretch.Power)
	}
	if c.Reheat.Steps < 0 {
		return fmt.Errorf("config: reheat steps must be non-negative, got %d", c.Reheat.Steps)
	}
	if math.Abs(c.Reheat.Epsilon) >= 1 {
		return fmt.Errorf("config: epsilon %g would allow non-positive gain", c.Reheat.Epsilon)
	}
	return nil
}

// ToCycle maps the file-level config onto the pipeline parameters. The
// reset-injection magnitude follows the asymmetry knob, as in the
// reference setup.
func (c *Config) ToCycle() cycle.Config {
	return cycle.Config{
		Foam: phase.FoamParams{
			Size:     c.Grid.Size,
			Strings:  c.Grid.Strings,
			DeltaChi: c.Grid.DeltaChi,
			Sigma:    c.Grid.Sigma,
			Samples:  c.Grid.Samples,
		},
		InjectDelta: c.Grid.DeltaChi,
		Stretch: phase.StretchParams{
			Factor: c.Stretch.Factor,
			Power:  c.Stretch.Power,
		},
		Oscillate: phase.OscillateParams{
			Steps:    c.Reheat.Steps,
			Epsilon:  c.Reheat.Epsilon,
			Omega:    c.Reheat.Omega,
			DeltaChi: c.Grid.DeltaChi,
		},
	}
}
