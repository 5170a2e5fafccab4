package planner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/search"
)

// Config is the file form of Options.
//
//	valid_max: 90
//	lethal_threshold: 50
//	allow_unknown: true
//	cost_weight: 0.9
//	turn_penalty: 5
//	max_steps: 0
//	parallel: false
//	reachability_check: false
//
// Keys left out of a file keep their DefaultConfig value.
type Config struct {
	ValidMax          int     `yaml:"valid_max"`
	LethalThreshold   int     `yaml:"lethal_threshold"`
	AllowUnknown      bool    `yaml:"allow_unknown"`
	CostWeight        float64 `yaml:"cost_weight"`
	TurnPenalty       float64 `yaml:"turn_penalty"`
	MaxSteps          int     `yaml:"max_steps"`
	Parallel          bool    `yaml:"parallel"`
	ReachabilityCheck bool    `yaml:"reachability_check"`
}

// DefaultConfig mirrors DefaultOptions.
func DefaultConfig() Config {
	return Config{
		ValidMax:        DefaultValidMax,
		LethalThreshold: search.DefaultLethalThreshold,
		AllowUnknown:    true,
		CostWeight:      search.DefaultCostWeight,
		TurnPenalty:     search.DefaultTurnPenalty,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("planner: read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrOptionViolation, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once; each error wraps
// ErrOptionViolation.
func (c Config) Validate() error {
	var err error
	if c.ValidMax < 0 || c.ValidMax > gridmap.CostOccupied+1 {
		err = multierr.Append(err, fmt.Errorf("%w: valid_max %d outside [0,101]", ErrOptionViolation, c.ValidMax))
	}
	if c.LethalThreshold < 0 || c.LethalThreshold > gridmap.CostOccupied {
		err = multierr.Append(err, fmt.Errorf("%w: lethal_threshold %d outside [0,100]", ErrOptionViolation, c.LethalThreshold))
	}
	if c.CostWeight < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: cost_weight cannot be negative (%g)", ErrOptionViolation, c.CostWeight))
	}
	if c.TurnPenalty < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: turn_penalty cannot be negative (%g)", ErrOptionViolation, c.TurnPenalty))
	}
	if c.MaxSteps < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max_steps cannot be negative (%d)", ErrOptionViolation, c.MaxSteps))
	}

	return err
}

// Options converts the configuration into planner options.
func (c Config) Options() []Option {
	opts := []Option{
		WithValidMax(c.ValidMax),
		WithLethalThreshold(c.LethalThreshold),
		WithAllowUnknown(c.AllowUnknown),
		WithCostWeight(c.CostWeight),
		WithTurnPenalty(c.TurnPenalty),
		WithMaxSteps(c.MaxSteps),
	}
	if c.Parallel {
		opts = append(opts, WithParallelExpansion())
	}
	if c.ReachabilityCheck {
		opts = append(opts, WithReachabilityCheck())
	}

	return opts
}
