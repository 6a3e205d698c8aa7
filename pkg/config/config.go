package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/limaJavier/heurisat/pkg/annealing"
	"github.com/limaJavier/heurisat/pkg/genetic"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Genetic   genetic.Config    `mapstructure:"genetic"`
	Annealing annealing.Config  `mapstructure:"annealing"`
	Solvers   map[string]string `mapstructure:"solvers"` // Reference solver name -> executable path
}

func Default() Config {
	return Config{
		Genetic:   genetic.DefaultConfig(),
		Annealing: annealing.DefaultConfig(),
		Solvers:   map[string]string{},
	}
}

// Load reads a JSON or YAML file (chosen by extension) on top of the defaults. Unknown keys are rejected
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "cannot read config file %v", path)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(bytes, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unsupported config extension %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "cannot parse %v: %v", path, err)
	}

	return Decode(raw)
}

// Decode overlays raw on the defaults and validates the result
func Decode(raw map[string]any) (Config, error) {
	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &config,
		ErrorUnused: true,
		DecodeHook:  mapstructure.DecodeHookFuncType(integralFloatHook),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// integralFloatHook rejects fractional numbers bound to integer fields instead of truncating them
func integralFloatHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	value := reflect.ValueOf(data).Float()
	if value != math.Trunc(value) || math.IsInf(value, 0) {
		return nil, errors.Errorf("%v is not an integer", value)
	}
	return data, nil
}

func (config Config) Validate() error {
	if err := config.Genetic.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "genetic: %v", err)
	}
	if err := config.Annealing.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "annealing: %v", err)
	}
	for solver, path := range config.Solvers {
		if path == "" {
			return errors.Wrapf(ErrInvalidConfig, "solvers: empty path for %v", solver)
		}
	}
	return nil
}
