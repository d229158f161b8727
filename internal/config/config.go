// Package config loads the gatesim configuration file.
//
package config

import (
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/db47h/gatesim"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the gatesim configuration.
//
type Config struct {
	Log     Log     `mapstructure:"log"`
	Engine  Engine  `mapstructure:"engine"`
	Clock   Clock   `mapstructure:"clock"`
	Metrics Metrics `mapstructure:"metrics"`
}

// Log configures logging.
//
type Log struct {
	Level  slog.Level `mapstructure:"level"`
	Format string     `mapstructure:"format"`
}

// Engine configures simulation contexts.
//
type Engine struct {
	StepBudget int           `mapstructure:"step_budget"`
	Floating   gatesim.Value `mapstructure:"floating"`
}

// Clock configures clock drivers.
//
type Clock struct {
	Period time.Duration `mapstructure:"period"`
}

// Metrics configures the metrics endpoint.
//
type Metrics struct {
	Addr string `mapstructure:"addr"`
}

// Log formats.
//
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Log:    Log{Level: slog.LevelInfo, Format: FormatText},
		Engine: Engine{StepBudget: gatesim.DefaultStepBudget, Floating: gatesim.Unknown},
		Clock:  Clock{Period: 500 * time.Millisecond},
	}
}

// Load reads the configuration file at path. A missing file yields the
// default configuration.
//
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(err, "config")
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Read decodes a YAML configuration from r over the default configuration.
//
func Read(r io.Reader) (*Config, error) {
	var m map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse config")
	}
	c := Default()
	if err := decode(m, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(m map[string]interface{}, c *Config) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			levelHook,
			valueHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return errors.Wrap(err, "config decoder")
	}
	return errors.Wrap(d.Decode(m), "decode config")
}

var (
	levelType = reflect.TypeOf(slog.Level(0))
	valueType = reflect.TypeOf(gatesim.Value(0))
)

func levelHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != levelType || from.Kind() != reflect.String {
		return data, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(data.(string))); err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	return l, nil
}

func valueHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != valueType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		return gatesim.ParseValue(data.(string))
	case reflect.Int, reflect.Int64:
		switch reflect.ValueOf(data).Int() {
		case 0:
			return gatesim.Low, nil
		case 1:
			return gatesim.High, nil
		}
		return nil, errors.Errorf("invalid value %v", data)
	case reflect.Bool:
		return gatesim.Bool(data.(bool)), nil
	}
	return data, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return errors.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Engine.StepBudget <= 0 {
		return errors.Errorf("invalid step budget %d", c.Engine.StepBudget)
	}
	if c.Clock.Period <= 0 {
		return errors.Errorf("invalid clock period %v", c.Clock.Period)
	}
	return nil
}

// SimOptions returns the gatesim options matching the engine configuration.
//
func (c *Config) SimOptions() []gatesim.Option {
	return []gatesim.Option{
		gatesim.WithStepBudget(c.Engine.StepBudget),
		gatesim.WithFloating(c.Engine.Floating),
	}
}
