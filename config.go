package mapology

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/viant/mapology/conv"
	"github.com/viant/tagly/format/text"
	"gopkg.in/yaml.v3"
)

var caseInsensitive atomic.Bool

// SetCaseInsensitive toggles process wide case insensitive key matching
func SetCaseInsensitive(flag bool) {
	caseInsensitive.Store(flag)
}

// CaseInsensitive returns true if case insensitive key matching is enabled
func CaseInsensitive() bool {
	return caseInsensitive.Load()
}

// Config represents process wide mapping configuration
type Config struct {
	CaseInsensitive  bool   `yaml:"caseInsensitive"`
	TagName          string `yaml:"tagName"`
	CaseFormat       string `yaml:"caseFormat"`
	TimeLayout       string `yaml:"timeLayout"`
	AccessUnexported bool   `yaml:"accessUnexported"`
	LogLevel         string `yaml:"logLevel"`
}

// LoadConfig loads yaml config from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses yaml config
func ParseConfig(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return ret, ret.Validate()
}

// Validate checks case format and log level
func (c *Config) Validate() error {
	if c.CaseFormat != "" && !text.CaseFormat(c.CaseFormat).IsDefined() {
		return fmt.Errorf("%w: unknown case format: %v", ErrInvalidConfig, c.CaseFormat)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "":
		return LevelVerbose, nil
	case "verbose":
		return LevelVerbose, nil
	case "none":
		return LevelNone, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// Options returns config as mapping options
func (c *Config) Options() []Option {
	var ret []Option
	if c.TagName != "" {
		ret = append(ret, WithTagName(c.TagName))
	}
	if c.CaseFormat != "" {
		ret = append(ret, WithCaseFormat(text.CaseFormat(c.CaseFormat)))
	}
	if c.TimeLayout != "" {
		ret = append(ret, WithTimeLayout(c.TimeLayout))
	}
	if c.AccessUnexported {
		ret = append(ret, WithAccessUnexported(true))
	}
	return ret
}

// Configure applies config process wide, nil restores defaults
func Configure(c *Config) error {
	if c == nil {
		c = &Config{}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := c.level()
	defaults := &Options{tagName: DefaultTagName, timeLayout: conv.DefaultTimeLayout}
	for _, opt := range c.Options() {
		opt(defaults)
	}
	defaultOptions.Store(defaults)
	SetCaseInsensitive(c.CaseInsensitive)
	SetLogLevel(level)
	return nil
}
