package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/progress"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
)

const (
	DEFAULT_PORT          = 8080
	DEFAULT_LOG_LEVEL     = "info"
	DEFAULT_CURRENCY_FILE = "data/currency.yaml"
	DEFAULT_MAX_SESSIONS  = 100
)

type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	// CurrencyFile is where the balance persists; empty keeps it in memory.
	CurrencyFile string `yaml:"currency_file"`
	// LevelsDir holds hand-authored level files that shadow generated ones.
	LevelsDir string `yaml:"levels_dir"`
	// MaxSessions caps concurrent games; 0 or less means no cap.
	MaxSessions int            `yaml:"max_sessions"`
	Generator   level.Options  `yaml:"generator"`
	Costs       progress.Costs `yaml:"costs"`
}

func Default() *Config {
	return &Config{
		Port:         DEFAULT_PORT,
		LogLevel:     DEFAULT_LOG_LEVEL,
		CurrencyFile: DEFAULT_CURRENCY_FILE,
		MaxSessions:  DEFAULT_MAX_SESSIONS,
		Generator:    level.DefaultOptions(),
		Costs:        progress.DefaultCosts(),
	}
}

// ApplyDefaults fills zero numeric fields. Booleans and the currency file
// keep what the file said.
func (c *Config) ApplyDefaults() {
	if c.Port <= 0 {
		c.Port = DEFAULT_PORT
	}
	if c.LogLevel == "" {
		c.LogLevel = DEFAULT_LOG_LEVEL
	}
	if c.Generator.Attempts <= 0 {
		c.Generator.Attempts = level.DEFAULT_ATTEMPTS
	}
	if c.Generator.SequenceLength <= 0 {
		c.Generator.SequenceLength = level.DEFAULT_SEQUENCE_LENGTH
	}
	defaults := progress.DefaultCosts()
	if c.Costs.Swap <= 0 {
		c.Costs.Swap = defaults.Swap
	}
	if c.Costs.Bomb <= 0 {
		c.Costs.Bomb = defaults.Bomb
	}
}

// Load reads path over the defaults, then applies env overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.WithField("path", path).Info("config file not found, using defaults")
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	c.ApplyDefaults()
	c.FromEnv()
	return c, nil
}

// Level parses LogLevel for logrus.
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
