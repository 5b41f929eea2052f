package main

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mcintyrehh/stream-lights/internal/lights"
	"github.com/mcintyrehh/stream-lights/internal/neopixel"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
	"time"
)

const (
	configFile = "config.yaml"

	apiKeyEnv = "TAUTULLI_API_KEY"
	urlEnv    = "TAUTULLI_URL"

	defaultSkipDelay = 1000
	defaultColor     = "#ffffff"
)

type Config struct {
	Tautulli struct {
		Url    string `yaml:"url"`
		ApiKey string `yaml:"apiKey"`
	} `yaml:"tautulli"`
	Driver    string `yaml:"driver"`
	SkipDelay int    `yaml:"skipDelay"`
	LogLevel  string `yaml:"logLevel"`
	Animation struct {
		Style      string `yaml:"style"`
		FrameDelay int    `yaml:"frameDelay"`
		Iterations int    `yaml:"iterations"`
		Color      string `yaml:"color"`
	} `yaml:"animation"`
}

func (c Config) SkipDelayDuration() time.Duration {
	return time.Duration(c.SkipDelay) * time.Millisecond
}

func (c Config) Level() log.Level {
	// validated by parseConfig
	l, _ := log.ParseLevel(c.LogLevel)
	return l
}

// StripConfig is the compiled in hardware description with the configured driver.
func (c Config) StripConfig() neopixel.Config {
	return neopixel.DefaultConfig.WithDriver(neopixel.Driver(c.Driver))
}

func (c Config) AnimationConfig() (lights.AnimationConfig, error) {
	style, err := lights.ParseStyle(c.Animation.Style)
	if err != nil {
		return lights.AnimationConfig{}, err
	}

	color, err := colorful.Hex(c.Animation.Color)
	if err != nil {
		return lights.AnimationConfig{}, fmt.Errorf("invalid animation color %q: %w", c.Animation.Color, err)
	}
	r, g, b := color.RGB255()

	return lights.AnimationConfig{
		Style:      style,
		FrameDelay: time.Duration(c.Animation.FrameDelay) * time.Millisecond,
		Iterations: c.Animation.Iterations,
		Color:      neopixel.RGB(r, g, b),
	}, nil
}

// readConfig loads .env and config.yaml from the working directory. Both are optional, but the Tautulli URL and
// API key must be set by one of them or by the environment.
func readConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	content, err := os.ReadFile(configFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return parseConfig(content, os.Getenv)
}

func parseConfig(content []byte, getenv func(string) string) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if v := getenv(urlEnv); v != "" {
		c.Tautulli.Url = v
	}
	if v := getenv(apiKeyEnv); v != "" {
		c.Tautulli.ApiKey = v
	}

	if c.Tautulli.Url == "" {
		return nil, fmt.Errorf("Tautulli URL is missing, set %s", urlEnv)
	}
	if c.Tautulli.ApiKey == "" {
		return nil, fmt.Errorf("Tautulli API key is missing, set %s", apiKeyEnv)
	}

	switch neopixel.Driver(c.Driver) {
	case "":
		c.Driver = string(neopixel.DriverPWM)
	case neopixel.DriverPWM, neopixel.DriverSPI:
	default:
		return nil, fmt.Errorf("unknown driver %q, must be %s or %s", c.Driver, neopixel.DriverPWM, neopixel.DriverSPI)
	}

	if c.LogLevel == "" {
		c.LogLevel = log.InfoLevel.String()
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return nil, err
	}

	if c.SkipDelay <= 0 {
		c.SkipDelay = defaultSkipDelay
	}
	if c.Animation.Color == "" {
		c.Animation.Color = defaultColor
	}
	if _, err := c.AnimationConfig(); err != nil {
		return nil, err
	}

	return c, nil
}
