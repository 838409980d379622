package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/dquisbert/cartera/internal/logger"
)

const (
	defaultAPIAddr      = "http://localhost:8000"
	defaultListenAddr   = "localhost:8080"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvDevelopment
	defaultTimeout      = 10 * time.Second
)

type Config struct {
	// Default logging level
	LogLevel string

	// Base URL of the cuenta backend
	APIAddr string

	// Session file location. Empty means the per-user default path
	StorePath string

	// Address the local web UI listens on (serve command)
	ListenAddr string

	// Per request timeout
	Timeout time.Duration

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		APIAddr:     defaultAPIAddr,
		ListenAddr:  defaultListenAddr,
		Timeout:     defaultTimeout,
		Environment: defaultEnvironment,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setDuration := func(o *time.Duration) func(value string) {
		return func(value string) {
			if value == "" {
				return
			}
			if d, err := time.ParseDuration(value); err == nil {
				*o = d
			}
		}
	}

	envMap := map[string]func(string){
		"CARTERA_API_ADDRESS":    setString(&c.APIAddr),
		"CARTERA_STORE_PATH":     setString(&c.StorePath),
		"CARTERA_LISTEN_ADDRESS": setString(&c.ListenAddr),
		"CARTERA_TIMEOUT":        setDuration(&c.Timeout),
		"LOG_LEVEL":              setString(&c.LogLevel),
		"ENVIRONMENT":            setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

// ParseFlags parses global flags and returns the remaining arguments
// (the subcommand and its own flags)
func (c *Config) ParseFlags(args []string) ([]string, error) {
	fs := pflag.NewFlagSet("cartera", pflag.ContinueOnError)
	fs.SetInterspersed(false)

	fs.StringVarP(&c.APIAddr, "api", "a", c.APIAddr, "Backend base URL")
	fs.StringVar(&c.StorePath, "store", c.StorePath, "Session file path")
	fs.StringVar(&c.ListenAddr, "listen", c.ListenAddr, "Web UI listen address (serve)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Request timeout")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
