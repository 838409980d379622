package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("set default option", func(t *testing.T) {
		c := NewConfig()

		require.Equal(t, "http://localhost:8000", c.APIAddr, "default api address not set")
		require.Equal(t, "localhost:8080", c.ListenAddr, "default listen address not set")
		require.Equal(t, "info", c.LogLevel, "default log level not set")
		require.Equal(t, 10*time.Second, c.Timeout, "default timeout not set")
		require.Equal(t, "", c.StorePath, "store path should be empty by default")
	})

	t.Run("load env", func(t *testing.T) {
		c := NewConfig()
		getenv := func(key string) string {
			switch key {
			case "CARTERA_API_ADDRESS":
				return "http://localhost:9000"
			case "CARTERA_STORE_PATH":
				return "/tmp/session.json"
			case "CARTERA_LISTEN_ADDRESS":
				return "localhost:9090"
			case "CARTERA_TIMEOUT":
				return "30s"
			case "LOG_LEVEL":
				return "debug"
			default:
				return ""
			}
		}

		c.LoadEnv(getenv)

		require.Equal(t, "http://localhost:9000", c.APIAddr)
		require.Equal(t, "/tmp/session.json", c.StorePath)
		require.Equal(t, "localhost:9090", c.ListenAddr)
		require.Equal(t, 30*time.Second, c.Timeout)
		require.Equal(t, "debug", c.LogLevel)
	})

	t.Run("env with garbage timeout keeps default", func(t *testing.T) {
		c := NewConfig()

		c.LoadEnv(func(key string) string {
			if key == "CARTERA_TIMEOUT" {
				return "soon"
			}
			return ""
		})

		require.Equal(t, 10*time.Second, c.Timeout)
	})

	t.Run("parse flags", func(t *testing.T) {
		t.Run("valid flags", func(t *testing.T) {
			c := NewConfig()

			args, err := c.ParseFlags([]string{
				"--api", "http://localhost:9000",
				"--store", "/tmp/session.json",
				"--log-level", "debug",
				"login", "--email", "ana@x.com",
			})

			require.NoError(t, err, "correct flags must be parsed without error")
			require.Equal(t, "http://localhost:9000", c.APIAddr)
			require.Equal(t, "/tmp/session.json", c.StorePath)
			require.Equal(t, "debug", c.LogLevel)
			require.Equal(t, []string{"login", "--email", "ana@x.com"}, args,
				"subcommand args should pass through untouched")
		})

		t.Run("invalid flags", func(t *testing.T) {
			c := NewConfig()

			_, err := c.ParseFlags([]string{
				"--invalid-flag", "value",
			})

			require.Error(t, err, "invalid flag should return an error")
		})
	})
}
