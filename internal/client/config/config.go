// Package config loads runtime configuration for the PantryKeeper CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. PANTRY_SERVER_URL, PANTRY_REQUEST_TIMEOUT and
//     PANTRY_ONLINE_CHECK_INTERVAL, after an optional .env.
//  3. A JSON file selected with -c or -config:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
//
//  4. Flags: -a server base URL, -t request timeout and -i online check
//     interval, both in seconds.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

// Config holds runtime settings for the PantryKeeper CLI.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig builds a Config from every source. Invalid values panic.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := flagx.LoadDotEnv(); err != nil {
		panic(err)
	}
	parseEnv(cfg)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
