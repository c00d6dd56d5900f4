// Package config handles configuration for the server component. Values
// are layered: defaults, then PANTRY_* environment variables (after an
// optional .env file), then a JSON file given with -c/-config, then short
// command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds runtime settings for the PantryKeeper server.
//
// StoreDriver selects the persistence backend; DatabaseDSN is ignored by
// the memory driver. S3PublicBaseURL is the prefix of image URLs handed to
// clients; when empty it is derived from S3BaseEndpoint and S3Bucket.
type Config struct {
	EndpointAddrHTTP             string
	EndpointAddrGRPC             string
	StoreDriver                  string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	SessionIdleTTL               time.Duration
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	S3PublicBaseURL              string
	MaxImageSize                 int64
	LogLevel                     string
}

// LoadDefaults populates Config with development defaults. They are not
// fit for production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.StoreDriver = DriverSQLite
	c.DatabaseDSN = "file:pantry.db?_pragma=foreign_keys(1)"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.SessionIdleTTL = 30 * time.Minute
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "pantry"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.MaxImageSize = 5 << 20
	c.LogLevel = "info"
}

// LoadConfig builds a Config from every layer. Malformed environment
// values, JSON or flags panic.
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
