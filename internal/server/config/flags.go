package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

var serverFlags = []string{
	"-a", "-m", "-k", "-d", "-s", "-t", "-r", "-x",
	"-u", "-p", "-b", "-g", "-e", "-w", "-z", "-l",
}

// parseFlags overlays the short command-line flags found in args.
//
//	-a string   HTTP API bind address (e.g. ":8080")
//	-m string   gRPC health bind address (e.g. ":50051")
//	-k string   store driver: postgres, sqlite or memory
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-x int      session idle TTL, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-w string   public base URL of stored images
//	-z int      max image upload size, bytes
//	-l string   log level: debug, info, warn or error
//
// Flags not in the list are skipped so other layers can share the command
// line. Parse errors panic.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP API address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "m", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.StoreDriver, "k", config.StoreDriver, "store driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTTL := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	sessionTTL := fs.Int("x", int(config.SessionIdleTTL.Minutes()), "session idle TTL (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "w", config.S3PublicBaseURL, "public base URL of images")
	fs.Int64Var(&config.MaxImageSize, "z", config.MaxImageSize, "max image size (in bytes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		panic(err)
	}

	// Minute flags only replace a duration when given, so sub-minute values
	// from earlier layers survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTTL) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTTL) * time.Minute
		case "x":
			config.SessionIdleTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
