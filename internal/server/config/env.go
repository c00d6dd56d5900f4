package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

// parseEnv overlays PANTRY_* environment variables, e.g. PANTRY_HTTP_ADDR
// or PANTRY_ACCESS_TOKEN_TTL=15m.
func parseEnv(config *Config) {
	flagx.EnvString("HTTP_ADDR", &config.EndpointAddrHTTP)
	flagx.EnvString("GRPC_ADDR", &config.EndpointAddrGRPC)
	flagx.EnvString("STORE_DRIVER", &config.StoreDriver)
	flagx.EnvString("DATABASE_DSN", &config.DatabaseDSN)
	flagx.EnvString("SECRET_KEY", &config.SecretKey)
	flagx.EnvString("S3_ROOT_USER", &config.S3RootUser)
	flagx.EnvString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	flagx.EnvString("S3_BUCKET", &config.S3Bucket)
	flagx.EnvString("S3_REGION", &config.S3Region)
	flagx.EnvString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	flagx.EnvString("S3_PUBLIC_BASE_URL", &config.S3PublicBaseURL)
	flagx.EnvString("LOG_LEVEL", &config.LogLevel)

	envDuration("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	envDuration("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	envDuration("SESSION_IDLE_TTL", &config.SessionIdleTTL)

	if err := flagx.EnvInt64("MAX_IMAGE_SIZE", &config.MaxImageSize); err != nil {
		panic(fmt.Errorf("%sMAX_IMAGE_SIZE: %w", flagx.EnvPrefix, err))
	}
}

func envDuration(key string, dst *time.Duration) {
	if err := flagx.EnvDuration(key, dst); err != nil {
		panic(fmt.Errorf("%s%s: %w", flagx.EnvPrefix, key, err))
	}
}
