package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

func parseEnv(cfg *Config) {
	flagx.EnvString("SERVER_URL", &cfg.ServerURL)
	envDuration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	envDuration("ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
}

func envDuration(key string, dst *time.Duration) {
	if err := flagx.EnvDuration(key, dst); err != nil {
		panic(fmt.Errorf("%s%s: %w", flagx.EnvPrefix, key, err))
	}
}
