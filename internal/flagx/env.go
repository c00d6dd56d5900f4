package flagx

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name read by the Env helpers.
const EnvPrefix = "PANTRY_"

// LoadDotEnv loads variables from the given files (".env" when none) into
// the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// EnvString overwrites *dst with PANTRY_<key> when it is set.
func EnvString(key string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}

// EnvDuration overwrites *dst with PANTRY_<key>, parsed by time.ParseDuration.
func EnvDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// EnvInt64 overwrites *dst with PANTRY_<key> parsed as a base-10 integer.
func EnvInt64(key string, dst *int64) error {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}
