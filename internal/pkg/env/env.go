package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Env holds the key/value pairs read from the .env file. Process
// environment variables still win as a fallback, so containerized
// deployments can run without a file entry for every key.
var Env map[string]string

// envFileCandidates are tried in order; the binary may be started from the
// repo root or from inside cmd/lugo.
var envFileCandidates = []string{
	".env",
	"../../.env",
	"../../../.env",
}

func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first readable .env file. Configuration is
// mandatory, so failing to find one is fatal.
func SetupEnvFile() {
	for _, name := range envFileCandidates {
		vals, err := godotenv.Read(name)
		if err != nil {
			continue
		}
		Env = vals
		log.Debug().Str("file", name).Int("keys", len(vals)).Msg("environment file loaded")
		return
	}
	panic(fmt.Sprintf("no .env file found, looked in: %s", strings.Join(envFileCandidates, ", ")))
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
