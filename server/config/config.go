package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"nanopub-go/pkg/utils"
)

// ServerConfig holds the runtime configuration for the reference
// nanopub server.
type ServerConfig struct {
	Port string
}

// AppConfig is populated by Load.
var AppConfig ServerConfig

// Load reads server/.env if present (missing is not an error — the
// reference server also runs fine from plain environment variables in
// tests and containers) and resolves the listen port.
func Load() error {
	if err := godotenv.Load("server/.env"); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load server/.env")
	}
	AppConfig = ServerConfig{Port: utils.EnvOrDefault("NANOPUB_SERVER_PORT", "8081")}
	return nil
}
