package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files.
// ENV_PATH, when set, replaces defaultPaths. Variables already present in the
// environment are never overridden. A missing file is an error only in local
// mode, which is also assumed when env is empty.
func LoadDotEnv(env string, defaultPaths ...string) error {
	var paths []string
	if p := os.Getenv("ENV_PATH"); p != "" {
		paths = []string{p}
	} else {
		slog.Info("ENV_PATH is not set, using default paths", "defaultPaths", defaultPaths)
		paths = defaultPaths
	}

	err := godotenv.Load(paths...)
	if err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...", "error", err)
	}

	return nil
}
