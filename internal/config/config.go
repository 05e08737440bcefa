package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, once per process. Variables already set are kept.
func LoadEnv(logger *logrus.Logger) {
	once.Do(func() {
		loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
	})
}

// loadEnvFile loads the first candidate that exists and returns its path.
func loadEnvFile(logger *logrus.Logger, candidates ...string) string {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.Warnf("Error loading .env file: %v", err)
			return ""
		}
		logger.Debugf("Loaded environment variables from %s", envFile)
		return envFile
	}

	logger.Debug("No .env file found, using environment variables")
	return ""
}
