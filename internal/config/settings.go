package config

import (
	"os"

	"github.com/joho/godotenv"

	"rackiam/internal/domain"
	"rackiam/internal/logging"
)

const (
	EnvRegion    = "RACKIAM_REGION"
	EnvAccountID = "RACKIAM_ACCOUNT_ID"
	EnvLogLevel  = "RACKIAM_LOG_LEVEL"
	EnvFormat    = "RACKIAM_FORMAT"
)

// Settings holds runtime options read from the environment
type Settings struct {
	Region    string
	AccountID string
	LogLevel  logging.LogLevel
	Format    domain.OutputFormat
}

// LoadSettings reads settings from the environment. Files are loaded with
// godotenv first; variables already set in the environment win. A missing
// file is not an error.
func LoadSettings(envFiles ...string) Settings {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logging.LogWarn("Failed to load env file", map[string]interface{}{"file": file, "error": err.Error()})
		}
	}

	s := Settings{
		Region:    os.Getenv(EnvRegion),
		AccountID: os.Getenv(EnvAccountID),
		LogLevel:  logging.ParseLogLevel(os.Getenv(EnvLogLevel)),
		Format:    domain.OutputFormat(os.Getenv(EnvFormat)),
	}
	if s.Format == "" {
		s.Format = domain.OutputFormatJSON
	}
	return s
}
