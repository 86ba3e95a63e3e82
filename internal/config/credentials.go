package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/constants"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads a .env file from the working directory unless ENV is
// production. A missing .env file is not an error.
func LoadEnv() {
	if strings.EqualFold(os.Getenv(constants.EnvEnvironment), constants.EnvProduction) {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}
}

// GetEnv returns the value of key, or defaultValue when it is unset or empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// LoadUserID returns the similarity-service account id from MOSS_USER_ID
func LoadUserID() (string, error) {
	LoadEnv()
	userID := strings.TrimSpace(GetEnv(constants.EnvMossUserID, ""))
	if userID == "" {
		return "", domain.NewConfigError(constants.EnvMossUserID+" must be set", nil)
	}
	return userID, nil
}
