package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads a .env file into the environment the first time it is
// called. ENV_FILE points at another file; NO_DOTENV=1 skips loading.
// Variables already set are never overwritten.
func LoadDotenvOnce() {
	dotenvOnce.Do(func() {
		if os.Getenv("NO_DOTENV") == "1" {
			return
		}
		if path := os.Getenv("ENV_FILE"); path != "" {
			_ = godotenv.Load(path)
			return
		}
		_ = godotenv.Load()
	})
}
