package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads the env file named by START (falling back to .env) and checks
// the variables the server cannot run without. Session persistence is
// deliberately not checked here: a missing MYSQL_DSN degrades to the
// in-memory slot instead of refusing to start.
func Load() {
	envFile := os.Getenv("START")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No env file %s, relying on process environment", envFile)
	}

	if os.Getenv("MONGO_URI") == "" {
		log.Fatalf("MONGO_URI is not set in environment")
	}
	if os.Getenv("MONGO_DB_NAME") == "" {
		log.Fatalf("MONGO_DB_NAME is not set in environment")
	}
	if os.Getenv("SESSION_CODEC") == "signed" && os.Getenv("SESSION_SECRET") == "" {
		log.Fatalf("SESSION_SECRET is required when SESSION_CODEC=signed")
	}
}
