package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/you/schoolauth/internal/app"
	"github.com/you/schoolauth/internal/config"
)

func main() {
	// Local development convenience; production supplies real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
