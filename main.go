package main

import (
	"log"

	"github.com/joho/godotenv"

	"invoicectl/cmd"
	"invoicectl/internal/config"
	"invoicectl/internal/logger"
)

func main() {
	// A .env file is optional; missing is the normal case.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.LoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cmd.Execute()
}
