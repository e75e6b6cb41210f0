package main

import (
	"tokenestate/internal/config" // Custom package for configuration
	"tokenestate/internal/db"     // Custom package for database
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
