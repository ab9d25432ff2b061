package main

import (
	"ambassador_shop/internal/config" // Custom import path (Config)
	"ambassador_shop/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration against MySQL
}
