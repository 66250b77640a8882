// Command migrate applies the catalog schema to the database named by
// DATABASE_URL and exits. The server applies the same migrations on startup;
// this exists for running them ahead of a deploy.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Y4SHVINE/smart-product-assistant/internal/db"
)

func main() {
	_ = godotenv.Load()

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, connStr)
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	pool.Close()

	fmt.Println("Migrations applied successfully")
}
