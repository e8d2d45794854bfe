// Command seed creates the first admin account so a fresh deployment has a
// login that can reach the admin routes. Idempotent: rerunning against a
// seeded store is a no-op.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/storefront-api/internal/application/auth"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/infrastructure/dynamo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	ctx := context.Background()
	client := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(client, cfg.DynamoTables.Users)
	created, err := auth.EnsureAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		log.Printf("Admin %s created", cfg.AdminEmail)
		return
	}
	log.Printf("Admin %s already exists, nothing to do", cfg.AdminEmail)
}
