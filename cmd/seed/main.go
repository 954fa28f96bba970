package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"menu-console/internal/config"
	"menu-console/internal/db"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
	"menu-console/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	categories := categoryrepo.NewPostgres(pool, logger)
	items := itemrepo.NewPostgres(pool, logger)

	if err := seed.Apply(ctx, categories, items, cfg.DefaultTenant); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied for tenant %s", cfg.DefaultTenant)
}
