package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"menu-console/internal/config"
	"menu-console/internal/db"
	"menu-console/internal/importer"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
)

func main() {
	var (
		filePath string
		tenant   string
		dryRun   bool
	)
	flag.StringVar(&filePath, "file", "", "Path to menu file (.csv, .json, or .xlsx)")
	flag.StringVar(&tenant, "tenant", "", "Tenant to import into")
	flag.BoolVar(&dryRun, "dry-run", false, "Run against in-memory storage and report what would happen")
	flag.Parse()

	if filePath == "" || tenant == "" {
		flag.Usage()
		os.Exit(2)
	}

	format, err := importer.FormatFromFilename(filePath)
	if err != nil {
		log.Fatalf("detect format: %v", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("read file: %v", err)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	ctx := context.Background()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)

	var (
		categories categoryrepo.Repository
		items      itemrepo.Repository
	)
	if dryRun {
		categories = categoryrepo.NewMemory()
		items = itemrepo.NewMemory()
	} else {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			log.Fatalf("connect db: %v", err)
		}
		defer pool.Close()
		categories = categoryrepo.NewPostgres(pool, logger)
		items = itemrepo.NewPostgres(pool, logger)
	}

	imp := importer.New(categories, items, logger)

	start := time.Now()
	result, err := imp.Run(ctx, tenant, data, format)
	if err != nil {
		if result != nil {
			for _, msg := range result.Errors {
				fmt.Fprintln(os.Stderr, msg)
			}
		}
		log.Fatalf("import failed: %v", err)
	}

	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, msg)
	}
	fmt.Printf("Imported %d items (%d failed, %d categories created) into tenant %s in %s\n",
		result.Created, result.Failed, result.CategoriesCreated, tenant, time.Since(start).Truncate(time.Millisecond))
}
