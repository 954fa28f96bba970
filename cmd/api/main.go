package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"menu-console/internal/config"
	"menu-console/internal/db"
	"menu-console/internal/httpserver"
	"menu-console/internal/importer"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
	categorysvc "menu-console/internal/service/category"
	itemsvc "menu-console/internal/service/item"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	itemRepo := itemrepo.NewPostgres(dbpool, logger)
	categoryService := categorysvc.New(categoryRepo, itemRepo)
	itemService := itemsvc.New(itemRepo, categoryRepo, logger)
	imp := importer.New(categoryRepo, itemRepo, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CategorySvc: categoryService,
		ItemSvc:     itemService,
		Importer:    imp,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
