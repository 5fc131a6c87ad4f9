package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"linkhub/internal/bridge"
	"linkhub/internal/config"
	"linkhub/internal/metrics"
	"linkhub/internal/server"
	"linkhub/internal/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	b, err := openBridge(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage backend %q: %v", cfg.StorageBackend, err)
	}
	defer b.Close()

	hub := store.Open(ctx, b)

	if cfg.BootstrapOwner != "" {
		if err := hub.SeedOwner(ctx, cfg.BootstrapOwner, cfg.BootstrapOwnerPassword); err != nil {
			log.Fatalf("Failed to seed owner account: %v", err)
		}
	}

	// Foreign writes from other instances trigger a wholesale reload of the
	// affected collection.
	if watcher, ok := b.(bridge.Watcher); ok {
		go func() {
			if err := watcher.Watch(ctx, func(key string) {
				hub.Reload(ctx, key)
			}); err != nil {
				log.Printf("Change feed stopped: %v", err)
			}
		}()
	}

	metrics.Init()

	srv := server.New(cfg)
	srv.RegisterRoutes(hub)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (backend: %s)", cfg.ServerAddr, cfg.StorageBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// openBridge constructs the persistence bridge named in the configuration.
// The postgres backend runs migrations before serving.
func openBridge(ctx context.Context, cfg *config.Config) (bridge.Bridge, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pg, err := bridge.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.RunMigrations(cfg.DatabaseURL); err != nil {
			pg.Close()
			return nil, err
		}
		log.Println("Migrations completed successfully")
		return pg, nil
	case config.BackendRedis:
		return bridge.NewRedis(cfg.RedisURL), nil
	default:
		log.Println("Using in-memory storage; state is lost on restart")
		return bridge.NewMemory(), nil
	}
}
