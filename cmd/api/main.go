package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"course-catalog-go/internal/database"
	"course-catalog-go/internal/fixtures"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.Println("starting course catalog api")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}
	defer db.Close()

	server := NewServer(port, db, cfg.JWTKey)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	log.Println("course catalog api stopped")
}

func openDatabase(cfg *Config) (database.Client, error) {
	if cfg.DBCon == "" {
		log.Println("no database configured, serving the fixture catalog from memory")
		catalog, err := fixtures.Load()
		if err != nil {
			return nil, err
		}
		return database.NewMemoryClient(catalog), nil
	}
	return database.NewClient(cfg.DBCon)
}
