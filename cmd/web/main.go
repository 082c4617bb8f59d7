package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-catalog-go/internal/courses"
	"course-catalog-go/internal/web"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.Println("starting course catalog web")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	templates, err := web.LoadTemplates()
	if err != nil {
		log.Fatalf("loading templates: %v", err)
	}

	svc := courses.New(cfg.APIURL, courses.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%v", cfg.Port),
		Handler: web.NewHandler(svc, templates),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("api", cfg.APIURL).Printf("listening requests at %v", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Println("course catalog web stopped")
}
