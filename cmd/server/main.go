package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ramink/movie-catalog/internal/config"
	"github.com/ramink/movie-catalog/internal/database"
	"github.com/ramink/movie-catalog/internal/handler"
	"github.com/ramink/movie-catalog/internal/middleware"
	"github.com/ramink/movie-catalog/internal/repository"
	"github.com/ramink/movie-catalog/internal/router"
	"github.com/ramink/movie-catalog/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	client, db, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("connecting to mongodb: %v", err)
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.SecurityHeaders())
	if !cfg.Debug {
		e.Use(middleware.AllowedHosts(cfg.AllowedHosts))
	}

	repo := repository.NewMovieRepository(db, cfg.MovieCollection)
	svc := service.NewMovieService(repo)

	router.RegisterHealth(e, handler.NewHealthHandler(client))
	router.RegisterMovies(e, handler.NewMovieHandler(svc),
		middleware.RateLimit(config.LoadRateLimitConfig(), rdb),
		middleware.ResponseCache(config.LoadCacheConfig(), rdb),
	)

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := database.Disconnect(client); err != nil {
		log.Printf("closing mongodb: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
