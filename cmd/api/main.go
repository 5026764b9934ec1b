package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"

	"github.com/geocodry/geocodry/pkg/env"
	"github.com/geocodry/geocodry/pkg/geocoding"
	"github.com/geocodry/geocodry/pkg/history"
	"github.com/geocodry/geocodry/pkg/logger"
	"github.com/geocodry/geocodry/pkg/middleware"
)

const ServiceName = "api"

func init() {
	logger.InitGlobalSlog(ServiceName)
}

func main() {
	_ = godotenv.Load()

	client, err := env.NewNominatimClient()
	if err != nil {
		panic(err)
	}

	svc := geocoding.NewService(client)

	// The audit trail is optional: without a database the proxy runs fully
	// stateless.
	var lookups history.Repository
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			panic(fmt.Errorf("unable to open db conn: %w", err))
		}

		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing db connection", "error", err.Error())
			}
		}()

		if err := db.Ping(); err != nil {
			panic(fmt.Errorf("unable to ping database: %w", err))
		}

		slog.Info("connected to the database successfully")
		lookups = history.NewPgRepository(db)
	}

	r := gin.New()
	r.Use(middleware.TraceID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api/nominatim")
	api.GET("/search", searchHandler(svc, lookups))
	api.GET("/reverse", reverseHandler(svc, lookups))
	api.GET("/history", historyHandler(lookups))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var port string
	if port = os.Getenv("PORT"); port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", port), Handler: r}
	go func() {
		slog.Info(fmt.Sprintf("serving HTTP on :%s", port))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server shutdown abruptly", "error", err.Error())
		} else {
			slog.Info("server shutdown gracefully")
		}

		stop()
	}()

	// Listen for OS interrupt
	<-ctx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("server exited")
}
