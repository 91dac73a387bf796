package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prodmanag/backend/internal/config"
	"github.com/prodmanag/backend/internal/es"
	"github.com/prodmanag/backend/internal/events"
	"github.com/prodmanag/backend/internal/httpserver"
	"github.com/prodmanag/backend/internal/logging"
	"github.com/prodmanag/backend/internal/middleware"
	"github.com/prodmanag/backend/internal/repo"
	"github.com/prodmanag/backend/internal/service"
	"github.com/prodmanag/backend/internal/transport"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	store := repo.New(db)

	// publisher stays a nil interface when Kafka is not configured; assigning
	// a nil *Producer directly would make it look set to the handlers.
	var producer *events.Producer
	var publisher events.Publisher
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
		publisher = producer
	}

	var searchHandler *httpserver.SearchHTTP
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "products"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = configuration.APP_ENV == "development"
	e.Validator = transport.NewValidator()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: store, JWTSecret: jwtSecret},
			Producer: publisher,
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc:      &service.CatalogService{Repo: store},
			Producer: publisher,
		},
		SearchHandler: searchHandler,
		JWTSecret:     jwtSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.APP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
