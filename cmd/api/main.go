package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexbharat/lexbharat/internal/application"
	appanalyses "github.com/lexbharat/lexbharat/internal/application/analyses"
	appchat "github.com/lexbharat/lexbharat/internal/application/chatflow"
	appdocs "github.com/lexbharat/lexbharat/internal/application/documents"
	"github.com/lexbharat/lexbharat/internal/config"
	domanalysis "github.com/lexbharat/lexbharat/internal/domain/analysis"
	aiopenai "github.com/lexbharat/lexbharat/internal/infra/ai/openai"
	mysqlp "github.com/lexbharat/lexbharat/internal/infra/db/mysql"
	postgresp "github.com/lexbharat/lexbharat/internal/infra/db/postgres"
	"github.com/lexbharat/lexbharat/internal/infra/httpserver"
	minioStore "github.com/lexbharat/lexbharat/internal/infra/storage"
	"github.com/lexbharat/lexbharat/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect analysis database, driver per config
	var (
		db   *sql.DB
		repo domanalysis.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
	default:
		log.Fatalf("unknown database driver: %q", cfg.Database.Driver)
	}
	defer db.Close()

	// init object store
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init services
	docsSvc := &appdocs.Service{Store: store, Clock: application.SystemClock{}}
	analysesSvc := &appanalyses.Service{Repo: repo}
	chatSvc := appchat.NewService(aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model))

	health := middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckerFunc(store.Check),
	})

	mux := httpserver.NewRouter(docsSvc, analysesSvc, chatSvc, health)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
