package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"userDirectory/internal/config"
	"userDirectory/internal/db"
	grpcserver "userDirectory/internal/grpc"
	"userDirectory/internal/web"
	"userDirectory/repository"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("parse LOG_LEVEL: %v", err)
	}
	log.SetLevel(level)
	log.Infof("Configuration loaded: %v", cfg)

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open DB and create tables
	d, err := db.Open(cfg.DBDriver, cfg.DSN(), db.Options{Logger: log, Debug: cfg.Debug})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := db.Close(d); err != nil {
			log.Errorf("close db: %v", err)
		}
	}()
	log.Info("Database and tables created successfully.")

	users := repository.NewUserRepository(d)

	router, err := web.NewRouter(web.RouterConfig{Users: users, Log: log, MetricsEnabled: cfg.MetricsEnabled})
	if err != nil {
		log.Fatalf("build router: %v", err)
	}
	httpAddr, stopHTTP, err := web.StartHTTP(cfg.HTTPAddress, router, log)
	if err != nil {
		log.Fatalf("start http: %v", err)
	}
	log.Infof("HTTP server listening on %s", httpAddr)

	stopGRPC := func(context.Context) error { return nil }
	if cfg.GRPCAddress != "" {
		check := func(ctx context.Context) error { return db.Ping(ctx, d) }
		grpcAddr, stop, err := grpcserver.StartHealth(cfg.GRPCAddress, check, 10*time.Second, log)
		if err != nil {
			log.Fatalf("start grpc health: %v", err)
		}
		stopGRPC = stop
		log.Infof("gRPC health server listening on %s", grpcAddr)
	}

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopHTTP(ctx); err != nil {
		log.Errorf("http shutdown error: %v", err)
	}
	if err := stopGRPC(ctx); err != nil {
		log.Errorf("grpc shutdown error: %v", err)
	}
}
