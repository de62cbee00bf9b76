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

	"donations/cmd"
	"donations/internal/adapters/out/postgres/migrations"
	"donations/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "donations",
		Level:       logger.ParseLevel(configs.App.LogLevel),
		Format:      configs.App.LogFormat,
	})
	ctx := logg.WithField(context.Background(), "env", configs.App.Env)

	gormDB, err := openDatabase(configs.DB, configs.App.IsDev())
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	if configs.App.MigrateOnStart {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("database handle: %v", err)
		}
		if err := migrations.Up(ctx, sqlDB); err != nil {
			log.Fatalf("applying migrations: %v", err)
		}
		logg.Info(ctx, "schema up to date")
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logg)
	if err != nil {
		log.Fatalf("wiring application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logg.Warn(ctx, "closing adapters", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.App.HTTPPort, logg)
}

func openDatabase(cfg cmd.DBConfig, verbose bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return gormDB, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logg *logger.Logger) {
	e := app.CreateHTTPServer().NewEcho()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logg.Info(ctx, "http server listening on :"+port)

	<-sigCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "http shutdown", err)
	}
}
