package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"donations/cmd"
	"donations/internal/adapters/out/postgres/migrations"
	"donations/internal/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	command := flag.String("cmd", "up", "migration command: up|down|status|redo|version")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	ctx := logg.WithField(context.Background(), "cmd", *command)

	dbConfig, err := cmd.LoadDBConfig()
	requireResource(ctx, logg, "config", err)

	db, err := sql.Open("postgres", dbConfig.DSN)
	requireResource(ctx, logg, "database", err)
	defer db.Close()
	requireResource(ctx, logg, "database", db.PingContext(ctx))

	switch *command {
	case "version":
		v, err := migrations.Version(db)
		requireResource(ctx, logg, "schema version", err)
		fmt.Println("schema version:", v)
	case "up", "down", "status", "redo":
		if err := migrations.Run(ctx, db, *command, flag.Args()...); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *command, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *command)
		os.Exit(1)
	}
	logg.Info(ctx, "migrate done")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
