// Command lambda serves the customer lookup webhook from AWS Lambda behind
// an API Gateway REST proxy integration.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/JonMunkholm/customerlookup/internal/database"
	"github.com/JonMunkholm/customerlookup/internal/logging"
	"github.com/JonMunkholm/customerlookup/internal/source"
	"github.com/JonMunkholm/customerlookup/internal/web"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Lambda captures stdout; JSON keeps CloudWatch queries simple.
	logging.Setup(cfg.Logging.Level, "json")

	ctx := context.Background()

	var audit core.AuditStore
	if cfg.Audit.Enabled() {
		pool, err := database.Connect(ctx, cfg.Audit)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		// The pool lives as long as the execution environment.
		store := database.NewLookupStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure audit schema", "error", err)
			os.Exit(1)
		}
		audit = store
	}

	src, err := source.New(ctx, cfg.Sheet)
	if err != nil {
		slog.Error("failed to configure sheet source", "error", err)
		os.Exit(1)
	}

	service, err := core.NewService(src, audit, cfg.Lookup)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(service, cfg)
	lambda.Start(web.APIGatewayHandler(server.Handler()))
}
