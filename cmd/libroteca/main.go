package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"runtime"
	"strings"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"libroteca/internal/catalog"
	"libroteca/internal/console"
	"libroteca/internal/gutendex"
	"libroteca/internal/logger"
	"libroteca/internal/storage/authors"
	"libroteca/internal/storage/books"
)

func getEnvOrDefault(key, default_ string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return default_
}

var (
	apiUrl    = getEnvOrDefault("GUTENDEX_URL", gutendex.DefaultBaseURL)
	logLevel  = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "warn"))
	dbConnStr = os.Getenv("DATABASE_URL")
)

func main() {
	_, thisFile, _, _ := runtime.Caller(0)

	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(logLevel))
	if err != nil {
		lvl = slog.LevelWarn
	}
	logger.SetupSLog(lvl, path.Dir(path.Dir(path.Dir(thisFile))), nil)

	if err != nil {
		slog.Error("Invalid log level specified in LOG_LEVEL, one of debug, info, warn or error expected")
		os.Exit(1)
	}

	baseUrl, err := url.Parse(apiUrl)
	if err != nil {
		slog.Error("Invalid URL in GUTENDEX_URL: " + err.Error())
		os.Exit(1)
	}

	cfg, err := pgxpool.ParseConfig(dbConnStr)
	if err != nil {
		slog.Error("Failed to parse DATABASE_URL: " + err.Error())
		os.Exit(1)
	}

	cfg.ConnConfig.Tracer = logger.NewPGXTracer()

	pg, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to create postgres pool: " + err.Error())
		os.Exit(1)
	}

	bookRepo := books.NewPGXRepository(pg, slog.Default())
	authorRepo := authors.NewPGXRepository(pg, bookRepo, slog.Default())

	session := console.NewSession(os.Stdin, os.Stdout, slog.Default(),
		gutendex.NewClient(http.DefaultClient, baseUrl, slog.Default()),
		&catalog.Ingestor{
			Logger:  slog.Default(),
			Books:   bookRepo,
			Authors: authorRepo,
		},
		bookRepo, authorRepo)

	if err := session.Run(context.Background()); err != nil {
		slog.Error("Session failed: " + err.Error())
		os.Exit(1)
	}
}
