package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/envstruct"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/logging"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/pprofserver"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

type application struct {
	logger         *slog.Logger
	backend        *backend.Client
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	lists          *listCache
	readDB         *sqlx.DB
	templateDir    string
}

type config struct {
	Addr        string `env:"MINWON_ADDR" envDefault:"localhost:4000"`
	BackendURL  string `env:"MINWON_BACKEND_URL" envDefault:"http://localhost:8080"`
	SQLiteURL   string `env:"MINWON_SQLITE_URL" envDefault:"./minwon.sqlite"`
	PprofPort   string `env:"MINWON_PPROF_PORT" envDefault:""`
	TemplateDir string `env:"MINWON_TEMPLATE_DIR" envDefault:"./ui/templates"`
}

// run wires the application and serves until ctx is cancelled. lookupEnv is
// injected so tests can supply their own environment.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse environment")
	}

	if cfg.PprofPort != "" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	readWriteDB, readDB, err := sqlite.NewDB(ctx, cfg.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open session database", slog.String("url", cfg.SQLiteURL))
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(readWriteDB.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	app := application{
		logger:         logger,
		backend:        backend.NewClient(cfg.BackendURL, logger),
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		lists:          newListCache(),
		readDB:         readDB,
		templateDir:    cfg.TemplateDir,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// Missing .env is fine in production; the environment is set by the host.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded")
	}

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
