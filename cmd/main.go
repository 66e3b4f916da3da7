package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/selimbz/partsbot/internal/ai"
	"github.com/selimbz/partsbot/internal/catalog"
	"github.com/selimbz/partsbot/internal/chat"
	"github.com/selimbz/partsbot/internal/config"
	"github.com/selimbz/partsbot/internal/match"
	"github.com/selimbz/partsbot/internal/resolver"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// --- DB ---
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		slog.Error("db ping error", "err", err)
		os.Exit(1)
	}

	index := catalog.NewPostgres(db)
	repo := chat.NewRepo(db)
	if err := index.EnsureSchema(ctx); err != nil {
		slog.Error("schema error", "err", err)
		os.Exit(1)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		slog.Error("schema error", "err", err)
		os.Exit(1)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// --- Bot wiring ---
	oracle := ai.NewDeepSeek(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL, cfg.DeepSeekModel, cfg.OracleTimeout)
	res := resolver.New(index, match.NewWRatio(), oracle)
	sessions := chat.NewMemorySessions()

	var leads chat.LeadNotifier
	if cfg.LeadsWebhookURL != "" {
		leads = chat.NewWebhookNotifier(cfg.LeadsWebhookURL, cfg.LeadsWebhookToken)
	}

	engine := chat.NewEngine(sessions, repo, res, index, leads)
	handler := chat.NewHandler(engine, repo, index)

	chat.RegisterRoutes(r, handler)

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	slog.Info("listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
