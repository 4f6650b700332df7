package main

import (
	"embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"

	"github.com/kova98/replydraft.api/config"
	"github.com/kova98/replydraft.api/data"
	"github.com/kova98/replydraft.api/data/repos"
	"github.com/kova98/replydraft.api/extract"
	"github.com/kova98/replydraft.api/faults"
	"github.com/kova98/replydraft.api/generator"
	"github.com/kova98/replydraft.api/handlers"
	"github.com/kova98/replydraft.api/metrics"
	"github.com/kova98/replydraft.api/sources"
)

//go:embed data/migrations/*.sql
var embedMigrations embed.FS

func main() {
	config.LoadConfig()

	opts := slog.HandlerOptions{Level: config.Config.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", config.Config.PostgresURL)
	if err != nil {
		slog.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(90)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := data.RunMigrations(db.DB, embedMigrations); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	postRepo := repos.NewPostRepo(db)
	historyRepo := repos.NewHistoryRepo(db, config.Config.HistoryLimit)
	settingsRepo := repos.NewSettingsRepo(db)

	var pool *sources.ProxyPool
	if len(config.Config.RedditProxyURLs) > 0 {
		pool, err = sources.NewProxyPool(config.Config.RedditProxyURLs)
		if err != nil {
			slog.Error("failed to create proxy pool", "error", err)
			os.Exit(1)
		}
		slog.Info("using reddit proxy pool", "proxies", len(config.Config.RedditProxyURLs))
	}

	client := &http.Client{Timeout: 10 * time.Second}
	extractor := extract.NewExtractor(logger, client)
	fetcher := sources.NewRedditFetcher(logger, client, pool, extractor)

	llmClient := generator.NewClient(config.Config.LLMAPIURL, config.Config.LLMModel)
	gen := generator.NewGenerator(logger, llmClient)

	reddit := handlers.NewRedditHandler(fetcher, postRepo)
	reply := handlers.NewReplyHandler(gen, fetcher, postRepo, historyRepo, settingsRepo, config.Config.LLMAPIKey)
	settings := handlers.NewSettingsHandler(settingsRepo, gen)
	history := handlers.NewHistoryHandler(historyRepo, postRepo, settingsRepo, config.Config.HistoryLimit)
	health := handlers.NewHealthHandler()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/reddit/fetch", public(reddit.FetchPost))
	mux.HandleFunc("POST /api/reddit/manual", public(reddit.ManualPost))

	mux.HandleFunc("POST /api/reply/generate", public(reply.GenerateReply))
	mux.HandleFunc("GET /api/reply/{postId}", public(reply.GetRepliesForPost))

	mux.HandleFunc("GET /api/settings", public(settings.GetSettings))
	mux.HandleFunc("PUT /api/settings", public(settings.UpdateSettings))
	mux.HandleFunc("POST /api/settings/test-key", public(settings.TestKey))

	mux.HandleFunc("GET /api/history", public(history.GetHistory))
	mux.HandleFunc("DELETE /api/history", public(history.ClearHistory))
	mux.HandleFunc("GET /api/export", public(history.Export))
	mux.HandleFunc("POST /api/import", public(history.Import))

	mux.HandleFunc("GET /api/health", public(health.GetHealth))
	mux.Handle("GET /metrics", metrics.Handler())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		if err := db.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
		os.Exit(0)
	}()

	slog.Info("Starting server", "port", config.Config.Port)
	err = http.ListenAndServe(":"+config.Config.Port, withCORS(mux))
	if err != nil {
		slog.Error("failed to start server", "error", err)
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func public(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()
		slog.Debug("req", "method", r.Method, "path", r.URL.Path, "code", res.Code, "elapsed", elapsedMs)
		writeResult(w, res)
	}
}

func writeResult(w http.ResponseWriter, res handlers.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Code)
	if res.Body != nil {
		if err := json.NewEncoder(w).Encode(res.Body); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
	if res.Code == http.StatusInternalServerError {
		metrics.ErrorsTotal.WithLabelValues(string(faults.Categorize(res.Error))).Inc()
		slog.Error("internal error", "error", res.Error.Error())
	}
}
