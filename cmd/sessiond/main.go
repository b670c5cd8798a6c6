// Command sessiond runs a small HTTP service demonstrating the session kit:
// PostgreSQL- or Redis-backed sessions, CSRF protection, CORS headers, a
// health-check route exempt from all of it, and a background janitor.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/sessionkit/sessionkit/pkg/config"
	"github.com/sessionkit/sessionkit/pkg/cors"
	"github.com/sessionkit/sessionkit/pkg/httpserver"
	"github.com/sessionkit/sessionkit/pkg/logger"
	"github.com/sessionkit/sessionkit/pkg/pg"
	"github.com/sessionkit/sessionkit/pkg/redis"
	"github.com/sessionkit/sessionkit/pkg/session"
)

type appConfig struct {
	// Store selects the session backend: postgres, redis or memory.
	Store string `env:"SESSION_STORE" envDefault:"postgres"`

	Logger  logger.Config
	Server  httpserver.Config
	Session session.Config
	CORS    cors.Config
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(cfg.Logger, os.Stderr)

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.ErrorContext(ctx, "store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.ErrorContext(ctx, "schema init failed", slog.Any("error", err))
		os.Exit(1)
	}

	manager := session.New(cfg.Session,
		session.WithStore(store),
		session.WithCORS(cors.New(cfg.CORS).Apply),
		session.WithLogger(log),
	)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go session.NewJanitor(store, cfg.Session.PurgeInterval, log).Run(janitorCtx)

	r := chi.NewRouter()
	r.Use(manager.Middleware)

	r.Get(cfg.Session.HealthCheckPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		writeJSON(w, map[string]any{
			"token":         sess.Token,
			"user_id":       sess.UserID,
			"authenticated": sess.IsAuthenticated(),
			"created":       sess.Created,
		})
	})

	r.Post("/profile", func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		if theme := r.FormValue("theme"); theme != "" {
			sess.Set("theme", theme)
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := manager.Destroy(r.Context(), w, r); err != nil {
			log.ErrorContext(r.Context(), "logout failed", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	if err := httpserver.Run(ctx, cfg.Server, r, log); err != nil {
		log.ErrorContext(ctx, "server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg appConfig) (session.Store, error) {
	switch cfg.Store {
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client), nil
	case "memory":
		return session.NewMemoryStore(), nil
	default:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		return session.NewPGStore(pool, cfg.Session.Table)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
