package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/morph/internal/auth"
	"github.com/inamate/morph/internal/config"
	"github.com/inamate/morph/internal/document"
	mw "github.com/inamate/morph/internal/middleware"
	"github.com/inamate/morph/internal/morph"
	"github.com/inamate/morph/internal/playback"
	"github.com/inamate/morph/internal/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	base := []morph.Option{
		morph.WithCache(cfg.CacheTolerance, cfg.CacheSamples),
		morph.WithTargetCount(morph.TargetCount(cfg.MinResamplePoints, cfg.ResampleDivisor)),
	}

	authService := auth.NewService(cfg.AccessKeyHash, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)
	if authService.Open() {
		slog.Warn("ACCESS_KEY_HASH not set, API is open to anonymous clients")
	}

	sceneService := scene.NewService(cfg.PreviewMaxSize, base...)
	sceneHandler := scene.NewHandler(sceneService)

	// Seed the registry so a fresh server has something to play.
	sample, err := sceneService.Create(context.Background(), document.NewSampleDocument(), "")
	if err != nil {
		slog.Error("create sample scene", "error", err)
		os.Exit(1)
	}
	slog.Info("sample scene ready", "scene", sample.ID, "duration", sample.Duration)

	hub := playback.NewHub(sceneService, playback.Options{
		FPS:     cfg.PlaybackFPS,
		Origins: cfg.Origins(),
		Morph:   base,
	})
	go hub.Run()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/scenes", sceneHandler.List).Methods("GET")
	api.HandleFunc("/scenes", sceneHandler.Create).Methods("POST")
	api.HandleFunc("/scenes/{sceneId}", sceneHandler.Get).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}", sceneHandler.Delete).Methods("DELETE")
	api.HandleFunc("/scenes/{sceneId}/frame", sceneHandler.Frame).Methods("GET")
	api.HandleFunc("/scenes/{sceneId}/preview.png", sceneHandler.Preview).Methods("GET")

	// WebSocket endpoint, token via ?token=
	ws := r.PathPrefix("/ws").Subrouter()
	ws.Use(authService.AuthMiddleware)
	ws.HandleFunc("/scenes/{sceneId}", hub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
