package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/neo-arclight/roundtable/internal/config"
	"github.com/neo-arclight/roundtable/internal/handler"
	"github.com/neo-arclight/roundtable/internal/handler/generate"
	"github.com/neo-arclight/roundtable/internal/handler/ws"
	"github.com/neo-arclight/roundtable/internal/model/persona"
	"github.com/neo-arclight/roundtable/internal/service/ai"
	chatservice "github.com/neo-arclight/roundtable/internal/service/chat"
	"github.com/neo-arclight/roundtable/internal/service/dialogue"
	"github.com/neo-arclight/roundtable/internal/service/generation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	transcript := chatservice.NewService()

	// Initialize AI-backed generation endpoint
	var replier generate.Replier
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without live generation - 请检查 Ark 模型相关环境变量")
		} else {
			replier = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark 凭证未配置，生成端点将返回503，居民回应落入替补台词")
	}

	client := generation.NewClient(cfg.Dialogue.GenerationURL, cfg.Dialogue.RequestTimeout)
	orchestrator := dialogue.New(ctx, personaStore, transcript, client, cfg.Dialogue)

	if err := orchestrator.SeedOpening(ctx); err != nil {
		log.Fatalf("failed to seed opening script: %v", err)
	}

	hub := ws.NewHub(orchestrator.Snapshot)
	orchestrator.SetNotifier(hub.Broadcast)

	router := handler.NewRouter(personaStore, orchestrator, replier, hub)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Roundtable backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
