package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"clearbid/internal/ai"
	"clearbid/internal/config"
	"clearbid/internal/evaluation"
	bidsHandlers "clearbid/internal/http-server/handlers/api/bids"
	"clearbid/internal/http-server/handlers/api/evaluate"
	"clearbid/internal/http-server/handlers/api/root"
	tenderHandlers "clearbid/internal/http-server/handlers/api/tender"
	"clearbid/internal/ledger"
	"clearbid/internal/storage"
	"clearbid/internal/storage/firestore"
	"clearbid/internal/storage/memory"
	"clearbid/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := config.Load()

	ctx := context.Background()

	var store storage.Store
	switch {
	case cfg.FirebaseCredentials != "":
		fsStore, err := firestore.New(ctx, []byte(cfg.FirebaseCredentials))
		if err != nil {
			log.Error("Failed to connect to firestore", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			os.Exit(1)
		}
		store = fsStore
		log.Info("using firestore storage")
	case cfg.PostgresConn != "":
		pgStore, err := postgres.New(cfg.PostgresConn)
		if err != nil {
			log.Error("Failed to connect to postgresql", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			os.Exit(1)
		}
		store = pgStore
		log.Info("using postgres storage")
	default:
		store = memory.New()
		log.Info("using in-memory storage, records are lost on restart")
	}

	notary, err := ledger.New(cfg.AlgodURL, cfg.DeployerMnemonic, cfg.AlgorandAppId)
	if err != nil {
		log.Error("Failed to initialize ledger notary", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
		os.Exit(1)
	}

	var model ai.Model
	if cfg.OpenAIAPIKey != "" {
		openAIModel, err := ai.NewOpenAIModel(ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel})
		if err != nil {
			log.Error("Failed to initialize model client", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			os.Exit(1)
		}
		model = openAIModel
	} else {
		log.Info("model api key is not set, evaluation is disabled")
	}

	orchestrator := evaluation.New(log, store, model)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/", root.New(log, cfg.AlgorandAppId))
	router.Route("/api", func(r chi.Router) {
		r.Post("/tender", tenderHandlers.NewPostTender(log, store, notary))
		r.Post("/bid", bidsHandlers.NewPostBid(log, store, notary))
		r.Post("/evaluate/{tenderId}", evaluate.NewPostEvaluate(log, orchestrator))
		r.Get("/tender/{tenderId}", tenderHandlers.NewGetTender(log, store))
		r.Get("/results/{tenderId}", bidsHandlers.NewGetResults(log, store))
		r.Get("/tenders", tenderHandlers.NewGetTenders(log, store))
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:    cfg.HTTPAddress(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Error("failed to start the server")
		}
	}()

	log.Info("starting server", slog.String("addr", cfg.HTTPAddress()))
	<-done
	log.Info("server stopped")
}
