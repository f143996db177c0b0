package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	discordclient "tdbot/clients/discord"
	"tdbot/commands"
	"tdbot/config"
	"tdbot/db"
	"tdbot/handlers"
	"tdbot/middleware"
	"tdbot/services/channelsettings"
	"tdbot/services/paranoiaqueue"
	"tdbot/services/questions"
	"tdbot/services/ratelimit"
	"tdbot/services/stats"
	"tdbot/statsnotif"
	"tdbot/usecases/interactions"
	"tdbot/usecases/paranoia"
)

const docsURL = "https://github.com/tdbot/tdbot#readme"

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "tdbot",
		LogsURL:     cfg.AlertConfig.LogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	questionsRepo := db.NewPostgresQuestionsRepository(dbConn, cfg.DatabaseSchema)
	channelSettingsRepo := db.NewPostgresChannelSettingsRepository(dbConn, cfg.DatabaseSchema)

	questionsService := questions.NewQuestionsService(questionsRepo)
	channelSettingsService := channelsettings.NewChannelSettingsService(channelSettingsRepo)

	discordClient, err := discordclient.NewDiscordClient(cfg.DiscordConfig.BotToken, cfg.DiscordConfig.ApplicationID)
	if err != nil {
		return err
	}

	paranoiaUseCase := paranoia.NewParanoiaUseCase(paranoiaqueue.NewQueue(), questionsService, discordClient)
	statsCollector := stats.NewCollector(nil)
	registry := commands.NewRegistry(commands.NewDeps(
		questionsService, channelSettingsService, paranoiaUseCase, statsCollector))
	statsCollector.Register(registry.Names())

	router := interactions.NewInteractionsUseCase(
		ratelimit.NewLimiter(ratelimit.DefaultMaxRequests, ratelimit.DefaultWindow),
		channelSettingsService,
		registry,
		statsCollector,
		alertMiddleware,
	)

	interactionsHandler, err := handlers.NewInteractionsHandler(router, cfg.DiscordConfig.PublicKey)
	if err != nil {
		return err
	}
	apiHandler := handlers.NewAPIHandler(questionsService)
	metricsHandler := handlers.NewMetricsHandler(statsCollector, cfg.MetricsSecret)

	// Reconcile the published command set at startup
	if err := registry.SyncCommands(context.Background(), discordClient); err != nil {
		return err
	}

	statsnotif.Init(cfg.BotListConfig.Token, cfg.BotListConfig.APIBase, cfg.DiscordConfig.ApplicationID)

	// Create a new router
	httpRouter := mux.NewRouter()

	// Cross-origin access is granted to the versioned public API only
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	httpRouter.HandleFunc("/interactions", interactionsHandler.HandleInteraction).Methods("POST")
	apiHandler.SetupEndpoints(httpRouter, allowedOrigins)
	httpRouter.HandleFunc("/metrics", metricsHandler.HandleMetrics).Methods("GET")

	httpRouter.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsURL, http.StatusFound)
	}).Methods("GET")

	// Health check endpoint
	httpRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Fold the completed minute into the rolling average
	flushTicker := time.NewTicker(1 * time.Minute)
	go func() {
		for range flushTicker.C {
			statsCollector.Flush()
		}
	}()
	defer flushTicker.Stop()

	// Keep the bot-list entry current
	listingTicker := time.NewTicker(30 * time.Minute)
	go func() {
		for range listingTicker.C {
			guildCount, err := discordClient.GuildCount(context.Background())
			if err != nil {
				log.Printf("⚠️ Failed to count guilds for listing stats: %v", err)
				continue
			}
			statsnotif.Post(guildCount)
		}
	}()
	defer listingTicker.Stop()

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(httpRouter),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
