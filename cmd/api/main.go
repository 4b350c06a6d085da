package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"eddyzhang/jd-matcher/internal/config"
	"eddyzhang/jd-matcher/internal/handlers"
	"eddyzhang/jd-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	parser := services.NewDocumentParserService()
	resumeLoader := services.NewResumeLoader(cfg.Resume.Path, parser)

	agent, err := services.NewAgent(cfg.Agent.Backend, cfg.Agent.APIKey, cfg.Agent.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize agent: %v", err)
	}
	if cfg.Agent.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set, match requests will fail")
	}
	log.Printf("🤖 Agent backend %q initialized\n", cfg.Agent.Backend)

	matcher := services.NewMatcherService(resumeLoader, agent)
	log.Println("✅ Matcher service initialized")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	switch cfg.Server.Transport {
	case config.TransportNetHTTP:
		serveNetHTTP(addr, handlers.NewHTTPMux(handlers.NewHTTPHandler(matcher, cfg.Server.MaxBodySize)))
	case config.TransportFiber, "":
		serveFiber(addr, cfg, handlers.NewMatchHandler(matcher))
	default:
		log.Fatalf("❌ Unknown transport %q", cfg.Server.Transport)
	}
}

func serveFiber(addr string, cfg *config.Config, matchHandler *handlers.MatchHandler) {
	app := fiber.New(fiber.Config{
		AppName:      "JD Matcher API",
		ReadTimeout:  30 * time.Second,
		BodyLimit:    int(cfg.Server.MaxBodySize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.Register(app, matchHandler)
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on %s (fiber)\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func serveNetHTTP(addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on %s (net/http)\n", addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
