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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/storelab/storefront/internal/cache"
	"github.com/storelab/storefront/internal/config"
	h "github.com/storelab/storefront/internal/http"
	"github.com/storelab/storefront/internal/payment"
	"github.com/storelab/storefront/internal/repository"
	"github.com/storelab/storefront/internal/service"
	"github.com/storelab/storefront/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// MongoDB: the gateway memoizes the first successful dial; every
	// repository shares the same handle.
	gateway := repository.NewGateway(cfg.MongoURI, cfg.MongoDBName)
	db, err := gateway.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB database %q", cfg.MongoDBName)

	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	for _, repo := range []any{productRepo, orderRepo} {
		if ic, ok := repo.(repository.IndexCreator); ok {
			if err := ic.CreateIndexes(ctx); err != nil {
				log.Fatalf("Failed to create indexes: %v", err)
			}
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed: ", err)
	}
	log.Printf("Redis ping succeeded")

	catalogCache := cache.NewRedisCache(redisClient)
	productService := service.NewProductService(productRepo, catalogCache)

	processor := payment.NewBreakerProcessor(payment.MockProcessor{})
	orderService := service.NewOrderService(orderRepo, processor)

	sessions := session.NewStore()
	defer sessions.Close()

	productHandler := h.NewProductHandler(productService)
	orderHandler := h.NewOrderHandler(orderService, sessions)
	cartHandler := h.NewCartHandler(sessions)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/products", productHandler.List)
	r.With(h.AdminOnly(cfg.AdminToken)).Post("/products", productHandler.Create)

	r.Post("/order", orderHandler.Create)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.Get)
		r.Delete("/", cartHandler.Clear)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
		r.Delete("/items/{product_id}", cartHandler.RemoveItem)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	if err := gateway.Close(shutdownCtx); err != nil {
		log.Printf("failed to close MongoDB connection: %v", err)
	}

	log.Println("server exited")
}
