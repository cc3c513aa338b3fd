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

	"restmvc/config"
	"restmvc/internal/pkg/cache"
	"restmvc/internal/pkg/logger"
	"restmvc/internal/pkg/memstore"
	"restmvc/internal/seed"

	"restmvc/internal/api/beer"
	"restmvc/internal/api/customer"
	"restmvc/internal/api/router"
	"restmvc/internal/repository/beerrepo"
	"restmvc/internal/repository/customerrepo"
	"restmvc/internal/service/beerservice"
	"restmvc/internal/service/customerservice"
)

func main() {
	ctx := context.Background()

	// O .env é opcional: as variáveis podem já estar no ambiente (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using the process environment only.")
	}

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configuration loaded.", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	// 1. Armazenamento
	db, err := memstore.New()
	if err != nil {
		log.Fatal("Failed to build the in-memory store.", err)
	}

	// 2. Cache opcional. Uma interface nil (e não um *RedisClient nil) desliga o cache.
	var cacheClient cache.Client
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("Failed to connect to Redis.", err)
		}
		defer redisClient.Close()
		cacheClient = redisClient
		log.Info("Redis connected.", map[string]interface{}{"addr": cfg.RedisAddr})
	}

	// 3. Injeção de dependências: Repository -> Service -> Handler
	beerRepo := beerrepo.NewBeerRepository(db, cacheClient, cfg.CacheTTL, log)
	customerRepo := customerrepo.NewCustomerRepository(db, cacheClient, cfg.CacheTTL, log)

	if cfg.SeedData {
		if err := seed.Run(ctx, beerRepo, customerRepo); err != nil {
			log.Fatal("Failed to load sample data.", err)
		}
		log.Info("Sample data loaded.", map[string]interface{}{
			"beers":     len(seed.Beers()),
			"customers": len(seed.Customers()),
		})
	}

	beerHandler := beer.NewHandler(beerservice.NewService(beerRepo, log), log)
	customerHandler := customer.NewHandler(customerservice.NewService(customerRepo, log), log)

	// 4. Roteador e servidor
	r := router.NewRouter(router.Deps{
		BeerHandler:          beerHandler,
		CustomerHandler:      customerHandler,
		Logger:               log,
		RateLimitCache:       cacheClient,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening.", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed.", err)
		}
	}()

	// 5. Desligamento gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutdown signal received.", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced server shutdown.", err)
	}

	log.Info("Server stopped.", nil)
}
