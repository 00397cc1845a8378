package main

import (
	"context"
	"log"

	"booth-pos-backend/config"
	"booth-pos-backend/internal/cache"
	"booth-pos-backend/internal/database"
	"booth-pos-backend/internal/handler"
	"booth-pos-backend/internal/queue"
	"booth-pos-backend/internal/repository"
	"booth-pos-backend/internal/service"
	"booth-pos-backend/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventQueue, err := queue.NewRedisStreamOrderEventQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize order event queue: %v", err)
	}

	eventRepo := repository.NewEventRepository(pool)
	masterProductRepo := repository.NewMasterProductRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	statsCache := cache.NewEventStatsCache(rdb)

	eventService := service.NewEventService(eventRepo)
	masterProductService := service.NewMasterProductService(masterProductRepo)
	productService := service.NewProductService(pool, productRepo, eventRepo, masterProductRepo)
	orderService := service.NewOrderService(pool, orderRepo, productRepo, eventQueue)
	statsService := service.NewStatsService(statsRepo, eventRepo, statsCache)
	authService := service.NewAuthService(settingsRepo, eventRepo, cfg.Auth)

	ctx := context.Background()
	if err := database.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := authService.EnsureDefaultPasswords(ctx); err != nil {
		log.Fatalf("Failed to seed default passwords: %v", err)
	}

	statsWorker := worker.NewStatsWorker(statsCache, eventQueue)
	if err := statsWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start stats worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewAuthHandler(authService, cfg.Auth).RegisterRoutes(router)
	handler.NewEventHandler(eventService).RegisterRoutes(router, cfg.Auth.JWTSecret)
	handler.NewMasterProductHandler(masterProductService).RegisterRoutes(router, cfg.Auth.JWTSecret)
	handler.NewProductHandler(productService).RegisterRoutes(router, cfg.Auth.JWTSecret)
	handler.NewOrderHandler(orderService).RegisterRoutes(router, cfg.Auth.JWTSecret)
	handler.NewStatsHandler(statsService).RegisterRoutes(router, cfg.Auth.JWTSecret)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
