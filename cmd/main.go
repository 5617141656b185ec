package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/harborbank/banking/internal/command"
	"github.com/harborbank/banking/internal/config"
	"github.com/harborbank/banking/internal/events"
	"github.com/harborbank/banking/internal/handler"
	"github.com/harborbank/banking/internal/middleware"
	"github.com/harborbank/banking/internal/query"
	redisclient "github.com/harborbank/banking/internal/redis"
	"github.com/harborbank/banking/internal/repository"
	"github.com/harborbank/banking/internal/seed"
	"github.com/harborbank/banking/internal/snapshot"
)

func main() {
	cfg := config.Load()

	// Database connection
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Redis connection
	redis, err := redisclient.NewClient(redisclient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// Idempotent reference data seeding
	referenceRepo := repository.NewReferenceRepository(db)
	if err := seed.NewSeeder(referenceRepo).Run(context.Background()); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	publisher := events.NewPublisher(redis.Client)

	// Repositories
	billRepo := repository.NewBillRepository(db)
	billRead := repository.NewBillReadRepository(db, redis.Client)
	currencyRepo := repository.NewCurrencyRepository(db)
	txWrite := repository.NewTransactionWriteRepository(db)
	txRead := repository.NewTransactionReadRepository(db)

	// Command + Query services
	txCommands := command.NewTransactionCommandService(txWrite, billRepo, billRead, publisher)
	billCommands := command.NewBillCommandService(billRepo, billRead, currencyRepo, publisher)
	txQueries := query.NewTransactionQueryService(txRead)
	billQueries := query.NewBillQueryService(billRead)
	currencyQueries := query.NewCurrencyQueryService(currencyRepo)
	referenceQueries := query.NewReferenceQueryService(referenceRepo)

	transactionHandler := handler.NewTransactionHandler(txCommands, txQueries)
	billHandler := handler.NewBillHandler(billCommands, billQueries)
	currencyHandler := handler.NewCurrencyHandler(currencyQueries)
	referenceHandler := handler.NewReferenceHandler(referenceQueries)

	// Snapshot refresher consumes confirmation events
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := snapshot.NewRefresher(billRepo, billRead, currencyRepo)
	subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
		Group:    "snapshot-refresher",
		Consumer: "banking-api",
		Stream:   events.TransactionEventsStream,
		Handler:  refresher.HandleEvent,
	})
	go func() {
		if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Subscriber stopped: %v", err)
		}
	}()

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1", middleware.AuthMiddleware())
	{
		v1.POST("/transactions", transactionHandler.CreateTransaction)
		v1.GET("/transactions", transactionHandler.ListTransactions)
		v1.GET("/transactions/:uuid", transactionHandler.GetPendingTransaction)
		v1.PATCH("/transactions/confirm", transactionHandler.ConfirmTransaction)

		v1.POST("/bills", billHandler.CreateBill)
		v1.GET("/bills", billHandler.ListBills)
		v1.GET("/bills/:uuid", billHandler.GetBill)

		v1.GET("/currencies", currencyHandler.ListCurrencies)

		v1.GET("/languages", referenceHandler.ListLanguages)
		v1.GET("/message-keys", referenceHandler.ListMessageKeys)
	}

	log.Printf("Banking API starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
