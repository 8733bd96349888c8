package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sudha-chandrann/settleupbackend/internal/config"
	"github.com/sudha-chandrann/settleupbackend/internal/db"
	"github.com/sudha-chandrann/settleupbackend/internal/email"
	apihttp "github.com/sudha-chandrann/settleupbackend/internal/http"
	"github.com/sudha-chandrann/settleupbackend/internal/repository"
	"github.com/sudha-chandrann/settleupbackend/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	groupRepo := repository.NewPgGroupRepository(pool)
	expenseRepo := repository.NewPgExpenseRepository(pool)
	txRepo := repository.NewPgTransactionRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var codeLimiter service.CodeRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			codeLimiter = service.NewRedisCodeRateLimiter(redisClient, 10*time.Minute, 3)
		}
		cancel()
	}

	tokenSvc := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authSvc := service.NewAuthService(logger, userRepo, emailSender, codeLimiter)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, tokenSvc)
	groupHandler := apihttp.NewGroupHandler(logger, groupRepo)
	expenseHandler := apihttp.NewExpenseHandler(logger, expenseRepo, groupRepo)
	txHandler := apihttp.NewTransactionHandler(logger, txRepo)
	router := apihttp.NewRouter(logger, authSvc, tokenSvc, authHandler, groupHandler, expenseHandler, txHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
