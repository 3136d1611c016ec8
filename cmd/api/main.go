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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loan-tracker/internal/adapter/http"
	mw "loan-tracker/internal/adapter/middleware"
	"loan-tracker/internal/adapter/repository/gormrepo"
	"loan-tracker/internal/adapter/repository/redisrepo"
	"loan-tracker/internal/config"
	"loan-tracker/internal/infrastructure/cache"
	"loan-tracker/internal/infrastructure/db"
	"loan-tracker/internal/usecase/auth"
	"loan-tracker/internal/usecase/loan"
	"loan-tracker/internal/usecase/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if cfg.DBDriver == db.DriverSQLite {
		// sqlite is the local/dev store; mysql and postgres use cmd/migrate
		if err := gormrepo.AutoMigrate(gdb); err != nil {
			log.Fatalf("db: automigrate: %v", err)
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	rdb, err := cache.OpenRedis(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	loans := gormrepo.NewLoanRepository(gdb)
	payments := gormrepo.NewPaymentRepository(gdb)
	accounts := gormrepo.NewAccountRepository(gdb)
	profiles := gormrepo.NewProfileRepository(gdb)
	sessions := redisrepo.NewSessionStore(rdb)

	// usecases
	authUC := auth.NewUsecase(accounts, profiles, sessions, auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL()))
	loanUC := loan.NewUsecase(loans, payments)
	paymentUC := payment.NewUsecase(payments, loans)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	httpadp.Register(e, httpadp.Routes{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "db", Ping: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Auth:        httpadp.NewAuthHandler(authUC),
		Loans:       httpadp.NewLoanHandler(loanUC),
		Payments:    httpadp.NewPaymentHandler(paymentUC),
		Sessions:    authUC,
		Idempotency: mw.Idempotency(rdb, cfg.IdempotencyTTL()),
	})

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	_ = rdb.Close()
	_ = sqlDB.Close()
	log.Println("stopped")
}
