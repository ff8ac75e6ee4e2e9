package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "fundpool/internal/adapter/http"
	"fundpool/internal/adapter/middleware"
	"fundpool/internal/adapter/repository/mysql"
	"fundpool/internal/config"
	"fundpool/internal/infrastructure/cache"
	"fundpool/internal/infrastructure/db"
	contributionuc "fundpool/internal/usecase/contribution"
	funduc "fundpool/internal/usecase/fund"
	loanuc "fundpool/internal/usecase/loan"
	paymentuc "fundpool/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	schedRepo := mysql.NewScheduleRepository(gdb)
	contribRepo := mysql.NewContributionRepository(gdb)
	fundRepo := mysql.NewFundRepository(gdb)
	txm := mysql.NewGormUoW(gdb)

	loans := loanuc.NewUsecase(loanRepo, txm, loanuc.Options{
		Model:                   cfg.InterestModel,
		GracePeriodDays:         cfg.GracePeriodDays,
		DefaultOverdueThreshold: cfg.DefaultOverdueThreshold,
		LateFeeDailyRatePercent: cfg.LateFeeDailyRatePercent,
	})
	payments := paymentuc.NewUsecase(loanRepo, schedRepo, txm)
	contributions := contributionuc.NewUsecase(contribRepo, txm)
	funds := funduc.NewUsecase(fundRepo)

	// The ledger is a singleton row; make sure it exists before serving.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := funds.Bootstrap(ctx); err != nil {
		cancel()
		log.Fatalf("fund bootstrap: %v", err)
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.RegisterRoutes(e,
		httpadp.NewHandler(),
		httpadp.NewLoanHandler(loans),
		httpadp.NewPaymentHandler(payments),
		httpadp.NewContributionHandler(contributions),
		httpadp.NewFundHandler(funds),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
