package main

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"renteasy/internal/adapters/bookingapi"
	server "renteasy/internal/adapters/http_server"
	"renteasy/internal/adapters/observability"
	redisad "renteasy/internal/adapters/redis"
	"renteasy/internal/app"
	"renteasy/internal/booking"
	"renteasy/internal/shared"
	mysqlrepo "renteasy/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	queries := app.NewQueryService(repo, cache, cfg.CacheTTL)

	defaults := app.QuoteDefaults{
		Options: booking.Options{
			TaxRate:           cfg.TaxRate,
			ExcludeTaxes:      cfg.ExcludeTaxes,
			DynamicPricing:    cfg.DynamicPricing,
			WeekendMultiplier: cfg.WeekendMultiplier,
		},
		Constraints: booking.DateConstraints{
			MinNights:   cfg.MinNights,
			MaxNights:   cfg.MaxNights,
			AdvanceDays: cfg.AdvanceDays,
		},
	}
	quotes := app.NewQuoteService(queries, cache, cfg.QuoteTTL, defaults)

	gateway, err := bookingapi.New(cfg.BookingBase, cfg.BookingKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking client")
	}
	bookings := app.NewBookingService(quotes, repo, gateway)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: queries, Quotes: quotes, Bookings: bookings})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
