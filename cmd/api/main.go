package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucPayment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/payment"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	if !timezone.SetClinic(cfg.Timezone) {
		log.Warn().Str("timezone", cfg.Timezone).Msg("invalid CLINIC_TIMEZONE, using default")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	var deps routes.Deps

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.New()
		deps = routes.Deps{
			Availability: store,
			Appointments: store,
			Clients:      store.Clients(),
			People:       store.Clients(),
			Accounts:     store.Users(),
			Payments:     store.Payments(),
			AuditStore:   audit.NewMemoryStore(),
		}
		log.Warn().Msg("using in-memory storage, data is lost on restart")

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		clients := infraRepo.NewClientGormRepository(db)
		deps = routes.Deps{
			Availability: infraRepo.NewAvailabilityGormRepository(db),
			Appointments: infraRepo.NewAppointmentGormRepository(db),
			Clients:      clients,
			People:       clients,
			Accounts:     infraRepo.NewUserGormRepository(db),
			Payments:     infraRepo.NewPaymentGormRepository(db),
			AuditStore:   audit.NewGormStore(db),
		}
	}

	deps.Audit = audit.NewDispatcher(deps.AuditStore)
	defer deps.Audit.Close()

	// ======================================================
	// CACHE
	// ======================================================
	deps.Cache = cache.Noop{}
	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, slot cache disabled")
		} else {
			defer rdb.Close()
			deps.Cache = cache.NewRedisSlotCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		}
	}

	// ======================================================
	// PAYMENTS
	// ======================================================
	if cfg.PaymentsEnabled() {
		gw, err := ucPayment.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure mercadopago")
		}
		deps.Gateway = gw
	}

	// ======================================================
	// BOOTSTRAP ADMIN
	// ======================================================
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := handlers.EnsureAdmin(ctx, deps.Accounts, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to create bootstrap admin")
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, deps, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to register routes")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
