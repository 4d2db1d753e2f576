package main

import (
	"context"
	"time"

	"github.com/gestorly/gestorly/internal/api"
	v1 "github.com/gestorly/gestorly/internal/api/v1"
	"github.com/gestorly/gestorly/internal/auth"
	"github.com/gestorly/gestorly/internal/config"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/pdf"
	"github.com/gestorly/gestorly/internal/repository"
	"github.com/gestorly/gestorly/internal/service"
	"github.com/gestorly/gestorly/internal/storage"
	"github.com/gestorly/gestorly/internal/supabase"
	"github.com/gestorly/gestorly/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Gestorly API
// @version 1.0
// @description Invoicing backend for small businesses
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Data access
			supabase.NewServiceClient,

			// Auth provider
			auth.NewProvider,

			// Repositories
			repository.NewAPITokenRepository,
			repository.NewUserRepository,
			repository.NewInvoiceRepository,
			repository.NewBusinessRepository,
			repository.NewClientRepository,

			// PDF and storage
			pdf.NewRenderer,
			storage.NewService,
		),
		fx.Provide(
			service.NewServiceParams,

			service.NewTokenService,
			service.NewAuthService,
			service.NewInvoiceService,
		),
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	authService service.AuthService,
	tokenService service.TokenService,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Auth:    v1.NewAuthHandler(authService, logger),
		Token:   v1.NewTokenHandler(tokenService, logger),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers, authService service.AuthService, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, authService, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
