package api

import (
	v1 "github.com/gestorly/gestorly/internal/api/v1"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/rest/middleware"
	"github.com/gestorly/gestorly/internal/service"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Auth    *v1.AuthHandler
	Token   *v1.TokenHandler
	Invoice *v1.InvoiceHandler
}

func NewRouter(handlers Handlers, authService service.AuthService, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(log),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")

	// no credential required
	public := v1Group.Group("")
	{
		public.POST("/auth/login", handlers.Auth.Login)
		public.GET("/public/invoices/:public_id", handlers.Invoice.GetPublic)
	}

	// dual-mode auth: session access token or API token secret
	private := v1Group.Group("")
	private.Use(middleware.AuthenticateMiddleware(authService, log))
	registerV1Routes(private, handlers, log)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, log *logger.Logger) {
	// Token routes
	tokens := router.Group("/tokens")
	{
		tokens.POST("", handlers.Token.Create)
		tokens.GET("", handlers.Token.List)
		tokens.DELETE("/:id", handlers.Token.Revoke)
		tokens.DELETE("", handlers.Token.RevokeAll)
		tokens.POST("/sweep",
			middleware.RequirePermission(types.TokenPermissionAdmin, log),
			handlers.Token.SweepExpired)
	}

	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("",
			middleware.RequirePermission(types.TokenPermissionWrite, log),
			handlers.Invoice.Create)
		invoices.GET("",
			middleware.RequirePermission(types.TokenPermissionRead, log),
			handlers.Invoice.List)
		invoices.GET("/:id",
			middleware.RequirePermission(types.TokenPermissionRead, log),
			handlers.Invoice.Get)
		invoices.PUT("/:id",
			middleware.RequirePermission(types.TokenPermissionWrite, log),
			handlers.Invoice.Update)
		invoices.DELETE("/:id",
			middleware.RequirePermission(types.TokenPermissionDelete, log),
			handlers.Invoice.Delete)
	}
}
