package service

import (
	"github.com/gestorly/gestorly/internal/auth"
	"github.com/gestorly/gestorly/internal/config"
	"github.com/gestorly/gestorly/internal/domain/apitoken"
	"github.com/gestorly/gestorly/internal/domain/business"
	"github.com/gestorly/gestorly/internal/domain/client"
	"github.com/gestorly/gestorly/internal/domain/invoice"
	"github.com/gestorly/gestorly/internal/domain/user"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/pdf"
	"github.com/gestorly/gestorly/internal/storage"
	"github.com/gestorly/gestorly/internal/supabase"
)

// ServiceParams bundles the dependencies shared by the service layer.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     *supabase.Client

	AuthProvider auth.Provider

	TokenRepo    apitoken.Repository
	UserRepo     user.Repository
	InvoiceRepo  invoice.Repository
	BusinessRepo business.Repository
	ClientRepo   client.Repository

	PDFRenderer pdf.Renderer
	Storage     storage.Service
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *supabase.Client,
	authProvider auth.Provider,
	tokenRepo apitoken.Repository,
	userRepo user.Repository,
	invoiceRepo invoice.Repository,
	businessRepo business.Repository,
	clientRepo client.Repository,
	pdfRenderer pdf.Renderer,
	storage storage.Service,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		AuthProvider: authProvider,
		TokenRepo:    tokenRepo,
		UserRepo:     userRepo,
		InvoiceRepo:  invoiceRepo,
		BusinessRepo: businessRepo,
		ClientRepo:   clientRepo,
		PDFRenderer:  pdfRenderer,
		Storage:      storage,
	}
}
