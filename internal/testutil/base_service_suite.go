package testutil

import (
	"context"
	"time"

	"github.com/gestorly/gestorly/internal/config"
	"github.com/gestorly/gestorly/internal/domain/apitoken"
	"github.com/gestorly/gestorly/internal/domain/business"
	"github.com/gestorly/gestorly/internal/domain/client"
	"github.com/gestorly/gestorly/internal/domain/invoice"
	"github.com/gestorly/gestorly/internal/domain/user"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/gestorly/gestorly/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	TokenRepo    apitoken.Repository
	UserRepo     user.Repository
	InvoiceRepo  invoice.Repository
	BusinessRepo business.Repository
	ClientRepo   client.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time

	pdfRenderer *MockPDFRenderer
	storage     *MockStorage
	provider    *MockAuthProvider
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TokenRepo:    NewInMemoryAPITokenStore(),
		UserRepo:     NewInMemoryUserStore(),
		InvoiceRepo:  NewInMemoryInvoiceStore(),
		BusinessRepo: NewInMemoryBusinessStore(),
		ClientRepo:   NewInMemoryClientStore(),
	}
	s.pdfRenderer = NewMockPDFRenderer()
	s.storage = NewMockStorage()
	s.provider = NewMockAuthProvider()
}

// ClearStores resets every in-memory store
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.TokenRepo.(*InMemoryAPITokenStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.BusinessRepo.(*InMemoryBusinessStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

func (s *BaseServiceTestSuite) GetPDFRenderer() *MockPDFRenderer {
	return s.pdfRenderer
}

func (s *BaseServiceTestSuite) GetStorage() *MockStorage {
	return s.storage
}

func (s *BaseServiceTestSuite) GetAuthProvider() *MockAuthProvider {
	return s.provider
}
