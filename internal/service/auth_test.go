package service

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gestorly/gestorly/internal/api/dto"
	domainAuth "github.com/gestorly/gestorly/internal/domain/auth"
	"github.com/gestorly/gestorly/internal/domain/user"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/testutil"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

const testSessionCredential = "eyJhbGciOiJIUzI1NiJ9.test-session"

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
	tokens  TokenService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := s.newParams()
	s.tokens = NewTokenService(params)
	s.service = NewAuthService(params, s.tokens)

	s.GetStores().UserRepo.(*testutil.InMemoryUserStore).Add(&user.User{
		ID:         testutil.DefaultUserID,
		Email:      "dueno@taller.test",
		FullName:   "María García",
		BusinessID: lo.ToPtr("negocio_1"),
	})
	s.GetAuthProvider().Sessions[testSessionCredential] = &domainAuth.Claims{
		UserID: testutil.DefaultUserID,
		Email:  "dueno@taller.test",
	}
}

func (s *AuthServiceSuite) newParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		AuthProvider: s.GetAuthProvider(),
		TokenRepo:    stores.TokenRepo,
		UserRepo:     stores.UserRepo,
		InvoiceRepo:  stores.InvoiceRepo,
		BusinessRepo: stores.BusinessRepo,
		ClientRepo:   stores.ClientRepo,
		PDFRenderer:  s.GetPDFRenderer(),
		Storage:      s.GetStorage(),
	}
}

func (s *AuthServiceSuite) TestResolveBearerSessionPath() {
	result, err := s.service.ResolveBearer(s.GetContext(), testSessionCredential)
	s.NoError(err)
	s.Equal(testutil.DefaultUserID, result.Principal.ID)
	s.Equal("María García", result.Principal.DisplayName)
	s.Equal("negocio_1", result.Principal.BusinessID)
	s.Nil(result.ActiveToken)
	s.NotNil(result.ScopedDB)
}

func (s *AuthServiceSuite) TestResolveBearerTokenPath() {
	created, err := s.tokens.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "integración",
		DurationDays: 30,
	})
	s.NoError(err)

	result, err := s.service.ResolveBearer(s.GetContext(), created.Secret)
	s.NoError(err)
	s.Equal(testutil.DefaultUserID, result.Principal.ID)
	s.NotNil(result.ActiveToken)
	s.Equal(created.ID, result.ActiveToken.ID)
	s.Equal([]types.TokenPermission{types.TokenPermissionRead, types.TokenPermissionWrite}, result.ActiveToken.Permissions)
	s.Nil(result.ScopedDB)

	// authenticating records usage
	stored, err := s.GetStores().TokenRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(stored.LastUsedAt)
}

func (s *AuthServiceSuite) TestResolveBearerUnknownTokenSecret() {
	_, err := s.service.ResolveBearer(s.GetContext(), strings.Repeat("9c", 32))
	s.Error(err)
	s.True(ierr.IsUnauthorized(err))

	hints := errors.GetAllHints(err)
	s.NotEmpty(hints)
	s.Contains(hints[0], "Invalid or expired token")
}

func (s *AuthServiceSuite) TestResolveBearerExpiredTokenMatchesUnknown() {
	created, err := s.tokens.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "caducado",
		DurationDays: 30,
	})
	s.NoError(err)

	_, err = s.tokens.Revoke(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.ResolveBearer(s.GetContext(), created.Secret)
	s.Error(err)
	s.True(ierr.IsUnauthorized(err))

	// revoked, expired and unknown secrets are indistinguishable
	hints := errors.GetAllHints(err)
	s.NotEmpty(hints)
	s.Contains(hints[0], "Invalid or expired token")
}

func (s *AuthServiceSuite) TestResolveBearerInvalidSession() {
	_, err := s.service.ResolveBearer(s.GetContext(), "not-a-valid-session")
	s.Error(err)
	s.True(ierr.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestLoginPassthrough() {
	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "dueno@taller.test",
		Password: "secret",
	})
	s.NoError(err)
	s.Equal(testSessionCredential, resp.AccessToken)
	s.Equal(testutil.DefaultUserID, resp.UserID)
}

func (s *AuthServiceSuite) TestLoginValidatesPayload() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "not-an-email"})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
