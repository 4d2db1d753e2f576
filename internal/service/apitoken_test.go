package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gestorly/gestorly/internal/api/dto"
	"github.com/gestorly/gestorly/internal/domain/apitoken"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/testutil"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type TokenServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TokenService
}

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

func (s *TokenServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTokenService(s.newParams())
}

func (s *TokenServiceSuite) newParams() ServiceParams {
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

func isHexLower(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (s *TokenServiceSuite) TestCreateGeneratesSixtyFourHexCharSecret() {
	resp, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "ci token",
		DurationDays: 30,
	})
	s.NoError(err)
	s.Len(resp.Secret, types.TokenSecretLength)
	s.True(isHexLower(resp.Secret))
	s.True(strings.HasPrefix(resp.ID, "tok_"))
	s.True(resp.Active)
}

func (s *TokenServiceSuite) TestCreateDefaultsToReadWritePermissions() {
	resp, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "defaults",
		DurationDays: 7,
	})
	s.NoError(err)
	s.Equal([]types.TokenPermission{types.TokenPermissionRead, types.TokenPermissionWrite}, resp.Permissions)
	s.Equal(resp.CreatedAt.AddDate(0, 0, 7), resp.ExpiresAt)
}

func (s *TokenServiceSuite) TestCreateValidationAggregatesViolations() {
	_, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "",
		DurationDays: 0,
		Permissions:  []types.TokenPermission{"superuser"},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	hints := errors.GetAllHints(err)
	s.NotEmpty(hints)
	s.Contains(hints[0], "name is required")
	s.Contains(hints[0], "duration_days must be between 1 and 365")
	s.Contains(hints[0], `invalid permission "superuser"`)
}

func (s *TokenServiceSuite) TestListOmitsSecrets() {
	created, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "listed",
		DurationDays: 30,
	})
	s.NoError(err)

	list, err := s.service.List(s.GetContext())
	s.NoError(err)
	s.Equal(1, list.Total)
	s.Equal(created.ID, list.Items[0].ID)

	// the secret only ever appears on the create response
	s.NotContains(fmt.Sprintf("%+v", list.Items[0]), created.Secret)
}

func (s *TokenServiceSuite) TestFindBySecretMissReturnsNilNil() {
	token, err := s.service.FindBySecret(s.GetContext(), strings.Repeat("0f", 32))
	s.NoError(err)
	s.Nil(token)
}

func (s *TokenServiceSuite) TestFindBySecretLazyExpiryFlipsActive() {
	secret := strings.Repeat("ab", 32)
	expired := &apitoken.Token{
		ID:          "tok_expired",
		OwnerID:     testutil.DefaultUserID,
		Name:        "stale",
		Secret:      secret,
		Permissions: []types.TokenPermission{types.TokenPermissionRead},
		Active:      true,
		CreatedAt:   s.GetNow().AddDate(0, 0, -40),
		ExpiresAt:   s.GetNow().AddDate(0, 0, -10),
	}
	s.NoError(s.GetStores().TokenRepo.Create(s.GetContext(), expired))

	token, err := s.service.FindBySecret(s.GetContext(), secret)
	s.NoError(err)
	s.Nil(token)

	stored, err := s.GetStores().TokenRepo.Get(s.GetContext(), "tok_expired")
	s.NoError(err)
	s.False(stored.Active)
}

func (s *TokenServiceSuite) TestFindBySecretReturnsUsableToken() {
	created, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "usable",
		DurationDays: 30,
	})
	s.NoError(err)

	token, err := s.service.FindBySecret(s.GetContext(), created.Secret)
	s.NoError(err)
	s.NotNil(token)
	s.Equal(created.ID, token.ID)
	s.Equal(testutil.DefaultUserID, token.OwnerID)
}

func (s *TokenServiceSuite) TestRevokeDeactivatesToken() {
	created, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "doomed",
		DurationDays: 30,
	})
	s.NoError(err)

	resp, err := s.service.Revoke(s.GetContext(), created.ID)
	s.NoError(err)
	s.False(resp.Active)

	token, err := s.service.FindBySecret(s.GetContext(), created.Secret)
	s.NoError(err)
	s.Nil(token)
}

func (s *TokenServiceSuite) TestRevokeCrossOwnerLooksLikeNotFound() {
	created, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{
		Name:         "mine",
		DurationDays: 30,
	})
	s.NoError(err)

	otherCtx := testutil.SetupContextFor(testutil.OtherUserID)
	_, err = s.service.Revoke(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// the foreign attempt must not deactivate the token
	stored, err := s.GetStores().TokenRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(stored.Active)
}

func (s *TokenServiceSuite) TestRevokeAllDeactivatesOnlyOwnTokens() {
	_, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{Name: "a", DurationDays: 30})
	s.NoError(err)
	_, err = s.service.Create(s.GetContext(), &dto.CreateTokenRequest{Name: "b", DurationDays: 30})
	s.NoError(err)

	otherCtx := testutil.SetupContextFor(testutil.OtherUserID)
	other, err := s.service.Create(otherCtx, &dto.CreateTokenRequest{Name: "theirs", DurationDays: 30})
	s.NoError(err)

	s.NoError(s.service.RevokeAll(s.GetContext()))

	list, err := s.service.List(s.GetContext())
	s.NoError(err)
	for _, item := range list.Items {
		s.False(item.Active)
	}

	stored, err := s.GetStores().TokenRepo.Get(s.GetContext(), other.ID)
	s.NoError(err)
	s.True(stored.Active)
}

func (s *TokenServiceSuite) TestSweepExpiredIsIdempotent() {
	for i, secret := range []string{strings.Repeat("11", 32), strings.Repeat("22", 32)} {
		s.NoError(s.GetStores().TokenRepo.Create(s.GetContext(), &apitoken.Token{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_API_TOKEN),
			OwnerID:   testutil.DefaultUserID,
			Name:      "expired",
			Secret:    secret,
			Active:    true,
			CreatedAt: s.GetNow().AddDate(0, 0, -60+i),
			ExpiresAt: s.GetNow().AddDate(0, 0, -30+i),
		}))
	}
	valid, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{Name: "fresh", DurationDays: 30})
	s.NoError(err)

	count, err := s.service.SweepExpired(s.GetContext())
	s.NoError(err)
	s.Equal(2, count)

	count, err = s.service.SweepExpired(s.GetContext())
	s.NoError(err)
	s.Equal(0, count)

	stored, err := s.GetStores().TokenRepo.Get(s.GetContext(), valid.ID)
	s.NoError(err)
	s.True(stored.Active)
}

func (s *TokenServiceSuite) TestTouchLastUsedRecordsTimestamp() {
	created, err := s.service.Create(s.GetContext(), &dto.CreateTokenRequest{Name: "touched", DurationDays: 30})
	s.NoError(err)
	s.Nil(created.LastUsedAt)

	s.service.TouchLastUsed(s.GetContext(), created.ID)

	stored, err := s.GetStores().TokenRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(stored.LastUsedAt)
	s.WithinDuration(time.Now().UTC(), lo.FromPtr(stored.LastUsedAt), time.Minute)
}
