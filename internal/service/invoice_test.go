package service

import (
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gestorly/gestorly/internal/api/dto"
	"github.com/gestorly/gestorly/internal/domain/business"
	"github.com/gestorly/gestorly/internal/domain/client"
	"github.com/gestorly/gestorly/internal/domain/user"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/pdf"
	"github.com/gestorly/gestorly/internal/testutil"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService

	testClient  *client.Client
	testProfile *business.Profile
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(s.newParams())
	s.seedFixtures()
}

func (s *InvoiceServiceSuite) newParams() ServiceParams {
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

func (s *InvoiceServiceSuite) seedFixtures() {
	stores := s.GetStores()

	stores.UserRepo.(*testutil.InMemoryUserStore).Add(&user.User{
		ID:       testutil.DefaultUserID,
		Email:    "dueno@taller.test",
		FullName: "María García",
	})
	stores.UserRepo.(*testutil.InMemoryUserStore).Add(&user.User{
		ID:       testutil.OtherUserID,
		Email:    "otro@taller.test",
		FullName: "Pedro Ruiz",
	})

	s.testClient = &client.Client{
		ID:      "cli_1",
		OwnerID: testutil.DefaultUserID,
		Name:    "Juan Pérez",
		Email:   "juan@cliente.test",
	}
	stores.ClientRepo.(*testutil.InMemoryClientStore).Add(s.testClient)
	stores.ClientRepo.(*testutil.InMemoryClientStore).Add(&client.Client{
		ID:      "cli_other",
		OwnerID: testutil.OtherUserID,
		Name:    "Ana López",
	})

	s.testProfile = &business.Profile{
		ID:           "cfg_1",
		OwnerID:      testutil.DefaultUserID,
		Name:         "Taller García",
		DefaultTerms: "Pago a 30 días",
		DefaultNote:  "Gracias por su confianza",
		LogoURL:      "https://cdn.test/logo.png",
	}
	stores.BusinessRepo.(*testutil.InMemoryBusinessStore).Add(s.testProfile)
}

func (s *InvoiceServiceSuite) createRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		ClientID: s.testClient.ID,
		Subtotal: lo.ToPtr(decimal.NewFromInt(100)),
		Tax:      lo.ToPtr(decimal.NewFromInt(21)),
		Total:    lo.ToPtr(decimal.NewFromInt(121)),
		Items: []dto.InvoiceLineItemRequest{
			{
				Description: "Cambio de aceite",
				UnitPrice:   decimal.NewFromInt(50),
				Quantity:    2,
				LineTotal:   decimal.NewFromInt(100),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateAssignsSequentialNumbers() {
	for want := 1; want <= 3; want++ {
		resp, err := s.service.Create(s.GetContext(), s.createRequest())
		s.NoError(err)
		s.Equal(want, resp.SequenceNumber)
		s.Equal("100"+strconv.Itoa(want), resp.DisplayNumber)
	}
}

func (s *InvoiceServiceSuite) TestSequenceIsIndependentPerOwner() {
	_, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	_, err = s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	otherCtx := testutil.SetupContextFor(testutil.OtherUserID)
	req := s.createRequest()
	req.ClientID = "cli_other"
	resp, err := s.service.Create(otherCtx, req)
	s.NoError(err)
	s.Equal(1, resp.SequenceNumber)
}

func (s *InvoiceServiceSuite) TestFailedCreateLeavesNoGap() {
	req := s.createRequest()
	req.ClientID = "cli_missing"
	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Equal(1, resp.SequenceNumber)
}

func (s *InvoiceServiceSuite) TestCreateLineItemsRoundTrip() {
	req := s.createRequest()
	req.Items = append(req.Items, dto.InvoiceLineItemRequest{
		Description: "Filtro de aire",
		Category:    lo.ToPtr("repuestos"),
		UnitPrice:   decimal.NewFromInt(15),
		Quantity:    1,
		LineTotal:   decimal.NewFromInt(15),
	})

	created, err := s.service.Create(s.GetContext(), req)
	s.NoError(err)
	s.Len(created.Items, 2)

	fetched, err := s.service.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Len(fetched.Items, 2)
	s.Equal("Cambio de aceite", fetched.Items[0].Description)
	s.Equal("Filtro de aire", fetched.Items[1].Description)
	s.Equal("repuestos", lo.FromPtr(fetched.Items[1].Category))
	for _, item := range fetched.Items {
		s.True(strings.HasPrefix(item.ID, "item_"))
	}
}

func (s *InvoiceServiceSuite) TestCreateValidationAggregatesViolations() {
	_, err := s.service.Create(s.GetContext(), &dto.CreateInvoiceRequest{
		Subtotal: lo.ToPtr(decimal.NewFromInt(-5)),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	hints := errors.GetAllHints(err)
	s.NotEmpty(hints)
	s.Contains(hints[0], "cliente_id is required")
	s.Contains(hints[0], "subtotal must be >= 0")
	s.Contains(hints[0], "items must contain at least one line item")
}

func (s *InvoiceServiceSuite) TestCreateValidationIndexesItemViolations() {
	req := s.createRequest()
	req.Items = []dto.InvoiceLineItemRequest{
		{Description: "ok", UnitPrice: decimal.NewFromInt(5), Quantity: 1, LineTotal: decimal.NewFromInt(5)},
		{Description: "", UnitPrice: decimal.NewFromInt(-1), Quantity: 0},
	}

	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	hints := errors.GetAllHints(err)
	s.NotEmpty(hints)
	s.Contains(hints[0], "items[1]: descripcion is required")
	s.Contains(hints[0], "items[1]: precio_unitario must be >= 0")
	s.Contains(hints[0], "items[1]: cantidad must be a positive integer")
	s.NotContains(hints[0], "items[0]")
}

func (s *InvoiceServiceSuite) TestCreateMergesBusinessDefaults() {
	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Equal(s.testProfile.DefaultTerms, resp.Terms)
	s.Equal(s.testProfile.DefaultNote, resp.Note)
	s.Equal(s.testProfile.LogoURL, resp.LogoURL)
}

func (s *InvoiceServiceSuite) TestCreateKeepsExplicitValuesOverDefaults() {
	req := s.createRequest()
	req.Terms = lo.ToPtr("Pago al contado")
	resp, err := s.service.Create(s.GetContext(), req)
	s.NoError(err)
	s.Equal("Pago al contado", resp.Terms)
	s.Equal(s.testProfile.DefaultNote, resp.Note)
}

func (s *InvoiceServiceSuite) TestCreatePaidStampsPaidDate() {
	req := s.createRequest()
	req.Status = lo.ToPtr(types.InvoiceStatusPaid)
	resp, err := s.service.Create(s.GetContext(), req)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.Status)
	s.NotNil(resp.PaidDate)
}

func (s *InvoiceServiceSuite) TestCreateUploadsPDFWithStableName() {
	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.NotNil(resp.PDFURL)
	s.Contains(lo.FromPtr(resp.PDFURL), "?t=")

	fileName := pdf.InvoiceFileName(s.testProfile.Name, s.testClient.Name, resp.DisplayNumber)
	s.True(s.GetStorage().Has(testutil.DefaultUserID, fileName))

	// the stored url has no cache buster so old links keep resolving
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), resp.ID, testutil.DefaultUserID)
	s.NoError(err)
	s.Equal(s.GetStorage().PublicURL(testutil.DefaultUserID, fileName), lo.FromPtr(stored.PDFURL))
}

func (s *InvoiceServiceSuite) TestCreateSucceedsWhenPDFRenderFails() {
	s.GetPDFRenderer().Err = errors.New("wkhtmltopdf not installed")

	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Nil(resp.PDFURL)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), resp.ID, testutil.DefaultUserID)
	s.NoError(err)
	s.Nil(stored.PDFURL)
}

func (s *InvoiceServiceSuite) TestUpdateToPaidStampsPaidDate() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Nil(created.PaidDate)

	updated, err := s.service.Update(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusPaid),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, updated.Status)
	s.NotNil(updated.PaidDate)
}

func (s *InvoiceServiceSuite) TestUpdatePaidBackToDraftIsAllowed() {
	req := s.createRequest()
	req.Status = lo.ToPtr(types.InvoiceStatusPaid)
	created, err := s.service.Create(s.GetContext(), req)
	s.NoError(err)

	updated, err := s.service.Update(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusDraft),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, updated.Status)
}

func (s *InvoiceServiceSuite) TestUpdateReplacesLineItems() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	updated, err := s.service.Update(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		Items: &[]dto.InvoiceLineItemRequest{
			{Description: "Revisión general", UnitPrice: decimal.NewFromInt(80), Quantity: 1, LineTotal: decimal.NewFromInt(80)},
		},
	})
	s.NoError(err)
	s.Len(updated.Items, 1)
	s.Equal("Revisión general", updated.Items[0].Description)
}

func (s *InvoiceServiceSuite) TestUpdateWithEmptyItemsClearsThem() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	updated, err := s.service.Update(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		Items: &[]dto.InvoiceLineItemRequest{},
	})
	s.NoError(err)
	s.Len(updated.Items, 0)
}

func (s *InvoiceServiceSuite) TestUpdateWithoutItemsLeavesThemAlone() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	updated, err := s.service.Update(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		Note: lo.ToPtr("entregar antes del viernes"),
	})
	s.NoError(err)
	s.Len(updated.Items, 1)
	s.Equal("entregar antes del viernes", updated.Note)
}

func (s *InvoiceServiceSuite) TestUpdateDoesNotRenumber() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	_, err = s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	updated, err := s.service.Update(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		Note: lo.ToPtr("sin cambios de numero"),
	})
	s.NoError(err)
	s.Equal(created.SequenceNumber, updated.SequenceNumber)
	s.Equal(created.DisplayNumber, updated.DisplayNumber)
}

func (s *InvoiceServiceSuite) TestListReturnsNewestFirst() {
	for i := 0; i < 3; i++ {
		_, err := s.service.Create(s.GetContext(), s.createRequest())
		s.NoError(err)
	}

	list, err := s.service.List(s.GetContext())
	s.NoError(err)
	s.Len(list, 3)
	s.Equal(3, list[0].SequenceNumber)
	s.Equal(1, list[2].SequenceNumber)
}

func (s *InvoiceServiceSuite) TestGetCrossOwnerLooksLikeNotFound() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	otherCtx := testutil.SetupContextFor(testutil.OtherUserID)
	_, err = s.service.Get(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetPublicServesRestrictedProjection() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	pub, err := s.service.GetPublic(s.GetContext(), created.PublicID)
	s.NoError(err)
	s.Equal(created.DisplayNumber, pub.DisplayNumber)
	s.Equal(created.Status, pub.Status)
	s.Len(pub.Items, 1)
}

func (s *InvoiceServiceSuite) TestDeleteRemovesInvoiceItemsAndPDF() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	fileName := pdf.InvoiceFileName(s.testProfile.Name, s.testClient.Name, created.DisplayNumber)
	s.True(s.GetStorage().Has(testutil.DefaultUserID, fileName))

	s.NoError(s.service.Delete(s.GetContext(), created.ID))

	_, err = s.service.Get(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
	s.False(s.GetStorage().Has(testutil.DefaultUserID, fileName))

	items, err := s.GetStores().InvoiceRepo.ListLineItems(s.GetContext(), created.ID)
	s.NoError(err)
	s.Len(items, 0)
}
