package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gestorly/gestorly/internal/api/dto"
	"github.com/gestorly/gestorly/internal/domain/business"
	"github.com/gestorly/gestorly/internal/domain/client"
	"github.com/gestorly/gestorly/internal/domain/invoice"
	pdfdomain "github.com/gestorly/gestorly/internal/domain/pdf"
	"github.com/gestorly/gestorly/internal/pdf"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// PDFResult carries the outcome of the best-effort PDF pipeline. The
// enclosing operation always succeeds at the top level; callers observe
// the inner error through logs and a null pdf_url.
type PDFResult struct {
	URL *string
	Err error
}

// InvoiceService implements the invoice numbering, creation,
// recalculation and PDF side-effect workflow.
type InvoiceService interface {
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	List(ctx context.Context) ([]*dto.InvoiceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	Delete(ctx context.Context, id string) error
	GetPublic(ctx context.Context, publicID string) (*dto.PublicInvoiceResponse, error)
}

type invoiceService struct {
	ServiceParams

	// seqLocks serializes sequence-number assignment per owner. This
	// protects single-instance deployments; running multiple instances
	// still requires a unique constraint on (user_id, numero_factura).
	seqLocks sync.Map
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) ownerLock(ownerID string) *sync.Mutex {
	lock, _ := s.seqLocks.LoadOrStore(ownerID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func today() string {
	return time.Now().UTC().Format(dateLayout)
}

func (s *invoiceService) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ownerID := types.GetUserID(ctx)

	cli, err := s.ClientRepo.Get(ctx, req.ClientID, ownerID)
	if err != nil {
		return nil, err
	}

	profile, err := s.BusinessRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	max, err := s.InvoiceRepo.MaxSequenceNumber(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	status := types.InvoiceStatusDraft
	if req.Status != nil {
		status = *req.Status
	}

	inv := &invoice.Invoice{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		OwnerID:          ownerID,
		ClientID:         req.ClientID,
		PublicID:         uuid.New().String(),
		SequenceNumber:   max + 1,
		IssueDate:        lo.FromPtrOr(req.IssueDate, today()),
		DueDate:          req.DueDate,
		Status:           status,
		Subtotal:         fromPtrOrZero(req.Subtotal),
		Tax:              fromPtrOrZero(req.Tax),
		Total:            fromPtrOrZero(req.Total),
		Deposit:          fromPtrOrZero(req.Deposit),
		RemainingBalance: fromPtrOrZero(req.RemainingBalance),
		Note:             lo.FromPtr(req.Note),
		Terms:            lo.FromPtr(req.Terms),
		LogoURL:          lo.FromPtr(req.LogoURL),
		SignatureURL:     lo.FromPtr(req.SignatureURL),
		PaymentMethodID:  req.PaymentMethodID,
		CreatedAt:        time.Now().UTC(),
	}
	if status == types.InvoiceStatusPaid {
		inv.PaidDate = lo.ToPtr(today())
	}
	s.applyBusinessDefaults(inv, profile)

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	items := buildLineItems(inv.ID, req.Items)
	if err := s.InvoiceRepo.CreateLineItems(ctx, items); err != nil {
		// compensating delete so a half-written invoice does not linger
		if delErr := s.InvoiceRepo.Delete(ctx, inv.ID, ownerID); delErr != nil {
			s.Logger.Errorw("failed to roll back invoice after line item failure",
				"invoice_id", inv.ID, "error", delErr)
		}
		return nil, err
	}

	pdfResult := s.generatePDF(ctx, inv, items, cli, profile)

	resp := dto.ToInvoiceResponse(inv, items, s.Config.Invoice.NumberPrefix)
	if busted := cacheBustedURL(pdfResult); busted != nil {
		resp.PDFURL = busted
	}
	return resp, nil
}

func (s *invoiceService) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	ownerID := types.GetUserID(ctx)

	inv, err := s.InvoiceRepo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	items, err := s.InvoiceRepo.ListLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToInvoiceResponse(inv, items, s.Config.Invoice.NumberPrefix), nil
}

func (s *invoiceService) List(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	ownerID := types.GetUserID(ctx)

	invoices, err := s.InvoiceRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items, err := s.InvoiceRepo.ListLineItems(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = dto.ToInvoiceResponse(inv, items, s.Config.Invoice.NumberPrefix)
	}
	return responses, nil
}

func (s *invoiceService) Update(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ownerID := types.GetUserID(ctx)

	inv, err := s.InvoiceRepo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	patch := buildInvoicePatch(req)
	if req.Status != nil && *req.Status == types.InvoiceStatusPaid {
		// entering paid stamps the paid date in the same update
		patch["fecha_pago"] = today()
	}

	if len(patch) > 0 {
		inv, err = s.InvoiceRepo.Update(ctx, id, ownerID, patch)
		if err != nil {
			return nil, err
		}
	}

	var items []*invoice.LineItem
	if req.Items != nil {
		// full replacement of the line-item set, even when empty
		if err := s.InvoiceRepo.DeleteLineItems(ctx, inv.ID); err != nil {
			return nil, err
		}
		items = buildLineItems(inv.ID, *req.Items)
		if len(items) > 0 {
			if err := s.InvoiceRepo.CreateLineItems(ctx, items); err != nil {
				return nil, err
			}
		}
	} else {
		items, err = s.InvoiceRepo.ListLineItems(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
	}

	cli, profile := s.loadRenderContext(ctx, inv.ClientID, ownerID)
	pdfResult := s.generatePDF(ctx, inv, items, cli, profile)

	resp := dto.ToInvoiceResponse(inv, items, s.Config.Invoice.NumberPrefix)
	if busted := cacheBustedURL(pdfResult); busted != nil {
		resp.PDFURL = busted
	}
	return resp, nil
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	ownerID := types.GetUserID(ctx)

	inv, err := s.InvoiceRepo.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.InvoiceRepo.DeleteLineItems(ctx, inv.ID); err != nil {
		return err
	}
	if err := s.InvoiceRepo.Delete(ctx, inv.ID, ownerID); err != nil {
		return err
	}

	// best-effort removal of the rendered object; the deletion already
	// succeeded from the caller's perspective
	cli, profile := s.loadRenderContext(ctx, inv.ClientID, ownerID)
	fileName := s.invoiceFileName(inv, cli, profile)
	if err := s.Storage.RemoveInvoicePDF(ctx, ownerID, fileName); err != nil {
		s.Logger.Warnw("failed to remove invoice pdf", "invoice_id", inv.ID, "error", err)
	}
	return nil
}

func (s *invoiceService) GetPublic(ctx context.Context, publicID string) (*dto.PublicInvoiceResponse, error) {
	inv, err := s.InvoiceRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	items, err := s.InvoiceRepo.ListLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToPublicInvoiceResponse(inv, items, s.Config.Invoice.NumberPrefix), nil
}

// generatePDF renders, uploads and records the invoice PDF. It never
// fails the enclosing operation: the result carries either the URL or
// the error.
func (s *invoiceService) generatePDF(ctx context.Context, inv *invoice.Invoice, items []*invoice.LineItem, cli *client.Client, profile *business.Profile) PDFResult {
	data := buildPDFData(inv, items, cli, profile, s.Config.Invoice.NumberPrefix)

	buf, err := s.PDFRenderer.RenderInvoicePDF(ctx, data)
	if err != nil {
		s.Logger.Errorw("failed to render invoice pdf", "invoice_id", inv.ID, "error", err)
		return PDFResult{Err: err}
	}

	fileName := s.invoiceFileName(inv, cli, profile)
	url, err := s.Storage.UploadInvoicePDF(ctx, inv.OwnerID, fileName, buf)
	if err != nil {
		s.Logger.Errorw("failed to upload invoice pdf", "invoice_id", inv.ID, "error", err)
		return PDFResult{Err: err}
	}

	// record the stable URL on the row; the response layer appends the
	// cache buster so the stored value keeps resolving for old links
	if _, err := s.InvoiceRepo.Update(ctx, inv.ID, inv.OwnerID, map[string]interface{}{"pdf_url": url}); err != nil {
		s.Logger.Warnw("failed to record invoice pdf url", "invoice_id", inv.ID, "error", err)
	}
	inv.PDFURL = &url

	return PDFResult{URL: &url}
}

func (s *invoiceService) invoiceFileName(inv *invoice.Invoice, cli *client.Client, profile *business.Profile) string {
	var businessName, clientName string
	if profile != nil {
		businessName = profile.Name
	}
	if cli != nil {
		clientName = cli.Name
	}
	return pdf.InvoiceFileName(businessName, clientName, inv.DisplayNumber(s.Config.Invoice.NumberPrefix))
}

// loadRenderContext fetches the client and business profile for PDF
// work. Both are optional at this point: failures degrade the rendered
// document instead of failing the operation.
func (s *invoiceService) loadRenderContext(ctx context.Context, clientID string, ownerID string) (*client.Client, *business.Profile) {
	cli, err := s.ClientRepo.Get(ctx, clientID, ownerID)
	if err != nil {
		s.Logger.Warnw("failed to load client for pdf", "client_id", clientID, "error", err)
	}
	profile, err := s.BusinessRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		s.Logger.Warnw("failed to load business profile for pdf", "owner_id", ownerID, "error", err)
	}
	return cli, profile
}

func (s *invoiceService) applyBusinessDefaults(inv *invoice.Invoice, profile *business.Profile) {
	if profile == nil {
		return
	}
	if inv.LogoURL == "" {
		inv.LogoURL = profile.LogoURL
	}
	if inv.SignatureURL == "" {
		inv.SignatureURL = profile.SignatureURL
	}
	if inv.Terms == "" {
		inv.Terms = profile.DefaultTerms
	}
	if inv.Note == "" {
		inv.Note = profile.DefaultNote
	}
}

func buildLineItems(invoiceID string, reqs []dto.InvoiceLineItemRequest) []*invoice.LineItem {
	items := make([]*invoice.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   invoiceID,
			Description: r.Description,
			Category:    r.Category,
			UnitPrice:   r.UnitPrice,
			Quantity:    r.Quantity,
			LineTotal:   r.LineTotal,
		}
	}
	return items
}

func buildInvoicePatch(req *dto.UpdateInvoiceRequest) map[string]interface{} {
	patch := make(map[string]interface{})
	if req.ClientID != nil {
		patch["cliente_id"] = *req.ClientID
	}
	if req.Status != nil {
		patch["estado"] = *req.Status
	}
	if req.IssueDate != nil {
		patch["fecha_emision"] = *req.IssueDate
	}
	if req.DueDate != nil {
		patch["fecha_vencimiento"] = *req.DueDate
	}
	if req.Subtotal != nil {
		patch["subtotal"] = *req.Subtotal
	}
	if req.Tax != nil {
		patch["impuestos"] = *req.Tax
	}
	if req.Total != nil {
		patch["total"] = *req.Total
	}
	if req.Deposit != nil {
		patch["deposito"] = *req.Deposit
	}
	if req.RemainingBalance != nil {
		patch["saldo_pendiente"] = *req.RemainingBalance
	}
	if req.Note != nil {
		patch["notas"] = *req.Note
	}
	if req.Terms != nil {
		patch["terminos"] = *req.Terms
	}
	if req.LogoURL != nil {
		patch["logo_url"] = *req.LogoURL
	}
	if req.SignatureURL != nil {
		patch["firma_url"] = *req.SignatureURL
	}
	if req.PaymentMethodID != nil {
		patch["metodo_pago_id"] = *req.PaymentMethodID
	}
	return patch
}

func buildPDFData(inv *invoice.Invoice, items []*invoice.LineItem, cli *client.Client, profile *business.Profile, numberPrefix string) *pdfdomain.InvoiceData {
	data := &pdfdomain.InvoiceData{
		DisplayNumber:    inv.DisplayNumber(numberPrefix),
		Status:           string(inv.Status),
		IssueDate:        inv.IssueDate,
		DueDate:          lo.FromPtr(inv.DueDate),
		PaidDate:         lo.FromPtr(inv.PaidDate),
		LogoURL:          inv.LogoURL,
		SignatureURL:     inv.SignatureURL,
		Subtotal:         inv.Subtotal,
		Tax:              inv.Tax,
		Total:            inv.Total,
		Deposit:          inv.Deposit,
		RemainingBalance: inv.RemainingBalance,
		Note:             inv.Note,
		Terms:            inv.Terms,
	}
	if profile != nil {
		data.BusinessName = profile.Name
		data.BusinessPhone = profile.Phone
		data.BusinessAddress = profile.Address
	}
	if cli != nil {
		data.ClientName = cli.Name
		data.ClientEmail = cli.Email
		data.ClientPhone = cli.Phone
		data.ClientAddress = cli.Address
	}
	data.Items = make([]pdfdomain.LineItemData, len(items))
	for i, item := range items {
		data.Items[i] = pdfdomain.LineItemData{
			Description: item.Description,
			Category:    lo.FromPtr(item.Category),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	return data
}

// cacheBustedURL appends the current timestamp so cached copies are
// bypassed while the stored object path stays stable.
func cacheBustedURL(result PDFResult) *string {
	if result.URL == nil {
		return nil
	}
	busted := fmt.Sprintf("%s?t=%d", *result.URL, time.Now().Unix())
	return &busted
}

func fromPtrOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
