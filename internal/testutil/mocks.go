package testutil

import (
	"context"
	"fmt"
	"sync"

	authn "github.com/gestorly/gestorly/internal/auth"
	domainAuth "github.com/gestorly/gestorly/internal/domain/auth"
	"github.com/gestorly/gestorly/internal/domain/pdf"
	ierr "github.com/gestorly/gestorly/internal/errors"
)

// MockPDFRenderer returns canned bytes instead of invoking wkhtmltopdf.
type MockPDFRenderer struct {
	// Err forces every render to fail when set
	Err error

	mu       sync.Mutex
	rendered []*pdf.InvoiceData
}

func NewMockPDFRenderer() *MockPDFRenderer {
	return &MockPDFRenderer{}
}

func (m *MockPDFRenderer) RenderInvoicePDF(ctx context.Context, data *pdf.InvoiceData) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	m.rendered = append(m.rendered, data)
	m.mu.Unlock()
	return []byte("%PDF-1.4 test"), nil
}

// Rendered returns every payload passed to the renderer so far
func (m *MockPDFRenderer) Rendered() []*pdf.InvoiceData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*pdf.InvoiceData(nil), m.rendered...)
}

// MockStorage keeps uploaded objects in a map.
type MockStorage struct {
	// UploadErr forces every upload to fail when set
	UploadErr error

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMockStorage() *MockStorage {
	return &MockStorage{objects: make(map[string][]byte)}
}

func (m *MockStorage) UploadInvoicePDF(ctx context.Context, ownerID string, fileName string, data []byte) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	m.mu.Lock()
	m.objects[ownerID+"/"+fileName] = data
	m.mu.Unlock()
	return m.PublicURL(ownerID, fileName), nil
}

func (m *MockStorage) RemoveInvoicePDF(ctx context.Context, ownerID string, fileName string) error {
	m.mu.Lock()
	delete(m.objects, ownerID+"/"+fileName)
	m.mu.Unlock()
	return nil
}

func (m *MockStorage) PublicURL(ownerID string, fileName string) string {
	return fmt.Sprintf("https://storage.test/facturas/%s/%s", ownerID, fileName)
}

// Has reports whether an object was uploaded and not removed
func (m *MockStorage) Has(ownerID string, fileName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[ownerID+"/"+fileName]
	return ok
}

// MockAuthProvider resolves sessions from a fixed credential table.
type MockAuthProvider struct {
	// Sessions maps session credentials to claims
	Sessions map[string]*domainAuth.Claims
}

func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{Sessions: make(map[string]*domainAuth.Claims)}
}

func (m *MockAuthProvider) ValidateSession(ctx context.Context, credential string) (*domainAuth.Claims, error) {
	if claims, ok := m.Sessions[credential]; ok {
		return claims, nil
	}
	return nil, ierr.NewError("session validation failed").
		WithHint("Invalid or expired session").
		Mark(ierr.ErrUnauthorized)
}

func (m *MockAuthProvider) Login(ctx context.Context, email string, password string) (*authn.LoginResult, error) {
	for credential, claims := range m.Sessions {
		if claims.Email == email {
			return &authn.LoginResult{
				AccessToken:  credential,
				RefreshToken: "refresh-" + credential,
				UserID:       claims.UserID,
			}, nil
		}
	}
	return nil, ierr.NewError("login failed").
		WithHint("Invalid email or password").
		Mark(ierr.ErrUnauthorized)
}
