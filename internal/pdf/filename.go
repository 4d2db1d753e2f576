package pdf

import (
	"fmt"
	"strings"
	"unicode"
)

// InvoiceFileName derives the stored object name from the business
// name, client name and display invoice number. The name must stay
// stable across regenerations so that old public links keep resolving
// to the latest version of the document.
func InvoiceFileName(businessName, clientName, displayNumber string) string {
	parts := []string{slug(businessName), slug(clientName), "factura", slug(displayNumber)}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return fmt.Sprintf("%s.pdf", strings.Join(nonEmpty, "-"))
}

func slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
