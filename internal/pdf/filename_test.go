package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceFileName(t *testing.T) {
	tests := []struct {
		name          string
		businessName  string
		clientName    string
		displayNumber string
		want          string
	}{
		{
			name:          "plain names",
			businessName:  "Taller Garcia",
			clientName:    "Juan Perez",
			displayNumber: "1007",
			want:          "taller-garcia-juan-perez-factura-1007.pdf",
		},
		{
			name:          "accents and extra whitespace survive as letters",
			businessName:  "  Taller García  ",
			clientName:    "Juan  Pérez",
			displayNumber: "1001",
			want:          "taller-garcía-juan-pérez-factura-1001.pdf",
		},
		{
			name:          "punctuation collapses to single dashes",
			businessName:  "García & Hijos, S.L.",
			clientName:    "O'Brien",
			displayNumber: "1002",
			want:          "garcía-hijos-s-l-o-brien-factura-1002.pdf",
		},
		{
			name:          "missing business name drops its segment",
			businessName:  "",
			clientName:    "Juan Perez",
			displayNumber: "1003",
			want:          "juan-perez-factura-1003.pdf",
		},
		{
			name:          "all names missing still yields a usable name",
			businessName:  "",
			clientName:    "",
			displayNumber: "1004",
			want:          "factura-1004.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvoiceFileName(tt.businessName, tt.clientName, tt.displayNumber)
			assert.Equal(t, tt.want, got)

			// regeneration must produce the same object name
			assert.Equal(t, got, InvoiceFileName(tt.businessName, tt.clientName, tt.displayNumber))
		})
	}
}
