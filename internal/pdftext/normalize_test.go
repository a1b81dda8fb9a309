package pdftext

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf and tabs", "Medio :\tEFECTIVO\r\nVal. Ventas : $5\r", "Medio : EFECTIVO\nVal. Ventas : $5"},
		{"layout spacing", "   DATOS    DE   FACTURAS   ", "DATOS DE FACTURAS"},
		{"blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"non-breaking space", "Total\u00a0: $10", "Total : $10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestRowsToText(t *testing.T) {
	rows := pdf.Rows{
		{Position: 100, Content: pdf.TextHorizontal{
			{S: "Diferencia:", X: 10, W: 40, FontSize: 10},
			{S: "$5", X: 55, W: 8, FontSize: 10},
		}},
		{Position: 700, Content: pdf.TextHorizontal{
			{S: "FACTURAS", X: 60, W: 30, FontSize: 10},
			{S: "DATOS DE", X: 10, W: 45, FontSize: 10},
		}},
		{Position: 400, Content: pdf.TextHorizontal{
			{S: "V", X: 10, W: 5, FontSize: 10},
			{S: ".", X: 15, W: 2, FontSize: 10},
		}},
	}

	assert.Equal(t, "DATOS DE FACTURAS\nV.\nDiferencia: $5", rowsToText(rows))
}
