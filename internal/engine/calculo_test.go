package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalcularNeto(t *testing.T) {
	casos := []struct {
		nombre string
		bruto  string
		tara   string
		neto   string
	}{
		{"compensacion normal", "15.70", "1.20", "14.50"},
		{"sin tara", "22.40", "0", "22.40"},
		{"tara mayor que bruto", "3.00", "8.00", "0.00"},
		{"iguales", "5.00", "5.00", "0.00"},
		{"redondeo a dos decimales", "10.005", "0", "10.01"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			bruto := decimal.RequireFromString(c.bruto)
			tara := decimal.RequireFromString(c.tara)
			assert.Equal(t, c.neto, CalcularNeto(bruto, tara).StringFixed(2))
		})
	}
}
