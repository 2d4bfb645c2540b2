package engine

import "github.com/shopspring/decimal"

// CalcularNeto derives the product-only weight: max(0, bruto − tara),
// rounded to two decimals. Net weight is always recomputed from the two
// readings, never edited independently.
func CalcularNeto(bruto, tara decimal.Decimal) decimal.Decimal {
	neto := bruto.Sub(tara)
	if neto.IsNegative() {
		return decimal.Zero
	}
	return neto.Round(2)
}
