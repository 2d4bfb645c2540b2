package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Lot commit ──────────────────────────────────────────────────────────────

// DetalleLoteRequest is one weighing record inside a submitted lot.
type DetalleLoteRequest struct {
	ID         int64           `json:"id"`
	IdProducto int             `json:"IdProducto" validate:"required"`
	Producto   string          `json:"producto"   validate:"required"`
	Unidad     string          `json:"unidad"`
	PesoBruto  decimal.Decimal `json:"peso_bruto" validate:"min=0"`
	Tara       decimal.Decimal `json:"tara"       validate:"min=0"`
	Peso       decimal.Decimal `json:"peso"       validate:"gt=0"`
	Area       *string         `json:"area"`
	Hora       string          `json:"hora"`
}

// GuardarLoteRequest is the body of POST /api/pesaje/guardar-lote.
// TotalKG is informational — the store recomputes the total from the
// detail rows.
type GuardarLoteRequest struct {
	IdProveedor   int                  `json:"IdProveedor" validate:"required"`
	RazonSocial   string               `json:"RazonSocial" validate:"required"`
	Folio         string               `json:"folio"       validate:"required"`
	Observaciones string               `json:"observaciones"`
	Detalles      []DetalleLoteRequest `json:"detalles"    validate:"required,min=1,dive"`
	TotalKG       decimal.Decimal      `json:"total_kg"`
	Estacion      string               `json:"estacion"`
	Operador      string               `json:"operador"`
}

// ─── Lot history ─────────────────────────────────────────────────────────────

type DetalleLoteResponse struct {
	IdProducto int             `json:"IdProducto"`
	Producto   string          `json:"producto"`
	Unidad     string          `json:"unidad"`
	PesoBruto  decimal.Decimal `json:"peso_bruto"`
	Tara       decimal.Decimal `json:"tara"`
	PesoNeto   decimal.Decimal `json:"peso"`
	Area       *string         `json:"area,omitempty"`
	Hora       string          `json:"hora"`
}

type LoteResponse struct {
	ID            string                `json:"id"`
	IdProveedor   int                   `json:"IdProveedor"`
	RazonSocial   string                `json:"RazonSocial"`
	Folio         string                `json:"folio"`
	Estacion      string                `json:"estacion"`
	Observaciones *string               `json:"observaciones,omitempty"`
	TotalKG       decimal.Decimal       `json:"total_kg"`
	CreatedAt     string                `json:"created_at"`
	Detalles      []DetalleLoteResponse `json:"detalles"`
}

type LoteListResponse struct {
	Data  []LoteResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
