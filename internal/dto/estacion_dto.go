package dto

import (
	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
)

// ─── Station commands ────────────────────────────────────────────────────────

// IniciarRequest carries the session header. Field presence is validated by
// the engine so the screen gets told exactly which field is missing.
type IniciarRequest struct {
	IdProveedor int    `json:"IdProveedor"`
	Folio       string `json:"folio"`
}

// CargaRequest confirms the set of base products present in the shipment
// (reception variant).
type CargaRequest struct {
	Productos []int `json:"productos" validate:"required,min=1"`
}

type SeleccionarProductoRequest struct {
	IdProducto int `json:"IdProducto" validate:"required"`
}

type SeleccionarAreaRequest struct {
	IdArea int `json:"id_area" validate:"required"`
}

type FinalizarRequest struct {
	Observaciones string `json:"observaciones"`
}

// ─── Station views ───────────────────────────────────────────────────────────

// ReferenciasResponse carries the cached catalog lists for the screen.
type ReferenciasResponse struct {
	Proveedores []catalog.Proveedor `json:"proveedores"`
	Productos   []catalog.Producto  `json:"productos"`
	Areas       []catalog.Area      `json:"areas"`
}
