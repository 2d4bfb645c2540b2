package engine

import (
	"github.com/shopspring/decimal"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
)

// Instantanea is a read-only view of the station for the screen: header,
// pending readings, derived net and the ledger, newest first.
type Instantanea struct {
	Estacion       string             `json:"estacion"`
	Estado         Estado             `json:"estado"`
	Proveedor      *catalog.Proveedor `json:"proveedor,omitempty"`
	Folio          string             `json:"folio"`
	ProductoActivo *catalog.Producto  `json:"producto_activo,omitempty"`
	AreaActiva     *catalog.Area      `json:"area_activa,omitempty"`
	Seleccion      []catalog.Producto `json:"seleccion,omitempty"`
	Tara           decimal.Decimal    `json:"tara"`
	Bruto          decimal.Decimal    `json:"bruto"`
	Neto           decimal.Decimal    `json:"neto"`
	TotalKG        decimal.Decimal    `json:"total_kg"`
	Registros      []Registro         `json:"registros"`
	Cerrando       bool               `json:"cerrando"`
}

// Instantanea captures the current state under the lock.
func (m *Motor) Instantanea() Instantanea {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst := Instantanea{
		Estacion:  m.cfg.Estacion,
		Estado:    m.estado,
		Folio:     m.folio,
		Tara:      m.tara,
		Bruto:     m.bruto,
		Neto:      CalcularNeto(m.bruto, m.tara),
		TotalKG:   m.ledger.Total(),
		Registros: m.ledger.Registros(),
		Cerrando:  m.cerrando,
	}
	if m.proveedor.ID != 0 {
		prov := m.proveedor
		inst.Proveedor = &prov
	}
	if m.productoActivo != nil {
		p := *m.productoActivo
		inst.ProductoActivo = &p
	}
	if m.areaActiva != nil {
		a := *m.areaActiva
		inst.AreaActiva = &a
	}
	for _, p := range m.seleccion {
		inst.Seleccion = append(inst.Seleccion, p)
	}
	return inst
}
