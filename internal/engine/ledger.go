package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registro is one completed measurement. Records are NEVER modified after
// creation — corrections remove the record and weigh again.
type Registro struct {
	ID         int64           `json:"id"`
	IdProducto int             `json:"IdProducto"`
	Producto   string          `json:"producto"`
	Unidad     string          `json:"unidad"`
	PesoBruto  decimal.Decimal `json:"peso_bruto"`
	Tara       decimal.Decimal `json:"tara"`
	PesoNeto   decimal.Decimal `json:"peso"`
	Area       *string         `json:"area,omitempty"`
	Hora       string          `json:"hora"` // display precision hh:mm
}

// Ledger is the ordered collection of completed records for the active
// session, newest first. Insertion order only matters for display; the
// total is order-independent.
type Ledger struct {
	registros []Registro
	ultimoID  int64
}

// nextID assigns a time-of-creation based id, bumped when two captures land
// on the same millisecond so ids stay strictly monotonic.
func (l *Ledger) nextID(ahora time.Time) int64 {
	id := ahora.UnixMilli()
	if id <= l.ultimoID {
		id = l.ultimoID + 1
	}
	l.ultimoID = id
	return id
}

// Agregar prepends the record and assigns its id.
func (l *Ledger) Agregar(r Registro, ahora time.Time) Registro {
	r.ID = l.nextID(ahora)
	l.registros = append([]Registro{r}, l.registros...)
	return r
}

// Quitar removes a record by id. Removing an id that is not present is a
// no-op, not an error.
func (l *Ledger) Quitar(id int64) {
	for i, r := range l.registros {
		if r.ID == id {
			l.registros = append(l.registros[:i], l.registros[i+1:]...)
			return
		}
	}
}

// Total is the sum of net weights, rounded to two decimals. It is always
// recomputed from the records, never stored.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.registros {
		total = total.Add(r.PesoNeto)
	}
	return total.Round(2)
}

func (l *Ledger) Len() int { return len(l.registros) }

// Registros returns a copy of the records, newest first.
func (l *Ledger) Registros() []Registro {
	out := make([]Registro, len(l.registros))
	copy(out, l.registros)
	return out
}

// Vaciar drops every record. Only a successful finalization or an explicit
// operator reset calls this.
func (l *Ledger) Vaciar() {
	l.registros = nil
}
