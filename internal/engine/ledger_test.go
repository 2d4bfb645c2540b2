package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedger_AgregarPrependeYAsignaID(t *testing.T) {
	var l Ledger
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	r1 := l.Agregar(Registro{Producto: "Maíz blanco"}, base)
	r2 := l.Agregar(Registro{Producto: "Frijol negro"}, base.Add(time.Second))

	assert.Equal(t, base.UnixMilli(), r1.ID)
	regs := l.Registros()
	assert.Equal(t, r2.ID, regs[0].ID, "newest first")
	assert.Equal(t, r1.ID, regs[1].ID)
}

func TestLedger_IDsMonotonicosEnElMismoMilisegundo(t *testing.T) {
	var l Ledger
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	r1 := l.Agregar(Registro{}, base)
	r2 := l.Agregar(Registro{}, base)
	r3 := l.Agregar(Registro{}, base)

	assert.Equal(t, r1.ID+1, r2.ID)
	assert.Equal(t, r2.ID+1, r3.ID)
}

func TestLedger_QuitarInexistenteEsNoOp(t *testing.T) {
	var l Ledger
	r := l.Agregar(Registro{}, time.Now())

	l.Quitar(r.ID + 999)
	assert.Equal(t, 1, l.Len())

	l.Quitar(r.ID)
	assert.Equal(t, 0, l.Len())
	l.Quitar(r.ID) // already gone
	assert.Equal(t, 0, l.Len())
}

func TestLedger_TotalRecalculado(t *testing.T) {
	var l Ledger
	ahora := time.Now()
	r1 := l.Agregar(Registro{PesoNeto: decimal.RequireFromString("10.00")}, ahora)
	l.Agregar(Registro{PesoNeto: decimal.RequireFromString("5.25")}, ahora)

	assert.Equal(t, "15.25", l.Total().StringFixed(2))

	l.Quitar(r1.ID)
	assert.Equal(t, "5.25", l.Total().StringFixed(2))
}

func TestLedger_RegistrosDevuelveCopia(t *testing.T) {
	var l Ledger
	l.Agregar(Registro{Producto: "Maíz blanco"}, time.Now())

	regs := l.Registros()
	regs[0].Producto = "mutado"
	assert.Equal(t, "Maíz blanco", l.Registros()[0].Producto)
}

func TestLedger_Vaciar(t *testing.T) {
	var l Ledger
	l.Agregar(Registro{PesoNeto: decimal.NewFromInt(3)}, time.Now())
	l.Vaciar()

	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Total().IsZero())
}
