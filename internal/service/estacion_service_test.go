package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/dto"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
)

type fuenteFija struct {
	err error
}

func (f *fuenteFija) Proveedores(_ context.Context) ([]catalog.Proveedor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []catalog.Proveedor{{ID: 7, RazonSocial: "Agropecuaria del Valle SA"}}, nil
}

func (f *fuenteFija) Productos(_ context.Context) ([]catalog.Producto, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []catalog.Producto{
		{ID: 1, Nombre: "Maíz blanco", Unidad: "KG"},
		{ID: 9, Nombre: "Salvado", Unidad: "KG", EsSubproducto: true},
	}, nil
}

type basculaSecuencia struct {
	mu       sync.Mutex
	lecturas []string
	i        int
}

func (b *basculaSecuencia) Leer(_ context.Context) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.i >= len(b.lecturas) {
		return decimal.Zero, errors.New("sin lecturas")
	}
	v := decimal.RequireFromString(b.lecturas[b.i])
	b.i++
	return v, nil
}

type committerMemoria struct {
	payloads []engine.PayloadLote
}

func (c *committerMemoria) GuardarLote(_ context.Context, p engine.PayloadLote) error {
	c.payloads = append(c.payloads, p)
	return nil
}

func servicioDePrueba(bascula *basculaSecuencia, committer *committerMemoria) EstacionService {
	return NewEstacionService(&fuenteFija{}, bascula, committer, engine.Operador{ID: 1, Nombre: "Operador de piso"})
}

func TestEstacion_Desconocida(t *testing.T) {
	svc := servicioDePrueba(&basculaSecuencia{}, &committerMemoria{})

	err := svc.Activar(context.Background(), "empaque")
	assert.ErrorIs(t, err, ErrEstacionDesconocida)

	_, err = svc.Estado("empaque")
	assert.ErrorIs(t, err, ErrEstacionDesconocida)
}

func TestEstacion_ReferenciasRequierenActivacion(t *testing.T) {
	svc := servicioDePrueba(&basculaSecuencia{}, &committerMemoria{})

	_, err := svc.Referencias(EstacionLimpieza)
	assert.ErrorIs(t, err, catalog.ErrNoDisponible)

	require.NoError(t, svc.Activar(context.Background(), EstacionLimpieza))
	refs, err := svc.Referencias(EstacionLimpieza)
	require.NoError(t, err)
	assert.Len(t, refs.Proveedores, 1)
	// Washing offers the full product list, subproducts included
	assert.Len(t, refs.Productos, 2)
}

func TestEstacion_RecepcionFiltraSubproductos(t *testing.T) {
	svc := servicioDePrueba(&basculaSecuencia{}, &committerMemoria{})
	require.NoError(t, svc.Activar(context.Background(), EstacionRecepcion))

	refs, err := svc.Referencias(EstacionRecepcion)
	require.NoError(t, err)
	require.Len(t, refs.Productos, 1)
	assert.Equal(t, "Maíz blanco", refs.Productos[0].Nombre)
}

func TestEstacion_FlujoCompletoSalidas(t *testing.T) {
	bascula := &basculaSecuencia{lecturas: []string{"1.20", "15.70"}}
	committer := &committerMemoria{}
	svc := servicioDePrueba(bascula, committer)
	ctx := context.Background()
	require.NoError(t, svc.Activar(ctx, EstacionSalidas))

	snap, err := svc.Iniciar(EstacionSalidas, dto.IniciarRequest{IdProveedor: 7})
	require.NoError(t, err)
	assert.Equal(t, engine.EstadoActiva, snap.Estado)
	assert.Regexp(t, `^AUTO-\d{4}$`, snap.Folio)

	_, err = svc.SeleccionarProducto(EstacionSalidas, 1)
	require.NoError(t, err)
	_, err = svc.SeleccionarArea(EstacionSalidas, 3)
	require.NoError(t, err)

	tara, err := svc.CapturarTara(ctx, EstacionSalidas)
	require.NoError(t, err)
	assert.Equal(t, "1.20", tara.StringFixed(2))

	bruto, err := svc.CapturarBruto(ctx, EstacionSalidas)
	require.NoError(t, err)
	assert.Equal(t, "15.70", bruto.StringFixed(2))

	registro, err := svc.Registrar(EstacionSalidas)
	require.NoError(t, err)
	assert.Equal(t, "14.50", registro.PesoNeto.StringFixed(2))
	require.NotNil(t, registro.Area)
	assert.Equal(t, "Venta", *registro.Area)

	require.NoError(t, svc.Finalizar(ctx, EstacionSalidas, "salida vespertina"))
	require.Len(t, committer.payloads, 1)
	assert.Equal(t, "salidas", committer.payloads[0].Estacion)
	assert.Equal(t, "Operador de piso", committer.payloads[0].Operador)

	snap, err = svc.Estado(EstacionSalidas)
	require.NoError(t, err)
	assert.Equal(t, engine.EstadoPreparacion, snap.Estado)
}

func TestEstacion_EstacionesIndependientes(t *testing.T) {
	bascula := &basculaSecuencia{lecturas: []string{"10.00"}}
	svc := servicioDePrueba(bascula, &committerMemoria{})
	ctx := context.Background()
	require.NoError(t, svc.Activar(ctx, EstacionLimpieza))

	_, err := svc.Iniciar(EstacionLimpieza, dto.IniciarRequest{IdProveedor: 7, Folio: "F-100"})
	require.NoError(t, err)

	// Reception was never activated; its session cannot start
	_, err = svc.Iniciar(EstacionRecepcion, dto.IniciarRequest{IdProveedor: 7, Folio: "REM-1"})
	assert.ErrorIs(t, err, catalog.ErrNoDisponible)
}
