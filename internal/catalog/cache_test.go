package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fuenteFalsa struct {
	proveedores []Proveedor
	productos   []Producto
	errProv     error
	errProd     error
}

func (f *fuenteFalsa) Proveedores(_ context.Context) ([]Proveedor, error) {
	return f.proveedores, f.errProv
}

func (f *fuenteFalsa) Productos(_ context.Context) ([]Producto, error) {
	return f.productos, f.errProd
}

func fuenteDePrueba() *fuenteFalsa {
	return &fuenteFalsa{
		proveedores: []Proveedor{{ID: 7, RazonSocial: "Agropecuaria del Valle SA"}},
		productos: []Producto{
			{ID: 1, Nombre: "Maíz blanco", Unidad: "KG"},
			{ID: 9, Nombre: "Salvado", Unidad: "KG", EsSubproducto: true},
		},
	}
}

func TestCache_NoListoAntesDeCargar(t *testing.T) {
	c := NewCache(fuenteDePrueba(), false)
	assert.False(t, c.Listo())
	assert.Empty(t, c.Proveedores())
	assert.Empty(t, c.Productos())
}

func TestCache_CargarExitoso(t *testing.T) {
	c := NewCache(fuenteDePrueba(), false)
	require.NoError(t, c.Cargar(context.Background()))

	assert.True(t, c.Listo())
	assert.Len(t, c.Proveedores(), 1)
	assert.Len(t, c.Productos(), 2)

	p, ok := c.Proveedor(7)
	require.True(t, ok)
	assert.Equal(t, "Agropecuaria del Valle SA", p.RazonSocial)
}

func TestCache_SoloBaseFiltraSubproductos(t *testing.T) {
	c := NewCache(fuenteDePrueba(), true)
	require.NoError(t, c.Cargar(context.Background()))

	productos := c.Productos()
	require.Len(t, productos, 1)
	assert.Equal(t, "Maíz blanco", productos[0].Nombre)

	_, ok := c.Producto(9)
	assert.False(t, ok, "subproducts are not offered")
}

func TestCache_FalloDejaNoListo(t *testing.T) {
	fuente := fuenteDePrueba()
	c := NewCache(fuente, false)
	require.NoError(t, c.Cargar(context.Background()))
	require.True(t, c.Listo())

	fuente.errProd = errors.New("conexión rechazada")
	err := c.Cargar(context.Background())
	assert.ErrorIs(t, err, ErrNoDisponible)
	assert.False(t, c.Listo(), "a failed reload leaves the cache unusable")

	// Recovery on the next activation
	fuente.errProd = nil
	require.NoError(t, c.Cargar(context.Background()))
	assert.True(t, c.Listo())
}

func TestCache_AreasPredeterminadas(t *testing.T) {
	c := NewCache(fuenteDePrueba(), false)

	areas := c.Areas()
	require.Len(t, areas, 3)
	assert.Equal(t, "Limpieza", areas[0].Nombre)

	a, ok := c.Area(2)
	require.True(t, ok)
	assert.Equal(t, "Subproductos", a.Nombre)
}
