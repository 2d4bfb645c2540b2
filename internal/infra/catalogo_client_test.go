package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clienteDePrueba(t *testing.T, handler http.HandlerFunc) *CatalogoClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCatalogoClient(srv.URL, NewCircuitBreaker(DefaultCBConfig()))
}

func TestCatalogoClient_ProveedoresConEnvoltura(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/provedores", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"IdProveedor":7,"RazonSocial":"Agropecuaria del Valle SA"}]}`))
	})

	proveedores, err := c.Proveedores(context.Background())
	require.NoError(t, err)
	require.Len(t, proveedores, 1)
	assert.Equal(t, 7, proveedores[0].ID)
	assert.Equal(t, "Agropecuaria del Valle SA", proveedores[0].RazonSocial)
}

func TestCatalogoClient_ProveedoresArregloDesnudo(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"IdProveedor":3,"RazonSocial":"Granos del Norte"}]`))
	})

	proveedores, err := c.Proveedores(context.Background())
	require.NoError(t, err)
	require.Len(t, proveedores, 1)
	assert.Equal(t, 3, proveedores[0].ID)
}

func TestCatalogoClient_EsSubproductoFlexible(t *testing.T) {
	// The upstream serializes EsSubproducto inconsistently: ints, numeric
	// strings and plain bools all appear in the wild.
	c := clienteDePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[
			{"IdProducto":1,"Nombre":"Maíz blanco","UnidadMedida":"KG","EsSubproducto":0},
			{"IdProducto":2,"Nombre":"Salvado","UnidadMedida":"KG","EsSubproducto":"1"},
			{"IdProducto":3,"Nombre":"Frijol negro","UnidadMedida":"KG","EsSubproducto":false},
			{"IdProducto":4,"Nombre":"Germen","UnidadMedida":"KG","EsSubproducto":true}
		]}`))
	})

	productos, err := c.Productos(context.Background())
	require.NoError(t, err)
	require.Len(t, productos, 4)
	assert.False(t, productos[0].EsSubproducto)
	assert.True(t, productos[1].EsSubproducto)
	assert.False(t, productos[2].EsSubproducto)
	assert.True(t, productos[3].EsSubproducto)
}

func TestCatalogoClient_ErrorDeEstado(t *testing.T) {
	c := clienteDePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Proveedores(context.Background())
	assert.Error(t, err)
}

func TestCatalogoClient_CircuitoAbiertoFastFail(t *testing.T) {
	llamadas := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		llamadas++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time1Hora()})
	c := NewCatalogoClient(srv.URL, cb)

	for i := 0; i < 2; i++ {
		_, err := c.Proveedores(context.Background())
		require.Error(t, err)
	}
	require.Equal(t, CBOpen, cb.State())

	// Tripped — the next read never reaches the server
	_, err := c.Proveedores(context.Background())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, llamadas)
}
