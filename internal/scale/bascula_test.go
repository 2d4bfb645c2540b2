package scale

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulador_LecturaEnRango(t *testing.T) {
	s := NewSimulador(0.50, 55.00, 42)
	min := decimal.RequireFromString("0.50")
	max := decimal.RequireFromString("55.00")

	for i := 0; i < 200; i++ {
		v, err := s.Leer(context.Background())
		require.NoError(t, err)
		assert.True(t, v.GreaterThanOrEqual(min), "lectura %s bajo el mínimo", v)
		assert.True(t, v.LessThanOrEqual(max), "lectura %s sobre el máximo", v)
		assert.LessOrEqual(t, -v.Exponent(), int32(2), "dos decimales máximo")
	}
}

func TestSimulador_SemillaReproducible(t *testing.T) {
	a := NewSimulador(1, 10, 7)
	b := NewSimulador(1, 10, 7)

	for i := 0; i < 20; i++ {
		va, _ := a.Leer(context.Background())
		vb, _ := b.Leer(context.Background())
		require.True(t, va.Equal(vb))
	}
}

func TestSimulador_RangoInvalidoUsaDefecto(t *testing.T) {
	s := NewSimulador(10, 10, 1) // inverted/empty range
	v, err := s.Leer(context.Background())
	require.NoError(t, err)
	assert.True(t, v.GreaterThanOrEqual(decimal.RequireFromString("0.50")))
	assert.True(t, v.LessThanOrEqual(decimal.RequireFromString("55.00")))
}
