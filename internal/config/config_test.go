package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3, cfg.WorkerPoolSize)
	assert.Equal(t, 1, cfg.OperadorID)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.RedisURL)
	assert.InDelta(t, 0.50, cfg.BasculaMin, 0.001)
	assert.InDelta(t, 55.00, cfg.BasculaMax, 0.001)
	assert.Empty(t, cfg.CatalogoURL, "local catalog by default")
	assert.Empty(t, cfg.PesajeURL, "local lot store by default")
}

func TestLoad_EntornoSobrescribe(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("CATALOGO_URL", "http://consola:8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "http://consola:8080", cfg.CatalogoURL)
}
