package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/model"
)

func loteDePrueba() *model.Lote {
	area := "Venta"
	obs := "mermas mínimas"
	return &model.Lote{
		ID:            uuid.New(),
		IdProveedor:   7,
		RazonSocial:   "Agropecuaria del Valle SA",
		Folio:         "AUTO-1234",
		Estacion:      "salidas",
		Observaciones: &obs,
		TotalKG:       decimal.RequireFromString("26.50"),
		CreatedAt:     time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC),
		Detalles: []model.DetalleLote{
			{
				RegistroID: 1,
				IdProducto: 1,
				Producto:   "Maíz blanco",
				Unidad:     "KG",
				PesoBruto:  decimal.RequireFromString("15.70"),
				Tara:       decimal.RequireFromString("1.20"),
				PesoNeto:   decimal.RequireFromString("14.50"),
				Area:       &area,
				Hora:       "15:04",
			},
			{
				RegistroID: 2,
				IdProducto: 2,
				Producto:   "Frijol negro seleccionado extra",
				Unidad:     "KG",
				PesoBruto:  decimal.RequireFromString("13.00"),
				Tara:       decimal.RequireFromString("1.00"),
				PesoNeto:   decimal.RequireFromString("12.00"),
				Hora:       "15:05",
			},
		},
	}
}

func TestGenerateLotePDF_Exitoso(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateLotePDF(loteDePrueba(), dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500), "a real PDF was written")
}

func TestGenerateLotePDF_NombreArchivo(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateLotePDF(loteDePrueba(), dir)
	require.NoError(t, err)
	assert.Equal(t, "lote_AUTO-1234.pdf", filepath.Base(path))
}

func TestGenerateLotePDF_CreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "anidado", "tickets")

	_, err := GenerateLotePDF(loteDePrueba(), dir)
	require.NoError(t, err)
}
