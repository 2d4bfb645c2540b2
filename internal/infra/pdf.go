package infra

// pdf.go — lot ticket generation using go-pdf/fpdf.
// Produces a thermal-receipt-style ticket per closed lot: folio, provider,
// station, one row per weighing record (time, product, tare, net) and the
// accumulated total. Written to storagePath/lote_{folio}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/model"
)

// GenerateLotePDF renders the ticket for a persisted lot and returns the
// absolute path of the written file.
func GenerateLotePDF(lote *model.Lote, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fileName := fmt.Sprintf("lote_%s.pdf", lote.Folio)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × height grows with the record count; thermal paper is a roll.
	alto := 70.0 + float64(len(lote.Detalles))*5.0
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: alto},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "AztecaSoft", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Ticket de Lote", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Lot info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Folio "+lote.Folio, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, lote.RazonSocial, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Estación: "+lote.Estacion, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, lote.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Record rows ──────────────────────────────────────────────────────
	col1 := contentW * 0.16 // hora
	col2 := contentW * 0.42 // producto
	col3 := contentW * 0.18 // tara
	col4 := contentW * 0.24 // neto

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Hora", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Tara", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "Neto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range lote.Detalles {
		nombre := d.Producto
		if len(nombre) > 18 {
			nombre = nombre[:17] + "…"
		}
		pdf.CellFormat(col1, 5, d.Hora, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-"+d.Tara.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, d.PesoNeto.StringFixed(2)+" "+d.Unidad, "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 6, lote.TotalKG.StringFixed(2)+" KG", "", 1, "R", false, 0, "")

	if lote.Observaciones != nil && *lote.Observaciones != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.MultiCell(contentW, 4, "Obs: "+*lote.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir archivo: %w", err)
	}
	return filePath, nil
}
