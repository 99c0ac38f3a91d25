package infra

import (
	"fmt"
	"io"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/go-pdf/fpdf"
)

// GenerarComprobantePDF writes a receipt-sized PDF of a cashier till count: one
// line per denomination with pieces, the grand total and the notes. The date
// is printed in loc (time.Local when nil).
func GenerarComprobantePDF(w io.Writer, a *model.ArqueoRemoto, loc *time.Location) error {
	// 74 x 105 mm, thermal receipt width
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Arqueo de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	cajero := a.Cajero
	if cajero == "" {
		cajero = "Desconocido"
	}
	pdf.CellFormat(contentW, 4, tr("Cajero: "+cajero), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fechaComprobante(a.Fecha, loc), "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	col1, col2, col3 := contentW*0.44, contentW*0.18, contentW*0.38
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, tr("Denominación"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, v := range calculo.DenominacionesRemotas {
		n := a.Denominaciones[fmt.Sprintf("d_%d", v)]
		if n <= 0 {
			continue
		}
		monto := calculo.Monto(n, v)
		pdf.CellFormat(col1, 4, fmt.Sprintf("$%d", v), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("x%d", n), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+monto.StringFixed(0), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL GENERAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+a.Total.StringFixed(0), "", 1, "R", false, 0, "")

	if a.Cambios != "" {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 7)
		pdf.MultiCell(contentW, 4, tr("Observaciones: "+a.Cambios), "", "L", false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(contentW, 4, "*** COMPROBANTE INTERNO ***", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func fechaComprobante(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("02/01/2006  15:04")
}
