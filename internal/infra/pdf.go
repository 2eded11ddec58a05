package infra

// pdf.go renders the weekly realization report with go-pdf/fpdf:
//   - week name and dates
//   - one row per line (planned, produced, warehouse, rate)
//   - bold totals row

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// RapportLigne is one row of the realization report.
type RapportLigne struct {
	NomLigne        string
	TotalReferences int
	QtePlanifiee    int
	DecProduction   int
	DecMagasin      int
	TauxRealisation float64
}

// Rapport is everything WriteRapportPDF prints.
type Rapport struct {
	Nom       string
	DateDebut time.Time
	DateFin   time.Time
	Lignes    []RapportLigne
	Total     RapportLigne
	GenereLe  time.Time
}

// WriteRapportPDF writes an A4 landscape report to w.
func WriteRapportPDF(w io.Writer, r Rapport) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252 for accented labels

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr("Rapport de réalisation - "+r.Nom), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Du %s au %s",
		r.DateDebut.Format("02/01/2006"), r.DateFin.Format("02/01/2006"))), "", 1, "C", false, 0, "")
	if !r.GenereLe.IsZero() {
		pdf.CellFormat(contentW, 5, tr("Généré le "+r.GenereLe.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{contentW * 0.30, contentW * 0.12, contentW * 0.15, contentW * 0.15, contentW * 0.14, contentW * 0.14}
	headers := []string{"Ligne", "Références", "Qté planifiée", "Déc. production", "Déc. magasin", "Réalisation"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	row := func(l RapportLigne) {
		pdf.CellFormat(widths[0], 6, tr(l.NomLigne), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", l.TotalReferences), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", l.QtePlanifiee), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", l.DecProduction), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d", l.DecMagasin), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f %%", l.TauxRealisation), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range r.Lignes {
		row(l)
	}

	pdf.SetFont("Helvetica", "B", 9)
	total := r.Total
	total.NomLigne = "Total semaine"
	row(total)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write report: %w", err)
	}
	return nil
}
