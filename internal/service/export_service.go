package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"
	"prodplan/internal/infra"
	"prodplan/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet holding the week grid in exported workbooks.
const ExportSheet = "Planification"

var exportHeaders = []string{
	"Ligne", "Référence", "Jour", "OF", "Qté planifiée", "Emballage",
	"Nb opérateurs", "Nb heures réalisées", "Déc. production", "Delta prod",
	"% prod", "Déc. magasin", "Delta prod/mag",
}

// lastColumn is the column of the last header, "Delta prod/mag".
const lastColumn = "M"

// ExportService renders a full week as a workbook or a PDF report.
type ExportService interface {
	ExporterExcel(ctx context.Context, semaineID uint) (*excelize.File, string, error)
	RapportPDF(ctx context.Context, semaineID uint) ([]byte, string, error)
}

type exportService struct {
	semaines SemaineService
	now      func() time.Time
}

func NewExportService(semaines SemaineService) ExportService {
	return &exportService{semaines: semaines, now: time.Now}
}

// ExporterExcel writes one row per (line, reference, day) then a totals row.
func (s *exportService) ExporterExcel(ctx context.Context, semaineID uint) (*excelize.File, string, error) {
	tree, err := s.semaines.SemaineComplete(ctx, semaineID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, "", exportFailed(f, err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, "", exportFailed(f, err)
	}
	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return nil, "", exportFailed(f, err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", lastColumn+"1", boldStyle); err != nil {
		return nil, "", exportFailed(f, err)
	}

	row := 2
	var total dto.Cumul
	for _, l := range tree.Lignes {
		for _, ref := range l.References {
			for _, j := range model.Jours {
				d := ref.Jour(j)
				values := []any{
					l.NomLigne, ref.Reference, j.String(), d.OF, d.QtePlanifiee, d.Emballage,
					d.NbOperateurs, d.NbHeuresRealisees, d.DecProduction, d.DeltaProd,
					d.PcsProd, d.DecMagasin, d.DeltaProdMag,
				}
				cell, _ := excelize.CoordinatesToCellName(1, row)
				if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
					return nil, "", exportFailed(f, err)
				}
				total.QtePlanifiee += d.QtePlanifiee
				total.DecProduction += d.DecProduction
				total.DecMagasin += d.DecMagasin
				row++
			}
		}
	}

	totals := map[string]any{
		"A": "Total",
		"E": total.QtePlanifiee,
		"I": total.DecProduction,
		"J": total.QtePlanifiee - total.DecProduction,
		"K": model.Pourcentage(int64(total.DecProduction), int64(total.QtePlanifiee)),
		"L": total.DecMagasin,
		"M": total.DecMagasin - total.DecProduction,
	}
	for col, v := range totals {
		if err := f.SetCellValue(ExportSheet, fmt.Sprintf("%s%d", col, row), v); err != nil {
			return nil, "", exportFailed(f, err)
		}
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", exportFailed(f, err)
	}
	if err := f.SetCellStyle(ExportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastColumn, row), totalStyle); err != nil {
		return nil, "", exportFailed(f, err)
	}

	colWidths := []float64{24, 18, 10, 16, 12, 12, 12, 14, 14, 12, 10, 12, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(ExportSheet, col, col, w)
	}

	return f, tree.Nom + ".xlsx", nil
}

// exportFailed closes the half-built workbook and wraps err for the client.
func exportFailed(f *excelize.File, err error) error {
	_ = f.Close()
	return apierror.Internal("Erreur lors de l'export", err)
}

// RapportPDF builds the realization report: per line sums, then week totals.
func (s *exportService) RapportPDF(ctx context.Context, semaineID uint) ([]byte, string, error) {
	tree, err := s.semaines.SemaineComplete(ctx, semaineID)
	if err != nil {
		return nil, "", err
	}

	r := infra.Rapport{Nom: tree.Nom, GenereLe: s.now()}
	r.DateDebut, _ = time.Parse(dto.DateLayout, tree.DateDebut)
	r.DateFin, _ = time.Parse(dto.DateLayout, tree.DateFin)

	for _, l := range tree.Lignes {
		ligne := infra.RapportLigne{NomLigne: l.NomLigne, TotalReferences: len(l.References)}
		for _, ref := range l.References {
			for _, j := range model.Jours {
				d := ref.Jour(j)
				ligne.QtePlanifiee += d.QtePlanifiee
				ligne.DecProduction += d.DecProduction
				ligne.DecMagasin += d.DecMagasin
			}
		}
		ligne.TauxRealisation = model.Pourcentage(int64(ligne.DecProduction), int64(ligne.QtePlanifiee))
		r.Lignes = append(r.Lignes, ligne)

		r.Total.TotalReferences += ligne.TotalReferences
		r.Total.QtePlanifiee += ligne.QtePlanifiee
		r.Total.DecProduction += ligne.DecProduction
		r.Total.DecMagasin += ligne.DecMagasin
	}
	r.Total.TauxRealisation = model.Pourcentage(int64(r.Total.DecProduction), int64(r.Total.QtePlanifiee))

	var buf bytes.Buffer
	if err := infra.WriteRapportPDF(&buf, r); err != nil {
		return nil, "", apierror.Internal("Erreur lors de la génération du rapport", err)
	}
	return buf.Bytes(), fmt.Sprintf("rapport_%s.pdf", tree.Nom), nil
}
