package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporterExcel_OneRowPerReferenceAndDay(t *testing.T) {
	f := newFixture(t, catalogAB)
	created := f.creer(t, "S48")
	ref := firstReference(t, f, "r2")
	_, err := f.semaines.MettreAJourProduction(context.Background(), ref.ID, "mercredi", dto.UpdateProductionRequest{
		QtePlanifiee: ptr(200), DecProduction: ptr(150), DecMagasin: ptr(100),
	})
	require.NoError(t, err)

	svc := NewExportService(f.semaines)
	file, name, err := svc.ExporterExcel(context.Background(), created.Semaine.ID)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "S48.xlsx", name)

	rows, err := file.GetRows(ExportSheet)
	require.NoError(t, err)
	// header + 3 references × 6 days + totals
	require.Len(t, rows, 1+3*6+1)
	assert.Equal(t, exportHeaders, rows[0])

	// A/r1 takes rows 1..6, A/r2 starts at 7: lundi, mardi, mercredi
	mercredi := rows[9]
	assert.Equal(t, []string{"A", "r2", "mercredi"}, mercredi[:3])
	assert.Equal(t, "200", mercredi[4])
	assert.Equal(t, "50", mercredi[9])
	assert.Equal(t, "75", mercredi[10])

	totals := rows[len(rows)-1]
	assert.Equal(t, "Total", totals[0])
	assert.Equal(t, "200", totals[4])
	assert.Equal(t, "150", totals[8])
	assert.Equal(t, []string{"50", "75", "100", "-50"}, totals[9:13])

	styleID, err := file.GetCellStyle(ExportSheet, fmt.Sprintf("M%d", len(rows)))
	require.NoError(t, err)
	style, err := file.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExporterExcel_UnknownWeek(t *testing.T) {
	f := newFixture(t, catalogAB)
	_, _, err := NewExportService(f.semaines).ExporterExcel(context.Background(), 7)
	assertKind(t, err, apierror.KindNotFound)
}

func TestRapportPDF(t *testing.T) {
	f := newFixture(t, catalogAB)
	created := f.creer(t, "S48")

	pdf, name, err := NewExportService(f.semaines).RapportPDF(context.Background(), created.Semaine.ID)
	require.NoError(t, err)
	assert.Equal(t, "rapport_S48.pdf", name)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
