package infra

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRapportPDF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRapportPDF(&buf, Rapport{
		Nom:       "S48-2024",
		DateDebut: time.Date(2024, 11, 25, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
		Lignes: []RapportLigne{
			{NomLigne: "L04:RXT1", TotalReferences: 2, QtePlanifiee: 400, DecProduction: 300, DecMagasin: 280, TauxRealisation: 75},
			{NomLigne: "Câblage", TotalReferences: 1},
		},
		Total:    RapportLigne{TotalReferences: 3, QtePlanifiee: 400, DecProduction: 300, DecMagasin: 280, TauxRealisation: 75},
		GenereLe: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteRapportPDF_NoLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRapportPDF(&buf, Rapport{Nom: "vide"}))
	assert.NotZero(t, buf.Len())
}
