package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestDerive_EmptyInputIsZeroRecord(t *testing.T) {
	d := Derive(ProductionInput{})
	assert.Equal(t, ProductionData{}, d)
	assert.Equal(t, d, EmptyProduction())
}

func TestDerive_Formulas(t *testing.T) {
	cases := []struct {
		name                         string
		planned, produced, warehouse int
		wantDelta, wantMag           int
		wantPct                      float64
	}{
		{"nothing planned", 0, 0, 0, 0, 0, 0},
		{"planned zero but produced", 0, 40, 10, -40, -30, 0},
		{"three quarters", 200, 150, 0, 50, -150, 75},
		{"exact", 100, 100, 100, 0, 0, 100},
		{"over production", 80, 100, 90, -20, -10, 125},
		{"rounded to two decimals", 3, 1, 1, 2, 0, 33.33},
		{"one eighth", 8, 1, 0, 7, -1, 12.5},
		{"two thirds", 3, 2, 2, 1, 0, 66.67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Derive(ProductionInput{
				QtePlanifiee:  ptr(tc.planned),
				DecProduction: ptr(tc.produced),
				DecMagasin:    ptr(tc.warehouse),
			})
			assert.Equal(t, tc.wantDelta, d.DeltaProd)
			assert.Equal(t, tc.wantMag, d.DeltaProdMag)
			assert.InDelta(t, tc.wantPct, d.PcsProd, 1e-9)
		})
	}
}

func TestDerive_Idempotent(t *testing.T) {
	inputs := []ProductionInput{
		{},
		{OF: ptr("OF-2024-L04-48-LUNDI"), Emballage: ptr("200")},
		{QtePlanifiee: ptr(7), DecProduction: ptr(3), NbHeuresRealisees: ptr(7.5)},
		{QtePlanifiee: ptr(1000), DecProduction: ptr(999), DecMagasin: ptr(1001), NbOperateurs: ptr(4)},
	}
	for _, in := range inputs {
		once := Derive(in)
		assert.Equal(t, once, Derive(once.Input()))
		assert.Equal(t, once, once.Recalculer())
	}
}

func TestRecalculer_IgnoresStaleDerivedValues(t *testing.T) {
	stale := ProductionData{QtePlanifiee: 200, DecProduction: 150, DeltaProd: 999, PcsProd: 1, DeltaProdMag: 7}
	got := stale.Recalculer()
	assert.Equal(t, 50, got.DeltaProd)
	assert.Equal(t, 75.0, got.PcsProd)
	assert.Equal(t, -150, got.DeltaProdMag)
}

func TestMerge_KeepsUnspecifiedFields(t *testing.T) {
	current := Derive(ProductionInput{
		OF:           ptr("OF-1"),
		QtePlanifiee: ptr(100),
		Emballage:    ptr("carton"),
		NbOperateurs: ptr(3),
	})

	got := Merge(current, ProductionInput{DecProduction: ptr(40)})

	assert.Equal(t, "OF-1", got.OF)
	assert.Equal(t, "carton", got.Emballage)
	assert.Equal(t, 3, got.NbOperateurs)
	assert.Equal(t, 100, got.QtePlanifiee)
	assert.Equal(t, 40, got.DecProduction)
	assert.Equal(t, 60, got.DeltaProd)
	assert.Equal(t, 40.0, got.PcsProd)
	assert.Equal(t, -40, got.DeltaProdMag)
}

func TestMerge_OverEmptySlot(t *testing.T) {
	got := Merge(EmptyProduction(), ProductionInput{QtePlanifiee: ptr(200), DecProduction: ptr(150)})
	assert.Equal(t, 50, got.DeltaProd)
	assert.Equal(t, 75.0, got.PcsProd)
	assert.Equal(t, -150, got.DeltaProdMag)
	assert.Equal(t, 0, got.DecMagasin)
}

func TestPourcentage(t *testing.T) {
	assert.Equal(t, 0.0, Pourcentage(10, 0))
	assert.Equal(t, 0.0, Pourcentage(10, -5))
	assert.Equal(t, 50.0, Pourcentage(150, 300))
	assert.Equal(t, 14.29, Pourcentage(1, 7))
}
