package model

import "github.com/shopspring/decimal"

// ProductionData is the content of one day slot of a LigneReference.
// DeltaProd, PcsProd and DeltaProdMag are derived from the inputs; see Derive.
type ProductionData struct {
	OF                string  `json:"of"`
	QtePlanifiee      int     `json:"qtePlanifiee"`
	Emballage         string  `json:"emballage"`
	NbOperateurs      int     `json:"nbOperateurs"`
	NbHeuresRealisees float64 `json:"nbHeuresRealisees"`
	DecProduction     int     `json:"decProduction"`
	DeltaProd         int     `json:"deltaProd"`
	PcsProd           float64 `json:"pcsProd"`
	DecMagasin        int     `json:"decMagasin"`
	DeltaProdMag      int     `json:"deltaProdMag"`
}

// ProductionInput is a partial day slot. A nil field means "not provided".
// Derived fields have no counterpart here: they can never be set by callers.
type ProductionInput struct {
	OF                *string
	QtePlanifiee      *int
	Emballage         *string
	NbOperateurs      *int
	NbHeuresRealisees *float64
	DecProduction     *int
	DecMagasin        *int
}

// Derive builds a complete slot from a partial input. Absent inputs default
// to their zero value and every derived field is recomputed.
//
// Derive is pure and idempotent: Derive(Derive(x).Input()) == Derive(x).
func Derive(in ProductionInput) ProductionData {
	d := ProductionData{
		OF:                value(in.OF),
		QtePlanifiee:      value(in.QtePlanifiee),
		Emballage:         value(in.Emballage),
		NbOperateurs:      value(in.NbOperateurs),
		NbHeuresRealisees: value(in.NbHeuresRealisees),
		DecProduction:     value(in.DecProduction),
		DecMagasin:        value(in.DecMagasin),
	}
	d.DeltaProd = d.QtePlanifiee - d.DecProduction
	d.PcsProd = Pourcentage(int64(d.DecProduction), int64(d.QtePlanifiee))
	d.DeltaProdMag = d.DecMagasin - d.DecProduction
	return d
}

// EmptyProduction is the slot materialized for a reference with no plan yet.
func EmptyProduction() ProductionData {
	return Derive(ProductionInput{})
}

// Input returns the input fields of d, all present.
func (d ProductionData) Input() ProductionInput {
	return ProductionInput{
		OF:                &d.OF,
		QtePlanifiee:      &d.QtePlanifiee,
		Emballage:         &d.Emballage,
		NbOperateurs:      &d.NbOperateurs,
		NbHeuresRealisees: &d.NbHeuresRealisees,
		DecProduction:     &d.DecProduction,
		DecMagasin:        &d.DecMagasin,
	}
}

// Recalculer re-derives d, discarding whatever derived values were stored.
func (d ProductionData) Recalculer() ProductionData {
	return Derive(d.Input())
}

// Merge overlays the provided fields of patch on current and re-derives.
func Merge(current ProductionData, patch ProductionInput) ProductionData {
	in := current.Input()
	if patch.OF != nil {
		in.OF = patch.OF
	}
	if patch.QtePlanifiee != nil {
		in.QtePlanifiee = patch.QtePlanifiee
	}
	if patch.Emballage != nil {
		in.Emballage = patch.Emballage
	}
	if patch.NbOperateurs != nil {
		in.NbOperateurs = patch.NbOperateurs
	}
	if patch.NbHeuresRealisees != nil {
		in.NbHeuresRealisees = patch.NbHeuresRealisees
	}
	if patch.DecProduction != nil {
		in.DecProduction = patch.DecProduction
	}
	if patch.DecMagasin != nil {
		in.DecMagasin = patch.DecMagasin
	}
	return Derive(in)
}

// Pourcentage returns part/total*100 rounded to two decimals, 0 when total <= 0.
func Pourcentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		InexactFloat64()
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
