package dto

import "prodplan/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateProductionRequest is a partial day slot. Derived fields (deltaProd,
// pcsProd, deltaProdMag) have no field here and are dropped on bind.
type UpdateProductionRequest struct {
	OF                *string  `json:"of"                validate:"omitempty,max=100"`
	QtePlanifiee      *int     `json:"qtePlanifiee"      validate:"omitempty,min=0"`
	Emballage         *string  `json:"emballage"         validate:"omitempty,max=100"`
	NbOperateurs      *int     `json:"nbOperateurs"      validate:"omitempty,min=0"`
	NbHeuresRealisees *float64 `json:"nbHeuresRealisees" validate:"omitempty,min=0"`
	DecProduction     *int     `json:"decProduction"     validate:"omitempty,min=0"`
	DecMagasin        *int     `json:"decMagasin"        validate:"omitempty,min=0"`
}

func (r UpdateProductionRequest) ToInput() model.ProductionInput {
	return model.ProductionInput{
		OF:                r.OF,
		QtePlanifiee:      r.QtePlanifiee,
		Emballage:         r.Emballage,
		NbOperateurs:      r.NbOperateurs,
		NbHeuresRealisees: r.NbHeuresRealisees,
		DecProduction:     r.DecProduction,
		DecMagasin:        r.DecMagasin,
	}
}

// UpdateProductionSimpleRequest addresses the slot by natural key.
type UpdateProductionSimpleRequest struct {
	Semaine   string `json:"semaine"   validate:"required,max=50"`
	Ligne     string `json:"ligne"     validate:"required,max=255"`
	Reference string `json:"reference" validate:"required,max=100"`
	UpdateProductionRequest
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductionResponse struct {
	Message string               `json:"message"`
	Data    model.ProductionData `json:"data"`
	Version uint                 `json:"version"`
}

type ProductionSimpleResponse struct {
	Message   string               `json:"message"`
	Semaine   string               `json:"semaine"`
	Ligne     string               `json:"ligne"`
	Reference string               `json:"reference"`
	Data      model.ProductionData `json:"data"`
	Version   uint                 `json:"version"`
}
