package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreerPlanificationRequest: jour is checked by the service so that an
// unknown day is a 400 with the list of valid days, not a validation error.
type CreerPlanificationRequest struct {
	Semaine       string `json:"semaine"       validate:"required,max=50"`
	Jour          string `json:"jour"          validate:"required"`
	Ligne         string `json:"ligne"         validate:"required,max=255"`
	Reference     string `json:"reference"     validate:"required,max=100"`
	OF            string `json:"of"            validate:"max=100"`
	QtePlanifiee  int    `json:"qtePlanifiee"  validate:"min=0"`
	Emballage     string `json:"emballage"     validate:"max=100"`
	NbOperateurs  int    `json:"nbOperateurs"  validate:"min=0"`
	DecProduction int    `json:"decProduction" validate:"min=0"`
	DecMagasin    int    `json:"decMagasin"    validate:"min=0"`
}

type ActualiserPlanificationRequest struct {
	OF            *string `json:"of"            validate:"omitempty,max=100"`
	QtePlanifiee  *int    `json:"qtePlanifiee"  validate:"omitempty,min=0"`
	Emballage     *string `json:"emballage"     validate:"omitempty,max=100"`
	NbOperateurs  *int    `json:"nbOperateurs"  validate:"omitempty,min=0"`
	DecProduction *int    `json:"decProduction" validate:"omitempty,min=0"`
	DecMagasin    *int    `json:"decMagasin"    validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PlanificationResponse struct {
	ID            uint        `json:"id"`
	Semaine       string      `json:"semaine"`
	Jour          string      `json:"jour"`
	Ligne         string      `json:"ligne"`
	Reference     string      `json:"reference"`
	OF            string      `json:"of"`
	QtePlanifiee  int         `json:"qtePlanifiee"`
	Emballage     string      `json:"emballage"`
	NbOperateurs  int         `json:"nbOperateurs"`
	DecProduction int         `json:"decProduction"`
	DecMagasin    int         `json:"decMagasin"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	SemaineEntity *SemaineRef `json:"semaineEntity,omitempty"`
}

type PlanificationMessageResponse struct {
	Message       string                `json:"message"`
	Planification PlanificationResponse `json:"planification"`
}

type PlanificationsResponse struct {
	Total          int                     `json:"total"`
	Planifications []PlanificationResponse `json:"planifications"`
}

type PlanificationsSemaineResponse struct {
	Semaine        SemaineRef              `json:"semaine"`
	Ligne          string                  `json:"ligne,omitempty"`
	Jour           string                  `json:"jour,omitempty"`
	Planifications []PlanificationResponse `json:"planifications"`
}

type PlanificationCle struct {
	ID        uint   `json:"id"`
	Semaine   string `json:"semaine"`
	Jour      string `json:"jour"`
	Ligne     string `json:"ligne"`
	Reference string `json:"reference"`
}

type PlanificationSupprimeeResponse struct {
	Message       string           `json:"message"`
	Planification PlanificationCle `json:"planification"`
}

// Cumul sums the quantities of a group of planifications.
type Cumul struct {
	Count         int `json:"count"`
	QtePlanifiee  int `json:"qtePlanifiee"`
	DecProduction int `json:"decProduction"`
	DecMagasin    int `json:"decMagasin"`
}

type PlanificationStats struct {
	TotalPlanifications int              `json:"totalPlanifications"`
	TotalQtePlanifiee   int              `json:"totalQtePlanifiee"`
	TotalDecProduction  int              `json:"totalDecProduction"`
	TotalDecMagasin     int              `json:"totalDecMagasin"`
	ParJour             map[string]Cumul `json:"parJour"`
	ParLigne            map[string]Cumul `json:"parLigne"`
}

type PlanificationStatsResponse struct {
	Semaine string             `json:"semaine"`
	Stats   PlanificationStats `json:"stats"`
}
