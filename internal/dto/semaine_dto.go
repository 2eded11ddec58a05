package dto

import (
	"time"

	"prodplan/internal/model"
)

// DateLayout is the wire format of week dates.
const DateLayout = "2006-01-02"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreerSemaineRequest struct {
	Nom       string `json:"nom"       validate:"required,min=1,max=50"`
	DateDebut string `json:"dateDebut" validate:"required,datetime=2006-01-02"`
	DateFin   string `json:"dateFin"   validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MessageResponse struct {
	Message string `json:"message"`
}

type SemaineCreee struct {
	ID              uint   `json:"id"`
	Nom             string `json:"nom"`
	DateDebut       string `json:"dateDebut"`
	DateFin         string `json:"dateFin"`
	TotalLignes     int    `json:"totalLignes"`
	TotalReferences int    `json:"totalReferences"`
}

type SemaineCreeeResponse struct {
	Message string       `json:"message"`
	Semaine SemaineCreee `json:"semaine"`
}

// SemaineRef identifies the week an answer belongs to.
type SemaineRef struct {
	ID        uint   `json:"id"`
	Nom       string `json:"nom,omitempty"`
	DateDebut string `json:"dateDebut,omitempty"`
	DateFin   string `json:"dateFin,omitempty"`
}

type SemaineResume struct {
	ID          uint      `json:"id"`
	Nom         string    `json:"nom"`
	DateDebut   string    `json:"dateDebut"`
	DateFin     string    `json:"dateFin"`
	CreePar     string    `json:"creePar"`
	TotalLignes int       `json:"totalLignes"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SemainesResponse struct {
	Semaines []SemaineResume `json:"semaines"`
}

type CreateurResponse struct {
	ID     uint   `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
}

type SemaineDetailResponse struct {
	ID        uint             `json:"id"`
	Nom       string           `json:"nom"`
	DateDebut string           `json:"dateDebut"`
	DateFin   string           `json:"dateFin"`
	CreePar   CreateurResponse `json:"creePar"`
	Lignes    []LigneResponse  `json:"lignes"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type LigneResponse struct {
	ID                uint    `json:"id"`
	NomLigne          string  `json:"nomLigne"`
	ImageURL          *string `json:"imageUrl"`
	ImageOriginalName *string `json:"imageOriginalName,omitempty"`
}

type SemaineLignesResponse struct {
	Semaine SemaineRef      `json:"semaine"`
	Lignes  []LigneResponse `json:"lignes"`
}

// ReferenceResponse carries the six day slots, always re-derived.
type ReferenceResponse struct {
	ID        uint                 `json:"id"`
	Reference string               `json:"reference"`
	Version   uint                 `json:"version"`
	Lundi     model.ProductionData `json:"lundi"`
	Mardi     model.ProductionData `json:"mardi"`
	Mercredi  model.ProductionData `json:"mercredi"`
	Jeudi     model.ProductionData `json:"jeudi"`
	Vendredi  model.ProductionData `json:"vendredi"`
	Samedi    model.ProductionData `json:"samedi"`
}

// Jour returns the slot of r for j.
func (r ReferenceResponse) Jour(j model.Jour) model.ProductionData {
	switch j {
	case model.Lundi:
		return r.Lundi
	case model.Mardi:
		return r.Mardi
	case model.Mercredi:
		return r.Mercredi
	case model.Jeudi:
		return r.Jeudi
	case model.Vendredi:
		return r.Vendredi
	case model.Samedi:
		return r.Samedi
	}
	return model.ProductionData{}
}

type LigneReferencesResponse struct {
	Semaine    SemaineRef          `json:"semaine"`
	Ligne      LigneResponse       `json:"ligne"`
	References []ReferenceResponse `json:"references"`
}

type LigneComplete struct {
	ID         uint                `json:"id"`
	NomLigne   string              `json:"nomLigne"`
	ImageURL   *string             `json:"imageUrl"`
	References []ReferenceResponse `json:"references"`
}

type SemaineCompleteResponse struct {
	ID        uint            `json:"id"`
	Nom       string          `json:"nom"`
	DateDebut string          `json:"dateDebut"`
	DateFin   string          `json:"dateFin"`
	CreePar   string          `json:"creePar"`
	Lignes    []LigneComplete `json:"lignes"`
}

type SemaineAvecLignes struct {
	ID          uint            `json:"id"`
	Nom         string          `json:"nom"`
	DateDebut   string          `json:"dateDebut"`
	DateFin     string          `json:"dateFin"`
	TotalLignes int             `json:"totalLignes"`
	Lignes      []LigneResponse `json:"lignes"`
}

type SemainesAvecLignesResponse struct {
	Semaines []SemaineAvecLignes `json:"semaines"`
}

type SemaineStatsResponse struct {
	Semaine            string  `json:"semaine"`
	TotalLignes        int     `json:"totalLignes"`
	TotalReferences    int     `json:"totalReferences"`
	TotalQtePlanifiee  int     `json:"totalQtePlanifiee"`
	TotalDecProduction int     `json:"totalDecProduction"`
	TotalDecMagasin    int     `json:"totalDecMagasin"`
	TauxRealisation    float64 `json:"tauxRealisation"`
}
