package model

import (
	"time"

	"gorm.io/datatypes"
)

// Semaine is a named planning week. Deleting it removes its lines, their
// references and its planifications.
type Semaine struct {
	ID        uint      `gorm:"primaryKey"`
	Nom       string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	DateDebut time.Time `gorm:"type:date;not null"`
	DateFin   time.Time `gorm:"type:date;not null"`
	CreeParID uint      `gorm:"not null;index"`
	CreePar   *Admin    `gorm:"foreignKey:CreeParID"`

	Lignes         []SemaineLigne  `gorm:"foreignKey:SemaineID;constraint:OnDelete:CASCADE"`
	Planifications []Planification `gorm:"foreignKey:SemaineEntityID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Semaine) TableName() string { return "semaines" }

// SemaineLigne is a production line as it exists within one week.
// (SemaineID, NomLigne) is unique.
type SemaineLigne struct {
	ID                uint    `gorm:"primaryKey"`
	SemaineID         uint    `gorm:"not null;uniqueIndex:idx_semaine_ligne_nom"`
	NomLigne          string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_semaine_ligne_nom"`
	ImageURL          *string `gorm:"type:varchar(500)"`
	ImageOriginalName *string `gorm:"type:varchar(255)"`

	Semaine    *Semaine         `gorm:"foreignKey:SemaineID"`
	References []LigneReference `gorm:"foreignKey:SemaineLigneID;constraint:OnDelete:CASCADE"`
}

func (SemaineLigne) TableName() string { return "semaine_lignes" }

// LigneReference is a catalog reference planned on a line for one week.
// Each working day is a JSON column holding a ProductionData.
// Version is bumped on every slot write and guards concurrent updates.
type LigneReference struct {
	ID             uint   `gorm:"primaryKey"`
	SemaineLigneID uint   `gorm:"not null;index"`
	Reference      string `gorm:"type:varchar(100);not null;index"`

	Lundi    datatypes.JSONType[ProductionData] `gorm:"not null"`
	Mardi    datatypes.JSONType[ProductionData] `gorm:"not null"`
	Mercredi datatypes.JSONType[ProductionData] `gorm:"not null"`
	Jeudi    datatypes.JSONType[ProductionData] `gorm:"not null"`
	Vendredi datatypes.JSONType[ProductionData] `gorm:"not null"`
	Samedi   datatypes.JSONType[ProductionData] `gorm:"not null"`

	Version uint `gorm:"not null;default:1"`

	SemaineLigne *SemaineLigne `gorm:"foreignKey:SemaineLigneID"`
}

func (LigneReference) TableName() string { return "ligne_references" }

// NewLigneReference returns a reference with all six slots empty.
func NewLigneReference(semaineLigneID uint, reference string) LigneReference {
	r := LigneReference{SemaineLigneID: semaineLigneID, Reference: reference, Version: 1}
	for _, j := range Jours {
		r.SetJour(j, EmptyProduction())
	}
	return r
}

// Slot wraps d for storage in a day column.
func Slot(d ProductionData) datatypes.JSONType[ProductionData] {
	return datatypes.NewJSONType(d)
}

// Jour returns the stored slot for j, as persisted (not re-derived).
func (r *LigneReference) Jour(j Jour) ProductionData {
	if s := r.slot(j); s != nil {
		return s.Data()
	}
	return EmptyProduction()
}

// SetJour replaces the slot for j. Unknown days are ignored.
func (r *LigneReference) SetJour(j Jour, d ProductionData) {
	if s := r.slot(j); s != nil {
		*s = Slot(d)
	}
}

// Semainier returns every slot re-derived, keyed by day.
func (r *LigneReference) Semainier() map[Jour]ProductionData {
	out := make(map[Jour]ProductionData, len(Jours))
	for _, j := range Jours {
		out[j] = r.Jour(j).Recalculer()
	}
	return out
}

func (r *LigneReference) slot(j Jour) *datatypes.JSONType[ProductionData] {
	switch j {
	case Lundi:
		return &r.Lundi
	case Mardi:
		return &r.Mardi
	case Mercredi:
		return &r.Mercredi
	case Jeudi:
		return &r.Jeudi
	case Vendredi:
		return &r.Vendredi
	case Samedi:
		return &r.Samedi
	}
	return nil
}
