package model

import "time"

// EmballageParDefaut is applied to planifications created without packaging.
const EmballageParDefaut = "200"

// Planification is a denormalized planning row keyed by
// (Semaine, Jour, Ligne, Reference). It lives beside the
// SemaineLigne/LigneReference tree and carries no derived fields.
type Planification struct {
	ID            uint   `gorm:"primaryKey"`
	Semaine       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_planification_cle"`
	Jour          string `gorm:"type:varchar(20);not null;uniqueIndex:idx_planification_cle"`
	Ligne         string `gorm:"type:varchar(255);not null;uniqueIndex:idx_planification_cle"`
	Reference     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_planification_cle"`
	OF            string `gorm:"column:ordre_fabrication;type:varchar(100);not null;default:''"`
	QtePlanifiee  int    `gorm:"not null;default:0"`
	Emballage     string `gorm:"type:varchar(100);not null;default:'200'"`
	NbOperateurs  int    `gorm:"not null;default:0"`
	DecProduction int    `gorm:"not null;default:0"`
	DecMagasin    int    `gorm:"not null;default:0"`

	SemaineEntityID uint     `gorm:"not null;index"`
	SemaineEntity   *Semaine `gorm:"foreignKey:SemaineEntityID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Planification) TableName() string { return "planifications" }
