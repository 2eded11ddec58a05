package model

import "time"

// Product is an entry of the product catalog. The planner only reads it:
// week creation enumerates its distinct lines and their references.
type Product struct {
	ID                uint    `gorm:"primaryKey"`
	Reference         string  `gorm:"type:varchar(100);not null;index"`
	Ligne             string  `gorm:"type:varchar(255);not null;index"`
	ImageURL          *string `gorm:"type:varchar(500)"`
	ImageOriginalName *string `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Product) TableName() string { return "products" }

// AllModels lists every table managed by AutoMigrate, parents first.
func AllModels() []any {
	return []any{
		&Admin{},
		&User{},
		&Product{},
		&Semaine{},
		&SemaineLigne{},
		&LigneReference{},
		&Planification{},
	}
}
