package model

import "time"

// Roles carried in JWT claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Admin can create and delete weeks and edit plans.
type Admin struct {
	ID        uint   `gorm:"primaryKey"`
	Nom       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Prenom    string `gorm:"type:varchar(50);not null"`
	Password  string `gorm:"not null"` // bcrypt hash
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Admin) TableName() string { return "admins" }

// User is a "chef secteur": read access to the plans.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Nom         string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Prenom      string `gorm:"type:varchar(50);not null"`
	Password    string `gorm:"not null"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedByID *uint
	CreatedBy   *Admin `gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (User) TableName() string { return "users" }
