package repository

import (
	"context"

	"prodplan/internal/model"

	"gorm.io/gorm"
)

// LigneRepository defines the data access contract for the lines of a week.
type LigneRepository interface {
	// FindByID loads the line with its week and its references.
	FindByID(ctx context.Context, id uint) (*model.SemaineLigne, error)
	FindBySemaineAndNom(ctx context.Context, semaineID uint, nomLigne string) (*model.SemaineLigne, error)
	// SemaineIDOf returns the week a line belongs to.
	SemaineIDOf(ctx context.Context, id uint) (uint, error)
	// ListBySemaine returns the lines of a week with their references.
	ListBySemaine(ctx context.Context, semaineID uint) ([]model.SemaineLigne, error)

	CreateTx(tx *gorm.DB, l *model.SemaineLigne) error
	ListIDsBySemaineTx(tx *gorm.DB, semaineID uint) ([]uint, error)
	DeleteBySemaineTx(tx *gorm.DB, semaineID uint) error
}

type ligneRepo struct{ db *gorm.DB }

func NewLigneRepository(db *gorm.DB) LigneRepository { return &ligneRepo{db: db} }

func (r *ligneRepo) FindByID(ctx context.Context, id uint) (*model.SemaineLigne, error) {
	var l model.SemaineLigne
	err := r.db.WithContext(ctx).
		Preload("Semaine").
		Preload("References", byReference).
		First(&l, id).Error
	return &l, err
}

func (r *ligneRepo) FindBySemaineAndNom(ctx context.Context, semaineID uint, nomLigne string) (*model.SemaineLigne, error) {
	var l model.SemaineLigne
	err := r.db.WithContext(ctx).
		Where("semaine_id = ? AND nom_ligne = ?", semaineID, nomLigne).
		First(&l).Error
	return &l, err
}

func (r *ligneRepo) SemaineIDOf(ctx context.Context, id uint) (uint, error) {
	var l model.SemaineLigne
	err := r.db.WithContext(ctx).Select("id", "semaine_id").First(&l, id).Error
	return l.SemaineID, err
}

func (r *ligneRepo) ListBySemaine(ctx context.Context, semaineID uint) ([]model.SemaineLigne, error) {
	var lignes []model.SemaineLigne
	err := byNomLigne(r.db.WithContext(ctx)).
		Preload("References", byReference).
		Where("semaine_id = ?", semaineID).
		Find(&lignes).Error
	return lignes, err
}

func (r *ligneRepo) CreateTx(tx *gorm.DB, l *model.SemaineLigne) error {
	return tx.Omit("Semaine", "References").Create(l).Error
}

func (r *ligneRepo) ListIDsBySemaineTx(tx *gorm.DB, semaineID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.SemaineLigne{}).Where("semaine_id = ?", semaineID).Pluck("id", &ids).Error
	return ids, err
}

func (r *ligneRepo) DeleteBySemaineTx(tx *gorm.DB, semaineID uint) error {
	return tx.Where("semaine_id = ?", semaineID).Delete(&model.SemaineLigne{}).Error
}
