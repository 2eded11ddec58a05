package repository

import (
	"context"
	"errors"

	"prodplan/internal/model"

	"gorm.io/gorm"
)

// SemaineRepository defines the data access contract for weeks.
type SemaineRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Semaine, error)
	FindByNom(ctx context.Context, nom string) (*model.Semaine, error)
	ExistsByNom(ctx context.Context, nom string) (bool, error)

	// List returns every week with its creator and lines, newest first.
	List(ctx context.Context) ([]model.Semaine, error)
	// ListByNomDesc returns every week with its lines, ordered by name descending.
	ListByNomDesc(ctx context.Context) ([]model.Semaine, error)
	// FindComplete loads the whole tree: creator, lines and their references.
	FindComplete(ctx context.Context, id uint) (*model.Semaine, error)

	// Used inside transactions: callers must pass the tx instance
	CreateTx(tx *gorm.DB, s *model.Semaine) error
	DeleteTx(tx *gorm.DB, id uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type semaineRepo struct{ db *gorm.DB }

func NewSemaineRepository(db *gorm.DB) SemaineRepository { return &semaineRepo{db: db} }

func (r *semaineRepo) DB() *gorm.DB { return r.db }

func byNomLigne(db *gorm.DB) *gorm.DB  { return db.Order("nom_ligne ASC, id ASC") }
func byReference(db *gorm.DB) *gorm.DB { return db.Order("reference ASC, id ASC") }

func (r *semaineRepo) FindByID(ctx context.Context, id uint) (*model.Semaine, error) {
	var s model.Semaine
	err := r.db.WithContext(ctx).
		Preload("CreePar").
		Preload("Lignes", byNomLigne).
		First(&s, id).Error
	return &s, err
}

func (r *semaineRepo) FindByNom(ctx context.Context, nom string) (*model.Semaine, error) {
	var s model.Semaine
	err := r.db.WithContext(ctx).Where("nom = ?", nom).First(&s).Error
	return &s, err
}

func (r *semaineRepo) ExistsByNom(ctx context.Context, nom string) (bool, error) {
	_, err := r.FindByNom(ctx, nom)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *semaineRepo) List(ctx context.Context) ([]model.Semaine, error) {
	var semaines []model.Semaine
	err := r.db.WithContext(ctx).
		Preload("CreePar").
		Preload("Lignes", byNomLigne).
		Order("created_at DESC, id DESC").
		Find(&semaines).Error
	return semaines, err
}

func (r *semaineRepo) ListByNomDesc(ctx context.Context) ([]model.Semaine, error) {
	var semaines []model.Semaine
	err := r.db.WithContext(ctx).
		Preload("Lignes", byNomLigne).
		Order("nom DESC").
		Find(&semaines).Error
	return semaines, err
}

func (r *semaineRepo) FindComplete(ctx context.Context, id uint) (*model.Semaine, error) {
	var s model.Semaine
	err := r.db.WithContext(ctx).
		Preload("CreePar").
		Preload("Lignes", byNomLigne).
		Preload("Lignes.References", byReference).
		First(&s, id).Error
	return &s, err
}

func (r *semaineRepo) CreateTx(tx *gorm.DB, s *model.Semaine) error {
	return tx.Omit("CreePar", "Lignes", "Planifications").Create(s).Error
}

func (r *semaineRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Semaine{}, id).Error
}
