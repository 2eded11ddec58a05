package repository

import (
	"context"

	"prodplan/internal/model"

	"gorm.io/gorm"
)

// PlanificationFilter narrows a listing. Empty fields are not filtered on.
type PlanificationFilter struct {
	Semaine string
	Ligne   string
	Jour    string
}

type PlanificationRepository interface {
	Create(ctx context.Context, p *model.Planification) error
	FindByID(ctx context.Context, id uint) (*model.Planification, error)
	FindByCle(ctx context.Context, semaine, jour, ligne, reference string) (*model.Planification, error)
	Update(ctx context.Context, p *model.Planification) error
	Delete(ctx context.Context, id uint) error

	// ListAll returns every row with its week, ordered week desc, line, day.
	ListAll(ctx context.Context) ([]model.Planification, error)
	// List returns the rows matching f ordered by line, day, reference.
	List(ctx context.Context, f PlanificationFilter) ([]model.Planification, error)

	DeleteBySemaineTx(tx *gorm.DB, semaineID uint, nom string) error
}

type planificationRepo struct{ db *gorm.DB }

func NewPlanificationRepository(db *gorm.DB) PlanificationRepository {
	return &planificationRepo{db: db}
}

func (r *planificationRepo) Create(ctx context.Context, p *model.Planification) error {
	return r.db.WithContext(ctx).Omit("SemaineEntity").Create(p).Error
}

func (r *planificationRepo) FindByID(ctx context.Context, id uint) (*model.Planification, error) {
	var p model.Planification
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *planificationRepo) FindByCle(ctx context.Context, semaine, jour, ligne, reference string) (*model.Planification, error) {
	var p model.Planification
	err := r.db.WithContext(ctx).
		Where("semaine = ? AND jour = ? AND ligne = ? AND reference = ?", semaine, jour, ligne, reference).
		First(&p).Error
	return &p, err
}

func (r *planificationRepo) Update(ctx context.Context, p *model.Planification) error {
	return r.db.WithContext(ctx).Omit("SemaineEntity").Save(p).Error
}

func (r *planificationRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Planification{}, id).Error
}

func (r *planificationRepo) ListAll(ctx context.Context) ([]model.Planification, error) {
	var rows []model.Planification
	err := r.db.WithContext(ctx).
		Preload("SemaineEntity").
		Order("semaine DESC, ligne ASC, jour ASC, reference ASC").
		Find(&rows).Error
	return rows, err
}

func (r *planificationRepo) List(ctx context.Context, f PlanificationFilter) ([]model.Planification, error) {
	var rows []model.Planification
	q := r.db.WithContext(ctx).Model(&model.Planification{})
	if f.Semaine != "" {
		q = q.Where("semaine = ?", f.Semaine)
	}
	if f.Ligne != "" {
		q = q.Where("ligne = ?", f.Ligne)
	}
	if f.Jour != "" {
		q = q.Where("jour = ?", f.Jour)
	}
	err := q.Order("ligne ASC, jour ASC, reference ASC").Find(&rows).Error
	return rows, err
}

// DeleteBySemaineTx removes the rows bound to the week by id or by name.
func (r *planificationRepo) DeleteBySemaineTx(tx *gorm.DB, semaineID uint, nom string) error {
	return tx.Where("semaine_entity_id = ? OR semaine = ?", semaineID, nom).
		Delete(&model.Planification{}).Error
}
