package repository

import (
	"context"
	"errors"

	"prodplan/internal/model"

	"gorm.io/gorm"
)

// referenceBatchSize bounds the rows of one INSERT at fan-out.
const referenceBatchSize = 200

// ErrVersionConflict is returned by UpdateSlot when the row changed since it was read.
var ErrVersionConflict = errors.New("ligne reference modified concurrently")

// ReferenceRepository defines the data access contract for line references.
type ReferenceRepository interface {
	FindByID(ctx context.Context, id uint) (*model.LigneReference, error)
	FindByLigneAndReference(ctx context.Context, semaineLigneID uint, reference string) (*model.LigneReference, error)

	// UpdateSlot persists the j slot of ref if ref.Version is still current,
	// then bumps ref.Version. A stale version yields ErrVersionConflict.
	UpdateSlot(ctx context.Context, ref *model.LigneReference, j model.Jour) error

	CreateBatchTx(tx *gorm.DB, refs []model.LigneReference) error
	DeleteByLignesTx(tx *gorm.DB, semaineLigneIDs []uint) error
}

type referenceRepo struct{ db *gorm.DB }

func NewReferenceRepository(db *gorm.DB) ReferenceRepository { return &referenceRepo{db: db} }

func (r *referenceRepo) FindByID(ctx context.Context, id uint) (*model.LigneReference, error) {
	var ref model.LigneReference
	err := r.db.WithContext(ctx).First(&ref, id).Error
	return &ref, err
}

func (r *referenceRepo) FindByLigneAndReference(ctx context.Context, semaineLigneID uint, reference string) (*model.LigneReference, error) {
	var ref model.LigneReference
	err := r.db.WithContext(ctx).
		Where("semaine_ligne_id = ? AND reference = ?", semaineLigneID, reference).
		Order("id ASC").
		First(&ref).Error
	return &ref, err
}

func (r *referenceRepo) UpdateSlot(ctx context.Context, ref *model.LigneReference, j model.Jour) error {
	if _, err := model.ParseJour(string(j)); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&model.LigneReference{}).
		Where("id = ? AND version = ?", ref.ID, ref.Version).
		Updates(map[string]any{
			j.String(): model.Slot(ref.Jour(j)),
			"version":  gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	ref.Version++
	return nil
}

func (r *referenceRepo) CreateBatchTx(tx *gorm.DB, refs []model.LigneReference) error {
	if len(refs) == 0 {
		return nil
	}
	return tx.Omit("SemaineLigne").CreateInBatches(refs, referenceBatchSize).Error
}

func (r *referenceRepo) DeleteByLignesTx(tx *gorm.DB, semaineLigneIDs []uint) error {
	if len(semaineLigneIDs) == 0 {
		return nil
	}
	return tx.Where("semaine_ligne_id IN ?", semaineLigneIDs).Delete(&model.LigneReference{}).Error
}
