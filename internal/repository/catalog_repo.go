package repository

import (
	"context"

	"prodplan/internal/model"

	"gorm.io/gorm"
)

// CatalogLine is a distinct production line of the catalog with one
// representative image.
type CatalogLine struct {
	Ligne             string
	ImageURL          *string
	ImageOriginalName *string
}

// CatalogRepository is the read side of the product catalog used at week
// creation, plus the bulk load used by the import command.
type CatalogRepository interface {
	// ListDistinctLines returns each line once, ordered by name. The image is
	// the greatest non-null value among the line's products.
	ListDistinctLines(ctx context.Context) ([]CatalogLine, error)
	// ListReferencesForLine returns the distinct references of a line, sorted.
	ListReferencesForLine(ctx context.Context, ligne string) ([]string, error)

	// ReplaceAll swaps the whole catalog for products in one transaction.
	ReplaceAll(ctx context.Context, products []model.Product) error
	Count(ctx context.Context) (int64, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) ListDistinctLines(ctx context.Context) ([]CatalogLine, error) {
	var lines []CatalogLine
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("ligne, MAX(image_url) AS image_url, MAX(image_original_name) AS image_original_name").
		Group("ligne").
		Order("ligne ASC").
		Scan(&lines).Error
	return lines, err
}

func (r *catalogRepo) ListReferencesForLine(ctx context.Context, ligne string) ([]string, error) {
	var refs []string
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("ligne = ?", ligne).
		Distinct().
		Order("reference ASC").
		Pluck("reference", &refs).Error
	return refs, err
}

func (r *catalogRepo) ReplaceAll(ctx context.Context, products []model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.CreateInBatches(products, 500).Error
	})
}

func (r *catalogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}
