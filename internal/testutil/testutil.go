// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"prodplan/internal/infra"
	"prodplan/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database living in t.TempDir().
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "prodplan.db")
	db, err := infra.NewDatabase("sqlite", dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedAdmin inserts an active admin named nom.
func SeedAdmin(t *testing.T, db *gorm.DB, nom string) *model.Admin {
	t.Helper()
	a := &model.Admin{Nom: nom, Prenom: "Test", Password: "x", IsActive: true}
	require.NoError(t, db.Create(a).Error)
	return a
}

// SeedCatalog inserts one product per reference, keyed by line.
func SeedCatalog(t *testing.T, db *gorm.DB, lines map[string][]string) {
	t.Helper()
	for ligne, refs := range lines {
		for _, ref := range refs {
			require.NoError(t, db.Create(&model.Product{Reference: ref, Ligne: ligne}).Error)
		}
	}
}

// Date is a UTC midnight date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
