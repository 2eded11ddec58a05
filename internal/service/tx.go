package service

import (
	"context"
	"errors"

	"prodplan/internal/apierror"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// lookupErr turns a repository lookup failure into notFound when the row is
// missing and into an internal error otherwise.
func lookupErr(err error, notFound *apierror.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apierror.Internal("Erreur lors de la lecture des données", err)
}

// JourInvalide is the error of every day-scoped operation given an unknown day.
func JourInvalide() *apierror.Error {
	return apierror.BadRequest("Jour invalide. Les jours valides sont: %s", joursValides)
}
