package repository

import (
	"context"

	"prodplan/internal/model"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, a *model.Admin) error
	FindByNom(ctx context.Context, nom string) (*model.Admin, error)
	FindByID(ctx context.Context, id uint) (*model.Admin, error)
	Update(ctx context.Context, a *model.Admin) error
}

type adminRepo struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) AdminRepository { return &adminRepo{db: db} }

func (r *adminRepo) Create(ctx context.Context, a *model.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *adminRepo) FindByNom(ctx context.Context, nom string) (*model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).Where("nom = ?", nom).First(&a).Error
	return &a, err
}

func (r *adminRepo) FindByID(ctx context.Context, id uint) (*model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *adminRepo) Update(ctx context.Context, a *model.Admin) error {
	return r.db.WithContext(ctx).Save(a).Error
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByNom(ctx context.Context, nom string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(u).Error
}

func (r *userRepo) FindByNom(ctx context.Context, nom string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("nom = ?", nom).First(&u).Error
	return &u, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Save(u).Error
}
