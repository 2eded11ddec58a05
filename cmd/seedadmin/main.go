// seedadmin creates or updates an admin or chef-secteur account.
// Usage: go run ./cmd/seedadmin -nom admin -prenom Jean -password secret [-role user]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"prodplan/internal/config"
	"prodplan/internal/infra"
	"prodplan/internal/model"
	"prodplan/internal/repository"
	"prodplan/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	nom := flag.String("nom", "", "login name")
	prenom := flag.String("prenom", "", "first name")
	password := flag.String("password", "", "plain password, hashed with bcrypt")
	role := flag.String("role", model.RoleAdmin, "admin | user")
	flag.Parse()

	if *nom == "" || len(*password) < 4 {
		flag.Usage()
		os.Exit(2)
	}
	if *role != model.RoleAdmin && *role != model.RoleUser {
		log.Fatal().Str("role", *role).Msg("role must be admin or user")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	ctx := context.Background()
	if *role == model.RoleAdmin {
		err = upsertAdmin(ctx, repository.NewAdminRepository(db), *nom, *prenom, hash)
	} else {
		err = upsertUser(ctx, repository.NewUserRepository(db), *nom, *prenom, hash)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	fmt.Printf("Compte %s %q créé/mis à jour\n", *role, *nom)
}

func upsertAdmin(ctx context.Context, repo repository.AdminRepository, nom, prenom, hash string) error {
	a, err := repo.FindByNom(ctx, nom)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.Create(ctx, &model.Admin{Nom: nom, Prenom: prenom, Password: hash, IsActive: true})
	}
	if err != nil {
		return err
	}
	a.Password = hash
	a.IsActive = true
	if prenom != "" {
		a.Prenom = prenom
	}
	return repo.Update(ctx, a)
}

func upsertUser(ctx context.Context, repo repository.UserRepository, nom, prenom, hash string) error {
	u, err := repo.FindByNom(ctx, nom)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.Create(ctx, &model.User{Nom: nom, Prenom: prenom, Password: hash, IsActive: true})
	}
	if err != nil {
		return err
	}
	u.Password = hash
	u.IsActive = true
	if prenom != "" {
		u.Prenom = prenom
	}
	return repo.Update(ctx, u)
}
