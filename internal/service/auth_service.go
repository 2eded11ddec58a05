package service

import (
	"context"
	"errors"
	"time"

	"prodplan/internal/config"
	"prodplan/internal/dto"
	"prodplan/internal/model"
	"prodplan/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is used for every stored password.
const BcryptCost = 12

var ErrIdentifiantsInvalides = errors.New("identifiants invalides")

type AuthService interface {
	LoginAdmin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	LoginUser(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	admins repository.AdminRepository
	users  repository.UserRepository
	cfg    *config.Config
}

func NewAuthService(admins repository.AdminRepository, users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{admins: admins, users: users, cfg: cfg}
}

type compte struct {
	id       uint
	nom      string
	prenom   string
	password string
	actif    bool
	rol      string
}

func (s *authService) LoginAdmin(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	a, err := s.admins.FindByNom(ctx, req.Nom)
	if err != nil {
		return nil, ErrIdentifiantsInvalides
	}
	return s.login(compte{a.ID, a.Nom, a.Prenom, a.Password, a.IsActive, model.RoleAdmin}, req.Password)
}

func (s *authService) LoginUser(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.users.FindByNom(ctx, req.Nom)
	if err != nil {
		return nil, ErrIdentifiantsInvalides
	}
	return s.login(compte{u.ID, u.Nom, u.Prenom, u.Password, u.IsActive, model.RoleUser}, req.Password)
}

func (s *authService) login(c compte, password string) (*dto.LoginResponse, error) {
	if !c.actif {
		return nil, ErrIdentifiantsInvalides
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.password), []byte(password)); err != nil {
		return nil, ErrIdentifiantsInvalides
	}

	token, err := s.generateToken(c, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        dto.CompteResponse{ID: c.id, Nom: c.nom, Prenom: c.prenom, Rol: c.rol},
	}, nil
}

func (s *authService) generateToken(c compte, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": c.id,
		"nom":     c.nom,
		"rol":     c.rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword returns the bcrypt hash stored for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
