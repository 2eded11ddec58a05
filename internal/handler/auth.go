package handler

import (
	"context"
	"errors"
	"net/http"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// LoginAdmin POST /auth/admin/login
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	h.login(c, h.svc.LoginAdmin)
}

// LoginUser POST /auth/login
func (h *AuthHandler) LoginUser(c *gin.Context) {
	h.login(c, h.svc.LoginUser)
}

type loginFunc func(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

func (h *AuthHandler) login(c *gin.Context, fn loginFunc) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := fn(c.Request.Context(), req)
	if errors.Is(err, service.ErrIdentifiantsInvalides) {
		c.JSON(http.StatusUnauthorized, apierror.New("Nom ou mot de passe incorrect"))
		return
	}
	if err != nil {
		respondError(c, apierror.Internal("Erreur lors de la connexion", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
