package handler

import (
	"net/http"

	"prodplan/internal/dto"
	"prodplan/internal/middleware"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
)

type SemainesHandler struct{ svc service.SemaineService }

func NewSemainesHandler(svc service.SemaineService) *SemainesHandler {
	return &SemainesHandler{svc: svc}
}

// Creer POST /semaines
func (h *SemainesHandler) Creer(c *gin.Context) {
	var req dto.CreerSemaineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CreerSemaine(c.Request.Context(), req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Lister GET /semaines
func (h *SemainesHandler) Lister(c *gin.Context) {
	resp, err := h.svc.ListerSemaines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AvecLignes GET /semaines/all-with-lignes
func (h *SemainesHandler) AvecLignes(c *gin.Context) {
	resp, err := h.svc.SemainesAvecLignes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtenir GET /semaines/:id
func (h *SemainesHandler) Obtenir(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenirSemaine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lignes GET /semaines/:id/lignes
func (h *SemainesHandler) Lignes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.LignesSemaine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Complete GET /semaines/:id/complete
func (h *SemainesHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.SemaineComplete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats GET /semaines/:id/stats
func (h *SemainesHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.StatsSemaine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Supprimer DELETE /semaines/:id
func (h *SemainesHandler) Supprimer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.SupprimerSemaine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// References GET /semaines/lignes/:semaineLigneId/references
func (h *SemainesHandler) References(c *gin.Context) {
	id, ok := parseID(c, "semaineLigneId")
	if !ok {
		return
	}
	resp, err := h.svc.ReferencesLigne(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MettreAJourProduction PATCH /semaines/references/:referenceId/:jour
func (h *SemainesHandler) MettreAJourProduction(c *gin.Context) {
	id, ok := parseID(c, "referenceId")
	if !ok || !checkJour(c, c.Param("jour")) {
		return
	}
	var req dto.UpdateProductionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MettreAJourProduction(c.Request.Context(), id, c.Param("jour"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MettreAJourProductionSimple POST /plan/:jour
func (h *SemainesHandler) MettreAJourProductionSimple(c *gin.Context) {
	if !checkJour(c, c.Param("jour")) {
		return
	}
	var req dto.UpdateProductionSimpleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MettreAJourProductionSimple(c.Request.Context(), c.Param("jour"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
