package handler

import (
	"net/http"

	"prodplan/internal/dto"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanificationsHandler struct{ svc service.PlanificationService }

func NewPlanificationsHandler(svc service.PlanificationService) *PlanificationsHandler {
	return &PlanificationsHandler{svc: svc}
}

// Creer POST /planifications
func (h *PlanificationsHandler) Creer(c *gin.Context) {
	var req dto.CreerPlanificationRequest
	if !bindJSON(c, &req) || !checkJour(c, req.Jour) || !validateStruct(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MettreAJour PATCH /planifications/:id
func (h *PlanificationsHandler) MettreAJour(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualiserPlanificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MettreAJour(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lister GET /planifications
func (h *PlanificationsHandler) Lister(c *gin.Context) {
	resp, err := h.svc.Lister(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ParSemaine GET /planifications/semaine/:semaine
func (h *PlanificationsHandler) ParSemaine(c *gin.Context) {
	resp, err := h.svc.ListerParSemaine(c.Request.Context(), c.Param("semaine"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ParSemaineLigne GET /planifications/semaine/:semaine/ligne/:ligne
func (h *PlanificationsHandler) ParSemaineLigne(c *gin.Context) {
	resp, err := h.svc.ListerParSemaineLigne(c.Request.Context(), c.Param("semaine"), c.Param("ligne"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ParSemaineLigneJour GET /planifications/semaine/:semaine/ligne/:ligne/jour/:jour
func (h *PlanificationsHandler) ParSemaineLigneJour(c *gin.Context) {
	resp, err := h.svc.ListerParSemaineLigneJour(c.Request.Context(), c.Param("semaine"), c.Param("ligne"), c.Param("jour"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats GET /planifications/semaine/:semaine/stats
func (h *PlanificationsHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context(), c.Param("semaine"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Supprimer DELETE /planifications/:id
func (h *PlanificationsHandler) Supprimer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Supprimer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
