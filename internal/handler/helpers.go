package handler

import (
	"errors"
	"net/http"
	"strconv"

	"prodplan/internal/apierror"
	"prodplan/internal/middleware"
	"prodplan/internal/model"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails.
// The caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	return bindJSON(c, req) && validateStruct(c, req)
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalide: "+err.Error()))
		return false
	}
	return true
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError writes a service error with the status of its kind.
// Internal causes are logged, never returned.
func respondError(c *gin.Context, err error) {
	status := apierror.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
	}
	c.JSON(status, apierror.New(apierror.Message(err)))
}

// checkJour rejects an unknown day before the body is validated, so a bad
// day is always reported as such.
func checkJour(c *gin.Context, jour string) bool {
	if _, err := model.ParseJour(jour); err != nil {
		respondError(c, service.JourInvalide())
		return false
	}
	return true
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return 0, false
	}
	return uint(id), true
}
