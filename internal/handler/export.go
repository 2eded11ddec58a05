package handler

import (
	"mime"
	"net/http"

	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Excel GET /semaines/:id/export
func (h *ExportHandler) Excel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	f, filename, err := h.svc.ExporterExcel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", attachment(filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Uint("semaine_id", id).Msg("écriture du classeur interrompue")
	}
}

// Rapport GET /semaines/:id/rapport
func (h *ExportHandler) Rapport(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.svc.RapportPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", attachment(filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// attachment builds a Content-Disposition header. Non-ASCII week names are
// sent as an RFC 2231 filename* parameter.
func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
