package handler

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler { return &ExportHandler{svc: svc} }

// Registros godoc
// @Summary Exporta los registros diarios a CSV
// @Tags exportar
// @Produce text/csv
// @Security BearerAuth
// @Param desde query string false "Desde (YYYY-MM-DD)"
// @Param hasta query string false "Hasta (YYYY-MM-DD)"
// @Param mes query string false "Mes (YYYY-MM), tiene prioridad sobre el rango"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/exportar/registros [get]
func (h *ExportHandler) Registros(c *gin.Context) {
	a, err := h.svc.Registros(c.Request.Context(), c.Query("desde"), c.Query("hasta"), c.Query("mes"))
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, a)
}

// Arqueos godoc
// @Summary Exporta los arqueos generales o por caja a CSV
// @Tags exportar
// @Produce text/csv
// @Security BearerAuth
// @Param tipo path string true "general | caja"
// @Success 200 {file} file
// @Router /v1/exportar/arqueos/{tipo} [get]
func (h *ExportHandler) Arqueos(c *gin.Context) {
	a, err := h.svc.Arqueos(c.Request.Context(), c.Param("tipo"))
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, a)
}

// ArqueosRemotos godoc
// @Summary Exporta los arqueos de caja enviados a CSV
// @Tags exportar
// @Produce text/csv
// @Security BearerAuth
// @Param cajero query string false "Cajero"
// @Param fecha query string false "Dia (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /v1/exportar/arqueos-remotos [get]
func (h *ExportHandler) ArqueosRemotos(c *gin.Context) {
	a, err := h.svc.ArqueosRemotos(c.Request.Context(), dto.FiltroArqueosRemotos{
		Cajero: c.Query("cajero"),
		Fecha:  c.Query("fecha"),
	})
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, a)
}

// ResumenMensual godoc
// @Summary Resumen mensual en texto
// @Tags exportar
// @Produce text/plain
// @Security BearerAuth
// @Param mes query string true "Mes (YYYY-MM)"
// @Success 200 {file} file
// @Router /v1/exportar/resumen-mensual [get]
func (h *ExportHandler) ResumenMensual(c *gin.Context) {
	a, err := h.svc.ResumenMensual(c.Request.Context(), c.Query("mes"))
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, a)
}

// EnviarResumen godoc
// @Summary Encola el envio por correo del resumen mensual
// @Tags exportar
// @Accept json
// @Security BearerAuth
// @Param body body dto.EnviarResumenRequest true "Mes y destinatario"
// @Success 202
// @Failure 404 {object} apierror.APIError
// @Router /v1/exportar/resumen-mensual/email [post]
func (h *ExportHandler) EnviarResumen(c *gin.Context) {
	var req dto.EnviarResumenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarResumenMensual(c.Request.Context(), req); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"encolado": true, "mes": req.Mes})
}
