package handler

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArqueoRemotoHandler struct {
	svc    service.ArqueoRemotoService
	export service.ExportService
}

func NewArqueoRemotoHandler(svc service.ArqueoRemotoService, export service.ExportService) *ArqueoRemotoHandler {
	return &ArqueoRemotoHandler{svc: svc, export: export}
}

func uuidParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// Guardar godoc
// @Summary Guarda el arqueo de caja del cajero
// @Tags arqueos-remotos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ArqueoRemotoRequest true "Conteo por denominacion"
// @Success 201 {object} dto.ArqueoRemotoResponse
// @Failure 422 {object} apierror.APIError
// @Failure 502 {object} apierror.APIError
// @Router /v1/arqueos-remotos [post]
func (h *ArqueoRemotoHandler) Guardar(c *gin.Context) {
	var req dto.ArqueoRemotoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarManual(c.Request.Context(), identidad(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Borrador godoc
// @Summary Actualiza el borrador y reprograma el guardado automatico
// @Tags arqueos-remotos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ArqueoRemotoRequest true "Conteo por denominacion"
// @Success 200 {object} dto.BorradorResponse
// @Router /v1/arqueos-remotos/borrador [put]
func (h *ArqueoRemotoHandler) Borrador(c *gin.Context) {
	var req dto.ArqueoRemotoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarBorrador(c.Request.Context(), identidad(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Descartar godoc
// @Summary Cancela el guardado automatico pendiente
// @Tags arqueos-remotos
// @Security BearerAuth
// @Success 204
// @Router /v1/arqueos-remotos/borrador [delete]
func (h *ArqueoRemotoHandler) Descartar(c *gin.Context) {
	h.svc.DescartarBorrador(c.Request.Context(), identidad(c))
	c.Status(http.StatusNoContent)
}

// Listar godoc
// @Summary Lista los arqueos de caja enviados
// @Tags arqueos-remotos
// @Produce json
// @Security BearerAuth
// @Param cajero query string false "Cajero"
// @Param fecha query string false "Dia (YYYY-MM-DD)"
// @Success 200 {array} dto.ArqueoRemotoResponse
// @Router /v1/arqueos-remotos [get]
func (h *ArqueoRemotoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), dto.FiltroArqueosRemotos{
		Cajero: c.Query("cajero"),
		Fecha:  c.Query("fecha"),
	})
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Cantidad, total acumulado y fecha del ultimo arqueo enviado
// @Tags arqueos-remotos
// @Produce json
// @Security BearerAuth
// @Param cajero query string false "Cajero"
// @Param fecha query string false "Dia (YYYY-MM-DD)"
// @Success 200 {object} dto.ResumenArqueosRemotos
// @Router /v1/arqueos-remotos/resumen [get]
func (h *ArqueoRemotoHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context(), dto.FiltroArqueosRemotos{
		Cajero: c.Query("cajero"),
		Fecha:  c.Query("fecha"),
	})
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de un arqueo de caja
// @Tags arqueos-remotos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 200 {object} dto.ArqueoRemotoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/arqueos-remotos/{id} [get]
func (h *ArqueoRemotoHandler) Obtener(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	a, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ArqueoRemotoResponse{
		ID: a.ID, Fecha: a.Fecha, Cajero: a.Cajero, Denominaciones: a.Denominaciones,
		Total: a.Total, Cambios: a.Cambios, SavedAt: a.SavedAt, AutoSaved: a.AutoSaved,
		Resumen: service.ResumenDenominaciones(a.Denominaciones),
	})
}

// Comprobante godoc
// @Summary Comprobante PDF de un arqueo de caja
// @Tags arqueos-remotos
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/arqueos-remotos/{id}/comprobante [get]
func (h *ArqueoRemotoHandler) Comprobante(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	a, err := h.export.Comprobante(c.Request.Context(), id, identidad(c))
	if err != nil {
		responderError(c, err)
		return
	}
	enviarArchivo(c, a)
}
