package handler

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
)

type ArqueoHandler struct{ svc service.ArqueoService }

func NewArqueoHandler(svc service.ArqueoService) *ArqueoHandler { return &ArqueoHandler{svc: svc} }

// ── General ───────────────────────────────────────────────────────────────────

// ListarGeneral godoc
// @Summary Lista los arqueos generales
// @Tags arqueos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Arqueo
// @Router /v1/arqueos/general [get]
func (h *ArqueoHandler) ListarGeneral(c *gin.Context) {
	resp, err := h.svc.ListarGeneral(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerGeneral godoc
// @Summary Arqueo general de una fecha
// @Tags arqueos
// @Produce json
// @Security BearerAuth
// @Param fecha path string true "Fecha (YYYY-MM-DD)"
// @Success 200 {object} model.Arqueo
// @Failure 404 {object} apierror.APIError
// @Router /v1/arqueos/general/{fecha} [get]
func (h *ArqueoHandler) ObtenerGeneral(c *gin.Context) {
	resp, err := h.svc.ObtenerGeneral(c.Request.Context(), c.Param("fecha"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarGeneral godoc
// @Summary Guarda (reemplaza) el arqueo general y fija la reserva
// @Tags arqueos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarArqueoRequest true "Conteo"
// @Success 200 {object} model.Arqueo
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/arqueos/general [put]
func (h *ArqueoHandler) GuardarGeneral(c *gin.Context) {
	var req dto.GuardarArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarGeneral(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarGeneral godoc
// @Summary Elimina el arqueo general de una fecha
// @Tags arqueos
// @Security BearerAuth
// @Param fecha path string true "Fecha (YYYY-MM-DD)"
// @Success 204
// @Router /v1/arqueos/general/{fecha} [delete]
func (h *ArqueoHandler) EliminarGeneral(c *gin.Context) {
	if err := h.svc.EliminarGeneral(c.Request.Context(), c.Param("fecha")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Por caja ──────────────────────────────────────────────────────────────────

// ListarCaja godoc
// @Summary Lista los arqueos por caja
// @Tags arqueos
// @Produce json
// @Security BearerAuth
// @Param cajero query string false "Caja"
// @Success 200 {array} model.Arqueo
// @Router /v1/arqueos/caja [get]
func (h *ArqueoHandler) ListarCaja(c *gin.Context) {
	resp, err := h.svc.ListarCaja(c.Request.Context(), c.Query("cajero"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerCaja godoc
// @Summary Arqueo de una caja en una fecha
// @Tags arqueos
// @Produce json
// @Security BearerAuth
// @Param fecha path string true "Fecha (YYYY-MM-DD)"
// @Param cajero path string true "Caja"
// @Success 200 {object} model.Arqueo
// @Failure 404 {object} apierror.APIError
// @Router /v1/arqueos/caja/{fecha}/{cajero} [get]
func (h *ArqueoHandler) ObtenerCaja(c *gin.Context) {
	resp, err := h.svc.ObtenerCaja(c.Request.Context(), c.Param("fecha"), c.Param("cajero"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarCaja godoc
// @Summary Guarda (reemplaza) el arqueo de una caja
// @Tags arqueos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarArqueoRequest true "Conteo"
// @Success 200 {object} model.Arqueo
// @Failure 422 {object} apierror.APIError
// @Router /v1/arqueos/caja [put]
func (h *ArqueoHandler) GuardarCaja(c *gin.Context) {
	var req dto.GuardarArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarCaja(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarCaja godoc
// @Summary Elimina el arqueo de una caja
// @Tags arqueos
// @Security BearerAuth
// @Param fecha path string true "Fecha (YYYY-MM-DD)"
// @Param cajero path string true "Caja"
// @Success 204
// @Router /v1/arqueos/caja/{fecha}/{cajero} [delete]
func (h *ArqueoHandler) EliminarCaja(c *gin.Context) {
	if err := h.svc.EliminarCaja(c.Request.Context(), c.Param("fecha"), c.Param("cajero")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
