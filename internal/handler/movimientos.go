package handler

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
)

type MovimientoHandler struct {
	pagos  service.PagoService
	gastos service.GastoService
}

func NewMovimientoHandler(pagos service.PagoService, gastos service.GastoService) *MovimientoHandler {
	return &MovimientoHandler{pagos: pagos, gastos: gastos}
}

func filtroMovimientos(c *gin.Context) dto.FiltroMovimientos {
	return dto.FiltroMovimientos{Fecha: c.Query("fecha"), Cajero: c.Query("cajero")}
}

// ListarPagos godoc
// @Summary Lista pagos a proveedores
// @Tags movimientos
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha (YYYY-MM-DD)"
// @Param cajero query string false "Caja"
// @Success 200 {array} model.Pago
// @Router /v1/pagos [get]
func (h *MovimientoHandler) ListarPagos(c *gin.Context) {
	resp, err := h.pagos.Listar(c.Request.Context(), filtroMovimientos(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearPago godoc
// @Summary Registra un pago a proveedor
// @Tags movimientos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPagoRequest true "Pago"
// @Success 201 {object} model.Pago
// @Failure 422 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *MovimientoHandler) CrearPago(c *gin.Context) {
	var req dto.CrearPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.pagos.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EliminarPago godoc
// @Summary Elimina un pago
// @Tags movimientos
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Router /v1/pagos/{id} [delete]
func (h *MovimientoHandler) EliminarPago(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.pagos.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarGastos godoc
// @Summary Lista gastos
// @Tags movimientos
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha (YYYY-MM-DD)"
// @Param cajero query string false "Caja"
// @Success 200 {array} model.Gasto
// @Router /v1/gastos [get]
func (h *MovimientoHandler) ListarGastos(c *gin.Context) {
	resp, err := h.gastos.Listar(c.Request.Context(), filtroMovimientos(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearGasto godoc
// @Summary Registra un gasto
// @Tags movimientos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearGastoRequest true "Gasto"
// @Success 201 {object} model.Gasto
// @Failure 422 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *MovimientoHandler) CrearGasto(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.gastos.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MovimientoHandler) EliminarGasto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.gastos.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
