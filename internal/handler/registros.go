package handler

import (
	"net/http"
	"strconv"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
)

type RegistroHandler struct{ svc service.RegistroService }

func NewRegistroHandler(svc service.RegistroService) *RegistroHandler {
	return &RegistroHandler{svc: svc}
}

// Prefill godoc
// @Summary Valores precargados del registro diario
// @Tags registros
// @Produce json
// @Security BearerAuth
// @Param fecha query string true "Fecha (YYYY-MM-DD)"
// @Param cajero query string false "Caja"
// @Param cierre_caja query string false "Cierre ingresado, para el cuadre fisico"
// @Success 200 {object} dto.PrefillResponse
// @Router /v1/registros/prefill [get]
func (h *RegistroHandler) Prefill(c *gin.Context) {
	var cierre *calculo.Entrada
	if v, ok := c.GetQuery("cierre_caja"); ok {
		e := calculo.Entrada(v)
		cierre = &e
	}
	resp, err := h.svc.Prefill(c.Request.Context(), c.Query("fecha"), c.Query("cajero"), cierre)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Guardar godoc
// @Summary Guarda un registro diario de caja
// @Description Si la diferencia supera el limite o es negativa y no viene confirmado, responde 409 con la alerta sin guardar.
// @Tags registros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarRegistroRequest true "Registro"
// @Success 201 {object} dto.GuardarRegistroResponse
// @Failure 409 {object} dto.GuardarRegistroResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/registros [post]
func (h *RegistroHandler) Guardar(c *gin.Context) {
	var req dto.GuardarRegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	if resp.Pendiente {
		c.JSON(http.StatusConflict, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista los registros diarios
// @Tags registros
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Desde (YYYY-MM-DD)"
// @Param hasta query string false "Hasta (YYYY-MM-DD)"
// @Param cajeros query string false "Cajas separadas por coma"
// @Success 200 {array} model.RegistroDiario
// @Router /v1/registros [get]
func (h *RegistroHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), dto.FiltroRegistros{
		Desde:   c.Query("desde"),
		Hasta:   c.Query("hasta"),
		Cajeros: listaQuery(c, "cajeros"),
	})
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Totales por fecha y cajas
// @Tags registros
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha (YYYY-MM-DD), vacia para todas"
// @Param cajeros query string false "Cajas separadas por coma"
// @Success 200 {object} dto.ResumenResponse
// @Router /v1/registros/resumen [get]
func (h *RegistroHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context(), c.Query("fecha"), listaQuery(c, "cajeros"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un registro diario
// @Tags registros
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/registros/{id} [delete]
func (h *RegistroHandler) Eliminar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}
