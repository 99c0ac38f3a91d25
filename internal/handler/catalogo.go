package handler

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves one name list; the router mounts one per catalog.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Listar godoc
// @Summary Lista proveedores o items de gasto
// @Tags catalogos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /v1/proveedores [get]
// @Router /v1/items-gasto [get]
func (h *CatalogoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar godoc
// @Summary Agrega un nombre (se guarda en mayusculas)
// @Tags catalogos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CatalogoRequest true "Nombre"
// @Success 201 {array} string
// @Failure 409 {object} apierror.APIError
// @Router /v1/proveedores [post]
// @Router /v1/items-gasto [post]
func (h *CatalogoHandler) Agregar(c *gin.Context) {
	var req dto.CatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), req.Nombre)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Quitar godoc
// @Summary Quita un nombre
// @Tags catalogos
// @Produce json
// @Security BearerAuth
// @Param nombre query string true "Nombre (puede contener /)"
// @Success 200 {array} string
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/proveedores [delete]
// @Router /v1/items-gasto [delete]
func (h *CatalogoHandler) Quitar(c *gin.Context) {
	resp, err := h.svc.Quitar(c.Request.Context(), c.Query("nombre"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LimpiarDatos godoc
// @Summary Borra todos los datos operativos (los catalogos se conservan)
// @Tags admin
// @Security BearerAuth
// @Success 204
// @Router /v1/datos [delete]
func LimpiarDatos(svc service.DatosService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Limpiar(c.Request.Context()); err != nil {
			responderError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
