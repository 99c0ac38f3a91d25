package handler

import (
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/middleware"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	svc    service.AuthService
	secure bool
}

// NewAuthHandler: secure marks the session cookie Secure (production).
func NewAuthHandler(svc service.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, secure: secure}
}

func (h *AuthHandler) setSesion(c *gin.Context, resp *dto.LoginResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	// ExpiresIn 0 leaves a browser-session cookie, matching a token without exp
	c.SetCookie(middleware.SessionCookie, resp.AccessToken, resp.ExpiresIn, "/", "", h.secure, true)
}

// Verificar godoc
// @Summary Verifica si el nombre de usuario existe
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerificarRequest true "Nombre de usuario"
// @Success 200 {object} dto.VerificarResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/auth/verificar [post]
func (h *AuthHandler) Verificar(c *gin.Context) {
	var req dto.VerificarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	resp, err := h.svc.Verificar(c.Request.Context(), req.Nombre)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.setSesion(c, resp)
	c.JSON(http.StatusOK, resp)
}

// Registro godoc
// @Summary Registra un usuario nuevo e inicia sesion
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegistroUsuarioRequest true "Nombre y contraseña"
// @Success 201 {object} dto.LoginResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/auth/registro [post]
func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.setSesion(c, resp)
	c.JSON(http.StatusCreated, resp)
}

// Logout godoc
// @Summary Cierra la sesion
// @Tags auth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Usuario de la sesion actual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsuarioResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := uuid.Parse(middleware.GetClaims(c).UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
		return
	}
	resp, err := h.svc.Me(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cajeros godoc
// @Summary Lista de cajas disponibles
// @Tags registros
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /v1/cajeros [get]
func Cajeros(lista []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if lista == nil {
			lista = []string{}
		}
		c.JSON(http.StatusOK, lista)
	}
}
