package dto

import (
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VerificarRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

type LoginRequest struct {
	Nombre     string `json:"nombre"`
	Contrasena string `json:"contrasena"`
}

type RegistroUsuarioRequest struct {
	Nombre       string `json:"nombre"`
	Contrasena   string `json:"contrasena"`
	Confirmacion string `json:"confirmacion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VerificarResponse struct {
	Existe    bool           `json:"existe"`
	Siguiente session.Estado `json:"siguiente"`
}

type UsuarioResponse struct {
	ID           string     `json:"id"`
	Nombre       string     `json:"nombre"`
	Rol          string     `json:"rol"`
	UltimoAcceso *time.Time `json:"ultimo_acceso,omitempty"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds, 0 = no expiry
	Usuario     UsuarioResponse `json:"usuario"`
	Inicio      string          `json:"inicio"` // landing page for the role
}
