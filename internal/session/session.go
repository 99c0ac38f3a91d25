// Package session models the login flow and the page access rules.
package session

import (
	"fmt"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
)

// Identidad is what an authenticated session remembers about its user.
type Identidad struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

func (i *Identidad) EsAdmin() bool { return i != nil && i.Rol == model.RolAdmin }

// Estado is a step of the login flow.
type Estado string

const (
	Anonimo            Estado = "anonimo"
	VerificandoUsuario Estado = "verificando_usuario"
	Login              Estado = "login"
	Registro           Estado = "registro"
	Autenticado        Estado = "autenticado"
)

// Evento moves the flow between states.
type Evento string

const (
	EventoIngresarNombre Evento = "ingresar_nombre"
	EventoUsuarioExiste  Evento = "usuario_existe"
	EventoUsuarioNuevo   Evento = "usuario_nuevo"
	EventoCredencialesOK Evento = "credenciales_ok"
	EventoVolver         Evento = "volver"
	EventoLogout         Evento = "logout"
)

var transiciones = map[Estado]map[Evento]Estado{
	Anonimo: {
		EventoIngresarNombre: VerificandoUsuario,
	},
	VerificandoUsuario: {
		EventoUsuarioExiste: Login,
		EventoUsuarioNuevo:  Registro,
	},
	Login: {
		EventoCredencialesOK: Autenticado,
		EventoVolver:         Anonimo,
	},
	Registro: {
		EventoCredencialesOK: Autenticado,
		EventoVolver:         Anonimo,
	},
	Autenticado: {
		EventoLogout: Anonimo,
	},
}

// Siguiente returns the state reached from e by ev.
func Siguiente(e Estado, ev Evento) (Estado, error) {
	if next, ok := transiciones[e][ev]; ok {
		return next, nil
	}
	return e, fmt.Errorf("session: transicion invalida %s --%s-->", e, ev)
}

// TrasVerificar resolves the name check step.
func TrasVerificar(existe bool) Estado {
	ev := EventoUsuarioNuevo
	if existe {
		ev = EventoUsuarioExiste
	}
	next, _ := Siguiente(VerificandoUsuario, ev)
	return next
}

// Page routes.
const (
	RutaRaiz   = "/"
	RutaLogin  = "/login"
	RutaCajero = "/cajero"
	RutaAdmin  = "/admin"
)

// Inicio is the landing page of an identity.
func Inicio(id *Identidad) string {
	switch {
	case id == nil:
		return RutaLogin
	case id.EsAdmin():
		return RutaAdmin
	default:
		return RutaCajero
	}
}

// Destino returns where a request for ruta must be redirected, or "" when
// the identity may stay.
func Destino(ruta string, id *Identidad) string {
	switch ruta {
	case RutaRaiz:
		return Inicio(id)
	case RutaLogin:
		if id != nil {
			return Inicio(id)
		}
		return ""
	case RutaCajero:
		if id == nil {
			return RutaLogin
		}
		return ""
	case RutaAdmin:
		if id == nil {
			return RutaLogin
		}
		if !id.EsAdmin() {
			return RutaCajero
		}
		return ""
	}
	return RutaRaiz
}
