package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/middleware"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"

	"github.com/gin-gonic/gin"
)

var titulos = map[string]string{
	session.RutaLogin:  "Ingreso",
	session.RutaCajero: "Arqueo de caja",
	session.RutaAdmin:  "Administración",
}

// Pagina applies the route gate to a page and renders its shell. The pages
// are behind OptionalAuth so anonymous visitors reach the gate.
func Pagina(ruta string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := middleware.GetClaims(c).Identidad()
		if dest := session.Destino(ruta, id); dest != "" {
			c.Redirect(http.StatusFound, dest)
			return
		}
		usuario := ""
		if id != nil {
			usuario = id.Nombre
		}
		body := fmt.Sprintf(`<!doctype html>
<html lang="es"><head><meta charset="utf-8"><title>%s</title></head>
<body data-pagina=%q data-usuario=%q><div id="app"></div></body></html>`,
			titulos[ruta], ruta, html.EscapeString(usuario))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	}
}
