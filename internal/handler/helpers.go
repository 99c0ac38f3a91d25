package handler

import (
	"net/http"
	"strings"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/middleware"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		if ves, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ves {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderError attaches err to the context and aborts; middleware.ErrorHandler
// writes the envelope and logs it.
func responderError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// identidad is the caller of an authenticated route.
func identidad(c *gin.Context) session.Identidad {
	if id := middleware.GetClaims(c).Identidad(); id != nil {
		return *id
	}
	return session.Identidad{}
}

// enviarArchivo answers a download.
func enviarArchivo(c *gin.Context, a *dto.Archivo) {
	c.Header("Content-Disposition", `attachment; filename="`+a.Nombre+`"`)
	c.Data(http.StatusOK, a.ContentType, a.Datos)
}

// listaQuery accepts ?k=a,b as well as ?k=a&k=b.
func listaQuery(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
