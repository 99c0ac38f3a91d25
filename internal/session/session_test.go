package session

import (
	"testing"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiguiente_LoginFlow(t *testing.T) {
	e, err := Siguiente(Anonimo, EventoIngresarNombre)
	require.NoError(t, err)
	assert.Equal(t, VerificandoUsuario, e)

	assert.Equal(t, Login, TrasVerificar(true))
	assert.Equal(t, Registro, TrasVerificar(false))

	e, err = Siguiente(Registro, EventoCredencialesOK)
	require.NoError(t, err)
	assert.Equal(t, Autenticado, e)

	e, err = Siguiente(Autenticado, EventoLogout)
	require.NoError(t, err)
	assert.Equal(t, Anonimo, e)
}

func TestSiguiente_Invalid(t *testing.T) {
	e, err := Siguiente(Anonimo, EventoCredencialesOK)
	assert.Error(t, err)
	assert.Equal(t, Anonimo, e)
}

func TestDestino(t *testing.T) {
	admin := &Identidad{Nombre: "jsanz", Rol: model.RolAdmin}
	cajero := &Identidad{Nombre: "Irma", Rol: model.RolCajero}

	cases := []struct {
		ruta string
		id   *Identidad
		want string
	}{
		{RutaRaiz, nil, RutaLogin},
		{RutaRaiz, admin, RutaAdmin},
		{RutaRaiz, cajero, RutaCajero},
		{RutaLogin, nil, ""},
		{RutaLogin, cajero, RutaCajero},
		{RutaLogin, admin, RutaAdmin},
		{RutaCajero, nil, RutaLogin},
		{RutaCajero, cajero, ""},
		{RutaCajero, admin, ""},
		{RutaAdmin, nil, RutaLogin},
		{RutaAdmin, cajero, RutaCajero},
		{RutaAdmin, admin, ""},
		{"/otra", cajero, RutaRaiz},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Destino(tc.ruta, tc.id), "%s as %v", tc.ruta, tc.id)
	}
}
