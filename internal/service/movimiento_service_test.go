package service

import (
	"context"
	"testing"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPago_Crear(t *testing.T) {
	ctx := context.Background()
	repos, _ := localRepos()
	svc := NewPagoService(repos.Pagos)

	p, err := svc.Crear(ctx, dto.CrearPagoRequest{Fecha: "2024-05-10", Cajero: "1", Proveedor: " CCU ", Monto: "4500"})
	require.NoError(t, err)
	assert.Equal(t, model.MetodoCaja, p.MetodoPago, "method defaults to caja")
	assert.Equal(t, "CCU", p.Proveedor)
	assert.NotZero(t, p.ID)

	_, err = svc.Crear(ctx, dto.CrearPagoRequest{Fecha: "2024-05-10", Cajero: "1", Proveedor: "CCU", Monto: "0"})
	require.ErrorIs(t, err, apierror.ErrValidacion)
	assert.EqualError(t, err, "Completa todos los campos.")

	_, err = svc.Crear(ctx, dto.CrearPagoRequest{Fecha: "2024-05-10", Cajero: "1", Proveedor: "CCU", Monto: "10", MetodoPago: "tarjeta"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestPago_ListarEliminar(t *testing.T) {
	ctx := context.Background()
	repos, _ := localRepos()
	svc := NewPagoService(repos.Pagos)

	for _, c := range []struct{ fecha, cajero string }{{"2024-05-10", "1"}, {"2024-05-10", "2"}, {"2024-05-11", "1"}} {
		_, err := svc.Crear(ctx, dto.CrearPagoRequest{Fecha: c.fecha, Cajero: c.cajero, Proveedor: "SOBO", Monto: "100", MetodoPago: model.MetodoCtaCte})
		require.NoError(t, err)
	}

	list, err := svc.Listar(ctx, dto.FiltroMovimientos{Fecha: "2024-05-10"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.Listar(ctx, dto.FiltroMovimientos{Fecha: "2024-05-10", Cajero: "2"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Eliminar(ctx, list[0].ID))
	assert.ErrorIs(t, svc.Eliminar(ctx, list[0].ID), apierror.ErrNoEncontrado)
}

func TestGasto_CrearListar(t *testing.T) {
	ctx := context.Background()
	repos, _ := localRepos()
	svc := NewGastoService(repos.Gastos)

	_, err := svc.Crear(ctx, dto.CrearGastoRequest{Fecha: "2024-05-10", Cajero: "1", Monto: "100"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	g, err := svc.Crear(ctx, dto.CrearGastoRequest{Fecha: "2024-05-10", Cajero: "1", Item: "HIELO", Monto: "2500", MetodoPago: model.MetodoCtaCte})
	require.NoError(t, err)
	assert.Equal(t, model.MetodoCtaCte, g.MetodoPago)

	list, err := svc.Listar(ctx, dto.FiltroMovimientos{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.ErrorIs(t, svc.Eliminar(ctx, 42), apierror.ErrNoEncontrado)
}

func TestCatalogo(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogoService(repository.NewItemGastoCatalogo(storage.NewMemory()), "ítem")

	inicial, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"HIPERLIMPIO", "PART TIME", "SUELDOS"}, inicial)

	list, err := svc.Agregar(ctx, "  agua ")
	require.NoError(t, err)
	assert.Equal(t, []string{"AGUA", "HIPERLIMPIO", "PART TIME", "SUELDOS"}, list)

	_, err = svc.Agregar(ctx, "Agua")
	assert.ErrorIs(t, err, apierror.ErrDuplicado)
	_, err = svc.Agregar(ctx, "   ")
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	list, err = svc.Quitar(ctx, "SUELDOS")
	require.NoError(t, err)
	assert.NotContains(t, list, "SUELDOS")
	_, err = svc.Quitar(ctx, "SUELDOS")
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)

	list, err = svc.Quitar(ctx, "  part time ")
	require.NoError(t, err)
	assert.Equal(t, []string{"AGUA", "HIPERLIMPIO"}, list)
	_, err = svc.Quitar(ctx, " ")
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestDatos_LimpiarKeepsCatalogs(t *testing.T) {
	ctx := context.Background()
	repos, store := localRepos()
	catalogo := NewCatalogoService(repository.NewProveedorCatalogo(store), "proveedor")
	_, err := catalogo.Agregar(ctx, "nuevo")
	require.NoError(t, err)
	_, err = NewPagoService(repos.Pagos).Crear(ctx, dto.CrearPagoRequest{Fecha: "2024-05-10", Cajero: "1", Proveedor: "NUEVO", Monto: "10"})
	require.NoError(t, err)
	require.NoError(t, repos.Reserva.Guardar(ctx, dec(5000)))

	require.NoError(t, NewDatosService(repository.NewDatosRepository(store)).Limpiar(ctx))

	pagos, err := repos.Pagos.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pagos)
	r, err := repos.Reserva.Ultima(ctx)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	proveedores, err := catalogo.Listar(ctx)
	require.NoError(t, err)
	assert.Contains(t, proveedores, "NUEVO")
}
