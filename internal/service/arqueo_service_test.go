package service

import (
	"context"
	"testing"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArqueo_GuardarGeneralResetsReserve(t *testing.T) {
	ctx := context.Background()
	repos, _ := localRepos()
	svc := NewArqueoService(repos.Arqueos, repos.Reserva)

	a, err := svc.GuardarGeneral(ctx, dto.GuardarArqueoRequest{
		Fecha:             "2024-05-10",
		ReservaMontoMayor: "50000",
		Reserva:           map[string]calculo.Entrada{"10000": "2", "20000": "9"},
		CajaChica:         map[string]calculo.Entrada{"500": "3", "10": "-4"},
	})
	require.NoError(t, err)
	assert.True(t, dec(70000).Equal(a.TotalReserva))
	assert.True(t, dec(1500).Equal(a.TotalCajaChica))
	assert.True(t, dec(71500).Equal(a.TotalGeneral))
	assert.Zero(t, a.CajaChica[10], "negative counts become 0")

	r, err := repos.Reserva.Ultima(ctx)
	require.NoError(t, err)
	assert.True(t, dec(71500).Equal(r))

	// same date replaces
	_, err = svc.GuardarGeneral(ctx, dto.GuardarArqueoRequest{Fecha: "2024-05-10", ReservaMontoMayor: "1000"})
	require.NoError(t, err)
	list, err := svc.ListarGeneral(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, dec(1000).Equal(list[0].TotalGeneral))

	got, err := svc.ObtenerGeneral(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.True(t, dec(1000).Equal(got.TotalGeneral))

	require.NoError(t, svc.EliminarGeneral(ctx, "2024-05-10"))
	_, err = svc.ObtenerGeneral(ctx, "2024-05-10")
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.ErrorIs(t, svc.EliminarGeneral(ctx, "2024-05-10"), apierror.ErrNoEncontrado)
}

func TestArqueo_CajaRequiresCajero(t *testing.T) {
	svc := NewArqueoService(nil, nil)
	_, err := svc.GuardarCaja(context.Background(), dto.GuardarArqueoRequest{Fecha: "2024-05-10"})
	require.ErrorIs(t, err, apierror.ErrValidacion)
	assert.EqualError(t, err, "Por favor, selecciona un cajero antes de guardar.")
}

func TestArqueo_CajaPerCashier(t *testing.T) {
	ctx := context.Background()
	repos, _ := localRepos()
	svc := NewArqueoService(repos.Arqueos, repos.Reserva)

	for _, c := range []string{"1", "2", "1"} {
		_, err := svc.GuardarCaja(ctx, dto.GuardarArqueoRequest{
			Fecha: "2024-05-10", Cajero: c, CajaChica: map[string]calculo.Entrada{"1000": "5"},
		})
		require.NoError(t, err)
	}

	all, err := svc.ListarCaja(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "one count per date and cashier")

	uno, err := svc.ListarCaja(ctx, "1")
	require.NoError(t, err)
	require.Len(t, uno, 1)
	assert.Equal(t, "1", uno[0].Cajero)

	r, err := repos.Reserva.Ultima(ctx)
	require.NoError(t, err)
	assert.True(t, r.IsZero(), "till counts never touch the reserve")

	require.NoError(t, svc.EliminarCaja(ctx, "2024-05-10", "2"))
	_, err = svc.ObtenerCaja(ctx, "2024-05-10", "2")
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}
