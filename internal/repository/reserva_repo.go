package repository

import (
	"context"
	"errors"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
	"github.com/shopspring/decimal"
)

// ReservaRepository keeps the running reserve balance as a rounded integer.
type ReservaRepository interface {
	Ultima(ctx context.Context) (decimal.Decimal, error)
	Guardar(ctx context.Context, monto decimal.Decimal) error
}

type reservaRepo struct{ store storage.Store }

func NewReservaRepository(store storage.Store) ReservaRepository {
	return &reservaRepo{store: store}
}

// Ultima is 0 when nothing was ever stored.
func (r *reservaRepo) Ultima(ctx context.Context) (decimal.Decimal, error) {
	raw, err := r.store.Get(ctx, storage.KeyReserva)
	if errors.Is(err, storage.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(calculo.ParseEntero(string(raw))), nil
}

func (r *reservaRepo) Guardar(ctx context.Context, monto decimal.Decimal) error {
	return r.store.Set(ctx, storage.KeyReserva, []byte(monto.Round(0).String()))
}
