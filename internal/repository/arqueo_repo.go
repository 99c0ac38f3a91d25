package repository

import (
	"context"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
)

// ArqueoRepository stores the general cash counts (one per date) and the
// per-cashier ones (one per date and cashier). Saving an existing key
// replaces the stored count.
type ArqueoRepository interface {
	SaveGeneral(ctx context.Context, a *model.Arqueo) error
	ListGeneral(ctx context.Context) ([]model.Arqueo, error)
	FindGeneral(ctx context.Context, fecha string) (*model.Arqueo, error)
	DeleteGeneral(ctx context.Context, fecha string) error

	SaveCaja(ctx context.Context, a *model.Arqueo) error
	ListCaja(ctx context.Context) ([]model.Arqueo, error)
	FindCaja(ctx context.Context, fecha, cajero string) (*model.Arqueo, error)
	DeleteCaja(ctx context.Context, fecha, cajero string) error
}

type arqueoRepo struct {
	general *storage.Collection[model.Arqueo]
	caja    *storage.Collection[model.Arqueo]
}

func NewArqueoRepository(store storage.Store) ArqueoRepository {
	less := func(a, b model.Arqueo) bool {
		if a.Fecha != b.Fecha {
			return a.Fecha > b.Fecha
		}
		return a.Cajero < b.Cajero
	}
	return &arqueoRepo{
		general: storage.NewCollection(store, storage.KeyArqueosGeneral, less),
		caja:    storage.NewCollection(store, storage.KeyArqueosCaja, less),
	}
}

func porFecha(fecha string) func(model.Arqueo) bool {
	return func(a model.Arqueo) bool { return a.Fecha == fecha }
}

func porFechaYCajero(fecha, cajero string) func(model.Arqueo) bool {
	return func(a model.Arqueo) bool { return a.Fecha == fecha && a.Cajero == cajero }
}

func (r *arqueoRepo) SaveGeneral(ctx context.Context, a *model.Arqueo) error {
	a.Cajero = ""
	_, err := r.general.Upsert(ctx, *a, porFecha(a.Fecha))
	return err
}

func (r *arqueoRepo) ListGeneral(ctx context.Context) ([]model.Arqueo, error) {
	return r.general.All(ctx)
}

func (r *arqueoRepo) FindGeneral(ctx context.Context, fecha string) (*model.Arqueo, error) {
	return find(ctx, r.general, porFecha(fecha))
}

func (r *arqueoRepo) DeleteGeneral(ctx context.Context, fecha string) error {
	return removeAll(ctx, r.general, porFecha(fecha))
}

func (r *arqueoRepo) SaveCaja(ctx context.Context, a *model.Arqueo) error {
	_, err := r.caja.Upsert(ctx, *a, porFechaYCajero(a.Fecha, a.Cajero))
	return err
}

func (r *arqueoRepo) ListCaja(ctx context.Context) ([]model.Arqueo, error) {
	return r.caja.All(ctx)
}

func (r *arqueoRepo) FindCaja(ctx context.Context, fecha, cajero string) (*model.Arqueo, error) {
	return find(ctx, r.caja, porFechaYCajero(fecha, cajero))
}

func (r *arqueoRepo) DeleteCaja(ctx context.Context, fecha, cajero string) error {
	return removeAll(ctx, r.caja, porFechaYCajero(fecha, cajero))
}

func find(ctx context.Context, col *storage.Collection[model.Arqueo], fn func(model.Arqueo) bool) (*model.Arqueo, error) {
	a, ok, err := col.Find(ctx, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func removeAll(ctx context.Context, col *storage.Collection[model.Arqueo], fn func(model.Arqueo) bool) error {
	n, err := col.RemoveAll(ctx, fn)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
