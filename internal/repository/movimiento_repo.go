package repository

import (
	"context"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	List(ctx context.Context) ([]model.Pago, error)
	Delete(ctx context.Context, id int64) error
}

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	List(ctx context.Context) ([]model.Gasto, error)
	Delete(ctx context.Context, id int64) error
}

// Both lists read newest date first, newest id first within a date.

type pagoRepo struct {
	col *storage.Collection[model.Pago]
	ids *IDGenerator
}

func NewPagoRepository(store storage.Store, ids *IDGenerator) PagoRepository {
	return &pagoRepo{
		col: storage.NewCollection(store, storage.KeyPagos, func(a, b model.Pago) bool {
			if a.Fecha != b.Fecha {
				return a.Fecha > b.Fecha
			}
			return a.ID > b.ID
		}),
		ids: ids,
	}
}

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	p.ID = r.ids.Next()
	return r.col.Append(ctx, *p)
}

func (r *pagoRepo) List(ctx context.Context) ([]model.Pago, error) { return r.col.All(ctx) }

func (r *pagoRepo) Delete(ctx context.Context, id int64) error {
	ok, err := r.col.RemoveOne(ctx, func(p model.Pago) bool { return p.ID == id })
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

type gastoRepo struct {
	col *storage.Collection[model.Gasto]
	ids *IDGenerator
}

func NewGastoRepository(store storage.Store, ids *IDGenerator) GastoRepository {
	return &gastoRepo{
		col: storage.NewCollection(store, storage.KeyGastos, func(a, b model.Gasto) bool {
			if a.Fecha != b.Fecha {
				return a.Fecha > b.Fecha
			}
			return a.ID > b.ID
		}),
		ids: ids,
	}
}

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	g.ID = r.ids.Next()
	return r.col.Append(ctx, *g)
}

func (r *gastoRepo) List(ctx context.Context) ([]model.Gasto, error) { return r.col.All(ctx) }

func (r *gastoRepo) Delete(ctx context.Context, id int64) error {
	ok, err := r.col.RemoveOne(ctx, func(g model.Gasto) bool { return g.ID == id })
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
