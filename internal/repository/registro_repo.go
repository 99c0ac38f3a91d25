package repository

import (
	"context"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
)

type RegistroRepository interface {
	Create(ctx context.Context, r *model.RegistroDiario) error
	List(ctx context.Context) ([]model.RegistroDiario, error)
	Delete(ctx context.Context, id int64) error
}

type registroRepo struct {
	col *storage.Collection[model.RegistroDiario]
	ids *IDGenerator
}

func NewRegistroRepository(store storage.Store, ids *IDGenerator) RegistroRepository {
	return &registroRepo{
		col: storage.NewCollection(store, storage.KeyRegistros, func(a, b model.RegistroDiario) bool {
			if a.Fecha != b.Fecha {
				return a.Fecha > b.Fecha
			}
			return a.ID > b.ID
		}),
		ids: ids,
	}
}

func (r *registroRepo) Create(ctx context.Context, reg *model.RegistroDiario) error {
	reg.ID = r.ids.Next()
	return r.col.Append(ctx, *reg)
}

func (r *registroRepo) List(ctx context.Context) ([]model.RegistroDiario, error) {
	return r.col.All(ctx)
}

func (r *registroRepo) Delete(ctx context.Context, id int64) error {
	ok, err := r.col.RemoveOne(ctx, func(x model.RegistroDiario) bool { return x.ID == id })
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
