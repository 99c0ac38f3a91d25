package repository

import (
	"context"
	"fmt"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
)

// DatosRepository wipes the operational collections in one call.
type DatosRepository interface {
	Clear(ctx context.Context) error
}

type datosRepo struct{ store storage.Store }

func NewDatosRepository(store storage.Store) DatosRepository { return &datosRepo{store: store} }

func (r *datosRepo) Clear(ctx context.Context) error {
	for _, k := range storage.KeysOperativas {
		if err := r.store.Delete(ctx, k); err != nil {
			return fmt.Errorf("clear %s: %w", k, err)
		}
	}
	return nil
}
