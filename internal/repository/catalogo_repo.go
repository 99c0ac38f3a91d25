package repository

import (
	"context"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
)

var proveedoresIniciales = []string{
	"CIGARROS", "PAN LA ABUELA", "MERCADITO", "EMPANADA VIKYS", "EMPANADA LA OMA", "VARIOS", "HIPERKOR",
	"MAYORISTA", "NORKOSHE", "PACEL", "SOBO", "SOPROLE", "ARCOR", "EVERCRISP", "ICB", "SCHWENCKE",
	"CCU", "COCA COLA", "BREDENMASTER", "MINUTI VERDE", "DIMAK", "COLUN", "IDEAL", "MEDICAMENTOS",
	"LLANQUIHUE", "AGROSUPER", "SAVORY", "HUEVOS", "RUNCA", "CUELLO NEGRO / BUNDOR", "HIELO",
	"ESTRELLITA", "PF",
}

var itemsGastoIniciales = []string{"PART TIME", "SUELDOS", "HIPERLIMPIO"}

// CatalogoRepository is a sorted list of names. The first read of an empty
// store writes the initial list.
type CatalogoRepository interface {
	List(ctx context.Context) ([]string, error)
	Save(ctx context.Context, nombres []string) error
}

type catalogoRepo struct {
	col     *storage.Collection[string]
	inicial []string
}

func NewProveedorCatalogo(store storage.Store) CatalogoRepository {
	return newCatalogo(store, storage.KeyProveedores, proveedoresIniciales)
}

func NewItemGastoCatalogo(store storage.Store) CatalogoRepository {
	return newCatalogo(store, storage.KeyItemsGasto, itemsGastoIniciales)
}

func newCatalogo(store storage.Store, key string, inicial []string) *catalogoRepo {
	return &catalogoRepo{
		col:     storage.NewCollection(store, key, func(a, b string) bool { return a < b }),
		inicial: inicial,
	}
}

func (r *catalogoRepo) List(ctx context.Context) ([]string, error) {
	ok, err := r.col.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		seed := append([]string(nil), r.inicial...)
		if err := r.col.Replace(ctx, seed); err != nil {
			return nil, err
		}
	}
	return r.col.All(ctx)
}

func (r *catalogoRepo) Save(ctx context.Context, nombres []string) error {
	return r.col.Replace(ctx, append([]string(nil), nombres...))
}
