// Package storage persists the local collections of the register: each
// collection is one JSON document stored under a fixed key.
package storage

import (
	"context"
	"errors"
)

// Collection keys.
const (
	KeyRegistros      = "registro_caja_minimarket"
	KeyReserva        = "reserva_general"
	KeyProveedores    = "lista_proveedores"
	KeyPagos          = "registro_pagos"
	KeyItemsGasto     = "lista_gastos_items"
	KeyGastos         = "registro_gastos"
	KeyArqueosGeneral = "registro_arqueo_efectivo"
	KeyArqueosCaja    = "registro_arqueo_caja"
)

// KeysOperativas are the collections wiped by a data reset. The vendor and
// expense-item catalogs survive it.
var KeysOperativas = []string{
	KeyRegistros, KeyReserva, KeyPagos, KeyGastos, KeyArqueosGeneral, KeyArqueosCaja,
}

// ErrNotFound is returned by Get when a key was never written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat key/value store of raw JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
