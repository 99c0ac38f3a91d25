package dto

import "github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"

type CrearPagoRequest struct {
	Fecha      string          `json:"fecha" validate:"required,datetime=2006-01-02"`
	Cajero     string          `json:"cajero"`
	Proveedor  string          `json:"proveedor"`
	Monto      calculo.Entrada `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
}

type CrearGastoRequest struct {
	Fecha      string          `json:"fecha" validate:"required,datetime=2006-01-02"`
	Cajero     string          `json:"cajero"`
	Item       string          `json:"item"`
	Monto      calculo.Entrada `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
}

// FiltroMovimientos: empty fields do not filter.
type FiltroMovimientos struct {
	Fecha  string
	Cajero string
}

type CatalogoRequest struct {
	Nombre string `json:"nombre"`
}
