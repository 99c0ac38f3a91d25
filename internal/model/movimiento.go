package model

import "github.com/shopspring/decimal"

// Payment methods of vendor payments and expenses.
const (
	MetodoCaja   = "caja"
	MetodoCtaCte = "cta-cte"
)

// Pago is a vendor invoice paid from the till or charged to the open account.
type Pago struct {
	ID         int64           `json:"id"`
	Fecha      string          `json:"fecha"`
	Cajero     string          `json:"cajero"`
	Proveedor  string          `json:"proveedor"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
}

// Gasto is a non-vendor expense (cleaning supplies, part-time wages, ...).
type Gasto struct {
	ID         int64           `json:"id"`
	Fecha      string          `json:"fecha"`
	Cajero     string          `json:"cajero"`
	Item       string          `json:"item"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
}
