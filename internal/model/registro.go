package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistroDiario is one till closing for a cashier and date. Several may
// exist for the same pair; they are appended and never edited.
type RegistroDiario struct {
	ID     int64  `json:"id"`
	Fecha  string `json:"fecha"` // YYYY-MM-DD
	Cajero string `json:"cajero"`

	SaldoInicial decimal.Decimal `json:"saldo_inicial"`

	// Sales per payment channel. "redelcom" is shown as Mercado Pago.
	VentaEfectivo  decimal.Decimal `json:"venta_efectivo"`
	Redelcom       decimal.Decimal `json:"redelcom"`
	Edenred        decimal.Decimal `json:"edenred"`
	Transferencias decimal.Decimal `json:"transferencias"`
	Credito        decimal.Decimal `json:"credito"`

	PagoFacturasCaja   decimal.Decimal `json:"pago_facturas_caja"`
	PagoFacturasCtaCte decimal.Decimal `json:"pago_facturas_cta_cte"`
	Gastos             decimal.Decimal `json:"gastos"`
	RRHH               decimal.Decimal `json:"rrhh"`
	Otros              decimal.Decimal `json:"otros"`

	CierreCaja     decimal.Decimal `json:"cierre_caja"`
	IngresoReserva decimal.Decimal `json:"ingreso_reserva"`
	RetiroReserva  decimal.Decimal `json:"retiro_reserva"`
	RevisionSaldos string          `json:"revision_saldos"`

	// Derived at save time
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	TotalEgresos   decimal.Decimal `json:"total_egresos"`
	DiferenciaCaja decimal.Decimal `json:"diferencia_caja"`
	ReservaGeneral decimal.Decimal `json:"reserva_general"`

	Timestamp time.Time `json:"timestamp"`
}
