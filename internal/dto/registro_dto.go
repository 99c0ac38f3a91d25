package dto

import (
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/shopspring/decimal"
)

// GuardarRegistroRequest is the daily register form. Amounts arrive as typed
// and are parsed as whole numbers.
type GuardarRegistroRequest struct {
	Fecha  string `json:"fecha"`
	Cajero string `json:"cajero"`

	SaldoInicial calculo.Entrada `json:"saldo_inicial"`

	VentaEfectivo  calculo.Entrada `json:"venta_efectivo"`
	Redelcom       calculo.Entrada `json:"redelcom"`
	Edenred        calculo.Entrada `json:"edenred"`
	Transferencias calculo.Entrada `json:"transferencias"`
	Credito        calculo.Entrada `json:"credito"`

	PagoFacturasCaja   calculo.Entrada `json:"pago_facturas_caja"`
	PagoFacturasCtaCte calculo.Entrada `json:"pago_facturas_cta_cte"`
	Gastos             calculo.Entrada `json:"gastos"`
	RRHH               calculo.Entrada `json:"rrhh"`
	Otros              calculo.Entrada `json:"otros"`

	CierreCaja     calculo.Entrada `json:"cierre_caja"`
	IngresoReserva calculo.Entrada `json:"ingreso_reserva"`
	RetiroReserva  calculo.Entrada `json:"retiro_reserva"`
	RevisionSaldos string          `json:"revision_saldos" validate:"max=2000"`

	// Confirmado acknowledges a discrepancy alert.
	Confirmado bool `json:"confirmado"`
}

// CalculoRegistro are the derived figures of a register.
type CalculoRegistro struct {
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	TotalEgresos   decimal.Decimal `json:"total_egresos"`
	SaldoContable  decimal.Decimal `json:"saldo_contable"`
	DiferenciaCaja decimal.Decimal `json:"diferencia_caja"`
	ReservaGeneral decimal.Decimal `json:"reserva_general"`
}

// GuardarRegistroResponse is either a saved register or, when Pendiente is
// true, the alert that must be confirmed before saving.
type GuardarRegistroResponse struct {
	Estado    string                `json:"estado"` // guardado | pendiente_confirmacion
	Pendiente bool                  `json:"-"`
	Alerta    *calculo.Alerta       `json:"alerta,omitempty"`
	Calculo   CalculoRegistro       `json:"calculo"`
	Cuadre    *calculo.Cuadre       `json:"cuadre,omitempty"`
	Registro  *model.RegistroDiario `json:"registro,omitempty"`
}

const (
	EstadoGuardado              = "guardado"
	EstadoPendienteConfirmacion = "pendiente_confirmacion"
)

// Bloqueos tells which prefilled fields came from stored data.
type Bloqueos struct {
	PagoFacturasCaja   bool `json:"pago_facturas_caja"`
	PagoFacturasCtaCte bool `json:"pago_facturas_cta_cte"`
	Gastos             bool `json:"gastos"`
	CierreCaja         bool `json:"cierre_caja"`
	Reserva            bool `json:"reserva"` // a general count fixes the reserve
}

type PrefillResponse struct {
	Fecha              string           `json:"fecha"`
	Cajero             string           `json:"cajero"`
	SaldoInicial       decimal.Decimal  `json:"saldo_inicial"`
	PagoFacturasCaja   decimal.Decimal  `json:"pago_facturas_caja"`
	PagoFacturasCtaCte decimal.Decimal  `json:"pago_facturas_cta_cte"`
	Gastos             decimal.Decimal  `json:"gastos"`
	CierreCaja         *decimal.Decimal `json:"cierre_caja,omitempty"`
	Bloqueos           Bloqueos         `json:"bloqueos"`
	ArqueoGeneral      *model.Arqueo    `json:"arqueo_general,omitempty"`
	ArqueoCaja         *model.Arqueo    `json:"arqueo_caja,omitempty"`
	Cuadre             *calculo.Cuadre  `json:"cuadre,omitempty"`
}

// FiltroRegistros narrows the admin listing. Cajeros empty means all.
type FiltroRegistros struct {
	Desde   string
	Hasta   string
	Cajeros []string
}

type ResumenResponse struct {
	Fecha          string          `json:"fecha"`
	Cajeros        []string        `json:"cajeros"`
	Registros      int             `json:"registros"`
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	TotalEgresos   decimal.Decimal `json:"total_egresos"`
	DiferenciaCaja decimal.Decimal `json:"diferencia_caja"`
}
