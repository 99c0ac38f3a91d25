package calculo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Registro carries the parsed inputs of a daily register.
type Registro struct {
	SaldoInicial decimal.Decimal

	VentaEfectivo  decimal.Decimal
	MercadoPago    decimal.Decimal
	Edenred        decimal.Decimal
	Transferencias decimal.Decimal
	Credito        decimal.Decimal

	PagoFacturasCaja   decimal.Decimal
	PagoFacturasCtaCte decimal.Decimal
	Gastos             decimal.Decimal
	RRHH               decimal.Decimal
	Otros              decimal.Decimal

	CierreCaja     decimal.Decimal
	IngresoReserva decimal.Decimal
	RetiroReserva  decimal.Decimal
}

func (r Registro) TotalVentas() decimal.Decimal {
	return decimal.Sum(r.VentaEfectivo, r.MercadoPago, r.Edenred, r.Transferencias, r.Credito)
}

func (r Registro) TotalEgresos() decimal.Decimal {
	return decimal.Sum(r.PagoFacturasCaja, r.PagoFacturasCtaCte, r.Gastos, r.RRHH, r.Otros)
}

// SaldoContable is the cash the till should hold. Reserve movements move
// cash in or out of the till but are neither sales nor expenses.
func (r Registro) SaldoContable() decimal.Decimal {
	return r.SaldoInicial.
		Add(r.VentaEfectivo).
		Add(r.RetiroReserva).
		Sub(r.PagoFacturasCaja).
		Sub(r.Gastos).
		Sub(r.RRHH).
		Sub(r.IngresoReserva)
}

// DiferenciaCaja is positive on a surplus (sobrante) and negative on a
// shortage (faltante).
func (r Registro) DiferenciaCaja() decimal.Decimal {
	return r.CierreCaja.Sub(r.SaldoContable())
}

// ReservaCalculada carries the reserve forward. A general cash count for the
// same date overrides the carried value.
func ReservaCalculada(ultima decimal.Decimal, arqueoGeneral *decimal.Decimal, ingreso, retiro decimal.Decimal) decimal.Decimal {
	if arqueoGeneral != nil {
		return *arqueoGeneral
	}
	return ultima.Add(ingreso).Sub(retiro)
}

type TipoAlerta string

const (
	AlertaSuperaLimite TipoAlerta = "supera_limite"
	AlertaNegativa     TipoAlerta = "negativa"
)

// Alerta flags a discrepancy that needs explicit confirmation before saving.
type Alerta struct {
	Tipo    TipoAlerta `json:"tipo"`
	Mensaje string     `json:"mensaje"`
}

// EvaluarDiferencia returns nil when the discrepancy is within tolerance.
func EvaluarDiferencia(diferencia, limite decimal.Decimal) *Alerta {
	if diferencia.Abs().GreaterThan(limite) {
		return &Alerta{
			Tipo:    AlertaSuperaLimite,
			Mensaje: fmt.Sprintf("Diferencia de caja de $%s. Supera el límite de $%s.", diferencia.Round(0), limite.Round(0)),
		}
	}
	if diferencia.IsNegative() {
		return &Alerta{
			Tipo:    AlertaNegativa,
			Mensaje: fmt.Sprintf("Diferencia negativa de caja de $%s.", diferencia.Round(0)),
		}
	}
	return nil
}

type EstadoCuadre string

const (
	Cuadrado    EstadoCuadre = "cuadrado"
	Descuadrado EstadoCuadre = "descuadrado"
)

// Cuadre compares the entered closing total against an independent physical count.
type Cuadre struct {
	Delta  decimal.Decimal `json:"delta"`
	Estado EstadoCuadre    `json:"estado"`
}

// CuadreFisico is informational only and never blocks a save.
func CuadreFisico(cierre, totalArqueo, tolerancia decimal.Decimal) Cuadre {
	delta := cierre.Sub(totalArqueo)
	estado := Cuadrado
	if delta.Abs().GreaterThan(tolerancia) {
		estado = Descuadrado
	}
	return Cuadre{Delta: delta, Estado: estado}
}
