package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/shopspring/decimal"
)

type reg = model.RegistroDiario

// EsquemaRegistros is the fixed 21-column register layout.
var EsquemaRegistros = Esquema[reg]{
	texto("fecha", func(r reg) string { return r.Fecha }),
	texto("cajero", func(r reg) string { return r.Cajero }),
	numero("saldoInicial", func(r reg) decimal.Decimal { return r.SaldoInicial }),
	numero("ventaEfectivo", func(r reg) decimal.Decimal { return r.VentaEfectivo }),
	numero("redelcom", func(r reg) decimal.Decimal { return r.Redelcom }),
	numero("edenred", func(r reg) decimal.Decimal { return r.Edenred }),
	numero("transferencias", func(r reg) decimal.Decimal { return r.Transferencias }),
	numero("credito", func(r reg) decimal.Decimal { return r.Credito }),
	numero("pagoFacturasCaja", func(r reg) decimal.Decimal { return r.PagoFacturasCaja }),
	numero("pagoFacturasCtaCte", func(r reg) decimal.Decimal { return r.PagoFacturasCtaCte }),
	numero("gastos", func(r reg) decimal.Decimal { return r.Gastos }),
	numero("rrhh", func(r reg) decimal.Decimal { return r.RRHH }),
	numero("otros", func(r reg) decimal.Decimal { return r.Otros }),
	numero("cierreCaja", func(r reg) decimal.Decimal { return r.CierreCaja }),
	numero("ingresoReserva", func(r reg) decimal.Decimal { return r.IngresoReserva }),
	numero("retiroReserva", func(r reg) decimal.Decimal { return r.RetiroReserva }),
	texto("revisionSaldos", func(r reg) string {
		if r.RevisionSaldos == "" {
			return "0"
		}
		return r.RevisionSaldos
	}),
	numero("totalVentas", func(r reg) decimal.Decimal { return r.TotalVentas }),
	numero("totalEgresos", func(r reg) decimal.Decimal { return r.TotalEgresos }),
	numero("diferenciaCaja", func(r reg) decimal.Decimal { return r.DiferenciaCaja }),
	numero("reservaGeneral", func(r reg) decimal.Decimal { return r.ReservaGeneral }),
}

func Registros(registros []model.RegistroDiario) ([]byte, error) {
	return CSV(EsquemaRegistros, registros)
}

// FiltrarPorRango keeps registers with desde <= fecha <= hasta. An empty
// bound is open.
func FiltrarPorRango(registros []model.RegistroDiario, desde, hasta string) []model.RegistroDiario {
	out := make([]model.RegistroDiario, 0, len(registros))
	for _, r := range registros {
		if desde != "" && r.Fecha < desde {
			continue
		}
		if hasta != "" && r.Fecha > hasta {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FiltrarPorMes keeps registers of mes (YYYY-MM).
func FiltrarPorMes(registros []model.RegistroDiario, mes string) []model.RegistroDiario {
	out := make([]model.RegistroDiario, 0, len(registros))
	for _, r := range registros {
		if strings.HasPrefix(r.Fecha, mes+"-") {
			out = append(out, r)
		}
	}
	return out
}

func NombreRegistros(hoy time.Time) string {
	return fmt.Sprintf("export_registros_%s.csv", hoy.Format(time.DateOnly))
}

func NombreArqueos(tipo string, hoy time.Time) string {
	return fmt.Sprintf("export_arqueos_%s_%s.csv", tipo, hoy.Format(time.DateOnly))
}

func NombreArqueosRemotos(hoy time.Time) string {
	return fmt.Sprintf("arqueos_export_%s.csv", hoy.Format(time.DateOnly))
}

func NombreResumen(mes string) string {
	return fmt.Sprintf("resumen_mensual_%s.txt", mes)
}
