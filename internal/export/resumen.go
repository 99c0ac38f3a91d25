package export

import (
	"bytes"
	"text/template"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/shopspring/decimal"
)

// Totales aggregates registers for the monthly report.
type Totales struct {
	TotalVentas        decimal.Decimal
	TotalEgresos       decimal.Decimal
	DiferenciaCaja     decimal.Decimal
	VentaEfectivo      decimal.Decimal
	Redelcom           decimal.Decimal
	Edenred            decimal.Decimal
	Transferencias     decimal.Decimal
	Credito            decimal.Decimal
	PagoFacturasCaja   decimal.Decimal
	PagoFacturasCtaCte decimal.Decimal
	Gastos             decimal.Decimal
	RRHH               decimal.Decimal
	Otros              decimal.Decimal
}

func Sumar(registros []model.RegistroDiario) Totales {
	var t Totales
	for _, r := range registros {
		t.TotalVentas = t.TotalVentas.Add(r.TotalVentas)
		t.TotalEgresos = t.TotalEgresos.Add(r.TotalEgresos)
		t.DiferenciaCaja = t.DiferenciaCaja.Add(r.DiferenciaCaja)
		t.VentaEfectivo = t.VentaEfectivo.Add(r.VentaEfectivo)
		t.Redelcom = t.Redelcom.Add(r.Redelcom)
		t.Edenred = t.Edenred.Add(r.Edenred)
		t.Transferencias = t.Transferencias.Add(r.Transferencias)
		t.Credito = t.Credito.Add(r.Credito)
		t.PagoFacturasCaja = t.PagoFacturasCaja.Add(r.PagoFacturasCaja)
		t.PagoFacturasCtaCte = t.PagoFacturasCtaCte.Add(r.PagoFacturasCtaCte)
		t.Gastos = t.Gastos.Add(r.Gastos)
		t.RRHH = t.RRHH.Add(r.RRHH)
		t.Otros = t.Otros.Add(r.Otros)
	}
	return t
}

var resumenTmpl = template.Must(template.New("resumen").Funcs(template.FuncMap{
	"pesos": func(d decimal.Decimal) string { return "$" + d.Round(0).String() },
}).Parse(`Resumen Mensual de Caja - {{.Mes}}/{{.Anio}}
=================================================

RESUMEN GENERAL
---------------------------------
Total Ventas del Mes: {{pesos .T.TotalVentas}}
Total Egresos del Mes: {{pesos .T.TotalEgresos}}
Suma de Diferencias de Caja: {{pesos .T.DiferenciaCaja}}

DESGLOSE DE VENTAS
---------------------------------
Venta en Efectivo: {{pesos .T.VentaEfectivo}}
Mercado Pago: {{pesos .T.Redelcom}}
Edenred: {{pesos .T.Edenred}}
Transferencias: {{pesos .T.Transferencias}}
Crédito: {{pesos .T.Credito}}

DESGLOSE DE EGRESOS
---------------------------------
Pago Facturas (Caja): {{pesos .T.PagoFacturasCaja}}
Pago Facturas (Cta. Cte.): {{pesos .T.PagoFacturasCtaCte}}
Gastos: {{pesos .T.Gastos}}
RRHH: {{pesos .T.RRHH}}
Otros: {{pesos .T.Otros}}

=================================================
Reporte generado el {{.Generado}}
`))

// ResumenMensual renders the plain-text summary of mes (YYYY-MM). The
// registers are expected to be already filtered to that month.
func ResumenMensual(registros []model.RegistroDiario, mes string, generado time.Time) ([]byte, error) {
	m, err := time.Parse("2006-01", mes)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = resumenTmpl.Execute(&buf, map[string]any{
		"Mes":      m.Format("01"),
		"Anio":     m.Format("2006"),
		"T":        Sumar(registros),
		"Generado": generado.Format(FormatoFechaHora),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
