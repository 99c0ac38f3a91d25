package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/shopspring/decimal"
)

// EsquemaArqueos lays out a cash count: date, optionally the cashier, the
// reserve pool with its subtotal, the petty-cash pool with its subtotal and
// the grand total.
func EsquemaArqueos(conCajero bool) Esquema[model.Arqueo] {
	e := Esquema[model.Arqueo]{
		texto("fecha", func(a model.Arqueo) string { return a.Fecha }),
	}
	if conCajero {
		e = append(e, texto("cajero", func(a model.Arqueo) string { return a.Cajero }))
	}
	e = append(e, numero("reservaMontoMayor", func(a model.Arqueo) decimal.Decimal { return a.ReservaMontoMayor }))
	for _, v := range calculo.DenominacionesArqueo {
		v := v
		e = append(e, texto(fmt.Sprintf("reserva_%d", v), func(a model.Arqueo) string {
			return fmt.Sprint(a.Reserva[v])
		}))
	}
	e = append(e, numero("totalReserva", func(a model.Arqueo) decimal.Decimal { return a.TotalReserva }))
	for _, v := range calculo.DenominacionesArqueo {
		v := v
		e = append(e, texto(fmt.Sprintf("cajaChica_%d", v), func(a model.Arqueo) string {
			return fmt.Sprint(a.CajaChica[v])
		}))
	}
	e = append(e,
		numero("totalCajaChica", func(a model.Arqueo) decimal.Decimal { return a.TotalCajaChica }),
		numero("totalGeneral", func(a model.Arqueo) decimal.Decimal { return a.TotalGeneral }),
	)
	return e
}

func Arqueos(arqueos []model.Arqueo, conCajero bool) ([]byte, error) {
	return CSV(EsquemaArqueos(conCajero), arqueos)
}

// FormatoFechaHora is how remote count timestamps are printed.
const FormatoFechaHora = "02-01-2006 15:04:05"

// EsquemaArqueosRemotos lays out the cashier till counts for the admin.
func EsquemaArqueosRemotos(loc *time.Location) Esquema[model.ArqueoRemoto] {
	e := Esquema[model.ArqueoRemoto]{
		texto("Fecha", func(a model.ArqueoRemoto) string { return a.Fecha.In(loc).Format(FormatoFechaHora) }),
		texto("Cajero", func(a model.ArqueoRemoto) string {
			if a.Cajero == "" {
				return "Desconocido"
			}
			return a.Cajero
		}),
		numero("Total", func(a model.ArqueoRemoto) decimal.Decimal { return a.Total }),
		texto("Observaciones", func(a model.ArqueoRemoto) string { return strings.ReplaceAll(a.Cambios, ";", ",") }),
	}
	for _, v := range calculo.DenominacionesRemotas {
		v := v
		e = append(e, texto(EtiquetaDenominacion(v), func(a model.ArqueoRemoto) string {
			return fmt.Sprint(a.Denominaciones[fmt.Sprintf("d_%d", v)])
		}))
	}
	return e
}

func ArqueosRemotos(arqueos []model.ArqueoRemoto, loc *time.Location) ([]byte, error) {
	return CSV(EsquemaArqueosRemotos(loc), arqueos)
}

// EtiquetaDenominacion names a face value the way it is printed: "Billetes
// $20.000", "Monedas $500".
func EtiquetaDenominacion(v int64) string {
	tipo := "Monedas"
	if calculo.EsBillete(v) {
		tipo = "Billetes"
	}
	return fmt.Sprintf("%s $%s", tipo, Miles(v))
}

// Miles groups thousands with dots: 20000 -> "20.000".
func Miles(n int64) string {
	s := fmt.Sprint(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
