package calculo

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// DenominacionesArqueo are the face values counted in the reserve and petty
// cash pools of a cash count.
var DenominacionesArqueo = []int64{10000, 5000, 2000, 1000, 500, 100, 50, 10}

// DenominacionesRemotas are the face values of the cashier till count.
var DenominacionesRemotas = []int64{20000, 10000, 5000, 2000, 1000, 500, 100, 50, 10}

// EsBillete reports whether a face value is a bill; anything below 1000 is a coin.
func EsBillete(valor int64) bool { return valor >= 1000 }

// MaxPiezas caps the pieces of one denomination. Larger quantities are
// clamped so that count × face value and the stored amounts stay exact.
const MaxPiezas int64 = 1_000_000

// Conteo maps a face value to the number of pieces counted.
type Conteo map[int64]int64

// NormalizarConteo projects raw form input keyed by face value ("10000") onto
// the fixed denomination set. Unknown denominations are dropped, negative
// or unparsable quantities become 0 and quantities above MaxPiezas are
// clamped to it.
func NormalizarConteo(raw map[string]Entrada, valores []int64) Conteo {
	c := make(Conteo, len(valores))
	for _, v := range valores {
		c[v] = 0
	}
	for k, e := range raw {
		valor, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		if _, ok := c[valor]; !ok {
			continue
		}
		if n := e.Entero(); n > 0 {
			c[valor] = min(n, MaxPiezas)
		}
	}
	return c
}

// SumarDenominaciones returns Σ quantity × face value over valores.
func SumarDenominaciones(c Conteo, valores []int64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range valores {
		n := c[v]
		if n <= 0 {
			continue
		}
		total = total.Add(Monto(n, v))
	}
	return total
}

// Monto is n pieces of face value v.
func Monto(n, v int64) decimal.Decimal {
	return decimal.NewFromInt(n).Mul(decimal.NewFromInt(v))
}

// Piezas counts bills and coins separately.
func Piezas(c Conteo) (billetes, monedas int64) {
	for v, n := range c {
		if n <= 0 {
			continue
		}
		if EsBillete(v) {
			billetes += n
		} else {
			monedas += n
		}
	}
	return billetes, monedas
}

// TotalesArqueo are the derived totals of a cash count.
type TotalesArqueo struct {
	Reserva   decimal.Decimal
	CajaChica decimal.Decimal
	General   decimal.Decimal
}

// CalcularTotalesArqueo sums both pools. The reserve subtotal includes the
// largest-denomination amount entered by hand.
func CalcularTotalesArqueo(montoMayor decimal.Decimal, reserva, cajaChica Conteo) TotalesArqueo {
	r := montoMayor.Add(SumarDenominaciones(reserva, DenominacionesArqueo))
	cc := SumarDenominaciones(cajaChica, DenominacionesArqueo)
	return TotalesArqueo{Reserva: r, CajaChica: cc, General: r.Add(cc)}
}
