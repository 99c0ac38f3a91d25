package model

import (
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/shopspring/decimal"
)

// Arqueo is a cash count split in two pools, reserve and petty cash.
// The general count of a date has an empty Cajero; per-cashier counts are
// unique by (Fecha, Cajero). Both are replaced whole on every save.
type Arqueo struct {
	Fecha             string          `json:"fecha"`
	Cajero            string          `json:"cajero,omitempty"`
	ReservaMontoMayor decimal.Decimal `json:"reserva_monto_mayor"`
	Reserva           calculo.Conteo  `json:"reserva"`
	CajaChica         calculo.Conteo  `json:"caja_chica"`

	TotalReserva   decimal.Decimal `json:"total_reserva"`
	TotalCajaChica decimal.Decimal `json:"total_caja_chica"`
	TotalGeneral   decimal.Decimal `json:"total_general"`

	ActualizadoEn time.Time `json:"actualizado_en"`
}
