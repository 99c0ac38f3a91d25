package dto

import "github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"

// GuardarArqueoRequest is a cash count form. Counts are keyed by face value
// ("10000", "500", ...); unknown keys are ignored.
type GuardarArqueoRequest struct {
	Fecha             string                     `json:"fecha" validate:"required,datetime=2006-01-02"`
	Cajero            string                     `json:"cajero"`
	ReservaMontoMayor calculo.Entrada            `json:"reserva_monto_mayor"`
	Reserva           map[string]calculo.Entrada `json:"reserva"`
	CajaChica         map[string]calculo.Entrada `json:"caja_chica"`
}
