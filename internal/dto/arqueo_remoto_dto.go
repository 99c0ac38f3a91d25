package dto

import (
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArqueoRemotoRequest is the cashier till count: pieces per face value
// ("20000" ... "10") plus free-text notes.
type ArqueoRemotoRequest struct {
	Unidades map[string]calculo.Entrada `json:"unidades"`
	Cambios  string                     `json:"cambios" validate:"max=2000"`
}

type ArqueoRemotoResponse struct {
	ID             uuid.UUID            `json:"id"`
	Fecha          time.Time            `json:"fecha"`
	Cajero         string               `json:"cajero"`
	Denominaciones model.Denominaciones `json:"denominaciones"`
	Total          decimal.Decimal      `json:"total"`
	Cambios        string               `json:"cambios"`
	SavedAt        time.Time            `json:"saved_at"`
	AutoSaved      bool                 `json:"auto_saved"`
	Resumen        string               `json:"resumen"` // "N billetes, M monedas"
}

type BorradorResponse struct {
	Programado bool            `json:"programado"`
	Total      decimal.Decimal `json:"total"`
	EnSegundos int             `json:"en_segundos,omitempty"`
}

// ResumenArqueosRemotos is the admin dashboard header over a filtered list.
type ResumenArqueosRemotos struct {
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
	Ultimo   *time.Time      `json:"ultimo,omitempty"`
}

type FiltroArqueosRemotos struct {
	Cajero string
	Fecha  string // YYYY-MM-DD, day in the server location
}
