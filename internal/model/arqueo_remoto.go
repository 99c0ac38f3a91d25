package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Denominaciones stores, per face value X, the piece count under "d_X" and the
// amount under "monto_X".
type Denominaciones map[string]int64

// ArqueoRemoto is a cashier till count submitted to the shared store.
// Rows are append-only and read by the admin view.
type ArqueoRemoto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Fecha          time.Time       `gorm:"not null;index"`
	Cajero         string          `gorm:"not null"`
	Denominaciones Denominaciones  `gorm:"serializer:json;type:jsonb"`
	Total          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Cambios        string          // cashier notes
	SavedAt        time.Time       `gorm:"not null"`
	AutoSaved      bool            `gorm:"not null;default:false"`
}

func (ArqueoRemoto) TableName() string { return "arqueos" }
