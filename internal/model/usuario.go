package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolAdmin  = "admin"
	RolCajero = "cajero"
)

// Usuario is a login identity. Nombre is unique ignoring case and Rol is
// fixed at registration.
type Usuario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre         string    `gorm:"not null"`
	ContrasenaHash string    `gorm:"column:contrasena_hash;not null"`
	Rol            string    `gorm:"type:varchar(20);not null"`
	UltimoAcceso   *time.Time
	CreatedAt      time.Time
}

func (Usuario) TableName() string { return "usuarios" }
