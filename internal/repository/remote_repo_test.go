package repository

import (
	"context"
	"testing"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Usuario{}, &model.ArqueoRemoto{}))
	return db
}

func TestUsuarioRepository_FindByNombreIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := NewUsuarioRepository(newTestDB(t))

	u := &model.Usuario{Nombre: "Jacqueline", ContrasenaHash: "x", Rol: model.RolCajero}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)

	got, err := repo.FindByNombre(ctx, "  jACQUELINE ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByNombre(ctx, "Jacq")
	assert.ErrorIs(t, err, ErrNotFound, "match is exact, not a prefix")
}

func TestUsuarioRepository_CreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX idx_usuarios_nombre_lower ON usuarios (LOWER(nombre))").Error)
	repo := NewUsuarioRepository(db)

	require.NoError(t, repo.Create(ctx, &model.Usuario{Nombre: "Gabriel", ContrasenaHash: "x", Rol: model.RolCajero}))
	err := repo.Create(ctx, &model.Usuario{Nombre: "GABRIEL", ContrasenaHash: "y", Rol: model.RolCajero})
	assert.ErrorIs(t, err, ErrDuplicado)
}

func TestUsuarioRepository_TouchUltimoAcceso(t *testing.T) {
	ctx := context.Background()
	repo := NewUsuarioRepository(newTestDB(t))
	u := &model.Usuario{Nombre: "Irma", ContrasenaHash: "x", Rol: model.RolCajero}
	require.NoError(t, repo.Create(ctx, u))
	assert.Nil(t, u.UltimoAcceso)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchUltimoAcceso(ctx, u.ID, at))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UltimoAcceso)
	assert.True(t, got.UltimoAcceso.Equal(at))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArqueoRemotoRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewArqueoRemotoRepository(newTestDB(t))

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.ArqueoRemoto{
		{Fecha: day.Add(9 * time.Hour), Cajero: "Gabriel", Total: decimal.NewFromInt(1000), Denominaciones: model.Denominaciones{"d_1000": 1, "monto_1000": 1000}},
		{Fecha: day.Add(18 * time.Hour), Cajero: "gabriel", Total: decimal.NewFromInt(2000), AutoSaved: true},
		{Fecha: day.Add(30 * time.Hour), Cajero: "Irma", Total: decimal.NewFromInt(3000)},
	}
	for i := range rows {
		rows[i].SavedAt = rows[i].Fecha
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	all, err := repo.List(ctx, FiltroArqueoRemoto{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Irma", all[0].Cajero, "newest first")

	desde, hasta := day, day.Add(24*time.Hour)
	delDia, err := repo.List(ctx, FiltroArqueoRemoto{Cajero: "GABRIEL", Desde: &desde, Hasta: &hasta})
	require.NoError(t, err)
	require.Len(t, delDia, 2)
	assert.True(t, delDia[0].AutoSaved)

	got, err := repo.FindByID(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Denominaciones["monto_1000"])
	assert.True(t, got.Total.Equal(decimal.NewFromInt(1000)))
}
