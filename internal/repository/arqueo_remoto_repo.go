package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FiltroArqueoRemoto narrows a listing. Zero values mean no filter; Desde is
// inclusive and Hasta exclusive.
type FiltroArqueoRemoto struct {
	Cajero string
	Desde  *time.Time
	Hasta  *time.Time
}

type ArqueoRemotoRepository interface {
	Create(ctx context.Context, a *model.ArqueoRemoto) error
	List(ctx context.Context, f FiltroArqueoRemoto) ([]model.ArqueoRemoto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ArqueoRemoto, error)
}

type arqueoRemotoRepo struct{ db *gorm.DB }

func NewArqueoRemotoRepository(db *gorm.DB) ArqueoRemotoRepository {
	return &arqueoRemotoRepo{db: db}
}

func (r *arqueoRemotoRepo) Create(ctx context.Context, a *model.ArqueoRemoto) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

// List returns the newest counts first.
func (r *arqueoRemotoRepo) List(ctx context.Context, f FiltroArqueoRemoto) ([]model.ArqueoRemoto, error) {
	q := r.db.WithContext(ctx).Model(&model.ArqueoRemoto{})
	if c := strings.TrimSpace(f.Cajero); c != "" {
		q = q.Where("LOWER(cajero) = LOWER(?)", c)
	}
	if f.Desde != nil {
		q = q.Where("fecha >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha < ?", *f.Hasta)
	}
	var out []model.ArqueoRemoto
	err := q.Order("fecha DESC").Find(&out).Error
	return out, err
}

func (r *arqueoRemotoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ArqueoRemoto, error) {
	var a model.ArqueoRemoto
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
