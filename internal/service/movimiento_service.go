package service

import (
	"context"
	"errors"
	"strings"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
)

const msgIncompleto = "Completa todos los campos."

func validarMetodo(m string) (string, error) {
	switch m {
	case "":
		return model.MetodoCaja, nil
	case model.MetodoCaja, model.MetodoCtaCte:
		return m, nil
	}
	return "", apierror.Validacion("Método de pago inválido: use caja o cta-cte")
}

func coincide(f dto.FiltroMovimientos, fecha, cajero string) bool {
	return (f.Fecha == "" || f.Fecha == fecha) && (f.Cajero == "" || f.Cajero == cajero)
}

// ── Pagos a proveedores ───────────────────────────────────────────────────────

type PagoService interface {
	Crear(ctx context.Context, req dto.CrearPagoRequest) (*model.Pago, error)
	Listar(ctx context.Context, f dto.FiltroMovimientos) ([]model.Pago, error)
	Eliminar(ctx context.Context, id int64) error
}

type pagoService struct{ repo repository.PagoRepository }

func NewPagoService(repo repository.PagoRepository) PagoService { return &pagoService{repo: repo} }

func (s *pagoService) Crear(ctx context.Context, req dto.CrearPagoRequest) (*model.Pago, error) {
	monto := req.Monto.Monto()
	if strings.TrimSpace(req.Cajero) == "" || strings.TrimSpace(req.Proveedor) == "" || !monto.IsPositive() {
		return nil, apierror.Validacion(msgIncompleto)
	}
	metodo, err := validarMetodo(req.MetodoPago)
	if err != nil {
		return nil, err
	}
	p := &model.Pago{
		Fecha:      req.Fecha,
		Cajero:     strings.TrimSpace(req.Cajero),
		Proveedor:  strings.TrimSpace(req.Proveedor),
		Monto:      monto,
		MetodoPago: metodo,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *pagoService) Listar(ctx context.Context, f dto.FiltroMovimientos) ([]model.Pago, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Pago, 0, len(all))
	for _, p := range all {
		if coincide(f, p.Fecha, p.Cajero) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *pagoService) Eliminar(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NoEncontrado("Pago no encontrado")
	}
	return err
}

// ── Gastos ────────────────────────────────────────────────────────────────────

type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*model.Gasto, error)
	Listar(ctx context.Context, f dto.FiltroMovimientos) ([]model.Gasto, error)
	Eliminar(ctx context.Context, id int64) error
}

type gastoService struct{ repo repository.GastoRepository }

func NewGastoService(repo repository.GastoRepository) GastoService { return &gastoService{repo: repo} }

func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*model.Gasto, error) {
	monto := req.Monto.Monto()
	if strings.TrimSpace(req.Cajero) == "" || strings.TrimSpace(req.Item) == "" || !monto.IsPositive() {
		return nil, apierror.Validacion(msgIncompleto)
	}
	metodo, err := validarMetodo(req.MetodoPago)
	if err != nil {
		return nil, err
	}
	g := &model.Gasto{
		Fecha:      req.Fecha,
		Cajero:     strings.TrimSpace(req.Cajero),
		Item:       strings.TrimSpace(req.Item),
		Monto:      monto,
		MetodoPago: metodo,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *gastoService) Listar(ctx context.Context, f dto.FiltroMovimientos) ([]model.Gasto, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Gasto, 0, len(all))
	for _, g := range all {
		if coincide(f, g.Fecha, g.Cajero) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *gastoService) Eliminar(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NoEncontrado("Gasto no encontrado")
	}
	return err
}
