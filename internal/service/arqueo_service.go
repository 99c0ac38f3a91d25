package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
)

// ArqueoService manages the reserve counts (general, one per date) and the
// per-till counts (one per date and cashier).
type ArqueoService interface {
	GuardarGeneral(ctx context.Context, req dto.GuardarArqueoRequest) (*model.Arqueo, error)
	ListarGeneral(ctx context.Context) ([]model.Arqueo, error)
	ObtenerGeneral(ctx context.Context, fecha string) (*model.Arqueo, error)
	EliminarGeneral(ctx context.Context, fecha string) error

	GuardarCaja(ctx context.Context, req dto.GuardarArqueoRequest) (*model.Arqueo, error)
	ListarCaja(ctx context.Context, cajero string) ([]model.Arqueo, error)
	ObtenerCaja(ctx context.Context, fecha, cajero string) (*model.Arqueo, error)
	EliminarCaja(ctx context.Context, fecha, cajero string) error
}

type arqueoService struct {
	repo    repository.ArqueoRepository
	reserva repository.ReservaRepository
	now     func() time.Time
}

func NewArqueoService(repo repository.ArqueoRepository, reserva repository.ReservaRepository) ArqueoService {
	return &arqueoService{repo: repo, reserva: reserva, now: time.Now}
}

func (s *arqueoService) construir(req dto.GuardarArqueoRequest, cajero string) *model.Arqueo {
	reserva := calculo.NormalizarConteo(req.Reserva, calculo.DenominacionesArqueo)
	cajaChica := calculo.NormalizarConteo(req.CajaChica, calculo.DenominacionesArqueo)
	mayor := req.ReservaMontoMayor.Monto()
	t := calculo.CalcularTotalesArqueo(mayor, reserva, cajaChica)
	return &model.Arqueo{
		Fecha:             req.Fecha,
		Cajero:            cajero,
		ReservaMontoMayor: mayor,
		Reserva:           reserva,
		CajaChica:         cajaChica,
		TotalReserva:      t.Reserva,
		TotalCajaChica:    t.CajaChica,
		TotalGeneral:      t.General,
		ActualizadoEn:     s.now().UTC(),
	}
}

// ── General ───────────────────────────────────────────────────────────────────

// GuardarGeneral replaces the count of the date and resets the reserve to
// its grand total.
func (s *arqueoService) GuardarGeneral(ctx context.Context, req dto.GuardarArqueoRequest) (*model.Arqueo, error) {
	if err := validarFecha(req.Fecha); err != nil {
		return nil, err
	}
	a := s.construir(req, "")
	if err := s.repo.SaveGeneral(ctx, a); err != nil {
		return nil, err
	}
	if err := s.reserva.Guardar(ctx, a.TotalGeneral.Round(0)); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *arqueoService) ListarGeneral(ctx context.Context) ([]model.Arqueo, error) {
	return s.repo.ListGeneral(ctx)
}

func (s *arqueoService) ObtenerGeneral(ctx context.Context, fecha string) (*model.Arqueo, error) {
	a, err := s.repo.FindGeneral(ctx, fecha)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.NoEncontrado("No hay arqueo para la fecha " + fecha)
	}
	return a, err
}

func (s *arqueoService) EliminarGeneral(ctx context.Context, fecha string) error {
	err := s.repo.DeleteGeneral(ctx, fecha)
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NoEncontrado("No hay arqueo para la fecha " + fecha)
	}
	return err
}

// ── Por caja ──────────────────────────────────────────────────────────────────

func (s *arqueoService) GuardarCaja(ctx context.Context, req dto.GuardarArqueoRequest) (*model.Arqueo, error) {
	cajero := strings.TrimSpace(req.Cajero)
	if cajero == "" {
		return nil, apierror.Validacion("Por favor, selecciona un cajero antes de guardar.")
	}
	if err := validarFecha(req.Fecha); err != nil {
		return nil, err
	}
	a := s.construir(req, cajero)
	if err := s.repo.SaveCaja(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListarCaja lists every till count, or only those of cajero when given.
func (s *arqueoService) ListarCaja(ctx context.Context, cajero string) ([]model.Arqueo, error) {
	all, err := s.repo.ListCaja(ctx)
	if err != nil || cajero == "" {
		return all, err
	}
	out := make([]model.Arqueo, 0, len(all))
	for _, a := range all {
		if a.Cajero == cajero {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *arqueoService) ObtenerCaja(ctx context.Context, fecha, cajero string) (*model.Arqueo, error) {
	a, err := s.repo.FindCaja(ctx, fecha, cajero)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.NoEncontrado("No hay arqueo de " + cajero + " para la fecha " + fecha)
	}
	return a, err
}

func (s *arqueoService) EliminarCaja(ctx context.Context, fecha, cajero string) error {
	err := s.repo.DeleteCaja(ctx, fecha, cajero)
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NoEncontrado("No hay arqueo de " + cajero + " para la fecha " + fecha)
	}
	return err
}
