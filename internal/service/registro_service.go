package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/metrics"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type RegistroService interface {
	Prefill(ctx context.Context, fecha, cajero string, cierre *calculo.Entrada) (*dto.PrefillResponse, error)
	Guardar(ctx context.Context, req dto.GuardarRegistroRequest) (*dto.GuardarRegistroResponse, error)
	Listar(ctx context.Context, f dto.FiltroRegistros) ([]model.RegistroDiario, error)
	Resumen(ctx context.Context, fecha string, cajeros []string) (*dto.ResumenResponse, error)
	Eliminar(ctx context.Context, id int64) error
}

// RegistroRepos groups the collections a daily register reads.
type RegistroRepos struct {
	Registros repository.RegistroRepository
	Reserva   repository.ReservaRepository
	Pagos     repository.PagoRepository
	Gastos    repository.GastoRepository
	Arqueos   repository.ArqueoRepository
}

type registroService struct {
	repos      RegistroRepos
	limite     decimal.Decimal
	tolerancia decimal.Decimal
	now        func() time.Time
}

func NewRegistroService(repos RegistroRepos, limite, tolerancia decimal.Decimal) RegistroService {
	return &registroService{repos: repos, limite: limite, tolerancia: tolerancia, now: time.Now}
}

func validarFecha(fecha string) error {
	if _, err := time.Parse(time.DateOnly, fecha); err != nil {
		return apierror.Validacion("Fecha inválida, use AAAA-MM-DD")
	}
	return nil
}

// ── Prefill ───────────────────────────────────────────────────────────────────
// Values derived from stored data come back locked.

func (s *registroService) Prefill(ctx context.Context, fecha, cajero string, cierre *calculo.Entrada) (*dto.PrefillResponse, error) {
	if err := validarFecha(fecha); err != nil {
		return nil, err
	}
	ultima, err := s.repos.Reserva.Ultima(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.PrefillResponse{Fecha: fecha, Cajero: cajero, SaldoInicial: ultima.Round(0)}

	if cajero != "" {
		pagos, err := s.repos.Pagos.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range pagos {
			if p.Fecha != fecha || p.Cajero != cajero {
				continue
			}
			switch p.MetodoPago {
			case model.MetodoCaja:
				resp.PagoFacturasCaja = resp.PagoFacturasCaja.Add(p.Monto)
			case model.MetodoCtaCte:
				resp.PagoFacturasCtaCte = resp.PagoFacturasCtaCte.Add(p.Monto)
			}
		}
		gastos, err := s.repos.Gastos.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range gastos {
			if g.Fecha == fecha && g.Cajero == cajero {
				resp.Gastos = resp.Gastos.Add(g.Monto)
			}
		}
		resp.Bloqueos.PagoFacturasCaja = resp.PagoFacturasCaja.IsPositive()
		resp.Bloqueos.PagoFacturasCtaCte = resp.PagoFacturasCtaCte.IsPositive()
		resp.Bloqueos.Gastos = resp.Gastos.IsPositive()
	}

	general, err := s.arqueoGeneral(ctx, fecha)
	if err != nil {
		return nil, err
	}
	resp.ArqueoGeneral = general
	resp.Bloqueos.Reserva = general != nil

	caja, err := s.arqueoCaja(ctx, fecha, cajero)
	if err != nil {
		return nil, err
	}
	if caja != nil {
		total := caja.TotalGeneral
		resp.ArqueoCaja = caja
		resp.CierreCaja = &total
		resp.Bloqueos.CierreCaja = true

		entrado := total
		if cierre != nil {
			entrado = cierre.Monto()
		}
		c := calculo.CuadreFisico(entrado, total, s.tolerancia)
		resp.Cuadre = &c
	}
	return resp, nil
}

func (s *registroService) arqueoGeneral(ctx context.Context, fecha string) (*model.Arqueo, error) {
	a, err := s.repos.Arqueos.FindGeneral(ctx, fecha)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

func (s *registroService) arqueoCaja(ctx context.Context, fecha, cajero string) (*model.Arqueo, error) {
	if cajero == "" {
		return nil, nil
	}
	a, err := s.repos.Arqueos.FindCaja(ctx, fecha, cajero)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// ── Guardar ───────────────────────────────────────────────────────────────────

func (s *registroService) Guardar(ctx context.Context, req dto.GuardarRegistroRequest) (*dto.GuardarRegistroResponse, error) {
	req.Cajero = strings.TrimSpace(req.Cajero)
	if req.Fecha == "" || req.Cajero == "" {
		return nil, apierror.Validacion("Por favor completa la fecha y selecciona un cajero")
	}
	if err := validarFecha(req.Fecha); err != nil {
		return nil, err
	}

	in := calculo.Registro{
		SaldoInicial:       req.SaldoInicial.Monto(),
		VentaEfectivo:      req.VentaEfectivo.Monto(),
		MercadoPago:        req.Redelcom.Monto(),
		Edenred:            req.Edenred.Monto(),
		Transferencias:     req.Transferencias.Monto(),
		Credito:            req.Credito.Monto(),
		PagoFacturasCaja:   req.PagoFacturasCaja.Monto(),
		PagoFacturasCtaCte: req.PagoFacturasCtaCte.Monto(),
		Gastos:             req.Gastos.Monto(),
		RRHH:               req.RRHH.Monto(),
		Otros:              req.Otros.Monto(),
		CierreCaja:         req.CierreCaja.Monto(),
		IngresoReserva:     req.IngresoReserva.Monto(),
		RetiroReserva:      req.RetiroReserva.Monto(),
	}

	ultima, err := s.repos.Reserva.Ultima(ctx)
	if err != nil {
		return nil, err
	}
	general, err := s.arqueoGeneral(ctx, req.Fecha)
	if err != nil {
		return nil, err
	}
	var totalGeneral *decimal.Decimal
	if general != nil {
		totalGeneral = &general.TotalGeneral
	}

	calc := dto.CalculoRegistro{
		TotalVentas:    in.TotalVentas(),
		TotalEgresos:   in.TotalEgresos(),
		SaldoContable:  in.SaldoContable(),
		DiferenciaCaja: in.DiferenciaCaja(),
		ReservaGeneral: calculo.ReservaCalculada(ultima, totalGeneral, in.IngresoReserva, in.RetiroReserva),
	}
	resp := &dto.GuardarRegistroResponse{Calculo: calc}

	caja, err := s.arqueoCaja(ctx, req.Fecha, req.Cajero)
	if err != nil {
		return nil, err
	}
	if caja != nil {
		c := calculo.CuadreFisico(in.CierreCaja, caja.TotalGeneral, s.tolerancia)
		resp.Cuadre = &c
	}

	if alerta := calculo.EvaluarDiferencia(calc.DiferenciaCaja, s.limite); alerta != nil {
		resp.Alerta = alerta
		if !req.Confirmado {
			metrics.AlertasDescuadre.WithLabelValues(string(alerta.Tipo)).Inc()
			resp.Estado = dto.EstadoPendienteConfirmacion
			resp.Pendiente = true
			return resp, nil
		}
	}

	reg := &model.RegistroDiario{
		Fecha:              req.Fecha,
		Cajero:             req.Cajero,
		SaldoInicial:       in.SaldoInicial,
		VentaEfectivo:      in.VentaEfectivo,
		Redelcom:           in.MercadoPago,
		Edenred:            in.Edenred,
		Transferencias:     in.Transferencias,
		Credito:            in.Credito,
		PagoFacturasCaja:   in.PagoFacturasCaja,
		PagoFacturasCtaCte: in.PagoFacturasCtaCte,
		Gastos:             in.Gastos,
		RRHH:               in.RRHH,
		Otros:              in.Otros,
		CierreCaja:         in.CierreCaja,
		IngresoReserva:     in.IngresoReserva,
		RetiroReserva:      in.RetiroReserva,
		RevisionSaldos:     req.RevisionSaldos,
		TotalVentas:        calc.TotalVentas,
		TotalEgresos:       calc.TotalEgresos,
		DiferenciaCaja:     calc.DiferenciaCaja,
		ReservaGeneral:     calc.ReservaGeneral,
		Timestamp:          s.now().UTC(),
	}
	if err := s.repos.Registros.Create(ctx, reg); err != nil {
		return nil, err
	}
	// a general count of the day has the last word on the reserve
	if general == nil {
		if err := s.repos.Reserva.Guardar(ctx, calc.ReservaGeneral.Round(0)); err != nil {
			return nil, err
		}
	}
	metrics.RegistrosGuardados.Inc()
	log.Info().Str("fecha", reg.Fecha).Str("cajero", reg.Cajero).
		Str("diferencia", calc.DiferenciaCaja.String()).Msg("registro guardado")

	resp.Estado = dto.EstadoGuardado
	resp.Registro = reg
	return resp, nil
}

// ── Listar / Resumen / Eliminar ──────────────────────────────────────────────

func (s *registroService) Listar(ctx context.Context, f dto.FiltroRegistros) ([]model.RegistroDiario, error) {
	all, err := s.repos.Registros.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.RegistroDiario, 0, len(all))
	for _, r := range all {
		if f.Desde != "" && r.Fecha < f.Desde {
			continue
		}
		if f.Hasta != "" && r.Fecha > f.Hasta {
			continue
		}
		if len(f.Cajeros) > 0 && !contiene(f.Cajeros, r.Cajero) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func contiene(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Resumen sums the registers of fecha (all dates when empty) for the
// selected tills.
func (s *registroService) Resumen(ctx context.Context, fecha string, cajeros []string) (*dto.ResumenResponse, error) {
	regs, err := s.Listar(ctx, dto.FiltroRegistros{Desde: fecha, Hasta: fecha, Cajeros: cajeros})
	if err != nil {
		return nil, err
	}
	resp := &dto.ResumenResponse{Fecha: fecha, Cajeros: cajeros, Registros: len(regs)}
	for _, r := range regs {
		resp.TotalVentas = resp.TotalVentas.Add(r.TotalVentas)
		resp.TotalEgresos = resp.TotalEgresos.Add(r.TotalEgresos)
		resp.DiferenciaCaja = resp.DiferenciaCaja.Add(r.DiferenciaCaja)
	}
	return resp, nil
}

func (s *registroService) Eliminar(ctx context.Context, id int64) error {
	err := s.repos.Registros.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NoEncontrado("Registro no encontrado")
	}
	return err
}
