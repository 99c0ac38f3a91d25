package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/calculo"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/metrics"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cajeroDesconocido = "Usuario Desconocido"

// Programador delays a task per key; *worker.Autosave implements it.
type Programador interface {
	Arm(key string, fn func())
	Disarm(key string) bool
	Delay() time.Duration
}

type ArqueoRemotoService interface {
	GuardarManual(ctx context.Context, id session.Identidad, req dto.ArqueoRemotoRequest) (*dto.ArqueoRemotoResponse, error)
	ActualizarBorrador(ctx context.Context, id session.Identidad, req dto.ArqueoRemotoRequest) (*dto.BorradorResponse, error)
	DescartarBorrador(ctx context.Context, id session.Identidad) bool
	Listar(ctx context.Context, f dto.FiltroArqueosRemotos) ([]dto.ArqueoRemotoResponse, error)
	Resumen(ctx context.Context, f dto.FiltroArqueosRemotos) (*dto.ResumenArqueosRemotos, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.ArqueoRemoto, error)
}

type arqueoRemotoService struct {
	repo     repository.ArqueoRemotoRepository
	autosave Programador
	loc      *time.Location
	now      func() time.Time
}

func NewArqueoRemotoService(repo repository.ArqueoRemotoRepository, autosave Programador, loc *time.Location) ArqueoRemotoService {
	if loc == nil {
		loc = time.Local
	}
	return &arqueoRemotoService{repo: repo, autosave: autosave, loc: loc, now: time.Now}
}

// Snapshot builds the row to insert from the form: counts, per-denomination
// amounts and the total, all recomputed from the pieces.
func (s *arqueoRemotoService) snapshot(id session.Identidad, req dto.ArqueoRemotoRequest, auto bool) *model.ArqueoRemoto {
	conteo := calculo.NormalizarConteo(req.Unidades, calculo.DenominacionesRemotas)
	denom := make(model.Denominaciones, 2*len(calculo.DenominacionesRemotas))
	for _, v := range calculo.DenominacionesRemotas {
		denom[fmt.Sprintf("d_%d", v)] = conteo[v]
		denom[fmt.Sprintf("monto_%d", v)] = calculo.Monto(conteo[v], v).IntPart()
	}
	cajero := strings.TrimSpace(id.Nombre)
	if cajero == "" {
		cajero = cajeroDesconocido
	}
	now := s.now().UTC()
	return &model.ArqueoRemoto{
		Fecha:          now,
		Cajero:         cajero,
		Denominaciones: denom,
		Total:          calculo.SumarDenominaciones(conteo, calculo.DenominacionesRemotas),
		Cambios:        req.Cambios,
		SavedAt:        now,
		AutoSaved:      auto,
	}
}

func claveBorrador(id session.Identidad) string {
	if id.ID != "" {
		return id.ID
	}
	return strings.ToLower(id.Nombre)
}

func (s *arqueoRemotoService) GuardarManual(ctx context.Context, id session.Identidad, req dto.ArqueoRemotoRequest) (*dto.ArqueoRemotoResponse, error) {
	a := s.snapshot(id, req, false)
	if a.Total.IsZero() {
		return nil, apierror.Validacion("El total del arqueo no puede ser cero.")
	}
	s.autosave.Disarm(claveBorrador(id))

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apierror.Remoto("Fallo la inserción: "+err.Error(), err)
	}
	metrics.ArqueosRemotos.WithLabelValues("manual").Inc()
	log.Info().Str("cajero", a.Cajero).Str("total", a.Total.String()).Msg("arqueo remoto guardado")
	r := respuestaArqueo(a)
	return &r, nil
}

// ActualizarBorrador restarts the inactivity timer with the latest form. A
// zero total cancels any pending auto-save.
func (s *arqueoRemotoService) ActualizarBorrador(_ context.Context, id session.Identidad, req dto.ArqueoRemotoRequest) (*dto.BorradorResponse, error) {
	key := claveBorrador(id)
	a := s.snapshot(id, req, true)
	if a.Total.IsZero() {
		s.autosave.Disarm(key)
		return &dto.BorradorResponse{Programado: false, Total: a.Total}, nil
	}
	s.autosave.Arm(key, func() { s.autoGuardar(id, req) })
	return &dto.BorradorResponse{
		Programado: true,
		Total:      a.Total,
		EnSegundos: int(s.autosave.Delay() / time.Second),
	}, nil
}

// autoGuardar runs off the request path. Failures are logged and counted,
// never reported to the cashier.
func (s *arqueoRemotoService) autoGuardar(id session.Identidad, req dto.ArqueoRemotoRequest) {
	a := s.snapshot(id, req, true)
	if a.Total.IsZero() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.repo.Create(ctx, a); err != nil {
		metrics.AutosaveFallidos.Inc()
		log.Warn().Err(err).Str("cajero", a.Cajero).Msg("autosave: no se pudo guardar el arqueo")
		return
	}
	metrics.ArqueosRemotos.WithLabelValues("auto").Inc()
	log.Info().Str("cajero", a.Cajero).Str("total", a.Total.String()).Msg("autosave: arqueo guardado")
}

func (s *arqueoRemotoService) DescartarBorrador(_ context.Context, id session.Identidad) bool {
	return s.autosave.Disarm(claveBorrador(id))
}

func (s *arqueoRemotoService) Listar(ctx context.Context, f dto.FiltroArqueosRemotos) ([]dto.ArqueoRemotoResponse, error) {
	filtro := repository.FiltroArqueoRemoto{Cajero: f.Cajero}
	if f.Fecha != "" {
		dia, err := time.ParseInLocation(time.DateOnly, f.Fecha, s.loc)
		if err != nil {
			return nil, apierror.Validacion("Fecha inválida, use AAAA-MM-DD")
		}
		hasta := dia.AddDate(0, 0, 1)
		filtro.Desde, filtro.Hasta = &dia, &hasta
	}
	rows, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, apierror.Remoto("No se pudieron cargar los arqueos", err)
	}
	out := make([]dto.ArqueoRemotoResponse, len(rows))
	for i := range rows {
		out[i] = respuestaArqueo(&rows[i])
	}
	return out, nil
}

// Resumen counts the filtered rows, sums their totals and reports the
// newest fecha.
func (s *arqueoRemotoService) Resumen(ctx context.Context, f dto.FiltroArqueosRemotos) (*dto.ResumenArqueosRemotos, error) {
	rows, err := s.Listar(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.ResumenArqueosRemotos{Cantidad: len(rows), Total: decimal.Zero}
	for i := range rows {
		out.Total = out.Total.Add(rows[i].Total)
		if out.Ultimo == nil || rows[i].Fecha.After(*out.Ultimo) {
			fecha := rows[i].Fecha
			out.Ultimo = &fecha
		}
	}
	return out, nil
}

func (s *arqueoRemotoService) Obtener(ctx context.Context, id uuid.UUID) (*model.ArqueoRemoto, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.NoEncontrado("Arqueo no encontrado")
	}
	if err != nil {
		return nil, apierror.Remoto("No se pudo cargar el arqueo", err)
	}
	return a, nil
}

// ResumenDenominaciones describes a count as "N billetes, M monedas".
func ResumenDenominaciones(d model.Denominaciones) string {
	c := make(calculo.Conteo, len(calculo.DenominacionesRemotas))
	for _, v := range calculo.DenominacionesRemotas {
		c[v] = d[fmt.Sprintf("d_%d", v)]
	}
	b, m := calculo.Piezas(c)
	return fmt.Sprintf("%d billetes, %d monedas", b, m)
}

func respuestaArqueo(a *model.ArqueoRemoto) dto.ArqueoRemotoResponse {
	return dto.ArqueoRemotoResponse{
		ID:             a.ID,
		Fecha:          a.Fecha,
		Cajero:         a.Cajero,
		Denominaciones: a.Denominaciones,
		Total:          a.Total,
		Cambios:        a.Cambios,
		SavedAt:        a.SavedAt,
		AutoSaved:      a.AutoSaved,
		Resumen:        ResumenDenominaciones(a.Denominaciones),
	}
}
