package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/export"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/infra"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypePDF  = "application/pdf"

	msgSinRegistros = "No hay registros para el período seleccionado"
	msgSinArqueos   = "No hay arqueos para exportar"
)

// JobDispatcher queues background work; *worker.Dispatcher implements it.
type JobDispatcher interface {
	EnqueueResumenEmail(ctx context.Context, p worker.ResumenEmailPayload) error
}

type ExportService interface {
	Registros(ctx context.Context, desde, hasta, mes string) (*dto.Archivo, error)
	Arqueos(ctx context.Context, tipo string) (*dto.Archivo, error)
	ArqueosRemotos(ctx context.Context, f dto.FiltroArqueosRemotos) (*dto.Archivo, error)
	ResumenMensual(ctx context.Context, mes string) (*dto.Archivo, error)
	Comprobante(ctx context.Context, id uuid.UUID, quien session.Identidad) (*dto.Archivo, error)
	EnviarResumenMensual(ctx context.Context, req dto.EnviarResumenRequest) error
}

type exportService struct {
	registros  repository.RegistroRepository
	arqueos    repository.ArqueoRepository
	remotos    ArqueoRemotoService
	dispatcher JobDispatcher
	loc        *time.Location
	now        func() time.Time
}

func NewExportService(
	registros repository.RegistroRepository,
	arqueos repository.ArqueoRepository,
	remotos ArqueoRemotoService,
	dispatcher JobDispatcher,
	loc *time.Location,
) ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &exportService{
		registros:  registros,
		arqueos:    arqueos,
		remotos:    remotos,
		dispatcher: dispatcher,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *exportService) hoy() time.Time { return s.now().In(s.loc) }

func validarMes(mes string) error {
	if _, err := time.Parse("2006-01", mes); err != nil {
		return apierror.Validacion("Mes inválido, use AAAA-MM")
	}
	return nil
}

// Registros exports the month when mes is set, the [desde, hasta] range
// otherwise.
func (s *exportService) Registros(ctx context.Context, desde, hasta, mes string) (*dto.Archivo, error) {
	all, err := s.registros.List(ctx)
	if err != nil {
		return nil, err
	}
	var regs []model.RegistroDiario
	if mes != "" {
		if err := validarMes(mes); err != nil {
			return nil, err
		}
		regs = export.FiltrarPorMes(all, mes)
	} else {
		regs = export.FiltrarPorRango(all, desde, hasta)
	}
	if len(regs) == 0 {
		return nil, apierror.NoEncontrado(msgSinRegistros)
	}
	data, err := export.Registros(regs)
	if err != nil {
		return nil, err
	}
	return &dto.Archivo{Nombre: export.NombreRegistros(s.hoy()), ContentType: ContentTypeCSV, Datos: data}, nil
}

func (s *exportService) Arqueos(ctx context.Context, tipo string) (*dto.Archivo, error) {
	var (
		rows []model.Arqueo
		err  error
	)
	switch tipo {
	case "general":
		rows, err = s.arqueos.ListGeneral(ctx)
	case "caja":
		rows, err = s.arqueos.ListCaja(ctx)
	default:
		return nil, apierror.Validacion("Tipo de arqueo inválido: use general o caja")
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierror.NoEncontrado(msgSinArqueos)
	}
	data, err := export.Arqueos(rows, tipo == "caja")
	if err != nil {
		return nil, err
	}
	return &dto.Archivo{Nombre: export.NombreArqueos(tipo, s.hoy()), ContentType: ContentTypeCSV, Datos: data}, nil
}

func (s *exportService) ArqueosRemotos(ctx context.Context, f dto.FiltroArqueosRemotos) (*dto.Archivo, error) {
	lista, err := s.remotos.Listar(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(lista) == 0 {
		return nil, apierror.NoEncontrado(msgSinArqueos)
	}
	rows := make([]model.ArqueoRemoto, len(lista))
	for i, a := range lista {
		rows[i] = model.ArqueoRemoto{
			ID: a.ID, Fecha: a.Fecha, Cajero: a.Cajero, Denominaciones: a.Denominaciones,
			Total: a.Total, Cambios: a.Cambios, SavedAt: a.SavedAt, AutoSaved: a.AutoSaved,
		}
	}
	data, err := export.ArqueosRemotos(rows, s.loc)
	if err != nil {
		return nil, err
	}
	return &dto.Archivo{Nombre: export.NombreArqueosRemotos(s.hoy()), ContentType: ContentTypeCSV, Datos: data}, nil
}

func (s *exportService) ResumenMensual(ctx context.Context, mes string) (*dto.Archivo, error) {
	if err := validarMes(mes); err != nil {
		return nil, err
	}
	all, err := s.registros.List(ctx)
	if err != nil {
		return nil, err
	}
	regs := export.FiltrarPorMes(all, mes)
	if len(regs) == 0 {
		return nil, apierror.NoEncontrado(msgSinRegistros)
	}
	data, err := export.ResumenMensual(regs, mes, s.hoy())
	if err != nil {
		return nil, err
	}
	return &dto.Archivo{Nombre: export.NombreResumen(mes), ContentType: ContentTypeText, Datos: data}, nil
}

// Comprobante renders the receipt of a till count. Cashiers only see their own.
func (s *exportService) Comprobante(ctx context.Context, id uuid.UUID, quien session.Identidad) (*dto.Archivo, error) {
	a, err := s.remotos.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quien.EsAdmin() && !strings.EqualFold(a.Cajero, quien.Nombre) {
		return nil, apierror.NoEncontrado("Arqueo no encontrado")
	}
	var buf bytes.Buffer
	if err := infra.GenerarComprobantePDF(&buf, a, s.loc); err != nil {
		return nil, err
	}
	return &dto.Archivo{
		Nombre:      fmt.Sprintf("arqueo_%s.pdf", a.ID),
		ContentType: ContentTypePDF,
		Datos:       buf.Bytes(),
	}, nil
}

// EnviarResumenMensual renders the summary now and queues the mail.
func (s *exportService) EnviarResumenMensual(ctx context.Context, req dto.EnviarResumenRequest) error {
	archivo, err := s.ResumenMensual(ctx, req.Mes)
	if err != nil {
		return err
	}
	mes, _ := time.Parse("2006-01", req.Mes)
	payload := worker.ResumenEmailPayload{
		Para:      []string{req.Destinatario},
		Mes:       req.Mes,
		Asunto:    "Resumen Mensual de Caja - " + mes.Format("01/2006"),
		Cuerpo:    "Se adjunta el resumen mensual de caja.",
		Archivo:   archivo.Nombre,
		Contenido: archivo.Datos,
	}
	if err := s.dispatcher.EnqueueResumenEmail(ctx, payload); err != nil {
		return apierror.Remoto("No se pudo encolar el envío del resumen", err)
	}
	log.Info().Str("mes", req.Mes).Str("para", req.Destinatario).Msg("resumen mensual encolado")
	return nil
}
