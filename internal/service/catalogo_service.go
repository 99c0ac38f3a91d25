package service

import (
	"context"
	"strings"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
)

// CatalogoService edits one of the name sets (vendors, expense items).
// Names are stored trimmed and uppercased.
type CatalogoService interface {
	Listar(ctx context.Context) ([]string, error)
	Agregar(ctx context.Context, nombre string) ([]string, error)
	Quitar(ctx context.Context, nombre string) ([]string, error)
}

type catalogoService struct {
	repo     repository.CatalogoRepository
	etiqueta string
}

func NewCatalogoService(repo repository.CatalogoRepository, etiqueta string) CatalogoService {
	return &catalogoService{repo: repo, etiqueta: etiqueta}
}

func (s *catalogoService) Listar(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

func (s *catalogoService) normalizar(nombre string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(nombre))
	if n == "" {
		return "", apierror.Validacion("El nombre del " + s.etiqueta + " es requerido")
	}
	return n, nil
}

func (s *catalogoService) Agregar(ctx context.Context, nombre string) ([]string, error) {
	n, err := s.normalizar(nombre)
	if err != nil {
		return nil, err
	}
	actual, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, x := range actual {
		if x == n {
			return nil, apierror.Duplicado("\"" + n + "\" ya existe")
		}
	}
	nuevo := append(actual, n)
	if err := s.repo.Save(ctx, nuevo); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *catalogoService) Quitar(ctx context.Context, nombre string) ([]string, error) {
	n, err := s.normalizar(nombre)
	if err != nil {
		return nil, err
	}
	actual, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(actual))
	for _, x := range actual {
		if x != n {
			out = append(out, x)
		}
	}
	if len(out) == len(actual) {
		return nil, apierror.NoEncontrado("\"" + n + "\" no existe")
	}
	if err := s.repo.Save(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Datos ─────────────────────────────────────────────────────────────────────

// DatosService wipes the operational collections. Catalogs are kept.
type DatosService interface {
	Limpiar(ctx context.Context) error
}

type datosService struct{ repo repository.DatosRepository }

func NewDatosService(repo repository.DatosRepository) DatosService { return &datosService{repo: repo} }

func (s *datosService) Limpiar(ctx context.Context) error { return s.repo.Clear(ctx) }
