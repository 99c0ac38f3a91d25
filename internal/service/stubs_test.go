package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/worker"

	"github.com/google/uuid"
)

// ── In-memory stubs ───────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	mu        sync.Mutex
	users     map[string]*model.Usuario
	createErr error
}

func newStubUsuarios() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = uuid.New()
	r.users[strings.ToLower(u.Nombre)] = u
	return nil
}

func (r *stubUsuarioRepo) FindByNombre(_ context.Context, nombre string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(strings.TrimSpace(nombre))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUsuarioRepo) TouchUltimoAcceso(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.UltimoAcceso = &at
			return nil
		}
	}
	return repository.ErrNotFound
}

type stubArqueoRemotoRepo struct {
	mu   sync.Mutex
	rows []model.ArqueoRemoto
	err  error
}

func (r *stubArqueoRemotoRepo) Create(_ context.Context, a *model.ArqueoRemoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	a.ID = uuid.New()
	r.rows = append([]model.ArqueoRemoto{*a}, r.rows...)
	return nil
}

func (r *stubArqueoRemotoRepo) List(_ context.Context, f repository.FiltroArqueoRemoto) ([]model.ArqueoRemoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ArqueoRemoto
	for _, a := range r.rows {
		if f.Cajero != "" && a.Cajero != f.Cajero {
			continue
		}
		if f.Desde != nil && a.Fecha.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && !a.Fecha.Before(*f.Hasta) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubArqueoRemotoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ArqueoRemoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			a := r.rows[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubArqueoRemotoRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// stubProgramador keeps the armed callbacks so tests fire them by hand.
type stubProgramador struct {
	armed map[string]func()
}

func newStubProgramador() *stubProgramador {
	return &stubProgramador{armed: make(map[string]func())}
}

func (p *stubProgramador) Arm(key string, fn func()) { p.armed[key] = fn }

func (p *stubProgramador) Disarm(key string) bool {
	_, ok := p.armed[key]
	delete(p.armed, key)
	return ok
}

func (p *stubProgramador) Delay() time.Duration { return time.Minute }

type stubDispatcher struct {
	jobs []worker.ResumenEmailPayload
	err  error
}

func (d *stubDispatcher) EnqueueResumenEmail(_ context.Context, p worker.ResumenEmailPayload) error {
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, p)
	return nil
}

// localRepos wires every store-backed repository on one memory store.
func localRepos() (RegistroRepos, storage.Store) {
	store := storage.NewMemory()
	ids := repository.NewIDGenerator()
	return RegistroRepos{
		Registros: repository.NewRegistroRepository(store, ids),
		Reserva:   repository.NewReservaRepository(store),
		Pagos:     repository.NewPagoRepository(store, ids),
		Gastos:    repository.NewGastoRepository(store, ids),
		Arqueos:   repository.NewArqueoRepository(store),
	}, store
}
