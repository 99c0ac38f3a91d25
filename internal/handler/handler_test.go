package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/apierror"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/config"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/dto"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/export"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/middleware"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func init() { gin.SetMode(gin.TestMode) }

// ── Stubs ─────────────────────────────────────────────────────────────────────

type memUsuarios struct {
	mu    sync.Mutex
	users []*model.Usuario
}

func (r *memUsuarios) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.New()
	r.users = append(r.users, u)
	return nil
}

func (r *memUsuarios) FindByNombre(_ context.Context, nombre string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Nombre, strings.TrimSpace(nombre)) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsuarios) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsuarios) TouchUltimoAcceso(context.Context, uuid.UUID, time.Time) error { return nil }

type memRemotos struct {
	mu   sync.Mutex
	rows []model.ArqueoRemoto
}

func (r *memRemotos) Create(_ context.Context, a *model.ArqueoRemoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	r.rows = append(r.rows, *a)
	return nil
}

func (r *memRemotos) List(_ context.Context, f repository.FiltroArqueoRemoto) ([]model.ArqueoRemoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ArqueoRemoto
	for _, a := range r.rows {
		if f.Cajero == "" || strings.EqualFold(a.Cajero, f.Cajero) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRemotos) FindByID(_ context.Context, id uuid.UUID) (*model.ArqueoRemoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

type nopDispatcher struct{ n int }

func (d *nopDispatcher) EnqueueResumenEmail(context.Context, worker.ResumenEmailPayload) error {
	d.n++
	return nil
}

// ── Test app ──────────────────────────────────────────────────────────────────

type app struct {
	r        *gin.Engine
	autosave *worker.Autosave
	dispatch *nopDispatcher
}

func newApp(t *testing.T) *app {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret, AdminUsernames: "jsanz", Cajeros: "1,2"}
	store := storage.NewMemory()
	ids := repository.NewIDGenerator()
	repos := service.RegistroRepos{
		Registros: repository.NewRegistroRepository(store, ids),
		Reserva:   repository.NewReservaRepository(store),
		Pagos:     repository.NewPagoRepository(store, ids),
		Gastos:    repository.NewGastoRepository(store, ids),
		Arqueos:   repository.NewArqueoRepository(store),
	}
	autosave := worker.NewAutosave(time.Hour)
	t.Cleanup(autosave.Stop)
	d := &nopDispatcher{}

	remoto := service.NewArqueoRemotoService(&memRemotos{}, autosave, time.UTC)
	exportSvc := service.NewExportService(repos.Registros, repos.Arqueos, remoto, d, time.UTC)

	authH := NewAuthHandler(service.NewAuthService(&memUsuarios{}, cfg), false)
	regH := NewRegistroHandler(service.NewRegistroService(repos, cfg.Limite(), cfg.Tolerancia()))
	arqH := NewArqueoHandler(service.NewArqueoService(repos.Arqueos, repos.Reserva))
	movH := NewMovimientoHandler(service.NewPagoService(repos.Pagos), service.NewGastoService(repos.Gastos))
	provH := NewCatalogoHandler(service.NewCatalogoService(repository.NewProveedorCatalogo(store), "proveedor"))
	remH := NewArqueoRemotoHandler(remoto, exportSvc)
	expH := NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/health", Health(HealthDeps{Storage: store}))
	for _, ruta := range []string{session.RutaRaiz, session.RutaLogin, session.RutaCajero, session.RutaAdmin} {
		r.GET(ruta, middleware.OptionalAuth(testSecret), Pagina(ruta))
	}
	a := r.Group("/v1/auth")
	a.POST("/verificar", authH.Verificar)
	a.POST("/login", authH.Login)
	a.POST("/registro", authH.Registro)
	a.POST("/logout", authH.Logout)

	v1 := r.Group("/v1", middleware.JWTAuth(testSecret))
	v1.GET("/auth/me", authH.Me)
	v1.GET("/cajeros", Cajeros(cfg.ListaCajeros()))
	v1.GET("/registros/prefill", regH.Prefill)
	v1.POST("/registros", regH.Guardar)
	v1.POST("/pagos", movH.CrearPago)
	v1.GET("/pagos", movH.ListarPagos)
	v1.DELETE("/pagos/:id", movH.EliminarPago)
	v1.GET("/proveedores", provH.Listar)
	v1.POST("/proveedores", provH.Agregar)
	v1.DELETE("/proveedores", provH.Quitar)
	v1.PUT("/arqueos/general", arqH.GuardarGeneral)
	v1.GET("/arqueos/general/:fecha", arqH.ObtenerGeneral)
	v1.PUT("/arqueos/caja", arqH.GuardarCaja)
	v1.POST("/arqueos-remotos", remH.Guardar)
	v1.PUT("/arqueos-remotos/borrador", remH.Borrador)
	v1.DELETE("/arqueos-remotos/borrador", remH.Descartar)
	v1.GET("/arqueos-remotos/:id/comprobante", remH.Comprobante)

	adm := v1.Group("", middleware.RequireRole(model.RolAdmin))
	adm.GET("/registros", regH.Listar)
	adm.GET("/registros/resumen", regH.Resumen)
	adm.GET("/arqueos-remotos", remH.Listar)
	adm.GET("/arqueos-remotos/resumen", remH.Resumen)
	adm.GET("/arqueos-remotos/:id", remH.Obtener)
	adm.GET("/exportar/registros", expH.Registros)
	adm.GET("/exportar/arqueos/:tipo", expH.Arqueos)
	adm.GET("/exportar/resumen-mensual", expH.ResumenMensual)
	adm.POST("/exportar/resumen-mensual/email", expH.EnviarResumen)

	return &app{r: r, autosave: autosave, dispatch: d}
}

func token(t *testing.T, id, nombre, rol string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id, "nombre": nombre, "rol": rol, "iat": time.Now().Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (a *app) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAuthFlow(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodPost, "/v1/auth/verificar", "", gin.H{"nombre": "pedro"})
	require.Equal(t, http.StatusOK, w.Code)
	var v dto.VerificarResponse
	decode(t, w, &v)
	assert.False(t, v.Existe)
	assert.Equal(t, session.Registro, v.Siguiente)

	w = a.do(t, http.MethodPost, "/v1/auth/registro", "", gin.H{"nombre": "pedro", "contrasena": "123", "confirmacion": "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "al menos 6 caracteres")

	w = a.do(t, http.MethodPost, "/v1/auth/registro", "", gin.H{"nombre": "pedro", "contrasena": "secreto1", "confirmacion": "secreto1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")

	w = a.do(t, http.MethodPost, "/v1/auth/registro", "", gin.H{"nombre": "PEDRO", "contrasena": "secreto1", "confirmacion": "secreto1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPost, "/v1/auth/login", "", gin.H{"nombre": "pedro", "contrasena": "malaaa"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Credenciales incorrectas"}`, w.Body.String())

	w = a.do(t, http.MethodPost, "/v1/auth/login", "", gin.H{"nombre": "pedro", "contrasena": "secreto1"})
	require.Equal(t, http.StatusOK, w.Code)
	var login dto.LoginResponse
	decode(t, w, &login)
	assert.Equal(t, session.RutaCajero, login.Inicio)

	w = a.do(t, http.MethodGet, "/v1/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nombre":"pedro"`)

	w = a.do(t, http.MethodPost, "/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestBindErrors(t *testing.T) {
	a := newApp(t)
	tok := token(t, uuid.NewString(), "pedro", model.RolCajero)

	w := a.do(t, http.MethodPost, "/v1/registros", tok, "{no-json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPut, "/v1/arqueos/general", tok, gin.H{"fecha": "10/05/2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"fields"`)
}

func TestRegistro_PendingThenConfirmed(t *testing.T) {
	a := newApp(t)
	tok := token(t, uuid.NewString(), "pedro", model.RolCajero)
	body := gin.H{
		"fecha": "2024-05-10", "cajero": "1",
		"saldo_inicial": "10000", "venta_efectivo": 5000, "cierre_caja": "15600",
	}

	w := a.do(t, http.MethodPost, "/v1/registros", tok, body)
	require.Equal(t, http.StatusConflict, w.Code)
	var pend dto.GuardarRegistroResponse
	decode(t, w, &pend)
	assert.Equal(t, dto.EstadoPendienteConfirmacion, pend.Estado)
	require.NotNil(t, pend.Alerta)

	body["confirmado"] = true
	w = a.do(t, http.MethodPost, "/v1/registros", tok, body)
	require.Equal(t, http.StatusCreated, w.Code)

	admin := token(t, uuid.NewString(), "jsanz", model.RolAdmin)
	w = a.do(t, http.MethodGet, "/v1/registros", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodGet, "/v1/registros?cajeros=1,2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var regs []model.RegistroDiario
	decode(t, w, &regs)
	assert.Len(t, regs, 1)

	w = a.do(t, http.MethodGet, "/v1/registros/prefill?fecha=2024-05-11&cajero=1", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"saldo_inicial":"0"`)
}

func TestMovimientosYCatalogo(t *testing.T) {
	a := newApp(t)
	tok := token(t, uuid.NewString(), "pedro", model.RolCajero)

	w := a.do(t, http.MethodPost, "/v1/pagos", tok, gin.H{"fecha": "2024-05-10", "cajero": "1", "proveedor": "CCU", "monto": "3000"})
	require.Equal(t, http.StatusCreated, w.Code)
	var p model.Pago
	decode(t, w, &p)

	w = a.do(t, http.MethodGet, "/v1/pagos?fecha=2024-05-10", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"proveedor":"CCU"`)

	w = a.do(t, http.MethodDelete, "/v1/pagos/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(t, http.MethodDelete, "/v1/pagos/"+strconv.FormatInt(p.ID, 10), tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodPost, "/v1/proveedores", tok, gin.H{"nombre": "ccu"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = a.do(t, http.MethodPost, "/v1/proveedores", tok, gin.H{"nombre": "nuevo"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = a.do(t, http.MethodDelete, "/v1/proveedores?nombre=NUEVO", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "NUEVO")
}

func TestCatalogo_QuitarNameWithSlash(t *testing.T) {
	a := newApp(t)
	tok := token(t, uuid.NewString(), "pedro", model.RolCajero)

	w := a.do(t, http.MethodDelete, "/v1/proveedores?nombre="+url.QueryEscape(" cuello negro / bundor "), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "CUELLO NEGRO / BUNDOR")
	assert.Contains(t, w.Body.String(), "HIELO")

	w = a.do(t, http.MethodDelete, "/v1/proveedores", tok, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestArqueoRemoto_AutosaveAndReceipt(t *testing.T) {
	a := newApp(t)
	uid := uuid.NewString()
	tok := token(t, uid, "pedro", model.RolCajero)
	body := gin.H{"unidades": gin.H{"10000": "2", "500": 3}, "cambios": "ok"}

	w := a.do(t, http.MethodPut, "/v1/arqueos-remotos/borrador", tok, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, a.autosave.Pending(uid))

	w = a.do(t, http.MethodPost, "/v1/arqueos-remotos", tok, gin.H{"unidades": gin.H{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "no puede ser cero")

	w = a.do(t, http.MethodPost, "/v1/arqueos-remotos", tok, body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, a.autosave.Pending(uid), "manual save disarms the autosave")
	var resp dto.ArqueoRemotoResponse
	decode(t, w, &resp)
	assert.Equal(t, "2 billetes, 3 monedas", resp.Resumen)

	w = a.do(t, http.MethodGet, "/v1/arqueos-remotos/"+resp.ID.String()+"/comprobante", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")

	otro := token(t, uuid.NewString(), "ana", model.RolCajero)
	w = a.do(t, http.MethodGet, "/v1/arqueos-remotos/"+resp.ID.String()+"/comprobante", otro, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	admin := token(t, uuid.NewString(), "jsanz", model.RolAdmin)
	w = a.do(t, http.MethodGet, "/v1/arqueos-remotos/"+resp.ID.String(), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/v1/arqueos-remotos/nope", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(t, http.MethodGet, "/v1/arqueos-remotos/resumen", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resumen dto.ResumenArqueosRemotos
	decode(t, w, &resumen)
	assert.Equal(t, 1, resumen.Cantidad)
	assert.True(t, resp.Total.Equal(resumen.Total))
	w = a.do(t, http.MethodGet, "/v1/arqueos-remotos/resumen", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPut, "/v1/arqueos-remotos/borrador", tok, body)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodDelete, "/v1/arqueos-remotos/borrador", tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, a.autosave.Pending(uid))
}

func TestExportar(t *testing.T) {
	a := newApp(t)
	admin := token(t, uuid.NewString(), "jsanz", model.RolAdmin)

	w := a.do(t, http.MethodGet, "/v1/exportar/registros?mes=2024-05", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No hay registros para el período seleccionado")

	tok := token(t, uuid.NewString(), "pedro", model.RolCajero)
	w = a.do(t, http.MethodPost, "/v1/registros", tok, gin.H{"fecha": "2024-05-10", "cajero": "1", "cierre_caja": "0"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodGet, "/v1/exportar/registros?mes=2024-05", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="export_registros_`)
	assert.True(t, strings.HasPrefix(w.Body.String(), export.BOM))

	w = a.do(t, http.MethodGet, "/v1/exportar/resumen-mensual?mes=2024-05", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "RESUMEN GENERAL")

	w = a.do(t, http.MethodGet, "/v1/exportar/arqueos/otro", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(t, http.MethodPost, "/v1/exportar/resumen-mensual/email", admin, gin.H{"mes": "2024-05", "destinatario": "no-es-mail"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = a.do(t, http.MethodPost, "/v1/exportar/resumen-mensual/email", admin, gin.H{"mes": "2024-05", "destinatario": "jefe@example.com"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, a.dispatch.n)
}

func TestPaginas_Gate(t *testing.T) {
	a := newApp(t)
	cajero := token(t, uuid.NewString(), "pedro", model.RolCajero)
	admin := token(t, uuid.NewString(), "jsanz", model.RolAdmin)

	cases := []struct {
		ruta, tok string
		code      int
		location  string
	}{
		{"/", "", http.StatusFound, "/login"},
		{"/", admin, http.StatusFound, "/admin"},
		{"/", cajero, http.StatusFound, "/cajero"},
		{"/login", "", http.StatusOK, ""},
		{"/login", cajero, http.StatusFound, "/cajero"},
		{"/cajero", "", http.StatusFound, "/login"},
		{"/cajero", cajero, http.StatusOK, ""},
		{"/admin", cajero, http.StatusFound, "/cajero"},
		{"/admin", admin, http.StatusOK, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.ruta, nil)
		if tc.tok != "" {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tc.tok})
		}
		w := httptest.NewRecorder()
		a.r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, tc.ruta)
		assert.Equal(t, tc.location, w.Header().Get("Location"), tc.ruta)
	}
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	w := a.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"storage":"connected"}`, w.Body.String())
}

func TestCajeros(t *testing.T) {
	a := newApp(t)
	w := a.do(t, http.MethodGet, "/v1/cajeros", token(t, uuid.NewString(), "pedro", model.RolCajero), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["1","2"]`, w.Body.String())
}

func TestResponderError_ThroughErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/interno", func(c *gin.Context) { responderError(c, errors.New("pq: password authentication failed")) })
	r.GET("/duplicado", func(c *gin.Context) { responderError(c, apierror.Duplicado("ya existe")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/interno", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/duplicado", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"ya existe"}`, w.Body.String())
}
