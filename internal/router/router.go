package router

import (
	"time"

	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/config"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/handler"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/infra"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/middleware"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/model"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/repository"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/service"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/session"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/storage"
	"github.com/comprasviaweb70-boop/Arqueo-caja/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"gorm.io/gorm"
)

// Deps are the infrastructure handles built by the composition root.
type Deps struct {
	DB       *gorm.DB      // remote tables
	Store    storage.Store // local collections
	Redis    *redis.Client // job queue
	Mailer   *infra.Mailer
	Autosave *worker.Autosave
	Location *time.Location // day boundaries of the remote counts
}

func mustLimiter(rate string) *limiter.Limiter {
	l, err := middleware.NewLimiter(rate)
	if err != nil {
		panic(err)
	}
	return l
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Store
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(mustLimiter(middleware.RateGeneral)))

	// ── Repositories ─────────────────────────────────────────────────────────
	ids := repository.NewIDGenerator()
	repos := service.RegistroRepos{
		Registros: repository.NewRegistroRepository(deps.Store, ids),
		Reserva:   repository.NewReservaRepository(deps.Store),
		Pagos:     repository.NewPagoRepository(deps.Store, ids),
		Gastos:    repository.NewGastoRepository(deps.Store, ids),
		Arqueos:   repository.NewArqueoRepository(deps.Store),
	}
	usuarioRepo := repository.NewUsuarioRepository(deps.DB)
	remotoRepo := repository.NewArqueoRemotoRepository(deps.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(deps.Redis)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	registroSvc := service.NewRegistroService(repos, cfg.Limite(), cfg.Tolerancia())
	arqueoSvc := service.NewArqueoService(repos.Arqueos, repos.Reserva)
	pagoSvc := service.NewPagoService(repos.Pagos)
	gastoSvc := service.NewGastoService(repos.Gastos)
	proveedoresSvc := service.NewCatalogoService(repository.NewProveedorCatalogo(deps.Store), "proveedor")
	itemsSvc := service.NewCatalogoService(repository.NewItemGastoCatalogo(deps.Store), "ítem")
	datosSvc := service.NewDatosService(repository.NewDatosRepository(deps.Store))
	remotoSvc := service.NewArqueoRemotoService(remotoRepo, deps.Autosave, deps.Location)
	exportSvc := service.NewExportService(repos.Registros, repos.Arqueos, remotoSvc, dispatcher, deps.Location)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg.Env == "production")
	registrosH := handler.NewRegistroHandler(registroSvc)
	arqueosH := handler.NewArqueoHandler(arqueoSvc)
	movH := handler.NewMovimientoHandler(pagoSvc, gastoSvc)
	proveedoresH := handler.NewCatalogoHandler(proveedoresSvc)
	itemsH := handler.NewCatalogoHandler(itemsSvc)
	remotosH := handler.NewArqueoRemotoHandler(remotoSvc, exportSvc)
	exportH := handler.NewExportHandler(exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(handler.HealthDeps{
		DB: deps.DB, Storage: deps.Store, Redis: deps.Redis, Mailer: deps.Mailer,
	}))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages gated by the session cookie
	pages := r.Group("", middleware.OptionalAuth(cfg.JWTSecret))
	for _, ruta := range []string{session.RutaRaiz, session.RutaLogin, session.RutaCajero, session.RutaAdmin} {
		pages.GET(ruta, handler.Pagina(ruta))
	}

	// Auth (public)
	loginLimit := middleware.LoginRateLimiter(mustLimiter(cfg.LoginRateLimit))
	auth := r.Group("/v1/auth")
	{
		auth.POST("/verificar", authH.Verificar)
		auth.POST("/login", loginLimit, authH.Login)
		auth.POST("/registro", loginLimit, authH.Registro)
		auth.POST("/logout", authH.Logout)
	}

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(model.RolCajero, model.RolAdmin))
	{
		v1.GET("/auth/me", authH.Me)
		v1.GET("/cajeros", handler.Cajeros(cfg.ListaCajeros()))

		v1.GET("/registros/prefill", registrosH.Prefill)
		v1.POST("/registros", registrosH.Guardar)

		v1.GET("/pagos", movH.ListarPagos)
		v1.POST("/pagos", movH.CrearPago)
		v1.DELETE("/pagos/:id", movH.EliminarPago)
		v1.GET("/gastos", movH.ListarGastos)
		v1.POST("/gastos", movH.CrearGasto)
		v1.DELETE("/gastos/:id", movH.EliminarGasto)

		v1.GET("/proveedores", proveedoresH.Listar)
		v1.POST("/proveedores", proveedoresH.Agregar)
		v1.DELETE("/proveedores", proveedoresH.Quitar)
		v1.GET("/items-gasto", itemsH.Listar)
		v1.POST("/items-gasto", itemsH.Agregar)
		v1.DELETE("/items-gasto", itemsH.Quitar)

		arq := v1.Group("/arqueos")
		{
			arq.GET("/general", arqueosH.ListarGeneral)
			arq.GET("/general/:fecha", arqueosH.ObtenerGeneral)
			arq.PUT("/general", arqueosH.GuardarGeneral)
			arq.DELETE("/general/:fecha", arqueosH.EliminarGeneral)
			arq.GET("/caja", arqueosH.ListarCaja)
			arq.GET("/caja/:fecha/:cajero", arqueosH.ObtenerCaja)
			arq.PUT("/caja", arqueosH.GuardarCaja)
			arq.DELETE("/caja/:fecha/:cajero", arqueosH.EliminarCaja)
		}

		rem := v1.Group("/arqueos-remotos")
		{
			rem.POST("", remotosH.Guardar)
			rem.PUT("/borrador", remotosH.Borrador)
			rem.DELETE("/borrador", remotosH.Descartar)
			rem.GET("/:id/comprobante", remotosH.Comprobante)
			rem.GET("", middleware.RequireRole(model.RolAdmin), remotosH.Listar)
			rem.GET("/resumen", middleware.RequireRole(model.RolAdmin), remotosH.Resumen)
			rem.GET("/:id", middleware.RequireRole(model.RolAdmin), remotosH.Obtener)
		}

		// Admin only
		admin := v1.Group("", middleware.RequireRole(model.RolAdmin))
		{
			admin.GET("/registros", registrosH.Listar)
			admin.GET("/registros/resumen", registrosH.Resumen)
			admin.DELETE("/registros/:id", registrosH.Eliminar)
			admin.DELETE("/datos", handler.LimpiarDatos(datosSvc))
		}

		exp := v1.Group("/exportar", middleware.RequireRole(model.RolAdmin))
		{
			exp.GET("/registros", exportH.Registros)
			exp.GET("/arqueos/:tipo", exportH.Arqueos)
			exp.GET("/arqueos-remotos", exportH.ArqueosRemotos)
			exp.GET("/resumen-mensual", exportH.ResumenMensual)
			exp.POST("/resumen-mensual/email", exportH.EnviarResumen)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
