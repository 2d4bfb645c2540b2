package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/config"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/handler"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/infra"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/metrics"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/middleware"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/repository"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/scale"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/service"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New wires all dependencies and returns a configured Gin engine plus the
// worker handlers for the async pool.
// Dependency graph: Handler ← Service ← Engine/Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, catalogoCB *infra.CircuitBreaker) (*gin.Engine, *worker.Handlers) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP
	r.Use(metrics.PrometheusMiddleware())

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	bascula := scale.NewSimulador(cfg.BasculaMin, cfg.BasculaMax, time.Now().UnixNano())

	// ── Repositories ─────────────────────────────────────────────────────────
	loteRepo := repository.NewLoteRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	loteSvc := service.NewLoteService(loteRepo, dispatcher)

	// Stations read their catalog from the remote console when CATALOGO_URL
	// is set; otherwise straight from the local tables.
	var fuente catalog.Fuente
	if cfg.CatalogoURL != "" {
		fuente = infra.NewCatalogoClient(cfg.CatalogoURL, catalogoCB)
	} else {
		fuente = service.NewFuenteLocal(catalogoRepo)
	}

	// Same split for the lot commit: remote endpoint or the local store.
	var committer engine.Committer
	if cfg.PesajeURL != "" {
		committer = infra.NewPesajeClient(cfg.PesajeURL)
	} else {
		committer = loteSvc
	}

	operador := engine.Operador{ID: cfg.OperadorID, Nombre: cfg.OperadorNombre}
	estacionSvc := service.NewEstacionService(fuente, bascula, committer, operador)

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogoH := handler.NewCatalogoHandler(catalogoRepo)
	pesajeH := handler.NewPesajeHandler(loteSvc)
	estacionesH := handler.NewEstacionesHandler(estacionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, catalogoCB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Catalog reads — same envelope the station screens already consume
		api.GET("/provedores", catalogoH.ListarProveedores)
		api.GET("/productos", catalogoH.ListarProductos)

		// Lot commit + history
		api.POST("/pesaje/guardar-lote", pesajeH.GuardarLote)
		api.GET("/lotes", pesajeH.ListarLotes)
		api.GET("/lotes/:id", pesajeH.ObtenerLote)

		est := api.Group("/estaciones/:estacion")
		{
			est.POST("/activar", estacionesH.Activar)
			est.GET("/referencias", estacionesH.Referencias)
			est.GET("/estado", estacionesH.Estado)
			est.POST("/iniciar", estacionesH.Iniciar)
			est.POST("/carga", estacionesH.ConfirmarCarga)
			est.POST("/producto", estacionesH.SeleccionarProducto)
			est.POST("/area", estacionesH.SeleccionarArea)
			est.POST("/tara", estacionesH.CapturarTara)
			est.POST("/bruto", estacionesH.CapturarBruto)
			est.POST("/registrar", estacionesH.Registrar)
			est.DELETE("/registros/:id", estacionesH.QuitarRegistro)
			est.POST("/finalizar", estacionesH.Finalizar)
			est.POST("/reiniciar", estacionesH.Reiniciar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ── Async workers ────────────────────────────────────────────────────────
	ticketW := worker.NewTicketWorker(loteRepo, dispatcher, rdb, cfg.PDFStoragePath, cfg.ReportesEmail)
	emailW := worker.NewEmailWorker(mailer, rdb)

	return r, &worker.Handlers{Ticket: ticketW, Email: emailW}
}
