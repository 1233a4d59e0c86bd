package router

import (
	"time"

	"facturador/internal/config"
	"facturador/internal/handler"
	"facturador/internal/infra"
	"facturador/internal/middleware"
	"facturador/internal/repository"
	"facturador/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	documentoRepo := repository.NewDocumentoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	serieRepo := repository.NewSerieRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	renderer := infra.NewPDFRenderer(cfg)
	numeracionSvc := service.NewNumeracionService(serieRepo, cfg)
	documentoSvc := service.NewDocumentoService(documentoRepo, clienteRepo, numeracionSvc, cfg, renderer)
	clienteSvc := service.NewClienteService(clienteRepo, db)

	// ── Handlers ─────────────────────────────────────────────────────────────
	documentosH := handler.NewDocumentosHandler(documentoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db))

	v1 := r.Group("/v1")
	{
		docs := v1.Group("/documentos")
		{
			docs.POST("", documentosH.Crear)
			docs.GET("", documentosH.Listar)
			docs.GET("/pendientes-facturar", documentosH.PendientesFacturar)
			docs.GET("/:id", documentosH.Obtener)
			docs.PUT("/:id/lineas", documentosH.ActualizarLineas)
			docs.POST("/:id/aceptar", documentosH.MarcarAceptado)
			docs.POST("/:id/pagar", documentosH.MarcarPagado)
			docs.POST("/:id/albaran", documentosH.CrearAlbaran)
			docs.POST("/:id/factura", documentosH.CrearFactura)
			docs.POST("/:id/rectificativa", documentosH.CrearRectificativa)
			docs.GET("/:id/pdf", documentosH.DescargarPDF)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Guardar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
		}
	}

	return r
}
