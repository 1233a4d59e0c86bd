package handler

import (
	"context"
	"net/http"
	"path/filepath"

	"facturador/internal/apierror"
	"facturador/internal/dto"
	"facturador/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentosHandler struct{ svc service.DocumentoService }

func NewDocumentosHandler(svc service.DocumentoService) *DocumentosHandler {
	return &DocumentosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear documento
// @Description  Crea un presupuesto, albarán o factura directa: asigna número de serie, calcula totales y genera el PDF.
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearDocumentoRequest true "Documento a emitir"
// @Success      201  {object} dto.DocumentoResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/documentos [post]
func (h *DocumentosHandler) Crear(c *gin.Context) {
	var req dto.CrearDocumentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns documents of one tipo, optionally filtered by estado.
func (h *DocumentosHandler) Listar(c *gin.Context) {
	var filter dto.DocumentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido: "+err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido"))
		return
	}
	docs, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

// PendientesFacturar lists presupuestos aceptados and albaranes pendientes.
func (h *DocumentosHandler) PendientesFacturar(c *gin.Context) {
	docs, err := h.svc.ListarPendientesFacturar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

func (h *DocumentosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarAceptado moves a pendiente presupuesto/albarán to aceptado.
func (h *DocumentosHandler) MarcarAceptado(c *gin.Context) {
	h.cambiarEstado(c, h.svc.MarcarAceptado)
}

// MarcarPagado moves a pendiente factura to pagado (terminal).
func (h *DocumentosHandler) MarcarPagado(c *gin.Context) {
	h.cambiarEstado(c, h.svc.MarcarPagado)
}

// CrearAlbaran derives an albarán from an accepted presupuesto.
func (h *DocumentosHandler) CrearAlbaran(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.CrearAlbaranDesde(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearFactura godoc
// @Summary      Facturar documento
// @Description  Emite una factura desde un presupuesto o albarán; las líneas copiadas pueden editarse en el cuerpo. El documento origen pasa a facturado.
// @Tags         documentos
// @Param        id   path string             true  "UUID del documento origen"
// @Param        body body dto.FacturarRequest false "Líneas editadas (opcional)"
// @Success      201  {object} dto.DocumentoResponse
// @Router       /v1/documentos/{id}/factura [post]
func (h *DocumentosHandler) CrearFactura(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.FacturarRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearFacturaDesde(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearRectificativa issues a factura rectificativa against a factura.
func (h *DocumentosHandler) CrearRectificativa(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RectificarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRectificativa(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarLineas replaces the lines of a pendiente documento.
func (h *DocumentosHandler) ActualizarLineas(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarLineasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarLineas(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF streams the rendered PDF of a documento.
func (h *DocumentosHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ruta, err := h.svc.RutaPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(ruta, filepath.Base(ruta))
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (h *DocumentosHandler) cambiarEstado(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
