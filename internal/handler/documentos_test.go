package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/dto"
	"facturador/internal/model"
	"facturador/internal/service"
)

// ── DocumentoService stub ────────────────────────────────────────────────────

type stubDocumentoService struct {
	ultimaRectificacion *dto.RectificarRequest
	ultimaCreacion      *dto.CrearDocumentoRequest
}

func (s *stubDocumentoService) Crear(_ context.Context, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error) {
	s.ultimaCreacion = &req
	return &dto.DocumentoResponse{ID: uuid.NewString(), Tipo: req.Tipo, Estado: model.EstadoPendiente}, nil
}

func (s *stubDocumentoService) Obtener(_ context.Context, _ uuid.UUID) (*dto.DocumentoResponse, error) {
	return &dto.DocumentoResponse{}, nil
}

func (s *stubDocumentoService) Listar(_ context.Context, _ dto.DocumentoFilter) ([]dto.DocumentoListItem, error) {
	return nil, nil
}

func (s *stubDocumentoService) ListarPendientesFacturar(_ context.Context) ([]dto.DocumentoListItem, error) {
	return nil, nil
}

func (s *stubDocumentoService) MarcarAceptado(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubDocumentoService) MarcarPagado(_ context.Context, _ uuid.UUID) error   { return nil }

func (s *stubDocumentoService) CrearAlbaranDesde(_ context.Context, _ uuid.UUID) (*dto.DocumentoResponse, error) {
	return &dto.DocumentoResponse{}, nil
}

func (s *stubDocumentoService) CrearFacturaDesde(_ context.Context, _ uuid.UUID, _ dto.FacturarRequest) (*dto.DocumentoResponse, error) {
	return &dto.DocumentoResponse{}, nil
}

func (s *stubDocumentoService) CrearRectificativa(_ context.Context, _ uuid.UUID, req dto.RectificarRequest) (*dto.DocumentoResponse, error) {
	s.ultimaRectificacion = &req
	return &dto.DocumentoResponse{ID: uuid.NewString(), Tipo: model.TipoRectificativa, Estado: model.EstadoPendiente}, nil
}

func (s *stubDocumentoService) ActualizarLineas(_ context.Context, _ uuid.UUID, _ dto.ActualizarLineasRequest) (*dto.DocumentoResponse, error) {
	return &dto.DocumentoResponse{}, nil
}

func (s *stubDocumentoService) RutaPDF(_ context.Context, _ uuid.UUID) (string, error) {
	return "", nil
}

// compile-time interface check
var _ service.DocumentoService = (*stubDocumentoService)(nil)

// ── helpers ──────────────────────────────────────────────────────────────────

func montarRouter(svc service.DocumentoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDocumentosHandler(svc)
	r := gin.New()
	r.POST("/v1/documentos", h.Crear)
	r.POST("/v1/documentos/:id/rectificativa", h.CrearRectificativa)
	return r
}

func postJSON(r *gin.Engine, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCrearRectificativa_AdmiteLineasNegadas(t *testing.T) {
	svc := &stubDocumentoService{}
	r := montarRouter(svc)

	body := `{
		"lineas": [{
			"descripcion": "Anulación consultoría técnica",
			"cantidad": -2,
			"unidad": "hora",
			"precio_unitario": 50.00,
			"porcentaje_iva": 21
		}],
		"motivo": "anulación total por error en el concepto"
	}`
	w := postJSON(r, "/v1/documentos/"+uuid.NewString()+"/rectificativa", body)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.ultimaRectificacion)
	require.Len(t, svc.ultimaRectificacion.Lineas, 1)
	assert.Equal(t, "-2", svc.ultimaRectificacion.Lineas[0].Cantidad.String())
}

func TestCrearRectificativa_CantidadCeroRechazada(t *testing.T) {
	svc := &stubDocumentoService{}
	r := montarRouter(svc)

	body := `{
		"lineas": [{
			"descripcion": "Línea vacía",
			"cantidad": 0,
			"precio_unitario": 50.00,
			"porcentaje_iva": 21
		}],
		"motivo": "motivo suficientemente largo"
	}`
	w := postJSON(r, "/v1/documentos/"+uuid.NewString()+"/rectificativa", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, svc.ultimaRectificacion, "la validación corta antes de llegar al servicio")
}

func TestCrear_CantidadNegativaRechazada(t *testing.T) {
	// Fuera de la rectificativa, las cantidades siguen siendo estrictamente positivas.
	svc := &stubDocumentoService{}
	r := montarRouter(svc)

	body := `{
		"tipo": "presupuesto",
		"cliente": {"nombre": "María López", "nif": "87654321X"},
		"lineas": [{
			"descripcion": "Consultoría",
			"cantidad": -1,
			"precio_unitario": 50.00,
			"porcentaje_iva": 21
		}]
	}`
	w := postJSON(r, "/v1/documentos", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, svc.ultimaCreacion)
}

func TestCrear_UnidadFueraDelCatalogo(t *testing.T) {
	svc := &stubDocumentoService{}
	r := montarRouter(svc)

	body := `{
		"tipo": "presupuesto",
		"cliente": {"nombre": "María López", "nif": "87654321X"},
		"lineas": [{
			"descripcion": "Transporte",
			"cantidad": 3,
			"unidad": "tonelada",
			"precio_unitario": 80.00,
			"porcentaje_iva": 21
		}]
	}`
	w := postJSON(r, "/v1/documentos", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, svc.ultimaCreacion)
}

func TestCrear_UnidadDelCatalogo(t *testing.T) {
	svc := &stubDocumentoService{}
	r := montarRouter(svc)

	body := `{
		"tipo": "presupuesto",
		"cliente": {"nombre": "María López", "nif": "87654321X"},
		"lineas": [{
			"descripcion": "Material",
			"cantidad": 3,
			"unidad": "kg",
			"precio_unitario": 80.00,
			"porcentaje_iva": 21
		}]
	}`
	w := postJSON(r, "/v1/documentos", body)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.ultimaCreacion)
	assert.Equal(t, "kg", svc.ultimaCreacion.Lineas[0].Unidad)
}
