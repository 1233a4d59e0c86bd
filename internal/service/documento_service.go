package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"facturador/internal/apperrors"
	"facturador/internal/config"
	"facturador/internal/dto"
	"facturador/internal/fiscal"
	"facturador/internal/model"
	"facturador/internal/repository"
)

// ─── Tabla de transiciones ────────────────────────────────────────────────────

type operacion string

const (
	opAceptar      operacion = "aceptar"
	opPagar        operacion = "pagar"
	opFacturar     operacion = "facturar"
	opCrearAlbaran operacion = "crear_albaran"
	opRectificar   operacion = "rectificar"
)

type transicion struct {
	Tipo   string
	Estado string
	Op     operacion
}

// transiciones is the whole lifecycle in one table, keyed by
// (tipo, estado actual, operación). Anything absent is forbidden, which makes
// backwards moves (pagado → pendiente, facturado → aceptado…) impossible by
// construction.
var transiciones = map[transicion]bool{
	{model.TipoPresupuesto, model.EstadoPendiente, opAceptar}:      true,
	{model.TipoAlbaran, model.EstadoPendiente, opAceptar}:          true,
	{model.TipoPresupuesto, model.EstadoAceptado, opCrearAlbaran}:  true,
	{model.TipoPresupuesto, model.EstadoPendiente, opFacturar}:     true,
	{model.TipoPresupuesto, model.EstadoAceptado, opFacturar}:      true,
	{model.TipoAlbaran, model.EstadoPendiente, opFacturar}:         true,
	{model.TipoAlbaran, model.EstadoAceptado, opFacturar}:          true,
	{model.TipoFactura, model.EstadoPendiente, opPagar}:            true,
	{model.TipoFactura, model.EstadoPendiente, opRectificar}:       true,
	{model.TipoFactura, model.EstadoPagado, opRectificar}:          true,
	{model.TipoRectificativa, model.EstadoPendiente, opPagar}:      true,
}

func permitida(tipo, estado string, op operacion) bool {
	return transiciones[transicion{Tipo: tipo, Estado: estado, Op: op}]
}

// ─── Servicio ────────────────────────────────────────────────────────────────

// Renderer produces the PDF file for a persisted documento and returns the
// path it was written to. The lifecycle only calls it after totals are
// finalized and saved.
type Renderer interface {
	Generar(doc *model.Documento) (string, error)
}

type DocumentoService interface {
	Crear(ctx context.Context, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.DocumentoResponse, error)
	Listar(ctx context.Context, filter dto.DocumentoFilter) ([]dto.DocumentoListItem, error)
	ListarPendientesFacturar(ctx context.Context) ([]dto.DocumentoListItem, error)
	MarcarAceptado(ctx context.Context, id uuid.UUID) error
	MarcarPagado(ctx context.Context, id uuid.UUID) error
	CrearAlbaranDesde(ctx context.Context, presupuestoID uuid.UUID) (*dto.DocumentoResponse, error)
	CrearFacturaDesde(ctx context.Context, origenID uuid.UUID, req dto.FacturarRequest) (*dto.DocumentoResponse, error)
	CrearRectificativa(ctx context.Context, facturaID uuid.UUID, req dto.RectificarRequest) (*dto.DocumentoResponse, error)
	ActualizarLineas(ctx context.Context, id uuid.UUID, req dto.ActualizarLineasRequest) (*dto.DocumentoResponse, error)
	RutaPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type documentoService struct {
	docRepo     repository.DocumentoRepository
	clienteRepo repository.ClienteRepository
	numeracion  NumeracionService
	cfg         *config.Config
	renderer    Renderer
	now         func() time.Time
}

func NewDocumentoService(
	docRepo repository.DocumentoRepository,
	clienteRepo repository.ClienteRepository,
	numeracion NumeracionService,
	cfg *config.Config,
	renderer Renderer,
) DocumentoService {
	return &documentoService{
		docRepo:     docRepo,
		clienteRepo: clienteRepo,
		numeracion:  numeracion,
		cfg:         cfg,
		renderer:    renderer,
		now:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ─── Crear ───────────────────────────────────────────────────────────────────
// One ACID transaction: upsert cliente, asignar número de serie, insert
// documento + líneas. A failure anywhere rolls everything back, so a number
// is never burned on a document that was not saved.

func (s *documentoService) Crear(ctx context.Context, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error) {
	irpf := decimal.NewFromInt(int64(s.cfg.IRPFPorDefecto))
	if req.PorcentajeIRPF != nil {
		irpf = *req.PorcentajeIRPF
	}
	if err := validarIRPF(irpf, req.Cliente.EsEmpresa); err != nil {
		return nil, err
	}

	items := s.lineasToItems(req.Lineas)
	totales, err := fiscal.CalcularTotales(items, irpf)
	if err != nil {
		return nil, err
	}

	ahora := s.now()
	var fechaValidez *time.Time
	if req.Tipo == model.TipoPresupuesto {
		dias := s.cfg.ValidezPresupuestoDias
		if req.DiasValidez != nil {
			dias = *req.DiasValidez
		}
		fv := ahora.AddDate(0, 0, dias)
		fechaValidez = &fv
	}

	cliente := &model.Cliente{
		Nombre:       req.Cliente.Nombre,
		NIF:          req.Cliente.NIF,
		Direccion:    req.Cliente.Direccion,
		CodigoPostal: req.Cliente.CodigoPostal,
		Ciudad:       req.Cliente.Ciudad,
		Provincia:    req.Cliente.Provincia,
		Email:        req.Cliente.Email,
		Telefono:     req.Cliente.Telefono,
		EsEmpresa:    req.Cliente.EsEmpresa,
	}

	doc := &model.Documento{
		Tipo:             req.Tipo,
		FechaEmision:     ahora,
		FechaValidez:     fechaValidez,
		EmisorNombre:     s.cfg.EmisorNombre,
		EmisorNIF:        s.cfg.EmisorNIF,
		EmisorDireccion:  s.cfg.EmisorDireccion,
		EmisorIBAN:       s.cfg.EmisorIBAN,
		ClienteNombre:    cliente.Nombre,
		ClienteNIF:       cliente.NIF,
		ClienteDireccion: cliente.Direccion,
		ClienteCP:        cliente.CodigoPostal,
		ClienteCiudad:    cliente.Ciudad,
		ClienteProvincia: cliente.Provincia,
		ClienteEsEmpresa: cliente.EsEmpresa,
		Items:            items,
		MetodoPago:       req.MetodoPago,
		Estado:           model.EstadoPendiente,
		Notas:            req.Notas,
	}
	aplicarTotales(doc, totales)

	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		if err := s.clienteRepo.Upsert(ctx, tx, cliente); err != nil {
			return err
		}
		doc.ClienteID = cliente.ID
		numero, err := s.numeracion.Asignar(ctx, tx, req.Tipo)
		if err != nil {
			return err
		}
		doc.Numero = numero
		return s.docRepo.Create(ctx, tx, doc)
	})
	if txErr != nil {
		return nil, wrapPersistence("crear documento", txErr)
	}

	s.renderPDF(ctx, doc)
	return documentoToResponse(doc), nil
}

// ─── Consultas ───────────────────────────────────────────────────────────────

func (s *documentoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.DocumentoResponse, error) {
	doc, err := s.obtenerModelo(ctx, id)
	if err != nil {
		return nil, err
	}
	return documentoToResponse(doc), nil
}

func (s *documentoService) Listar(ctx context.Context, filter dto.DocumentoFilter) ([]dto.DocumentoListItem, error) {
	docs, err := s.docRepo.List(ctx, filter.Tipo, filter.Estado)
	if err != nil {
		return nil, apperrors.NewPersistence("listar documentos", err)
	}
	return documentosToListItems(docs), nil
}

func (s *documentoService) ListarPendientesFacturar(ctx context.Context) ([]dto.DocumentoListItem, error) {
	docs, err := s.docRepo.ListPendientesFacturar(ctx)
	if err != nil {
		return nil, apperrors.NewPersistence("listar pendientes de facturar", err)
	}
	return documentosToListItems(docs), nil
}

func (s *documentoService) RutaPDF(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.obtenerModelo(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.RutaPDF == nil || *doc.RutaPDF == "" {
		return "", fmt.Errorf("%w: PDF del documento %s", apperrors.ErrNoEncontrado, doc.Numero)
	}
	return *doc.RutaPDF, nil
}

// ─── Transiciones de estado ──────────────────────────────────────────────────

func (s *documentoService) MarcarAceptado(ctx context.Context, id uuid.UUID) error {
	return s.cambiarEstado(ctx, id, opAceptar, model.EstadoAceptado)
}

func (s *documentoService) MarcarPagado(ctx context.Context, id uuid.UUID) error {
	return s.cambiarEstado(ctx, id, opPagar, model.EstadoPagado)
}

func (s *documentoService) cambiarEstado(ctx context.Context, id uuid.UUID, op operacion, nuevoEstado string) error {
	doc, err := s.obtenerModelo(ctx, id)
	if err != nil {
		return err
	}
	if !permitida(doc.Tipo, doc.Estado, op) {
		return fmt.Errorf("%w: %s en estado %s no puede pasar a %s",
			apperrors.ErrTransicionInvalida, doc.Tipo, doc.Estado, nuevoEstado)
	}

	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		return s.docRepo.UpdateEstado(ctx, tx, doc.ID, nuevoEstado)
	})
	if txErr != nil {
		return apperrors.NewPersistence("cambiar estado", txErr)
	}
	return nil
}

// ─── Derivación de documentos ────────────────────────────────────────────────

// CrearAlbaranDesde creates a delivery note from an accepted presupuesto.
// Lines are copied as-is; the presupuesto itself is not touched.
func (s *documentoService) CrearAlbaranDesde(ctx context.Context, presupuestoID uuid.UUID) (*dto.DocumentoResponse, error) {
	origen, err := s.obtenerModelo(ctx, presupuestoID)
	if err != nil {
		return nil, err
	}
	if !permitida(origen.Tipo, origen.Estado, opCrearAlbaran) {
		return nil, fmt.Errorf("%w: sólo un presupuesto aceptado puede generar un albarán (%s está %s)",
			apperrors.ErrTransicionInvalida, origen.Numero, origen.Estado)
	}

	doc, err := s.derivar(origen, model.TipoAlbaran, copiarItems(origen.Items), origen.PorcentajeIRPF)
	if err != nil {
		return nil, err
	}
	doc.MetodoPago = origen.MetodoPago

	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		numero, err := s.numeracion.Asignar(ctx, tx, model.TipoAlbaran)
		if err != nil {
			return err
		}
		doc.Numero = numero
		return s.docRepo.Create(ctx, tx, doc)
	})
	if txErr != nil {
		return nil, wrapPersistence("crear albarán", txErr)
	}

	s.renderPDF(ctx, doc)
	return documentoToResponse(doc), nil
}

// CrearFacturaDesde issues a factura from a presupuesto or albarán. The
// copied lines may be replaced by edited ones; the source document's own
// lines are never modified, only its estado moves to facturado — in the same
// transaction that saves the new factura.
func (s *documentoService) CrearFacturaDesde(ctx context.Context, origenID uuid.UUID, req dto.FacturarRequest) (*dto.DocumentoResponse, error) {
	origen, err := s.obtenerModelo(ctx, origenID)
	if err != nil {
		return nil, err
	}
	if !permitida(origen.Tipo, origen.Estado, opFacturar) {
		return nil, fmt.Errorf("%w: %s %s en estado %s no puede facturarse",
			apperrors.ErrTransicionInvalida, origen.Tipo, origen.Numero, origen.Estado)
	}

	items := copiarItems(origen.Items)
	if req.Lineas != nil {
		items = s.lineasToItems(req.Lineas)
	}
	irpf := origen.PorcentajeIRPF
	if req.PorcentajeIRPF != nil {
		irpf = *req.PorcentajeIRPF
	}

	doc, err := s.derivar(origen, model.TipoFactura, items, irpf)
	if err != nil {
		return nil, err
	}
	doc.MetodoPago = origen.MetodoPago
	if req.MetodoPago != "" {
		doc.MetodoPago = req.MetodoPago
	}
	doc.Notas = req.Notas

	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		numero, err := s.numeracion.Asignar(ctx, tx, model.TipoFactura)
		if err != nil {
			return err
		}
		doc.Numero = numero
		if err := s.docRepo.Create(ctx, tx, doc); err != nil {
			return err
		}
		return s.docRepo.UpdateEstado(ctx, tx, origen.ID, model.EstadoFacturado)
	})
	if txErr != nil {
		return nil, wrapPersistence("crear factura", txErr)
	}

	s.renderPDF(ctx, doc)
	return documentoToResponse(doc), nil
}

// CrearRectificativa issues a factura rectificativa against a factura.
// Voiding is always a new document: the corrected factura is never deleted
// and keeps its estado.
func (s *documentoService) CrearRectificativa(ctx context.Context, facturaID uuid.UUID, req dto.RectificarRequest) (*dto.DocumentoResponse, error) {
	origen, err := s.obtenerModelo(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if !permitida(origen.Tipo, origen.Estado, opRectificar) {
		return nil, fmt.Errorf("%w: sólo una factura puede rectificarse (%s es %s)",
			apperrors.ErrTransicionInvalida, origen.Numero, origen.Tipo)
	}

	irpf := origen.PorcentajeIRPF
	if req.PorcentajeIRPF != nil {
		irpf = *req.PorcentajeIRPF
	}
	items := s.lineasToItems(lineasRectificativa(req.Lineas))
	doc, err := s.derivar(origen, model.TipoRectificativa, items, irpf)
	if err != nil {
		return nil, err
	}
	doc.MetodoPago = origen.MetodoPago
	doc.Notas = "Rectifica la factura " + origen.Numero + ": " + req.Motivo

	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		numero, err := s.numeracion.Asignar(ctx, tx, model.TipoRectificativa)
		if err != nil {
			return err
		}
		doc.Numero = numero
		return s.docRepo.Create(ctx, tx, doc)
	})
	if txErr != nil {
		return nil, wrapPersistence("crear rectificativa", txErr)
	}

	s.renderPDF(ctx, doc)
	return documentoToResponse(doc), nil
}

// derivar builds the new documento that a lifecycle operation derives from
// origen: fresh emisor snapshot from config, client snapshot copied from the
// source, totals recomputed, back-reference set, estado pendiente.
func (s *documentoService) derivar(origen *model.Documento, tipo string, items []model.DocumentoItem, irpf decimal.Decimal) (*model.Documento, error) {
	if err := validarIRPF(irpf, origen.ClienteEsEmpresa); err != nil {
		return nil, err
	}
	totales, err := fiscal.CalcularTotales(items, irpf)
	if err != nil {
		return nil, err
	}

	doc := &model.Documento{
		Tipo:              tipo,
		FechaEmision:      s.now(),
		EmisorNombre:      s.cfg.EmisorNombre,
		EmisorNIF:         s.cfg.EmisorNIF,
		EmisorDireccion:   s.cfg.EmisorDireccion,
		EmisorIBAN:        s.cfg.EmisorIBAN,
		ClienteID:         origen.ClienteID,
		ClienteNombre:     origen.ClienteNombre,
		ClienteNIF:        origen.ClienteNIF,
		ClienteDireccion:  origen.ClienteDireccion,
		ClienteCP:         origen.ClienteCP,
		ClienteCiudad:     origen.ClienteCiudad,
		ClienteProvincia:  origen.ClienteProvincia,
		ClienteEsEmpresa:  origen.ClienteEsEmpresa,
		Items:             items,
		Estado:            model.EstadoPendiente,
		DocumentoOrigenID: &origen.ID,
	}
	aplicarTotales(doc, totales)
	return doc, nil
}

// ─── Edición de líneas ───────────────────────────────────────────────────────

// ActualizarLineas replaces the lines of a pendiente documento and recomputes
// its totals. Any other estado fails: issued figures are immutable.
func (s *documentoService) ActualizarLineas(ctx context.Context, id uuid.UUID, req dto.ActualizarLineasRequest) (*dto.DocumentoResponse, error) {
	doc, err := s.obtenerModelo(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Estado != model.EstadoPendiente {
		return nil, fmt.Errorf("%w: %s está %s", apperrors.ErrDocumentoInmutable, doc.Numero, doc.Estado)
	}

	irpf := doc.PorcentajeIRPF
	if req.PorcentajeIRPF != nil {
		irpf = *req.PorcentajeIRPF
	}
	if err := validarIRPF(irpf, doc.ClienteEsEmpresa); err != nil {
		return nil, err
	}

	items := s.lineasToItems(req.Lineas)
	totales, err := fiscal.CalcularTotales(items, irpf)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	aplicarTotales(doc, totales)

	txErr := runTx(ctx, s.docRepo.DB(), func(tx *gorm.DB) error {
		return s.docRepo.ReplaceItems(ctx, tx, doc)
	})
	if txErr != nil {
		return nil, apperrors.NewPersistence("actualizar líneas", txErr)
	}

	// The PDF on disk is stale now; regenerate under the same número.
	s.renderPDF(ctx, doc)
	return documentoToResponse(doc), nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *documentoService) obtenerModelo(ctx context.Context, id uuid.UUID) (*model.Documento, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: documento %s", apperrors.ErrNoEncontrado, id)
	}
	if err != nil {
		return nil, apperrors.NewPersistence("cargar documento", err)
	}
	return doc, nil
}

func (s *documentoService) renderPDF(ctx context.Context, doc *model.Documento) {
	if s.renderer == nil {
		return
	}
	ruta, err := s.renderer.Generar(doc)
	if err != nil {
		// The documento is already committed; a failed render is logged and
		// the operator can re-download later once the cause is fixed.
		log.Warn().Err(err).Str("numero", doc.Numero).Msg("no se pudo generar el PDF")
		return
	}
	if err := s.docRepo.UpdateRutaPDF(ctx, doc.ID, ruta); err != nil {
		log.Warn().Err(err).Str("numero", doc.Numero).Msg("no se pudo registrar la ruta del PDF")
		return
	}
	doc.RutaPDF = &ruta
}

func validarIRPF(pct decimal.Decimal, esEmpresa bool) error {
	if !fiscal.TipoIRPFValido(pct) {
		return fmt.Errorf("%w: IRPF %s%%", apperrors.ErrTipoImpositivoInvalido, pct.String())
	}
	if !esEmpresa && !pct.IsZero() {
		return fmt.Errorf("%w: la retención IRPF sólo aplica a empresas y profesionales",
			apperrors.ErrTipoImpositivoInvalido)
	}
	return nil
}

func wrapPersistence(op string, err error) error {
	for _, sentinel := range []error{
		apperrors.ErrSerieDesconocida,
		apperrors.ErrTransicionInvalida,
		apperrors.ErrNoEncontrado,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	var pe *apperrors.PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return apperrors.NewPersistence(op, err)
}

func (s *documentoService) lineasToItems(lineas []dto.LineaRequest) []model.DocumentoItem {
	items := make([]model.DocumentoItem, 0, len(lineas))
	for _, l := range lineas {
		unidad := l.Unidad
		if unidad == "" {
			unidad = "unidad"
		}
		iva := s.cfg.IVAPorDefecto
		if l.PorcentajeIVA != nil {
			iva = *l.PorcentajeIVA
		}
		items = append(items, model.DocumentoItem{
			Descripcion:    l.Descripcion,
			Cantidad:       l.Cantidad,
			Unidad:         unidad,
			PrecioUnitario: l.PrecioUnitario,
			PorcentajeIVA:  iva,
			Subtotal:       fiscal.SubtotalLinea(l.Cantidad, l.PrecioUnitario),
		})
	}
	return items
}

// lineasRectificativa lifts the rectificativa's sign-free lines into the
// common line shape before conversion.
func lineasRectificativa(lineas []dto.LineaRectificativaRequest) []dto.LineaRequest {
	out := make([]dto.LineaRequest, 0, len(lineas))
	for _, l := range lineas {
		out = append(out, dto.LineaRequest{
			Descripcion:    l.Descripcion,
			Cantidad:       l.Cantidad,
			Unidad:         l.Unidad,
			PrecioUnitario: l.PrecioUnitario,
			PorcentajeIVA:  l.PorcentajeIVA,
		})
	}
	return out
}

// copiarItems clones lines without IDs so gorm inserts fresh rows for the
// derived documento instead of re-parenting the source's.
func copiarItems(items []model.DocumentoItem) []model.DocumentoItem {
	copia := make([]model.DocumentoItem, 0, len(items))
	for _, it := range items {
		copia = append(copia, model.DocumentoItem{
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			Unidad:         it.Unidad,
			PrecioUnitario: it.PrecioUnitario,
			PorcentajeIVA:  it.PorcentajeIVA,
			Subtotal:       it.Subtotal,
		})
	}
	return copia
}

func aplicarTotales(doc *model.Documento, t *fiscal.Totales) {
	doc.BaseImponible = t.BaseImponible
	doc.TotalIVA = t.TotalIVA
	doc.PorcentajeIRPF = t.PorcentajeIRPF
	doc.TotalIRPF = t.TotalIRPF
	doc.Total = t.Total
}

func documentoToResponse(d *model.Documento) *dto.DocumentoResponse {
	resp := &dto.DocumentoResponse{
		ID:             d.ID.String(),
		Tipo:           d.Tipo,
		Numero:         d.Numero,
		FechaEmision:   d.FechaEmision.Format("2006-01-02"),
		ClienteID:      d.ClienteID.String(),
		ClienteNombre:  d.ClienteNombre,
		ClienteNIF:     d.ClienteNIF,
		BaseImponible:  d.BaseImponible,
		TotalIVA:       d.TotalIVA,
		PorcentajeIRPF: d.PorcentajeIRPF,
		TotalIRPF:      d.TotalIRPF,
		Total:          d.Total,
		MetodoPago:     d.MetodoPago,
		Estado:         d.Estado,
		Notas:          d.Notas,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
	if d.FechaValidez != nil {
		fv := d.FechaValidez.Format("2006-01-02")
		resp.FechaValidez = &fv
	}
	if d.DocumentoOrigenID != nil {
		o := d.DocumentoOrigenID.String()
		resp.DocumentoOrigenID = &o
	}
	if d.RutaPDF != nil && *d.RutaPDF != "" {
		u := "/v1/documentos/" + d.ID.String() + "/pdf"
		resp.PDFUrl = &u
	}

	for _, it := range d.Items {
		resp.Lineas = append(resp.Lineas, dto.LineaResponse{
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			Unidad:         it.Unidad,
			PrecioUnitario: it.PrecioUnitario,
			PorcentajeIVA:  it.PorcentajeIVA,
			Subtotal:       it.Subtotal,
		})
	}

	if totales, err := fiscal.CalcularTotales(d.Items, d.PorcentajeIRPF); err == nil {
		tipos := make([]int, 0, len(totales.DesgloseIVA))
		for t := range totales.DesgloseIVA {
			tipos = append(tipos, t)
		}
		sort.Ints(tipos)
		for _, t := range tipos {
			resp.DesgloseIVA = append(resp.DesgloseIVA, dto.DesgloseIVAResponse{
				PorcentajeIVA: t,
				Base:          totales.DesgloseIVA[t].Base,
				Cuota:         totales.DesgloseIVA[t].Cuota,
			})
		}
	}
	return resp
}

func documentosToListItems(docs []model.Documento) []dto.DocumentoListItem {
	items := make([]dto.DocumentoListItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, dto.DocumentoListItem{
			ID:            d.ID.String(),
			Tipo:          d.Tipo,
			Numero:        d.Numero,
			FechaEmision:  d.FechaEmision.Format("2006-01-02"),
			ClienteNombre: d.ClienteNombre,
			Total:         d.Total,
			Estado:        d.Estado,
		})
	}
	return items
}
