package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LineaRequest struct {
	Descripcion    string          `json:"descripcion"     validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required,gt=0"`
	Unidad         string          `json:"unidad"          validate:"omitempty,unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	// PorcentajeIVA defaults to the configured IVA_POR_DEFECTO when omitted
	PorcentajeIVA *int `json:"porcentaje_iva" validate:"omitempty,oneof=0 4 10 21"`
}

// LineaRectificativaRequest is LineaRequest without the positive-quantity
// rule: a rectificativa negates or replaces the original lines, so negative
// quantities are the normal case.
type LineaRectificativaRequest struct {
	Descripcion    string          `json:"descripcion"     validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	Unidad         string          `json:"unidad"          validate:"omitempty,unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	PorcentajeIVA  *int            `json:"porcentaje_iva"  validate:"omitempty,oneof=0 4 10 21"`
}

type ClienteDocumentoRequest struct {
	Nombre       string `json:"nombre"        validate:"required"`
	NIF          string `json:"nif"           validate:"required"`
	Direccion    string `json:"direccion"`
	CodigoPostal string `json:"codigo_postal"`
	Ciudad       string `json:"ciudad"`
	Provincia    string `json:"provincia"`
	Email        string `json:"email"         validate:"omitempty,email"`
	Telefono     string `json:"telefono"`
	// EsEmpresa marks the recipient as business/professional; IRPF withholding
	// is only legal on those.
	EsEmpresa bool `json:"es_empresa"`
}

type CrearDocumentoRequest struct {
	Tipo    string                  `json:"tipo"    validate:"required,oneof=presupuesto albaran factura"`
	Cliente ClienteDocumentoRequest `json:"cliente" validate:"required"`
	Lineas  []LineaRequest          `json:"lineas"  validate:"required,min=1,dive"`
	// PorcentajeIRPF defaults to the configured IRPF_POR_DEFECTO when nil
	PorcentajeIRPF *decimal.Decimal `json:"porcentaje_irpf"`
	MetodoPago     string           `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia tarjeta bizum domiciliacion"`
	// DiasValidez only applies to presupuestos (default VALIDEZ_PRESUPUESTO_DIAS)
	DiasValidez *int   `json:"dias_validez" validate:"omitempty,min=1,max=365"`
	Notas       string `json:"notas"`
}

// FacturarRequest derives a factura from a presupuesto or albarán. Lineas is
// optional: when present it replaces the copied lines (quantities, prices and
// VAT may be edited before issuing).
type FacturarRequest struct {
	Lineas         []LineaRequest   `json:"lineas"          validate:"omitempty,min=1,dive"`
	PorcentajeIRPF *decimal.Decimal `json:"porcentaje_irpf"`
	MetodoPago     string           `json:"metodo_pago"     validate:"omitempty,oneof=efectivo transferencia tarjeta bizum domiciliacion"`
	Notas          string           `json:"notas"`
}

// RectificarRequest issues a factura rectificativa against an existing
// factura. The caller supplies the corrected (or negated) lines.
type RectificarRequest struct {
	Lineas         []LineaRectificativaRequest `json:"lineas" validate:"required,min=1,dive"`
	PorcentajeIRPF *decimal.Decimal            `json:"porcentaje_irpf"`
	Motivo         string                      `json:"motivo" validate:"required,min=5"`
}

type ActualizarLineasRequest struct {
	Lineas         []LineaRequest   `json:"lineas" validate:"required,min=1,dive"`
	PorcentajeIRPF *decimal.Decimal `json:"porcentaje_irpf"`
}

// DocumentoFilter is bound from the query string of GET /v1/documentos.
type DocumentoFilter struct {
	Tipo   string `form:"tipo"   validate:"required,oneof=presupuesto albaran factura factura_rectificativa"`
	Estado string `form:"estado" validate:"omitempty,oneof=pendiente aceptado facturado pagado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaResponse struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PorcentajeIVA  int             `json:"porcentaje_iva"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type DesgloseIVAResponse struct {
	PorcentajeIVA int             `json:"porcentaje_iva"`
	Base          decimal.Decimal `json:"base"`
	Cuota         decimal.Decimal `json:"cuota"`
}

type DocumentoResponse struct {
	ID                string                `json:"id"`
	Tipo              string                `json:"tipo"`
	Numero            string                `json:"numero"`
	FechaEmision      string                `json:"fecha_emision"`
	FechaValidez      *string               `json:"fecha_validez,omitempty"`
	ClienteID         string                `json:"cliente_id"`
	ClienteNombre     string                `json:"cliente_nombre"`
	ClienteNIF        string                `json:"cliente_nif"`
	Lineas            []LineaResponse       `json:"lineas"`
	BaseImponible     decimal.Decimal       `json:"base_imponible"`
	TotalIVA          decimal.Decimal       `json:"total_iva"`
	PorcentajeIRPF    decimal.Decimal       `json:"porcentaje_irpf"`
	TotalIRPF         decimal.Decimal       `json:"total_irpf"`
	Total             decimal.Decimal       `json:"total"`
	DesgloseIVA       []DesgloseIVAResponse `json:"desglose_iva"`
	MetodoPago        string                `json:"metodo_pago,omitempty"`
	Estado            string                `json:"estado"`
	DocumentoOrigenID *string               `json:"documento_origen_id,omitempty"`
	Notas             string                `json:"notas,omitempty"`
	PDFUrl            *string               `json:"pdf_url,omitempty"`
	CreatedAt         string                `json:"created_at"`
}

// DocumentoListItem is the summary row for listings.
type DocumentoListItem struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	Numero        string          `json:"numero"`
	FechaEmision  string          `json:"fecha_emision"`
	ClienteNombre string          `json:"cliente_nombre"`
	Total         decimal.Decimal `json:"total"`
	Estado        string          `json:"estado"`
}
