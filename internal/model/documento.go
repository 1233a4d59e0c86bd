package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de documento del flujo presupuesto → albarán → factura.
const (
	TipoPresupuesto   = "presupuesto"
	TipoAlbaran       = "albaran"
	TipoFactura       = "factura"
	TipoRectificativa = "factura_rectificativa"
)

// Estados del ciclo de vida. Presupuestos y albaranes recorren
// pendiente → aceptado → facturado; las facturas sólo pendiente → pagado.
const (
	EstadoPendiente = "pendiente"
	EstadoAceptado  = "aceptado"
	EstadoFacturado = "facturado"
	EstadoPagado    = "pagado"
)

// Unidades admitidas en una línea de documento.
var Unidades = []string{"unidad", "hora", "servicio", "dia", "mes", "kg", "m2", "proyecto"}

// Documento stores a presupuesto, albarán, factura or factura rectificativa.
// Numero is assigned exactly once at creation and never changes; the row is
// never deleted (RD 1619/2012 requires invoices be kept at least 4 years).
// Issuer and client data are denormalized snapshots: the document must keep
// the parties' data as issued even if the master records change later.
type Documento struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tipo         string    `gorm:"type:varchar(30);not null;index"`
	Numero       string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	FechaEmision time.Time `gorm:"not null"`
	// FechaValidez only applies to presupuestos
	FechaValidez *time.Time

	// Emisor snapshot
	EmisorNombre    string `gorm:"not null"`
	EmisorNIF       string `gorm:"type:varchar(20);not null;column:emisor_nif"`
	EmisorDireccion string
	EmisorIBAN      string `gorm:"type:varchar(34);column:emisor_iban"`

	// Cliente reference + snapshot
	ClienteID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ClienteNombre    string    `gorm:"not null"`
	ClienteNIF       string    `gorm:"type:varchar(20);not null;column:cliente_nif"`
	ClienteDireccion string
	ClienteCP        string `gorm:"type:varchar(10);column:cliente_cp"`
	ClienteCiudad    string
	ClienteProvincia string
	// ClienteEsEmpresa gates IRPF: withholding never applies to individuals
	ClienteEsEmpresa bool

	Items []DocumentoItem `gorm:"foreignKey:DocumentoID;constraint:OnDelete:CASCADE"`

	BaseImponible  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalIVA       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_iva"`
	PorcentajeIRPF decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:porcentaje_irpf"`
	TotalIRPF      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_irpf"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	MetodoPago string `gorm:"type:varchar(30)"`
	Estado     string `gorm:"type:varchar(20);not null;default:'pendiente';index"`

	// DocumentoOrigenID is a non-owning back-reference: the factura created
	// from a presupuesto points at it, a rectificativa points at the factura
	// it corrects. Used for traceability only.
	DocumentoOrigenID *uuid.UUID `gorm:"type:uuid;index"`

	Notas     string
	RutaPDF   *string `gorm:"column:ruta_pdf"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Documento) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DocumentoItem is one line of a documento. Subtotal is persisted already
// rounded to 2 decimals so that what is printed per line always matches what
// is summed.
type DocumentoItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentoID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Descripcion    string          `gorm:"not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unidad         string          `gorm:"type:varchar(20);not null;default:'unidad'"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PorcentajeIVA  int             `gorm:"not null;column:porcentaje_iva"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (i *DocumentoItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
