package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"facturador/internal/model"
)

type DocumentoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, d *model.Documento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error)
	List(ctx context.Context, tipo, estado string) ([]model.Documento, error)
	// ListPendientesFacturar returns presupuestos aceptados and albaranes
	// pendientes: everything the operator can still turn into a factura.
	ListPendientesFacturar(ctx context.Context) ([]model.Documento, error)
	UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	// ReplaceItems swaps the full line set and rewrites the stored totals.
	// Only the lifecycle layer calls this, and only while estado = pendiente.
	ReplaceItems(ctx context.Context, tx *gorm.DB, d *model.Documento) error
	UpdateRutaPDF(ctx context.Context, id uuid.UUID, ruta string) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type documentoRepo struct{ db *gorm.DB }

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository { return &documentoRepo{db: db} }

func (r *documentoRepo) DB() *gorm.DB { return r.db }

func (r *documentoRepo) Create(ctx context.Context, tx *gorm.DB, d *model.Documento) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (r *documentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).Preload("Items").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *documentoRepo) List(ctx context.Context, tipo, estado string) ([]model.Documento, error) {
	q := r.db.WithContext(ctx).Where("tipo = ?", tipo)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var docs []model.Documento
	err := q.Order("fecha_emision DESC, numero DESC").Find(&docs).Error
	return docs, err
}

func (r *documentoRepo) ListPendientesFacturar(ctx context.Context) ([]model.Documento, error) {
	var docs []model.Documento
	err := r.db.WithContext(ctx).
		Where("(tipo = ? AND estado = ?) OR (tipo = ? AND estado = ?)",
			model.TipoPresupuesto, model.EstadoAceptado,
			model.TipoAlbaran, model.EstadoPendiente).
		Order("fecha_emision DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentoRepo) UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.WithContext(ctx).
		Model(&model.Documento{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *documentoRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, d *model.Documento) error {
	err := tx.WithContext(ctx).
		Where("documento_id = ?", d.ID).
		Delete(&model.DocumentoItem{}).Error
	if err != nil {
		return err
	}
	for i := range d.Items {
		d.Items[i].DocumentoID = d.ID
	}
	if err := tx.WithContext(ctx).Create(&d.Items).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).
		Model(&model.Documento{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"base_imponible":  d.BaseImponible,
			"total_iva":       d.TotalIVA,
			"porcentaje_irpf": d.PorcentajeIRPF,
			"total_irpf":      d.TotalIRPF,
			"total":           d.Total,
		}).Error
}

func (r *documentoRepo) UpdateRutaPDF(ctx context.Context, id uuid.UUID, ruta string) error {
	return r.db.WithContext(ctx).
		Model(&model.Documento{}).
		Where("id = ?", id).
		Update("ruta_pdf", ruta).Error
}
