package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"facturador/internal/model"
)

type ClienteRepository interface {
	// Upsert creates the cliente or, when the NIF is already known, updates
	// the existing record in place and sets c.ID to the stored row's id.
	Upsert(ctx context.Context, tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByNIF(ctx context.Context, nif string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Upsert(ctx context.Context, tx *gorm.DB, c *model.Cliente) error {
	var existente model.Cliente
	err := tx.WithContext(ctx).Where("nif = ?", c.NIF).First(&existente).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.WithContext(ctx).Create(c).Error
	case err != nil:
		return err
	}

	c.ID = existente.ID
	c.CreatedAt = existente.CreatedAt
	return tx.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByNIF(ctx context.Context, nif string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("nif = ?", nif).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre").Find(&clientes).Error
	return clientes, err
}
