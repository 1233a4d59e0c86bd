package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente is the client book entry. NIF is the business key: creating a
// documento for an already-known NIF updates this record instead of
// duplicating it.
type Cliente struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre       string    `gorm:"not null"`
	NIF          string    `gorm:"type:varchar(20);not null;uniqueIndex;column:nif"`
	Direccion    string
	CodigoPostal string `gorm:"type:varchar(10)"`
	Ciudad       string
	Provincia    string
	Email        string
	Telefono     string `gorm:"type:varchar(20)"`
	EsEmpresa    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
