package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Serie holds the high-water mark of a numbering series for one calendar
// year. For a given (tipo, serie, anio) the issued numbers are a contiguous
// range starting at 1; the counter is only ever incremented, never reset or
// reused, and rows for past years stay untouched for audit.
type Serie struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tipo         string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_serie_tipo_anio"`
	Serie        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_serie_tipo_anio"`
	Anio         int       `gorm:"not null;uniqueIndex:idx_serie_tipo_anio"`
	UltimoNumero int       `gorm:"not null;default:0"`
}

func (s *Serie) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
