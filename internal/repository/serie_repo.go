package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"facturador/internal/model"
)

type SerieRepository interface {
	// NextNumber increments and returns the counter for (tipo, serie, anio),
	// creating the row at 1 on first use in a year. It MUST run inside the
	// same transaction that persists the documento: if the save fails the
	// rollback returns the number, so the sequence stays gapless.
	NextNumber(ctx context.Context, tx *gorm.DB, tipo, serie string, anio int) (int, error)
	// UltimoNumero returns the high-water mark without incrementing
	// (0 when the series has not issued in that year). Audit/lookup only.
	UltimoNumero(ctx context.Context, tipo, serie string, anio int) (int, error)
}

type serieRepo struct{ db *gorm.DB }

func NewSerieRepository(db *gorm.DB) SerieRepository { return &serieRepo{db: db} }

func (r *serieRepo) NextNumber(ctx context.Context, tx *gorm.DB, tipo, serie string, anio int) (int, error) {
	// SQLite serializes writers, so the read-modify-write below is atomic as
	// long as it stays within the caller's transaction.
	var s model.Serie
	err := tx.WithContext(ctx).
		Where("tipo = ? AND serie = ? AND anio = ?", tipo, serie, anio).
		First(&s).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s = model.Serie{Tipo: tipo, Serie: serie, Anio: anio, UltimoNumero: 1}
		if err := tx.WithContext(ctx).Create(&s).Error; err != nil {
			return 0, err
		}
		return 1, nil
	case err != nil:
		return 0, err
	}

	s.UltimoNumero++
	err = tx.WithContext(ctx).
		Model(&model.Serie{}).
		Where("id = ?", s.ID).
		Update("ultimo_numero", s.UltimoNumero).Error
	if err != nil {
		return 0, err
	}
	return s.UltimoNumero, nil
}

func (r *serieRepo) UltimoNumero(ctx context.Context, tipo, serie string, anio int) (int, error) {
	var s model.Serie
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND serie = ? AND anio = ?", tipo, serie, anio).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.UltimoNumero, nil
}
