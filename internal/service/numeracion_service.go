package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"facturador/internal/apperrors"
	"facturador/internal/config"
	"facturador/internal/model"
	"facturador/internal/repository"
)

// prefijos is the fixed prefix per document type; the serie code next to it
// comes from configuration. Together they form P-P-2025-0001, AL-AL-2025-0003,
// A-A-2025-0012, R-R-2025-0001.
var prefijos = map[string]string{
	model.TipoPresupuesto:   "P",
	model.TipoAlbaran:       "AL",
	model.TipoFactura:       "A",
	model.TipoRectificativa: "R",
}

// NumeracionService allocates sequential document numbers per series and
// calendar year. Numbers are contiguous from 1, strictly increasing and never
// reused; a new year starts the sequence over while past years stay readable.
type NumeracionService interface {
	// Asignar must be called inside the transaction that saves the documento
	// so numbering and persistence commit or roll back as one unit.
	Asignar(ctx context.Context, tx *gorm.DB, tipo string) (string, error)
	// UltimoNumero reports the high-water mark of a series for a year.
	UltimoNumero(ctx context.Context, tipo string, anio int) (int, error)
}

type numeracionService struct {
	series repository.SerieRepository
	cfg    *config.Config
	now    func() time.Time
}

func NewNumeracionService(series repository.SerieRepository, cfg *config.Config) NumeracionService {
	return &numeracionService{series: series, cfg: cfg, now: time.Now}
}

func (s *numeracionService) Asignar(ctx context.Context, tx *gorm.DB, tipo string) (string, error) {
	prefijo, ok := prefijos[tipo]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrSerieDesconocida, tipo)
	}
	serie, err := s.cfg.SeriePara(tipo)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, tipo)
	}

	anio := s.now().Year()
	n, err := s.series.NextNumber(ctx, tx, tipo, serie, anio)
	if err != nil {
		return "", apperrors.NewPersistence("asignar número de serie", err)
	}
	return fmt.Sprintf("%s-%s-%d-%04d", prefijo, serie, anio, n), nil
}

func (s *numeracionService) UltimoNumero(ctx context.Context, tipo string, anio int) (int, error) {
	serie, err := s.cfg.SeriePara(tipo)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, tipo)
	}
	n, err := s.series.UltimoNumero(ctx, tipo, serie, anio)
	if err != nil {
		return 0, apperrors.NewPersistence("consultar última numeración", err)
	}
	return n, nil
}
