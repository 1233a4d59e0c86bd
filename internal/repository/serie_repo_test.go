package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"facturador/internal/model"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Serie{}))
	return db
}

func TestNextNumber_SecuenciaContigua(t *testing.T) {
	db := abrirDB(t)
	repo := NewSerieRepository(db)
	ctx := context.Background()

	for esperado := 1; esperado <= 5; esperado++ {
		var n int
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			n, err = repo.NextNumber(ctx, tx, model.TipoFactura, "A", 2025)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, esperado, n)
	}
}

func TestNextNumber_SeriesIndependientes(t *testing.T) {
	db := abrirDB(t)
	repo := NewSerieRepository(db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := repo.NextNumber(ctx, tx, model.TipoFactura, "A", 2025)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = repo.NextNumber(ctx, tx, model.TipoPresupuesto, "P", 2025)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "cada tipo lleva su propio contador")

		n, err = repo.NextNumber(ctx, tx, model.TipoFactura, "A", 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "el año nuevo reinicia la secuencia")
		return nil
	})
	require.NoError(t, err)
}

func TestNextNumber_RollbackDevuelveElNumero(t *testing.T) {
	db := abrirDB(t)
	repo := NewSerieRepository(db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.NextNumber(ctx, tx, model.TipoFactura, "A", 2025)
		require.NoError(t, err)
		return gorm.ErrInvalidData // fuerza el rollback
	})
	require.Error(t, err)

	// Tras el rollback la siguiente asignación repite el número: sin huecos.
	var n int
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = repo.NextNumber(ctx, tx, model.TipoFactura, "A", 2025)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUltimoNumero(t *testing.T) {
	db := abrirDB(t)
	repo := NewSerieRepository(db)
	ctx := context.Background()

	n, err := repo.UltimoNumero(ctx, model.TipoFactura, "A", 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "serie sin emitir")

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 3; i++ {
			if _, err := repo.NextNumber(ctx, tx, model.TipoFactura, "A", 2025); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	n, err = repo.UltimoNumero(ctx, model.TipoFactura, "A", 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "consultar no incrementa")
}
