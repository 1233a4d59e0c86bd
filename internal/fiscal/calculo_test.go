package fiscal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/apperrors"
	"facturador/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func linea(cantidad, precio string, iva int) model.DocumentoItem {
	return model.DocumentoItem{
		Descripcion:    "Servicio",
		Cantidad:       dec(cantidad),
		Unidad:         "hora",
		PrecioUnitario: dec(precio),
		PorcentajeIVA:  iva,
	}
}

func TestCalcularTotales_FacturaProfesionalConIRPF(t *testing.T) {
	// 2 horas × 50.00 al 21% de IVA con 15% de IRPF:
	// base 100.00, IVA 21.00, IRPF 15.00, total 106.00
	items := []model.DocumentoItem{linea("2", "50.00", 21)}

	totales, err := CalcularTotales(items, dec("15"))
	require.NoError(t, err)

	assert.True(t, totales.BaseImponible.Equal(dec("100.00")), "base: %s", totales.BaseImponible)
	assert.True(t, totales.TotalIVA.Equal(dec("21.00")), "iva: %s", totales.TotalIVA)
	assert.True(t, totales.TotalIRPF.Equal(dec("15.00")), "irpf: %s", totales.TotalIRPF)
	assert.True(t, totales.Total.Equal(dec("106.00")), "total: %s", totales.Total)
}

func TestCalcularTotales_DesglosePorTipoDeIVA(t *testing.T) {
	items := []model.DocumentoItem{
		linea("1", "100.00", 21),
		linea("1", "200.00", 21),
		linea("1", "50.00", 10),
		linea("1", "30.00", 0),
	}

	totales, err := CalcularTotales(items, decimal.Zero)
	require.NoError(t, err)

	require.Len(t, totales.DesgloseIVA, 3)
	assert.True(t, totales.DesgloseIVA[21].Base.Equal(dec("300.00")))
	assert.True(t, totales.DesgloseIVA[21].Cuota.Equal(dec("63.00")))
	assert.True(t, totales.DesgloseIVA[10].Base.Equal(dec("50.00")))
	assert.True(t, totales.DesgloseIVA[10].Cuota.Equal(dec("5.00")))
	assert.True(t, totales.DesgloseIVA[0].Base.Equal(dec("30.00")))
	assert.True(t, totales.DesgloseIVA[0].Cuota.IsZero())

	assert.True(t, totales.BaseImponible.Equal(dec("380.00")))
	assert.True(t, totales.TotalIVA.Equal(dec("68.00")))
	assert.True(t, totales.Total.Equal(dec("448.00")))
}

func TestCalcularTotales_RedondeoMedioHaciaArribaPorLinea(t *testing.T) {
	// 3 × 33.335 = 100.005 → base de línea 100.01 (mitad hacia arriba);
	// cuota 21% de 100.01 = 21.0021 → 21.00
	items := []model.DocumentoItem{linea("3", "33.335", 21)}

	totales, err := CalcularTotales(items, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totales.BaseImponible.Equal(dec("100.01")), "base: %s", totales.BaseImponible)
	assert.True(t, totales.TotalIVA.Equal(dec("21.00")), "iva: %s", totales.TotalIVA)
}

func TestCalcularTotales_LasLineasImpresasSumanElTotal(t *testing.T) {
	// Con redondeo por línea, la suma de los subtotales impresos coincide
	// siempre con la base del documento.
	items := []model.DocumentoItem{
		linea("1.5", "19.99", 21),
		linea("0.25", "99.99", 21),
		linea("7", "3.333", 10),
	}

	totales, err := CalcularTotales(items, decimal.Zero)
	require.NoError(t, err)

	suma := decimal.Zero
	for _, it := range items {
		suma = suma.Add(SubtotalLinea(it.Cantidad, it.PrecioUnitario))
	}
	assert.True(t, totales.BaseImponible.Equal(suma))
}

func TestCalcularTotales_IRPFSobreBaseAgregada(t *testing.T) {
	items := []model.DocumentoItem{
		linea("1", "33.33", 21),
		linea("1", "33.33", 21),
		linea("1", "33.33", 21),
	}

	totales, err := CalcularTotales(items, dec("15"))
	require.NoError(t, err)

	// 15% de 99.99 = 14.9985 → 15.00, calculado una sola vez sobre la base
	assert.True(t, totales.BaseImponible.Equal(dec("99.99")))
	assert.True(t, totales.TotalIRPF.Equal(dec("15.00")), "irpf: %s", totales.TotalIRPF)
}

func TestCalcularTotales_IVAInvalido(t *testing.T) {
	// 15% fue un tipo de IVA real hasta 2010; hoy no es legal
	items := []model.DocumentoItem{linea("1", "100.00", 15)}

	_, err := CalcularTotales(items, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrTipoImpositivoInvalido)
}

func TestCalcularTotales_IRPFInvalido(t *testing.T) {
	items := []model.DocumentoItem{linea("1", "100.00", 21)}

	_, err := CalcularTotales(items, dec("12"))
	assert.ErrorIs(t, err, apperrors.ErrTipoImpositivoInvalido)
}

func TestCalcularTotales_SinLineas(t *testing.T) {
	_, err := CalcularTotales(nil, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrDocumentoVacio)
}

func TestTipoIVAValido(t *testing.T) {
	for _, pct := range []int{0, 4, 10, 21} {
		assert.True(t, TipoIVAValido(pct), "IVA %d%%", pct)
	}
	for _, pct := range []int{-1, 5, 15, 16, 18, 100} {
		assert.False(t, TipoIVAValido(pct), "IVA %d%%", pct)
	}
}

func TestSubtotalLinea(t *testing.T) {
	assert.True(t, SubtotalLinea(dec("2"), dec("50.00")).Equal(dec("100.00")))
	assert.True(t, SubtotalLinea(dec("0.5"), dec("33.33")).Equal(dec("16.67")))
	assert.True(t, SubtotalLinea(dec("3"), dec("0.335")).Equal(dec("1.01")))
}
