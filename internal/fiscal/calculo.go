// Package fiscal computes the monetary totals of a documento from its lines.
// Pure functions, no I/O: the caller recomputes on every edit instead of
// caching results.
//
// Rounding policy: half-up (round half away from zero), applied to each
// line's base and cuota before aggregation, so the per-line figures printed
// on the PDF always add up exactly to the document totals. IRPF is computed
// on the aggregated base and rounded once.
package fiscal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"facturador/internal/apperrors"
	"facturador/internal/model"
)

// TiposIVA are the Spanish VAT rates in force: general, reducido,
// superreducido and exento.
var TiposIVA = []int{0, 4, 10, 21}

// TiposIRPF are the admitted withholding rates (0 = no withholding,
// 7 = new professionals, 15 = general professional rate, 2 = specific
// activity modules).
var TiposIRPF = []int{0, 2, 7, 15}

var cien = decimal.NewFromInt(100)

// DesgloseIVA aggregates base and cuota for one VAT rate.
type DesgloseIVA struct {
	Base  decimal.Decimal
	Cuota decimal.Decimal
}

// Totales is the full monetary summary of a documento.
type Totales struct {
	BaseImponible  decimal.Decimal
	TotalIVA       decimal.Decimal
	PorcentajeIRPF decimal.Decimal
	TotalIRPF      decimal.Decimal
	Total          decimal.Decimal
	// DesgloseIVA is keyed by VAT rate, only rates present in the lines
	DesgloseIVA map[int]DesgloseIVA
}

// TipoIVAValido reports whether pct is one of the legal VAT rates.
func TipoIVAValido(pct int) bool {
	for _, t := range TiposIVA {
		if t == pct {
			return true
		}
	}
	return false
}

// TipoIRPFValido reports whether pct is one of the admitted withholding rates.
func TipoIRPFValido(pct decimal.Decimal) bool {
	for _, t := range TiposIRPF {
		if pct.Equal(decimal.NewFromInt(int64(t))) {
			return true
		}
	}
	return false
}

// SubtotalLinea returns cantidad × precio unitario rounded to 2 decimals.
func SubtotalLinea(cantidad, precioUnitario decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(precioUnitario).Round(2)
}

// CalcularTotales aggregates the lines into a Totales. It fails when the
// line list is empty or when any IVA/IRPF rate is outside the legal sets.
func CalcularTotales(items []model.DocumentoItem, porcentajeIRPF decimal.Decimal) (*Totales, error) {
	if len(items) == 0 {
		return nil, apperrors.ErrDocumentoVacio
	}
	if !TipoIRPFValido(porcentajeIRPF) {
		return nil, fmt.Errorf("%w: IRPF %s%%", apperrors.ErrTipoImpositivoInvalido, porcentajeIRPF.String())
	}

	desglose := make(map[int]DesgloseIVA)
	base := decimal.Zero
	totalIVA := decimal.Zero

	for _, item := range items {
		if !TipoIVAValido(item.PorcentajeIVA) {
			return nil, fmt.Errorf("%w: IVA %d%%", apperrors.ErrTipoImpositivoInvalido, item.PorcentajeIVA)
		}
		lineaBase := SubtotalLinea(item.Cantidad, item.PrecioUnitario)
		lineaCuota := lineaBase.Mul(decimal.NewFromInt(int64(item.PorcentajeIVA))).Div(cien).Round(2)

		d := desglose[item.PorcentajeIVA]
		d.Base = d.Base.Add(lineaBase)
		d.Cuota = d.Cuota.Add(lineaCuota)
		desglose[item.PorcentajeIVA] = d

		base = base.Add(lineaBase)
		totalIVA = totalIVA.Add(lineaCuota)
	}

	totalIRPF := base.Mul(porcentajeIRPF).Div(cien).Round(2)

	return &Totales{
		BaseImponible:  base,
		TotalIVA:       totalIVA,
		PorcentajeIRPF: porcentajeIRPF,
		TotalIRPF:      totalIRPF,
		Total:          base.Add(totalIVA).Sub(totalIRPF),
		DesgloseIVA:    desglose,
	}, nil
}
