package infra

// pdf.go — A4 document rendering with go-pdf/fpdf. One layout serves the
// four document types; title, accent color and legal footer change per tipo:
//   - Header with document title and número/fechas block
//   - Emisor and cliente boxes side by side
//   - Line-item table (descripción, cantidad, unidad, precio, IVA, subtotal)
//   - Totals block with IRPF withholding line when it applies
//   - IVA breakdown by rate (facturas and rectificativas)
//   - Legal footer text required by RD 1619/2012
//
// Files land in <storage>/<Tipo>/<Año>/<Tipo>_<numero>.pdf and the returned
// path is persisted on the documento.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-pdf/fpdf"

	"facturador/internal/config"
	"facturador/internal/fiscal"
	"facturador/internal/model"
)

var titulos = map[string]string{
	model.TipoPresupuesto:   "PRESUPUESTO",
	model.TipoAlbaran:       "ALBARÁN DE ENTREGA",
	model.TipoFactura:       "FACTURA",
	model.TipoRectificativa: "FACTURA RECTIFICATIVA",
}

var carpetas = map[string]string{
	model.TipoPresupuesto:   "Presupuestos",
	model.TipoAlbaran:       "Albaranes",
	model.TipoFactura:       "Facturas",
	model.TipoRectificativa: "Rectificativas",
}

// singulares names the file inside each carpeta.
var singulares = map[string]string{
	model.TipoPresupuesto:   "Presupuesto",
	model.TipoAlbaran:       "Albaran",
	model.TipoFactura:       "Factura",
	model.TipoRectificativa: "Rectificativa",
}

// acento is the RGB accent color per document type.
var acento = map[string][3]int{
	model.TipoPresupuesto:   {41, 128, 185}, // azul
	model.TipoAlbaran:       {39, 174, 96},  // verde
	model.TipoFactura:       {44, 62, 80},   // gris oscuro
	model.TipoRectificativa: {192, 57, 43},  // rojo
}

// PDFRenderer renders finalized documentos. It satisfies service.Renderer.
type PDFRenderer struct {
	cfg *config.Config
}

func NewPDFRenderer(cfg *config.Config) *PDFRenderer { return &PDFRenderer{cfg: cfg} }

// Generar writes the PDF for doc and returns the path. The documento must
// already carry its número and finalized totals.
func (r *PDFRenderer) Generar(doc *model.Documento) (string, error) {
	carpeta := carpetas[doc.Tipo]
	singular := singulares[doc.Tipo]
	if carpeta == "" {
		carpeta, singular = "Otros", "Documento"
	}
	dir := filepath.Join(r.cfg.PDFStoragePath, carpeta, fmt.Sprintf("%d", doc.FechaEmision.Year()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	ruta := filepath.Join(dir, fmt.Sprintf("%s_%s.pdf", singular, doc.Numero))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	col := acento[doc.Tipo]
	titulo := titulos[doc.Tipo]

	// ── Título ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(col[0], col[1], col[2])
	pdf.CellFormat(contentW, 12, tr(titulo), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Número y fechas ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	info := [][2]string{
		{fmt.Sprintf("Nº %s:", titulo), doc.Numero},
		{"Fecha emisión:", doc.FechaEmision.Format("02/01/2006")},
	}
	if doc.Tipo == model.TipoPresupuesto && doc.FechaValidez != nil {
		info = append(info, [2]string{"Válido hasta:", doc.FechaValidez.Format("02/01/2006")})
	}
	for _, fila := range info {
		pdf.SetTextColor(col[0], col[1], col[2])
		pdf.CellFormat(45, 6, tr(fila[0]), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(55, 6, tr(fila[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// ── Emisor y cliente en paralelo ─────────────────────────────────────────
	boxW := contentW/2 - 3
	boxTop := pdf.GetY()

	emisor := fmt.Sprintf("EMISOR\n%s\nNIF/CIF: %s\n%s\n%s %s\n%s",
		doc.EmisorNombre, doc.EmisorNIF, doc.EmisorDireccion,
		r.cfg.EmisorCP, r.cfg.EmisorCiudad, r.cfg.EmisorProvincia)
	if r.cfg.EmisorTelefono != "" {
		emisor += "\nTel: " + r.cfg.EmisorTelefono
	}
	if r.cfg.EmisorEmail != "" {
		emisor += "\nEmail: " + r.cfg.EmisorEmail
	}
	if doc.EmisorIBAN != "" {
		emisor += "\nIBAN: " + doc.EmisorIBAN
	}

	cliente := fmt.Sprintf("CLIENTE\n%s\nNIF/CIF: %s\n%s\n%s %s\n%s",
		doc.ClienteNombre, doc.ClienteNIF, doc.ClienteDireccion,
		doc.ClienteCP, doc.ClienteCiudad, doc.ClienteProvincia)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(boxW, 4.5, tr(emisor), "1", "L", false)
	emisorBottom := pdf.GetY()
	pdf.SetXY(20+boxW+6, boxTop)
	pdf.MultiCell(boxW, 4.5, tr(cliente), "1", "L", false)
	if pdf.GetY() < emisorBottom {
		pdf.SetY(emisorBottom)
	}
	pdf.Ln(8)

	// ── Tabla de líneas ──────────────────────────────────────────────────────
	colW := []float64{60, 20, 20, 25, 18, 27}
	cab := []string{"Descripción", "Cantidad", "Unidad", "Precio Unit.", "IVA %", "Subtotal"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(col[0], col[1], col[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range cab {
		pdf.CellFormat(colW[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(236, 240, 241)
	fill := false
	for _, item := range doc.Items {
		pdf.CellFormat(colW[0], 7, tr(item.Descripcion), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[1], 7, item.Cantidad.StringFixed(2), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colW[2], 7, tr(item.Unidad), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colW[3], 7, tr(item.PrecioUnitario.StringFixed(2)+" €"), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colW[4], 7, fmt.Sprintf("%d%%", item.PorcentajeIVA), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colW[5], 7, tr(item.Subtotal.StringFixed(2)+" €"), "1", 1, "R", fill, 0, "")
		fill = !fill
	}
	pdf.Ln(6)

	// ── Totales ──────────────────────────────────────────────────────────────
	labelW, valueW := 50.0, 40.0
	left := 20 + contentW - labelW - valueW

	totalRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.SetX(left)
		pdf.CellFormat(labelW, 7, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, tr(value), "", 1, "R", false, 0, "")
	}

	totalRow("Base Imponible:", doc.BaseImponible.StringFixed(2)+" €", false)
	totalRow("IVA:", doc.TotalIVA.StringFixed(2)+" €", false)
	if doc.TotalIRPF.IsPositive() {
		totalRow(fmt.Sprintf("Retención IRPF (%s%%):", doc.PorcentajeIRPF.StringFixed(0)),
			"-"+doc.TotalIRPF.StringFixed(2)+" €", false)
	}
	pdf.SetX(left)
	pdf.SetLineWidth(0.4)
	pdf.Line(left, pdf.GetY(), left+labelW+valueW, pdf.GetY())
	totalRow("TOTAL:", doc.Total.StringFixed(2)+" €", true)
	pdf.Ln(6)

	// ── Desglose de IVA (sólo documentos con valor fiscal) ───────────────────
	if doc.Tipo == model.TipoFactura || doc.Tipo == model.TipoRectificativa {
		if totales, err := fiscal.CalcularTotales(doc.Items, doc.PorcentajeIRPF); err == nil {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(contentW, 6, tr("Desglose de IVA:"), "", 1, "L", false, 0, "")

			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetFillColor(52, 73, 94)
			pdf.SetTextColor(255, 255, 255)
			for _, h := range []string{"Tipo IVA", "Base Imponible", "Cuota IVA"} {
				pdf.CellFormat(40, 6, tr(h), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)

			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(0, 0, 0)
			tipos := make([]int, 0, len(totales.DesgloseIVA))
			for t := range totales.DesgloseIVA {
				tipos = append(tipos, t)
			}
			sort.Ints(tipos)
			for _, t := range tipos {
				d := totales.DesgloseIVA[t]
				pdf.CellFormat(40, 6, fmt.Sprintf("%d%%", t), "1", 0, "C", false, 0, "")
				pdf.CellFormat(40, 6, tr(d.Base.StringFixed(2)+" €"), "1", 0, "C", false, 0, "")
				pdf.CellFormat(40, 6, tr(d.Cuota.StringFixed(2)+" €"), "1", 1, "C", false, 0, "")
			}
			pdf.Ln(6)
		}
	}

	// ── Método de pago ───────────────────────────────────────────────────────
	if (doc.Tipo == model.TipoFactura || doc.Tipo == model.TipoRectificativa) && doc.MetodoPago != "" {
		pdf.SetFont("Helvetica", "", 9)
		pago := "Método de pago: " + doc.MetodoPago
		if doc.MetodoPago == "transferencia" && doc.EmisorIBAN != "" {
			pago += "  —  IBAN: " + doc.EmisorIBAN
		}
		pdf.CellFormat(contentW, 5, tr(pago), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	// ── Notas ────────────────────────────────────────────────────────────────
	if doc.Notas != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, tr("Notas:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(85, 85, 85)
		pdf.MultiCell(contentW, 4.5, tr(doc.Notas), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	// ── Texto legal ──────────────────────────────────────────────────────────
	var legal string
	switch doc.Tipo {
	case model.TipoPresupuesto:
		legal = "Este presupuesto tiene validez hasta la fecha indicada. " +
			"Los precios incluyen IVA según los tipos indicados. " +
			"Para aceptar este presupuesto, póngase en contacto con nosotros."
	case model.TipoAlbaran:
		legal = "Documento de entrega de mercancías/servicios.\n" +
			"Conforme recibido: ______________________  Fecha: __________"
	default:
		legal = "Factura emitida conforme al Real Decreto 1619/2012, de 30 de noviembre, " +
			"por el que se aprueba el Reglamento por el que se regulan las obligaciones de facturación."
	}
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(contentW, 4, tr(legal), "", "C", false)

	if err := pdf.OutputFileAndClose(ruta); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", ruta, err)
	}
	return ruta, nil
}
