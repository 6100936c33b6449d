// Package pdf implementa la generación del desprendible de pago de nómina
// (representación gráfica del documento soporte de nómina electrónica).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Período + Fecha de pago     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRABAJADOR: Nombre + Documento + Cargo/Contrato            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DEVENGADOS: Concepto | Valor                         │
//	│  TABLA DEDUCCIONES: Concepto | Valor                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Devengado / Deducciones / NETO A PAGAR            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER DIAN: CUNE + QR + Leyenda legal                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	apppayroll "github.com/tu-usuario/nomina-pro/internal/application/payroll"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa payroll.PayslipPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePayslipPDF genera el PDF del desprendible y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePayslipPDF(
	_ context.Context,
	record *entity.PayrollRecord,
	company *entity.Company,
	employee *entity.Employee,
	contract *entity.Contract,
	period *entity.PayrollPeriod,
	lines []apppayroll.PayslipLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Desprendible de Nómina", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(record, company, period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(trabajadorRow(employee, contract))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Devengados fijos + conceptos dinámicos
	m.AddRows(sectionTitleRow("DEVENGADOS"))
	for _, r := range devengadoRows(record, lines) {
		m.AddRows(r)
	}

	m.AddRows(sectionTitleRow("DEDUCCIONES"))
	for _, r := range deduccionRows(record, lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(record))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range dianFooterRows(record) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: razón social + NIT (izq) y período + fecha de pago (der).
func headerRow(record *entity.PayrollRecord, company *entity.Company, period *entity.PayrollPeriod) core.Row {
	rango := period.StartDate.Format("02/01/2006") + " - " + period.EndDate.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DESPRENDIBLE DE NÓMINA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Días trabajados: %d", record.DaysWorked), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// trabajadorRow: datos del empleado y su contrato.
func trabajadorRow(employee *entity.Employee, contract *entity.Contract) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TRABAJADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(employee.FirstName+" "+employee.LastName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s %s   |   Contrato: %s   |   Salario base: $%s",
				employee.DocumentType, employee.DocumentNumber,
				contract.ContractType,
				formatMoney(contract.Salary.StringFixed(0)),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// conceptRow: línea concepto | valor.
func conceptRow(name string, amount decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 2})),
		col.New(4).Add(text.New("$"+formatMoney(amount.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func devengadoRows(record *entity.PayrollRecord, lines []apppayroll.PayslipLine) []core.Row {
	rows := []core.Row{
		conceptRow("Sueldo básico", record.BasicPay),
	}
	if record.AuxTransporte.IsPositive() {
		rows = append(rows, conceptRow("Auxilio de transporte", record.AuxTransporte))
	}
	if record.HorasExtra.IsPositive() {
		rows = append(rows, conceptRow("Horas extras y recargos", record.HorasExtra))
	}
	if record.TotalItems.IsPositive() {
		rows = append(rows, conceptRow("Pagos por destajo", record.TotalItems))
	}
	for _, l := range lines {
		if l.Type == "DEVENGADO" {
			rows = append(rows, conceptRow(l.Name, l.Amount))
		}
	}
	return rows
}

func deduccionRows(record *entity.PayrollRecord, lines []apppayroll.PayslipLine) []core.Row {
	rows := []core.Row{
		conceptRow("Salud (4%)", record.SaludEmpleado),
		conceptRow("Pensión (4%)", record.PensionEmpleado),
	}
	if record.FSP.IsPositive() {
		rows = append(rows, conceptRow("Fondo de Solidaridad Pensional", record.FSP))
	}
	if record.RetencionFuente.IsPositive() {
		rows = append(rows, conceptRow("Retención en la fuente", record.RetencionFuente))
	}
	if record.TotalPrestamos.IsPositive() {
		rows = append(rows, conceptRow("Cuotas de préstamos", record.TotalPrestamos))
	}
	if record.TotalEmbargos.IsPositive() {
		rows = append(rows, conceptRow("Embargos judiciales", record.TotalEmbargos))
	}
	for _, l := range lines {
		if l.Type == "DEDUCCION" {
			rows = append(rows, conceptRow(l.Name, l.Amount))
		}
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(record *entity.PayrollRecord) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	totalDev := record.TotalDevengado.Add(record.TotalItems)
	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total devengado:"),
			label("Total deducciones:"),
			grandLabel("NETO A PAGAR:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(totalDev.StringFixed(0))),
			value("$"+formatMoney(record.TotalDeducciones.StringFixed(0))),
			grandValue("$"+formatMoney(record.NetoPagar.StringFixed(0))),
		),
		col.New(3),
	)
}

// dianFooterRows: CUNE partido + código QR + leyenda legal.
func dianFooterRows(record *entity.PayrollRecord) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMACIÓN ELECTRÓNICA DIAN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if record.CUNE != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("CUNE (Código Único de Nómina Electrónica):", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
		for _, chunk := range splitEvery(record.CUNE, 80) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
	}

	rows = append(rows, row.New(3))

	if record.QRData != "" {
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(record.QRData, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para validar\neste documento en el Portal DIAN.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("DOCUMENTO SOPORTE DE PAGO\nDE NÓMINA ELECTRÓNICA", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Desprendible de pago de nómina", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento generado conforme a la Resolución DIAN 000013/2021 "+
				"(nómina electrónica). Conserve este desprendible como soporte del pago.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}

var _ apppayroll.PayslipPDFGenerator = (*MarotoPDFGenerator)(nil)
