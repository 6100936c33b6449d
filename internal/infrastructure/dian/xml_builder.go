package dian

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	pkgdian "github.com/tu-usuario/nomina-pro/pkg/dian"
)

// Namespaces oficiales del documento NominaIndividual (Anexo Técnico v1.0).
const (
	// Namespace por defecto (NominaIndividual)
	NsNomina = "dian:gov:co:facturaelectronica:NominaIndividual"
	// Extension Components (comparte el esquema UBL)
	NsExt = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	// XML Digital Signature
	NsDs = "http://www.w3.org/2000/09/xmldsig#"
	// XAdES (para la firma)
	NsXades = "http://uri.etsi.org/01903/v1.3.2#"
	// XML Schema Instance
	nsXsi = "http://www.w3.org/2001/XMLSchema-instance"
)

// XMLBuilderService construye el XML NominaIndividual (sin firma XAdES).
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el []byte del documento NominaIndividual según el Anexo
// Técnico v1.0. El CUNE debe estar ya calculado en el registro.
func (s *XMLBuilderService) Build(ctx *PayrollBuildContext) ([]byte, error) {
	if ctx == nil || ctx.Record == nil || ctx.Company == nil || ctx.Employee == nil {
		return nil, fmt.Errorf("dian: faltan nómina, empleador o trabajador en el contexto")
	}
	if ctx.Contract == nil || ctx.Period == nil {
		return nil, fmt.Errorf("dian: faltan contrato o período en el contexto")
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	// Root <NominaIndividual> con atributos obligatorios. Id para Reference URI en firma XAdES.
	root := xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "NominaIndividual"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Id"}, Value: "nomina-id"},
			{Name: xml.Name{Local: "xmlns"}, Value: NsNomina},
			{Name: xml.Name{Local: "xmlns:ds"}, Value: NsDs},
			{Name: xml.Name{Local: "xmlns:ext"}, Value: NsExt},
			{Name: xml.Name{Local: "xmlns:xades"}, Value: NsXades},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: nsXsi},
			{Name: xml.Name{Local: "SchemaVersion"}, Value: "1.0"},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	// ---- CRÍTICO: ext:UBLExtensions como primer hijo (el firmador inyecta ds:Signature aquí)
	s.writeUBLExtensions(enc)

	// ---- Período de la liquidación
	s.writePeriodo(enc, ctx)

	// ---- Consecutivo e información general (incluye CUNE y ambiente)
	s.writeNumeroSecuencia(enc, ctx)
	s.writeInformacionGeneral(enc, ctx)

	// ---- Empleador y trabajador
	s.writeEmpleador(enc, ctx)
	s.writeTrabajador(enc, ctx)

	// ---- Devengados y deducciones línea a línea
	if err := s.writeDevengados(enc, ctx); err != nil {
		return nil, err
	}
	if err := s.writeDeducciones(enc, ctx); err != nil {
		return nil, err
	}

	// ---- Totales del comprobante
	rec := ctx.Record
	writeEl(enc, "DevengadosTotal", formatDecimal(rec.TotalDevengado.Add(rec.TotalItems)))
	writeEl(enc, "DeduccionesTotal", formatDecimal(rec.TotalDeducciones))
	writeEl(enc, "ComprobanteTotal", formatDecimal(rec.NetoPagar))

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeUBLExtensions escribe el contenedor con un ExtensionContent vacío; el
// signer inyectará <ds:Signature> en él.
func (s *XMLBuilderService) writeUBLExtensions(enc *xml.Encoder) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsExt, Local: "UBLExtensions"}})
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsExt, Local: "UBLExtension"}})
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsExt, Local: "ExtensionContent"}})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsExt, Local: "ExtensionContent"}})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsExt, Local: "UBLExtension"}})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsExt, Local: "UBLExtensions"}})
}

func (s *XMLBuilderService) writePeriodo(enc *xml.Encoder, ctx *PayrollBuildContext) {
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Periodo"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "FechaIngreso"}, Value: ctx.Contract.StartDate.Format("2006-01-02")},
			{Name: xml.Name{Local: "FechaLiquidacionInicio"}, Value: ctx.Period.StartDate.Format("2006-01-02")},
			{Name: xml.Name{Local: "FechaLiquidacionFin"}, Value: ctx.Period.EndDate.Format("2006-01-02")},
			{Name: xml.Name{Local: "TiempoLaborado"}, Value: strconv.Itoa(ctx.Record.DaysWorked)},
			{Name: xml.Name{Local: "FechaGen"}, Value: ctx.GeneratedAt.Format("2006-01-02")},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Periodo"}})
}

func (s *XMLBuilderService) writeNumeroSecuencia(enc *xml.Encoder, ctx *PayrollBuildContext) {
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "NumeroSecuenciaXML"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Numero"}, Value: ctx.Number},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "NumeroSecuenciaXML"}})
}

func (s *XMLBuilderService) writeInformacionGeneral(enc *xml.Encoder, ctx *PayrollBuildContext) {
	tipoAmb := ctx.TipoAmbiente
	if tipoAmb == "" {
		tipoAmb = "2"
	}
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "InformacionGeneral"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Version"}, Value: "V1.0: Documento Soporte de Pago de Nómina Electrónica"},
			{Name: xml.Name{Local: "Ambiente"}, Value: tipoAmb},
			{Name: xml.Name{Local: "TipoXML"}, Value: pkgdian.TipoXMLNominaIndividual},
			{Name: xml.Name{Local: "CUNE"}, Value: ctx.Record.CUNE},
			{Name: xml.Name{Local: "EncripCUNE"}, Value: "CUNE-SHA384"},
			{Name: xml.Name{Local: "FechaGen"}, Value: ctx.GeneratedAt.Format("2006-01-02")},
			{Name: xml.Name{Local: "HoraGen"}, Value: ctx.GeneratedAt.Format("15:04:05-07:00")},
			{Name: xml.Name{Local: "PeriodoNomina"}, Value: pkgdian.PayrollPeriodCode(ctx.Period.Days())},
			{Name: xml.Name{Local: "TipoMoneda"}, Value: pkgdian.CurrencyCodePesos},
			{Name: xml.Name{Local: "SoftwareID"}, Value: ctx.SoftwareID},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "InformacionGeneral"}})
}

func (s *XMLBuilderService) writeEmpleador(enc *xml.Encoder, ctx *PayrollBuildContext) {
	nit := onlyDigitsNIT(ctx.Company.NIT)
	dv := ""
	if len(nit) > 9 {
		dv = nit[9:]
		nit = nit[:9]
	}
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Empleador"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "RazonSocial"}, Value: ctx.Company.Name},
			{Name: xml.Name{Local: "NIT"}, Value: nit},
			{Name: xml.Name{Local: "DV"}, Value: dv},
			{Name: xml.Name{Local: "Pais"}, Value: pkgdian.CountryCodeColombia},
			{Name: xml.Name{Local: "Direccion"}, Value: ctx.Company.Address},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Empleador"}})
}

func (s *XMLBuilderService) writeTrabajador(enc *xml.Encoder, ctx *PayrollBuildContext) {
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Trabajador"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "TipoTrabajador"}, Value: workerTypeFor(ctx.Contract.ContractType)},
			{Name: xml.Name{Local: "TipoDocumento"}, Value: pkgdian.DocTypeCode(ctx.Employee.DocumentType)},
			{Name: xml.Name{Local: "NumeroDocumento"}, Value: ctx.Employee.DocumentNumber},
			{Name: xml.Name{Local: "PrimerApellido"}, Value: ctx.Employee.LastName},
			{Name: xml.Name{Local: "PrimerNombre"}, Value: ctx.Employee.FirstName},
			{Name: xml.Name{Local: "TipoContrato"}, Value: pkgdian.ContractTypeCode(ctx.Contract.ContractType)},
			{Name: xml.Name{Local: "Sueldo"}, Value: formatDecimal(ctx.Contract.Salary)},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Trabajador"}})
}

func (s *XMLBuilderService) writeDevengados(enc *xml.Encoder, ctx *PayrollBuildContext) error {
	rec := ctx.Record
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: "Devengados"}})

	// Básico: obligatorio en todo documento.
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Basico"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "DiasTrabajados"}, Value: strconv.Itoa(rec.DaysWorked)},
			{Name: xml.Name{Local: "SueldoTrabajado"}, Value: formatDecimal(rec.BasicPay)},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Basico"}})

	if rec.AuxTransporte.IsPositive() {
		_ = enc.EncodeToken(xml.StartElement{
			Name: xml.Name{Space: NsNomina, Local: "Transporte"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "AuxilioTransporte"}, Value: formatDecimal(rec.AuxTransporte)}},
		})
		_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Transporte"}})
	}
	if rec.HorasExtra.IsPositive() {
		writeEl(enc, "HorasExtras", formatDecimal(rec.HorasExtra))
	}
	if rec.TotalItems.IsPositive() {
		writeEl(enc, "PagosPorDestajo", formatDecimal(rec.TotalItems))
	}
	for _, line := range ctx.Details {
		if line.Type != "DEVENGADO" {
			continue
		}
		s.writeConceptLine(enc, "OtroConcepto", line)
	}

	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Devengados"}})
	return nil
}

func (s *XMLBuilderService) writeDeducciones(enc *xml.Encoder, ctx *PayrollBuildContext) error {
	rec := ctx.Record
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: "Deducciones"}})

	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Salud"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "Deduccion"}, Value: formatDecimal(rec.SaludEmpleado)}},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Salud"}})

	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "FondoPension"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "Deduccion"}, Value: formatDecimal(rec.PensionEmpleado)}},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "FondoPension"}})

	if rec.FSP.IsPositive() {
		writeEl(enc, "FondoSP", formatDecimal(rec.FSP))
	}
	if rec.RetencionFuente.IsPositive() {
		writeEl(enc, "RetencionFuente", formatDecimal(rec.RetencionFuente))
	}
	if rec.TotalPrestamos.IsPositive() {
		writeEl(enc, "Libranzas", formatDecimal(rec.TotalPrestamos))
	}
	if rec.TotalEmbargos.IsPositive() {
		writeEl(enc, "EmbargoFiscal", formatDecimal(rec.TotalEmbargos))
	}
	for _, line := range ctx.Details {
		if line.Type != "DEDUCCION" {
			continue
		}
		s.writeConceptLine(enc, "OtraDeduccion", line)
	}

	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Deducciones"}})
	return nil
}

func (s *XMLBuilderService) writeConceptLine(enc *xml.Encoder, local string, line PayrollLineForXML) {
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: local},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Codigo"}, Value: line.Code},
			{Name: xml.Name{Local: "Descripcion"}, Value: line.Name},
			{Name: xml.Name{Local: "Valor"}, Value: line.Amount},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: local}})
}

// workerTypeFor clasifica el trabajador para la DIAN según el contrato.
func workerTypeFor(contractType string) string {
	if contractType == "APRENDIZAJE" {
		return pkgdian.WorkerTypeAprendiz
	}
	return pkgdian.WorkerTypeDependiente
}

func writeEl(enc *xml.Encoder, local, value string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: local}})
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: local}})
}

func formatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
