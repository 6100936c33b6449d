package dian

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

func buildCtxForTest() *PayrollBuildContext {
	dev := decimal.RequireFromString("1623500.00")
	ded := decimal.RequireFromString("113880.00")
	return &PayrollBuildContext{
		Record: &entity.PayrollRecord{
			ID: "rec-1", CompanyID: "co-1",
			DaysWorked:       30,
			BasicPay:         decimal.RequireFromString("1423500.00"),
			AuxTransporte:    decimal.RequireFromString("200000.00"),
			TotalDevengado:   dev,
			SaludEmpleado:    decimal.RequireFromString("56940.00"),
			PensionEmpleado:  decimal.RequireFromString("56940.00"),
			TotalDeducciones: ded,
			NetoPagar:        dev.Sub(ded),
			CUNE:             strings.Repeat("ab", 48),
		},
		Company:  &entity.Company{Name: "Construcciones El Dorado SAS", NIT: "900123456-8", Address: "Cra 7 # 12-34, Bogotá"},
		Employee: &entity.Employee{DocumentType: entity.DocTypeCC, DocumentNumber: "1030405", FirstName: "Pedro", LastName: "Pérez"},
		Contract: &entity.Contract{ContractType: entity.ContractTypeIndefinido, Salary: decimal.RequireFromString("1423500"), StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		Period: &entity.PayrollPeriod{
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC),
		},
		Details: []PayrollLineForXML{
			{Code: "bono_obra", Name: "Bono de obra", Type: "DEVENGADO", Amount: "100000.00"},
			{Code: "fondo_empleados", Name: "Fondo de empleados", Type: "DEDUCCION", Amount: "10000.00"},
		},
		Number:       "NIE1000",
		GeneratedAt:  time.Date(2026, 3, 30, 18, 30, 0, 0, time.FixedZone("-05", -5*3600)),
		SoftwareID:   "soft-001",
		TipoAmbiente: "2",
	}
}

func TestBuild_DocumentoNominaIndividual(t *testing.T) {
	svc := NewXMLBuilderService()
	xmlBytes, err := svc.Build(buildCtxForTest())
	require.NoError(t, err)
	out := string(xmlBytes)

	assert.Contains(t, out, "NominaIndividual")
	assert.Contains(t, out, `SchemaVersion="1.0"`)
	assert.Contains(t, out, `Id="nomina-id"`, "la Reference de la firma apunta a este Id")
	assert.Contains(t, out, `CUNE="`+strings.Repeat("ab", 48)+`"`)
	assert.Contains(t, out, `Numero="NIE1000"`)
	assert.Contains(t, out, `Ambiente="2"`)
	assert.Contains(t, out, `TipoXML="102"`)
	assert.Contains(t, out, `HoraGen="18:30:00-05:00"`)
}

func TestBuild_UBLExtensionsEsPrimerHijo(t *testing.T) {
	svc := NewXMLBuilderService()
	xmlBytes, err := svc.Build(buildCtxForTest())
	require.NoError(t, err)
	out := string(xmlBytes)

	extIdx := strings.Index(out, "UBLExtensions")
	perIdx := strings.Index(out, "Periodo")
	require.Positive(t, extIdx)
	assert.Less(t, extIdx, perIdx, "UBLExtensions precede al resto del documento")
	assert.Contains(t, out, "ExtensionContent", "queda el contenedor vacío para la firma")
}

func TestBuild_EmpleadorYTrabajador(t *testing.T) {
	svc := NewXMLBuilderService()
	xmlBytes, err := svc.Build(buildCtxForTest())
	require.NoError(t, err)
	out := string(xmlBytes)

	// El NIT se separa en base y dígito de verificación.
	assert.Contains(t, out, `NIT="900123456"`)
	assert.Contains(t, out, `DV="8"`)
	assert.Contains(t, out, `TipoDocumento="13"`, "CC se traduce al código DIAN")
	assert.Contains(t, out, `TipoContrato="1"`, "INDEFINIDO se traduce al código DIAN")
	assert.Contains(t, out, `Sueldo="1423500.00"`)
}

func TestBuild_DevengadosYDeducciones(t *testing.T) {
	svc := NewXMLBuilderService()
	xmlBytes, err := svc.Build(buildCtxForTest())
	require.NoError(t, err)
	out := string(xmlBytes)

	assert.Contains(t, out, `DiasTrabajados="30"`)
	assert.Contains(t, out, `SueldoTrabajado="1423500.00"`)
	assert.Contains(t, out, `AuxilioTransporte="200000.00"`)
	assert.Contains(t, out, `Codigo="bono_obra"`)
	assert.Contains(t, out, `Codigo="fondo_empleados"`)
	assert.Contains(t, out, "1509620.00", "ComprobanteTotal = devengados menos deducciones")
}

func TestBuild_ContextoIncompletoFalla(t *testing.T) {
	svc := NewXMLBuilderService()

	_, err := svc.Build(nil)
	assert.Error(t, err)

	ctx := buildCtxForTest()
	ctx.Contract = nil
	_, err = svc.Build(ctx)
	assert.Error(t, err)
}

func TestDIANFilenames_NITSinDV(t *testing.T) {
	company := &entity.Company{NIT: "900.123.456-8"}
	xmlName, zipName := DIANFilenames(company, "NIE1000")
	assert.Equal(t, "900123456NIE1000.xml", xmlName)
	assert.Equal(t, "900123456NIE1000.zip", zipName)
}
