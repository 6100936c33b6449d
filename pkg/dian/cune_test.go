package dian_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/pkg/dian"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestCalculateCune valida que el cálculo SHA-384 del CUNE produce el hash
// exacto esperado para parámetros conocidos.
//
// Este test es el "canario en la mina" de la integración DIAN: si alguien
// modifica inadvertidamente la cadena de concatenación, el algoritmo o el
// formato de los montos, el test falla inmediatamente.
//
// Vector de prueba calculado manualmente con SHA-384:
//
//	Cadena = NumNIE + FecNIE + HorNIE + ValDev + ValDed + ValTol +
//	         NitNIE + DocEmp + TipoXML + SoftwarePin + TipoAmb
//	       = "NIE1000" + "2026-03-30" + "18:30:00-05:00" +
//	         "1623500.00" + "113880.00" + "1509620.00" +
//	         "900123456" + "1020304050" + "102" + "75315" + "2"
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCuneExpected = "312921ab5c9fea3942578282dbdeba0782882cbc8029111b91bf29266cb65befa9fa00ea2d8356ae0ca3100894b8283b"

	testNit     = "900123456"
	testDoc     = "1020304050"
	testPin     = "75315"
	testFecNIE  = "2026-03-30"
	testHorNIE  = "18:30:00-05:00"
	testNumNIE  = "NIE1000"
	testTipoAmb = "2"
)

func buildTestParams() *dian.CuneParams {
	return &dian.CuneParams{
		NumNIE:       testNumNIE,
		FecNIE:       testFecNIE,
		HorNIE:       testHorNIE,
		ValDev:       decimal.NewFromFloat(1_623_500),
		ValDed:       decimal.NewFromFloat(113_880),
		ValTol:       decimal.NewFromFloat(1_509_620),
		NitEmpleador: testNit,
		DocEmpleado:  testDoc,
		TipoXML:      dian.TipoXMLNominaIndividual,
		SoftwarePin:  testPin,
		TipoAmbiente: testTipoAmb,
	}
}

func TestCalculateCune_VectorExacto(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	cune, err := svc.Calculate(buildTestParams())
	require.NoError(t, err, "Calculate no debe retornar error con parámetros válidos")
	assert.Equal(t, testCuneExpected, cune,
		"El CUNE debe coincidir exactamente con el vector SHA-384 de referencia DIAN")
}

// TestCalculateCune_DeterministaIgual verifica que llamar Calculate dos veces
// con los mismos parámetros produce siempre el mismo hash (idempotente).
func TestCalculateCune_DeterministaIgual(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	params := buildTestParams()

	cune1, err1 := svc.Calculate(params)
	cune2, err2 := svc.Calculate(params)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, cune1, cune2, "El mismo input siempre debe producir el mismo CUNE")
}

// TestCalculateCune_DiferenteConsecutivo verifica que cambiar el número del
// documento produce un hash distinto (sensibilidad al input).
func TestCalculateCune_DiferenteConsecutivo(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.NumNIE = "NIE1001"

	cune1, _ := svc.Calculate(p1)
	cune2, _ := svc.Calculate(p2)

	assert.NotEqual(t, cune1, cune2,
		"Documentos con consecutivos distintos deben tener CUNEs distintos")
}

// TestCalculateCune_TipoAmbienteAfectaHash verifica que producción (TipoAmb=1)
// y pruebas (TipoAmb=2) producen hashes diferentes.
func TestCalculateCune_TipoAmbienteAfectaHash(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	pPruebas := buildTestParams()
	pPruebas.TipoAmbiente = "2"

	pProduccion := buildTestParams()
	pProduccion.TipoAmbiente = "1"

	cunePruebas, _ := svc.Calculate(pPruebas)
	cuneProduccion, _ := svc.Calculate(pProduccion)

	assert.NotEqual(t, cunePruebas, cuneProduccion,
		"Los CUNEs de ambiente pruebas y producción deben ser distintos")
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestCalculateCune_ErrorSiNilParams(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	_, err := svc.Calculate(nil)
	assert.Error(t, err, "Calculate con nil debe retornar error")
}

func TestCalculateCune_ErrorSiNumNIEVacio(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	p := buildTestParams()
	p.NumNIE = ""
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin NumNIE debe retornar error")
}

func TestCalculateCune_ErrorSiNitVacio(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	p := buildTestParams()
	p.NitEmpleador = ""
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin NIT del empleador debe retornar error")
}

func TestCalculateCune_ErrorSiPinVacio(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	p := buildTestParams()
	p.SoftwarePin = ""
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin SoftwarePin debe retornar error")
}

// TestCalculateCune_LongitudHash valida que el hash SHA-384 tenga exactamente
// 96 caracteres hexadecimales (384 bits / 4 bits por nibble = 96 nibbles).
func TestCalculateCune_LongitudHash(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	cune, err := svc.Calculate(buildTestParams())
	require.NoError(t, err)
	assert.Len(t, cune, 96, "El CUNE debe tener 96 caracteres hexadecimales (SHA-384)")
}
