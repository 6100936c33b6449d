// Package dian: cálculo del CUNE (Código Único de Nómina Electrónica) según
// el Anexo Técnico de Nómina Electrónica DIAN v1.0.
// Algoritmo: SHA-384 sobre la cadena de concatenación en el orden estricto definido por la DIAN.

package dian

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// TipoXMLNominaIndividual identifica el documento NominaIndividual en la cadena CUNE.
const TipoXMLNominaIndividual = "102"

// TipoXMLNominaAjuste identifica el documento NominaIndividualDeAjuste.
const TipoXMLNominaAjuste = "103"

// CuneParams contiene los datos para calcular el CUNE (orden estricto DIAN).
// Se construye desde PayrollRecord + Company + Employee en la capa de aplicación.
type CuneParams struct {
	NumNIE       string          // Número del documento (prefijo + consecutivo, sin espacios)
	FecNIE       string          // Fecha de generación YYYY-MM-DD
	HorNIE       string          // Hora de generación HH:MM:SS-05:00
	ValDev       decimal.Decimal // Total devengados
	ValDed       decimal.Decimal // Total deducciones
	ValTol       decimal.Decimal // Comprobante total (devengados - deducciones)
	NitEmpleador string          // NIT del empleador, solo dígitos
	DocEmpleado  string          // Documento del trabajador, solo dígitos
	TipoXML      string          // "102" nómina individual, "103" ajuste
	SoftwarePin  string          // PIN del software registrado ante la DIAN
	TipoAmbiente string          // "1" = producción, "2" = habilitación
}

// CuneCalculatorService calcula el CUNE según el Anexo Técnico DIAN.
type CuneCalculatorService struct{}

// NewCuneCalculatorService crea el servicio.
func NewCuneCalculatorService() *CuneCalculatorService {
	return &CuneCalculatorService{}
}

// Calculate genera el CUNE a partir de parámetros ya preparados.
// Orden estricto DIAN: NumNIE + FecNIE + HorNIE + ValDev + ValDed + ValTol +
// NitNIE + DocEmp + TipoXML + SoftwarePin + TipoAmb.
// Hash: SHA-384, salida en hexadecimal (minúsculas).
func (s *CuneCalculatorService) Calculate(p *CuneParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("dian: CuneParams es obligatorio")
	}

	numNIE := regexp.MustCompile(`\s+`).ReplaceAllString(strings.TrimSpace(p.NumNIE), "")
	if numNIE == "" {
		return "", fmt.Errorf("dian: NumNIE es obligatorio")
	}
	if p.FecNIE == "" {
		return "", fmt.Errorf("dian: FecNIE es obligatorio")
	}
	if p.HorNIE == "" {
		return "", fmt.Errorf("dian: HorNIE es obligatorio")
	}

	nit := onlyDigits(p.NitEmpleador)
	doc := onlyDigits(p.DocEmpleado)
	if nit == "" {
		return "", fmt.Errorf("dian: NitEmpleador es obligatorio para el CUNE")
	}
	if doc == "" {
		return "", fmt.Errorf("dian: DocEmpleado es obligatorio para el CUNE")
	}
	if p.SoftwarePin == "" {
		return "", fmt.Errorf("dian: SoftwarePin es obligatorio para el CUNE")
	}
	tipoXML := p.TipoXML
	if tipoXML == "" {
		tipoXML = TipoXMLNominaIndividual
	}
	tipoAmb := p.TipoAmbiente
	if tipoAmb == "" {
		tipoAmb = "1"
	}

	cadena := numNIE +
		p.FecNIE +
		p.HorNIE +
		formatDecimalForCune(p.ValDev) +
		formatDecimalForCune(p.ValDed) +
		formatDecimalForCune(p.ValTol) +
		nit +
		doc +
		tipoXML +
		p.SoftwarePin +
		tipoAmb

	hash := sha512.Sum384([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}

// formatDecimalForCune formatea el valor para la cadena CUNE: sin separador de miles, punto decimal, 2 decimales.
func formatDecimalForCune(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// onlyDigits deja solo dígitos 0-9.
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
