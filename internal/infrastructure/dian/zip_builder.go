package dian

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// CompressXMLToZip empaqueta el XML firmado en un archivo ZIP en memoria.
// La DIAN exige que el ZIP contenga un único archivo con el nombre:
//
//	{NIT_EMPLEADOR}{NUMERO}.xml  (sin guiones ni espacios)
//
// Devuelve los bytes del ZIP listo para enviar al WS DIAN.
func CompressXMLToZip(xmlBytes []byte, xmlFilename string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fw, err := zw.Create(xmlFilename)
	if err != nil {
		return nil, fmt.Errorf("zip: crear entrada %s: %w", xmlFilename, err)
	}
	if _, err := fw.Write(xmlBytes); err != nil {
		return nil, fmt.Errorf("zip: escribir XML: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

var nonDigit = regexp.MustCompile(`[^0-9]`)

// DIANFilenames genera los nombres de archivo requeridos por la DIAN para el
// ZIP y el XML interno. Formato: {NIT_EMPLEADOR}{NUMERO} (sin DV, solo dígitos).
// Ejemplo: 900123456NIE1000
func DIANFilenames(company *entity.Company, number string) (xmlName, zipName string) {
	nit := nonDigit.ReplaceAllString(company.NIT, "")
	// El NIT de persona jurídica trae DV como décimo dígito: se descarta.
	if len(nit) > 9 {
		nit = nit[:9]
	}
	base := nit + strings.TrimSpace(number)
	return base + ".xml", base + ".zip"
}
