package dian

import (
	"crypto/tls"
	"fmt"
)

// LoadCertFromPEM carga el certificado de firma de nómina electrónica desde
// archivos PEM. Con certPath vacío retorna cert vacío sin error: el emisor
// queda en modo simulado y los documentos no se firman ni se envían.
func LoadCertFromPEM(certPath, keyPath string) (tls.Certificate, error) {
	if certPath == "" {
		return tls.Certificate{}, nil
	}
	// Un solo archivo PEM puede traer certificado y llave juntos.
	if keyPath == "" {
		keyPath = certPath
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("cargar certificado de firma: %w", err)
	}
	return cert, nil
}
