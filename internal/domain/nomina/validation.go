// Package nomina contiene validaciones de dominio para el documento soporte
// de nómina electrónica DIAN (Colombia), según Anexo Técnico v1.0. Utiliza
// catálogos y reglas de pkg/dian.
package nomina

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/pkg/dian"
)

// ErrInvalidRecord agrupa errores de validación del documento de nómina.
var ErrInvalidRecord = errors.New("nómina inválida para DIAN")

// ValidateForDIAN valida una nómina calculada antes de generar el documento
// electrónico. Exige NIT del empleador con dígito de verificación válido,
// identidad aritmética de los totales y un estado que admita emisión.
func ValidateForDIAN(record *entity.PayrollRecord, company *entity.Company, employee *entity.Employee) error {
	if record == nil {
		return fmt.Errorf("%w: registro nulo", ErrInvalidRecord)
	}
	var errs []error

	if company == nil || company.NIT == "" {
		errs = append(errs, fmt.Errorf("%w: empleador sin NIT", ErrInvalidRecord))
	} else if err := dian.ValidateNITVerificationDigit(company.NIT); err != nil {
		errs = append(errs, fmt.Errorf("empleador: %w", err))
	}

	if employee == nil || employee.DocumentNumber == "" {
		errs = append(errs, fmt.Errorf("%w: trabajador sin documento", ErrInvalidRecord))
	}

	switch record.Status {
	case entity.RecordCalculated, entity.RecordApproved, entity.RecordPaid:
	default:
		errs = append(errs, fmt.Errorf("%w: estado %s no admite emisión", ErrInvalidRecord, record.Status))
	}

	// Identidad del comprobante: devengados + destajo - deducciones = neto.
	expected := record.TotalDevengado.Add(record.TotalItems).Sub(record.TotalDeducciones)
	if !record.NetoPagar.Equal(expected.Round(2)) {
		errs = append(errs, fmt.Errorf("neto (%s) no coincide con devengados - deducciones (%s)",
			record.NetoPagar.String(), expected.Round(2).String()))
	}
	for _, v := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"total devengado", record.TotalDevengado},
		{"total deducciones", record.TotalDeducciones},
		{"neto a pagar", record.NetoPagar},
	} {
		if v.value.IsNegative() {
			errs = append(errs, fmt.Errorf("%w: %s negativo (%s)", ErrInvalidRecord, v.name, v.value))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidRecord}, errs...)...)
	}
	return nil
}
