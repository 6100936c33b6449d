package nomina_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/nomina"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validRecord() (*entity.PayrollRecord, *entity.Company, *entity.Employee) {
	record := &entity.PayrollRecord{
		Status:           entity.RecordCalculated,
		TotalDevengado:   dec("1623500"),
		TotalItems:       decimal.Zero,
		TotalDeducciones: dec("113880"),
		NetoPagar:        dec("1509620"),
	}
	// 900123456 -> dígito de verificación 8 (módulo 11 DIAN)
	company := &entity.Company{NIT: "900123456-8"}
	employee := &entity.Employee{DocumentType: "CC", DocumentNumber: "1020304050"}
	return record, company, employee
}

func TestValidateForDIAN_RegistroValido(t *testing.T) {
	record, company, employee := validRecord()
	err := nomina.ValidateForDIAN(record, company, employee)
	require.NoError(t, err, "un registro coherente con NIT válido debe pasar")
}

func TestValidateForDIAN_NITConDigitoInvalido(t *testing.T) {
	record, company, employee := validRecord()
	company.NIT = "900123456-1"

	err := nomina.ValidateForDIAN(record, company, employee)
	require.Error(t, err)
	assert.ErrorIs(t, err, nomina.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "dígito de verificación")
}

func TestValidateForDIAN_NetoIncoherente(t *testing.T) {
	record, company, employee := validRecord()
	record.NetoPagar = dec("1500000")

	err := nomina.ValidateForDIAN(record, company, employee)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no coincide")
}

func TestValidateForDIAN_BorradorNoEmite(t *testing.T) {
	record, company, employee := validRecord()
	record.Status = entity.RecordDraft

	err := nomina.ValidateForDIAN(record, company, employee)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no admite emisión")
}

func TestValidateForDIAN_SinDocumentoDelTrabajador(t *testing.T) {
	record, company, _ := validRecord()
	err := nomina.ValidateForDIAN(record, company, &entity.Employee{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin documento")
}

func TestValidateForDIAN_RegistroNulo(t *testing.T) {
	err := nomina.ValidateForDIAN(nil, nil, nil)
	assert.ErrorIs(t, err, nomina.ErrInvalidRecord)
}
