package payroll

import (
	"context"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// PilaUseCase arma las filas del reporte PILA del mes a partir de las
// nóminas calculadas. El archivo plano lo genera un sistema externo; aquí
// solo se consolidan bases, días y aportes por empleado.
type PilaUseCase struct {
	recordRepo   repository.PayrollRecordRepository
	employeeRepo repository.EmployeeRepository
}

func NewPilaUseCase(recordRepo repository.PayrollRecordRepository, employeeRepo repository.EmployeeRepository) *PilaUseCase {
	return &PilaUseCase{recordRepo: recordRepo, employeeRepo: employeeRepo}
}

// BuildMonth devuelve una fila por nómina calculada del mes. Si un empleado
// tuvo dos períodos quincenales, aparece dos veces: el consolidador externo
// decide si las funde.
func (uc *PilaUseCase) BuildMonth(ctx context.Context, companyID string, year, month int) ([]*entity.PilaRecord, error) {
	records, err := uc.recordRepo.ListCalculatedByMonth(companyID, year, month)
	if err != nil {
		return nil, err
	}

	rows := make([]*entity.PilaRecord, 0, len(records))
	for _, r := range records {
		emp, err := uc.employeeRepo.GetByID(r.EmployeeID)
		if err != nil || emp == nil {
			continue
		}
		rows = append(rows, &entity.PilaRecord{
			EmployeeID:       emp.ID,
			DocumentType:     emp.DocumentType,
			DocumentNumber:   emp.DocumentNumber,
			FullName:         emp.FullName(),
			DaysWorked:       r.DaysWorked,
			IBC:              r.IBC,
			SaludEmpleado:    r.SaludEmpleado,
			SaludEmpleador:   r.SaludEmpleador,
			PensionEmpleado:  r.PensionEmpleado,
			PensionEmpleador: r.PensionEmpleador,
			FSP:              r.FSP,
			ARL:              r.ARL,
			SENA:             r.SENA,
			ICBF:             r.ICBF,
			CajaCompensacion: r.CajaCompensacion,
		})
	}
	return rows, nil
}
