package payroll

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// BatchResult resume la corrida de un empleado dentro del lote.
type BatchResult struct {
	EmployeeID string `json:"employee_id"`
	RecordID   string `json:"record_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchUseCase corre el período completo: una corrida por empleado activo,
// cada una en su propia transacción. El error de un empleado no frena a los
// demás: queda en su resultado y el lote sigue.
type BatchUseCase struct {
	calc         *CalculateUseCase
	employeeRepo repository.EmployeeRepository
}

func NewBatchUseCase(calc *CalculateUseCase, employeeRepo repository.EmployeeRepository) *BatchUseCase {
	return &BatchUseCase{calc: calc, employeeRepo: employeeRepo}
}

// CalculatePeriod liquida a todos los empleados activos de la empresa en el
// período dado y devuelve un resultado por empleado, en el orden del listado.
func (uc *BatchUseCase) CalculatePeriod(ctx context.Context, companyID, periodID string) ([]BatchResult, error) {
	employees, err := uc.employeeRepo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, 0, len(employees))
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		record, err := uc.calc.Calculate(ctx, companyID, emp.ID, periodID)
		if err != nil {
			log.Warn().
				Err(err).
				Str("employee_id", emp.ID).
				Str("period_id", periodID).
				Msg("Corrida de nómina fallida para el empleado")
			results = append(results, BatchResult{EmployeeID: emp.ID, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{
			EmployeeID: emp.ID,
			RecordID:   record.ID,
			Status:     record.Status,
		})
	}
	return results, nil
}
