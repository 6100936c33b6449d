package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// PayslipLine línea del desprendible: un concepto devengado o deducción.
type PayslipLine struct {
	Code   string
	Name   string
	Type   string // DEVENGADO | DEDUCCION
	Amount decimal.Decimal
}

// PayslipPDFGenerator genera la representación gráfica del desprendible de
// nómina. La implementación concreta vive en infraestructura (Maroto).
type PayslipPDFGenerator interface {
	GeneratePayslipPDF(
		ctx context.Context,
		record *entity.PayrollRecord,
		company *entity.Company,
		employee *entity.Employee,
		contract *entity.Contract,
		period *entity.PayrollPeriod,
		lines []PayslipLine,
	) ([]byte, error)
}

// PayslipUseCase genera el PDF del desprendible de pago de un empleado.
// Solo hay desprendible desde CALCULADA: un borrador no tiene totales.
type PayslipUseCase struct {
	recordRepo   repository.PayrollRecordRepository
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	contractRepo repository.ContractRepository
	periodRepo   repository.PeriodRepository
	generator    PayslipPDFGenerator
}

// NewPayslipUseCase construye el caso de uso.
func NewPayslipUseCase(
	recordRepo repository.PayrollRecordRepository,
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
	contractRepo repository.ContractRepository,
	periodRepo repository.PeriodRepository,
	generator PayslipPDFGenerator,
) *PayslipUseCase {
	return &PayslipUseCase{
		recordRepo:   recordRepo,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
		periodRepo:   periodRepo,
		generator:    generator,
	}
}

// DownloadPayslipPDF carga la nómina, valida propiedad y estado, y genera el
// PDF. Retorna (bytes, filename, error).
func (uc *PayslipUseCase) DownloadPayslipPDF(ctx context.Context, companyID, recordID string) ([]byte, string, error) {
	rec, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: obtener nómina: %w", err)
	}
	if rec == nil {
		return nil, "", domain.ErrNotFound
	}
	if rec.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if rec.Status == entity.RecordDraft || rec.Status == entity.RecordAnnulled {
		return nil, "", fmt.Errorf("%w: la nómina está en estado %s", domain.ErrEstadoInvalido, rec.Status)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("payslip: obtener empresa: %w", err)
	}
	employee, err := uc.employeeRepo.GetByID(rec.EmployeeID)
	if err != nil || employee == nil {
		return nil, "", fmt.Errorf("payslip: obtener empleado: %w", err)
	}
	contract, err := uc.contractRepo.GetByID(rec.ContractID)
	if err != nil || contract == nil {
		return nil, "", fmt.Errorf("payslip: obtener contrato: %w", err)
	}
	period, err := uc.periodRepo.GetByID(rec.PeriodID)
	if err != nil || period == nil {
		return nil, "", fmt.Errorf("payslip: obtener período: %w", err)
	}

	details, err := uc.recordRepo.ListDetails(recordID)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: obtener detalles: %w", err)
	}
	lines := make([]PayslipLine, 0, len(details))
	for _, d := range details {
		lines = append(lines, PayslipLine{Code: d.Code, Name: d.Name, Type: d.Type, Amount: d.Amount})
	}

	pdfBytes, err := uc.generator.GeneratePayslipPDF(ctx, rec, company, employee, contract, period, lines)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: generación fallida: %w", err)
	}

	periodTag := period.Name
	if periodTag == "" {
		periodTag = period.StartDate.Format("2006-01-02")
	}
	filename := fmt.Sprintf("desprendible_%s_%s.pdf", employee.DocumentNumber, periodTag)
	return pdfBytes, filename, nil
}
