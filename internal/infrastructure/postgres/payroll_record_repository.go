package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.PayrollRecordRepository = (*PayrollRecordRepo)(nil)

const payrollRecordColumns = `id, company_id, employee_id, contract_id, period_id,
	days_worked, salario_base, ibc,
	total_items, basic_pay, aux_transporte, horas_extra, otros_devengados, total_devengado,
	salud_empleado, pension_empleado, fsp, retencion_fuente, otras_deducciones,
	total_prestamos, total_embargos, total_deducciones,
	salud_empleador, pension_empleador, arl, sena, icbf, caja_compensacion,
	cesantias, intereses_cesantias, prima, vacaciones,
	neto_pagar, costo_total_empleador,
	status, calculated_at,
	dian_status, cune, xml_signed, qr_data, track_id, dian_errors,
	created_at, updated_at`

// PayrollRecordRepo implementación del puerto PayrollRecordRepository. Opera
// sobre un Querier para poder vivir dentro de la transacción del motor de
// cálculo o directamente sobre el pool en las lecturas del API.
type PayrollRecordRepo struct {
	db Querier
}

// NewPayrollRecordRepository construye el adaptador para nóminas individuales.
func NewPayrollRecordRepository(db Querier) *PayrollRecordRepo {
	return &PayrollRecordRepo{db: db}
}

// Create persiste una nómina individual completa.
func (r *PayrollRecordRepo) Create(rec *entity.PayrollRecord) error {
	query := `
		INSERT INTO payroll_records (` + payrollRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31,
			$32, $33, $34, $35, $36, $37, $38, $39, $40, $41, $42, $43, $44)`
	_, err := r.db.Exec(context.Background(), query, r.args(rec)...)
	if err != nil {
		return fmt.Errorf("insert payroll record: %w", err)
	}
	return nil
}

// Update sobreescribe todos los campos calculados y de estado del registro.
func (r *PayrollRecordRepo) Update(rec *entity.PayrollRecord) error {
	query := `
		UPDATE payroll_records SET
			days_worked = $2, salario_base = $3, ibc = $4,
			total_items = $5, basic_pay = $6, aux_transporte = $7, horas_extra = $8,
			otros_devengados = $9, total_devengado = $10,
			salud_empleado = $11, pension_empleado = $12, fsp = $13, retencion_fuente = $14,
			otras_deducciones = $15, total_prestamos = $16, total_embargos = $17,
			total_deducciones = $18,
			salud_empleador = $19, pension_empleador = $20, arl = $21, sena = $22,
			icbf = $23, caja_compensacion = $24,
			cesantias = $25, intereses_cesantias = $26, prima = $27, vacaciones = $28,
			neto_pagar = $29, costo_total_empleador = $30,
			status = $31, calculated_at = $32,
			dian_status = $33, cune = $34, xml_signed = $35, qr_data = $36,
			track_id = $37, dian_errors = $38,
			updated_at = $39
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		rec.ID,
		rec.DaysWorked, rec.SalarioBase, rec.IBC,
		rec.TotalItems, rec.BasicPay, rec.AuxTransporte, rec.HorasExtra,
		rec.OtrosDevengados, rec.TotalDevengado,
		rec.SaludEmpleado, rec.PensionEmpleado, rec.FSP, rec.RetencionFuente,
		rec.OtrasDeducciones, rec.TotalPrestamos, rec.TotalEmbargos,
		rec.TotalDeducciones,
		rec.SaludEmpleador, rec.PensionEmpleador, rec.ARL, rec.SENA,
		rec.ICBF, rec.CajaCompensacion,
		rec.Cesantias, rec.InteresesCesantias, rec.Prima, rec.Vacaciones,
		rec.NetoPagar, rec.CostoTotalEmpleador,
		rec.Status, rec.CalculatedAt,
		rec.DIANStatus, rec.CUNE, rec.XMLSigned, rec.QRData,
		rec.TrackID, rec.DIANErrors,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payroll record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *PayrollRecordRepo) GetByID(id string) (*entity.PayrollRecord, error) {
	query := `SELECT ` + payrollRecordColumns + ` FROM payroll_records WHERE id = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// GetByEmployeeAndPeriod obtiene la nómina del empleado en el período, si existe.
func (r *PayrollRecordRepo) GetByEmployeeAndPeriod(companyID, employeeID, periodID string) (*entity.PayrollRecord, error) {
	query := `SELECT ` + payrollRecordColumns + ` FROM payroll_records
		WHERE company_id = $1 AND employee_id = $2 AND period_id = $3`
	return r.scanOne(r.db.QueryRow(context.Background(), query, companyID, employeeID, periodID))
}

// ListByPeriod devuelve todas las nóminas del período.
func (r *PayrollRecordRepo) ListByPeriod(companyID, periodID string) ([]*entity.PayrollRecord, error) {
	query := `SELECT ` + payrollRecordColumns + ` FROM payroll_records
		WHERE company_id = $1 AND period_id = $2
		ORDER BY created_at`
	return r.list(query, companyID, periodID)
}

// ListCalculatedByMonth devuelve nóminas ya calculadas (o en estados
// posteriores) cuyo período de liquidación cae en el año/mes dados. Es la
// base de los agregados FIC y PILA.
func (r *PayrollRecordRepo) ListCalculatedByMonth(companyID string, year, month int) ([]*entity.PayrollRecord, error) {
	query := `SELECT ` + prefixColumns("r", payrollRecordColumns) + `
		FROM payroll_records r
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE r.company_id = $1
		  AND r.status IN ('CALCULADA', 'APROBADA', 'PAGADA')
		  AND EXTRACT(YEAR FROM p.end_date) = $2
		  AND EXTRACT(MONTH FROM p.end_date) = $3
		ORDER BY r.created_at`
	return r.list(query, companyID, year, month)
}

// NextDocumentNumber incrementa y devuelve el consecutivo del documento de
// nómina electrónica de la empresa. El upsert con RETURNING hace la operación
// atómica sin SELECT previo.
func (r *PayrollRecordRepo) NextDocumentNumber(companyID string) (int64, error) {
	query := `
		INSERT INTO payroll_doc_sequences (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_number = payroll_doc_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.db.QueryRow(context.Background(), query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return n, nil
}

// ReplaceDetails borra y recrea las líneas de concepto del registro.
func (r *PayrollRecordRepo) ReplaceDetails(recordID string, details []*entity.PayrollDetail) error {
	ctx := context.Background()
	if _, err := r.db.Exec(ctx, `DELETE FROM payroll_details WHERE record_id = $1`, recordID); err != nil {
		return fmt.Errorf("delete payroll details: %w", err)
	}
	for _, d := range details {
		_, err := r.db.Exec(ctx, `
			INSERT INTO payroll_details (id, record_id, concept_id, code, name, type, quantity, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, recordID, d.ConceptID, d.Code, d.Name, d.Type, d.Quantity, d.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert payroll detail: %w", err)
		}
	}
	return nil
}

// ReplaceLoanDetails borra y recrea las cuotas de préstamo del registro.
func (r *PayrollRecordRepo) ReplaceLoanDetails(recordID string, details []*entity.LoanInstallmentDetail) error {
	ctx := context.Background()
	if _, err := r.db.Exec(ctx, `DELETE FROM payroll_loan_details WHERE record_id = $1`, recordID); err != nil {
		return fmt.Errorf("delete loan details: %w", err)
	}
	for _, d := range details {
		_, err := r.db.Exec(ctx, `
			INSERT INTO payroll_loan_details (id, record_id, loan_id, amount)
			VALUES ($1, $2, $3, $4)`,
			d.ID, recordID, d.LoanID, d.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert loan detail: %w", err)
		}
	}
	return nil
}

// ReplaceGarnishmentDetails borra y recrea las retenciones de embargo del
// registro. Son la memoria del recálculo: sin ellas no habría cómo reversar
// los saldos de los embargos al repetir la corrida.
func (r *PayrollRecordRepo) ReplaceGarnishmentDetails(recordID string, details []*entity.GarnishmentDeductionDetail) error {
	ctx := context.Background()
	if _, err := r.db.Exec(ctx, `DELETE FROM payroll_garnishment_details WHERE record_id = $1`, recordID); err != nil {
		return fmt.Errorf("delete garnishment details: %w", err)
	}
	for _, d := range details {
		_, err := r.db.Exec(ctx, `
			INSERT INTO payroll_garnishment_details (id, record_id, garnishment_id, amount)
			VALUES ($1, $2, $3, $4)`,
			d.ID, recordID, d.GarnishmentID, d.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert garnishment detail: %w", err)
		}
	}
	return nil
}

// ListDetails devuelve las líneas de concepto del registro.
func (r *PayrollRecordRepo) ListDetails(recordID string) ([]*entity.PayrollDetail, error) {
	rows, err := r.db.Query(context.Background(), `
		SELECT id, record_id, concept_id, code, name, type, quantity, amount
		FROM payroll_details WHERE record_id = $1 ORDER BY type, code`, recordID)
	if err != nil {
		return nil, fmt.Errorf("list payroll details: %w", err)
	}
	defer rows.Close()

	var list []*entity.PayrollDetail
	for rows.Next() {
		var d entity.PayrollDetail
		if err := rows.Scan(&d.ID, &d.RecordID, &d.ConceptID, &d.Code, &d.Name, &d.Type, &d.Quantity, &d.Amount); err != nil {
			return nil, fmt.Errorf("scan payroll detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListLoanDetails devuelve las cuotas de préstamo del registro.
func (r *PayrollRecordRepo) ListLoanDetails(recordID string) ([]*entity.LoanInstallmentDetail, error) {
	rows, err := r.db.Query(context.Background(), `
		SELECT id, record_id, loan_id, amount
		FROM payroll_loan_details WHERE record_id = $1`, recordID)
	if err != nil {
		return nil, fmt.Errorf("list loan details: %w", err)
	}
	defer rows.Close()

	var list []*entity.LoanInstallmentDetail
	for rows.Next() {
		var d entity.LoanInstallmentDetail
		if err := rows.Scan(&d.ID, &d.RecordID, &d.LoanID, &d.Amount); err != nil {
			return nil, fmt.Errorf("scan loan detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListGarnishmentDetails devuelve las retenciones de embargo del registro.
func (r *PayrollRecordRepo) ListGarnishmentDetails(recordID string) ([]*entity.GarnishmentDeductionDetail, error) {
	rows, err := r.db.Query(context.Background(), `
		SELECT id, record_id, garnishment_id, amount
		FROM payroll_garnishment_details WHERE record_id = $1`, recordID)
	if err != nil {
		return nil, fmt.Errorf("list garnishment details: %w", err)
	}
	defer rows.Close()

	var list []*entity.GarnishmentDeductionDetail
	for rows.Next() {
		var d entity.GarnishmentDeductionDetail
		if err := rows.Scan(&d.ID, &d.RecordID, &d.GarnishmentID, &d.Amount); err != nil {
			return nil, fmt.Errorf("scan garnishment detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// SumCesantiasYear acumula las cesantías provisionadas al empleado en el año
// en períodos liquidados antes de before, dejando por fuera el registro en
// recálculo. Alimenta la base de los intereses de cesantías.
func (r *PayrollRecordRepo) SumCesantiasYear(companyID, employeeID string, year int, before time.Time, excludeRecordID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(r.cesantias), 0)
		FROM payroll_records r
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE r.company_id = $1 AND r.employee_id = $2 AND r.id <> $3
		  AND r.status IN ('CALCULADA', 'APROBADA', 'PAGADA')
		  AND EXTRACT(YEAR FROM p.end_date) = $4
		  AND p.end_date < $5`,
		companyID, employeeID, excludeRecordID, year, before,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum cesantias year: %w", err)
	}
	return total, nil
}

func (r *PayrollRecordRepo) args(rec *entity.PayrollRecord) []any {
	return []any{
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.ContractID, rec.PeriodID,
		rec.DaysWorked, rec.SalarioBase, rec.IBC,
		rec.TotalItems, rec.BasicPay, rec.AuxTransporte, rec.HorasExtra,
		rec.OtrosDevengados, rec.TotalDevengado,
		rec.SaludEmpleado, rec.PensionEmpleado, rec.FSP, rec.RetencionFuente,
		rec.OtrasDeducciones, rec.TotalPrestamos, rec.TotalEmbargos, rec.TotalDeducciones,
		rec.SaludEmpleador, rec.PensionEmpleador, rec.ARL, rec.SENA, rec.ICBF,
		rec.CajaCompensacion,
		rec.Cesantias, rec.InteresesCesantias, rec.Prima, rec.Vacaciones,
		rec.NetoPagar, rec.CostoTotalEmpleador,
		rec.Status, rec.CalculatedAt,
		rec.DIANStatus, rec.CUNE, rec.XMLSigned, rec.QRData, rec.TrackID, rec.DIANErrors,
		rec.CreatedAt, rec.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PayrollRecordRepo) scanOne(row rowScanner) (*entity.PayrollRecord, error) {
	var rec entity.PayrollRecord
	err := r.scan(row, &rec)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll record: %w", err)
	}
	return &rec, nil
}

func (r *PayrollRecordRepo) list(query string, args ...any) ([]*entity.PayrollRecord, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()

	var list []*entity.PayrollRecord
	for rows.Next() {
		var rec entity.PayrollRecord
		if err := r.scan(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

func (r *PayrollRecordRepo) scan(row rowScanner, rec *entity.PayrollRecord) error {
	return row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.ContractID, &rec.PeriodID,
		&rec.DaysWorked, &rec.SalarioBase, &rec.IBC,
		&rec.TotalItems, &rec.BasicPay, &rec.AuxTransporte, &rec.HorasExtra,
		&rec.OtrosDevengados, &rec.TotalDevengado,
		&rec.SaludEmpleado, &rec.PensionEmpleado, &rec.FSP, &rec.RetencionFuente,
		&rec.OtrasDeducciones, &rec.TotalPrestamos, &rec.TotalEmbargos, &rec.TotalDeducciones,
		&rec.SaludEmpleador, &rec.PensionEmpleador, &rec.ARL, &rec.SENA, &rec.ICBF,
		&rec.CajaCompensacion,
		&rec.Cesantias, &rec.InteresesCesantias, &rec.Prima, &rec.Vacaciones,
		&rec.NetoPagar, &rec.CostoTotalEmpleador,
		&rec.Status, &rec.CalculatedAt,
		&rec.DIANStatus, &rec.CUNE, &rec.XMLSigned, &rec.QRData, &rec.TrackID, &rec.DIANErrors,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}
