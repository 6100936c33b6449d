// Package payroll orquesta el cálculo de la nómina individual: los pasos
// legales en orden fijo, un contexto de variables que fluye entre pasos y
// una transacción que cubre toda la corrida.
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/formula"
	"github.com/tu-usuario/nomina-pro/internal/domain/legal"
	calc "github.com/tu-usuario/nomina-pro/internal/domain/payroll"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// CalculateUseCase es el motor de cálculo de nómina: una corrida por
// empleado y período.
type CalculateUseCase struct {
	txRunner      TxRunner
	companyRepo   repository.CompanyRepository
	employeeRepo  repository.EmployeeRepository
	contractRepo  repository.ContractRepository
	periodRepo    repository.PeriodRepository
	legalRepo     repository.LegalParameterRepository
	conceptRepo   repository.LaborConceptRepository
	retentionRepo repository.RetentionTableRepository
	cfg           Config
}

// NewCalculateUseCase construye el motor.
func NewCalculateUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
	contractRepo repository.ContractRepository,
	periodRepo repository.PeriodRepository,
	legalRepo repository.LegalParameterRepository,
	conceptRepo repository.LaborConceptRepository,
	retentionRepo repository.RetentionTableRepository,
	cfg Config,
) *CalculateUseCase {
	return &CalculateUseCase{
		txRunner:      txRunner,
		companyRepo:   companyRepo,
		employeeRepo:  employeeRepo,
		contractRepo:  contractRepo,
		periodRepo:    periodRepo,
		legalRepo:     legalRepo,
		conceptRepo:   conceptRepo,
		retentionRepo: retentionRepo,
		cfg:           cfg,
	}
}

// inputs de solo lectura resueltos antes de abrir la transacción. La
// configuración no cambia a mitad de corrida: se lee una vez.
type runInputs struct {
	company   *entity.Company
	employee  *entity.Employee
	contract  *entity.Contract
	period    *entity.PayrollPeriod
	resolver  *legal.Resolver
	concepts  []*entity.LaborConcept
	retention *entity.RetentionTable
	// payrollTotal nómina mensual agregada de la empresa (contratos activos),
	// contra la que se verifica el umbral de exoneración de parafiscales.
	payrollTotal decimal.Decimal
}

func (uc *CalculateUseCase) loadInputs(companyID, employeeID, periodID string) (*runInputs, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil || employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	period, err := uc.periodRepo.GetByID(periodID)
	if err != nil || period == nil {
		return nil, domain.ErrNotFound
	}
	if period.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if period.Status != entity.PeriodOpen {
		return nil, domain.ErrPeriodoCerrado
	}
	contract, err := uc.contractRepo.GetActiveByEmployee(companyID, employeeID)
	if err != nil || contract == nil {
		return nil, fmt.Errorf("empleado %s sin contrato activo: %w", employeeID, domain.ErrNotFound)
	}

	params, err := uc.legalRepo.ListAsOf(period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("cargar parámetros legales: %w", err)
	}
	concepts, err := uc.conceptRepo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("cargar catálogo de conceptos: %w", err)
	}
	// La tabla de retención puede no existir: sin tabla no hay retención.
	retention, err := uc.retentionRepo.GetAsOf(period.EndDate)
	if err != nil {
		retention = nil
	}
	payrollTotal, err := uc.contractRepo.SumActiveSalaries(companyID)
	if err != nil {
		return nil, fmt.Errorf("sumar nómina agregada: %w", err)
	}

	return &runInputs{
		company:      company,
		employee:     employee,
		contract:     contract,
		period:       period,
		resolver:     legal.NewResolver(params),
		concepts:     concepts,
		retention:    retention,
		payrollTotal: payrollTotal,
	}, nil
}

// Calculate ejecuta la corrida completa para un empleado en un período y
// devuelve la nómina en estado CALCULADA. Re-ejecutar sobre una CALCULADA es
// idempotente; sobre APROBADA, PAGADA o ANULADA falla con ErrEstadoInvalido.
func (uc *CalculateUseCase) Calculate(ctx context.Context, companyID, employeeID, periodID string) (*entity.PayrollRecord, error) {
	in, err := uc.loadInputs(companyID, employeeID, periodID)
	if err != nil {
		return nil, err
	}

	var result *entity.PayrollRecord
	err = uc.txRunner.RunPayroll(ctx, func(
		recordRepo repository.PayrollRecordRepository,
		loanRepo repository.LoanRepository,
		garnishmentRepo repository.GarnishmentRepository,
		workedItemRepo repository.WorkedItemRepository,
		noveltyRepo repository.NoveltyRepository,
	) error {
		record, err := uc.ensureRecord(recordRepo, in)
		if err != nil {
			return err
		}
		if !record.CanCalculate() {
			return fmt.Errorf("nómina %s en estado %s: %w", record.ID, record.Status, domain.ErrEstadoInvalido)
		}
		if err := uc.run(record, in, recordRepo, loanRepo, garnishmentRepo, workedItemRepo, noveltyRepo); err != nil {
			return err
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *CalculateUseCase) ensureRecord(recordRepo repository.PayrollRecordRepository, in *runInputs) (*entity.PayrollRecord, error) {
	record, err := recordRepo.GetByEmployeeAndPeriod(in.company.ID, in.employee.ID, in.period.ID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}
	now := time.Now()
	record = &entity.PayrollRecord{
		ID:         uuid.New().String(),
		CompanyID:  in.company.ID,
		EmployeeID: in.employee.ID,
		ContractID: in.contract.ID,
		PeriodID:   in.period.ID,
		Status:     entity.RecordDraft,
		DIANStatus: entity.DIANStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := recordRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// run ejecuta los once pasos sobre el registro. Cualquier error hace rollback
// de toda la transacción: nunca queda una nómina a medio calcular.
func (uc *CalculateUseCase) run(
	record *entity.PayrollRecord,
	in *runInputs,
	recordRepo repository.PayrollRecordRepository,
	loanRepo repository.LoanRepository,
	garnishmentRepo repository.GarnishmentRepository,
	workedItemRepo repository.WorkedItemRepository,
	noveltyRepo repository.NoveltyRepository,
) error {
	asOf := in.period.EndDate
	res := in.resolver
	rules := entity.RulesForContractType(in.contract.ContractType)

	// Reversa de la corrida anterior: las líneas de detalle se reemplazan,
	// pero los saldos de préstamos y embargos quedaron descontados. Se
	// restauran primero para que el recálculo no descuente dos veces.
	if err := uc.revertPreviousRun(record, recordRepo, loanRepo, garnishmentRepo); err != nil {
		return err
	}

	smmlv := res.Amount(entity.ParamSMMLV, asOf)
	uvt := res.Amount(entity.ParamUVT, asOf)
	auxLegal := res.Amount(entity.ParamAuxTransporte, asOf)

	// ── Paso 1: contexto inicial ─────────────────────────────────────────
	novelties, err := noveltyRepo.ListByEmployeeAndPeriod(in.company.ID, in.employee.ID, in.period.ID)
	if err != nil {
		return fmt.Errorf("cargar novedades: %w", err)
	}
	daysPeriod := in.period.Days()
	daysWorked := daysPeriod
	hours := map[string]decimal.Decimal{}
	for _, n := range novelties {
		switch n.Type {
		case entity.NoveltyAbsence, entity.NoveltyLeave:
			daysWorked -= n.Days
		default:
			hours[n.Type] = hours[n.Type].Add(n.Hours)
		}
	}
	if daysWorked < 0 {
		daysWorked = 0
	}

	totalItems, err := workedItemRepo.SumByEmployeeAndPeriod(in.company.ID, in.employee.ID, in.period.ID)
	if err != nil {
		return fmt.Errorf("sumar destajo: %w", err)
	}

	cx := NewContexto()
	cx.Set(VarSalarioBase, in.contract.Salary)
	cx.SetInt(VarDiasTrabajados, daysWorked)
	cx.SetInt(VarDiasPeriodo, daysPeriod)
	cx.Set(VarTotalItems, totalItems)
	cx.Set(VarSMMLV, smmlv)
	cx.Set(VarUVT, uvt)
	cx.Set(VarAuxLegal, auxLegal)
	cx.Set(VarTopeIBC, calc.IBCCap(smmlv))

	// ── Paso 2: devengados ───────────────────────────────────────────────
	basic := calc.BasicPay(in.contract.Salary, daysWorked, daysPeriod)
	aux := calc.TransportAllowance(in.contract.Salary, auxLegal, smmlv, daysWorked, daysPeriod)
	overtime := calc.OvertimeDay(in.contract.Salary, hours[entity.NoveltyOvertimeDay]).
		Add(calc.OvertimeNight(in.contract.Salary, hours[entity.NoveltyOvertimeNight])).
		Add(calc.OrdinaryNight(in.contract.Salary, hours[entity.NoveltyNightWork])).
		Add(calc.SundaySurcharge(in.contract.Salary, hours[entity.NoveltySundayWork]))

	cx.Set(VarBasico, basic)
	cx.Set(VarAuxTransporte, aux)
	cx.Set(VarHorasExtra, overtime)

	totalDevengado := basic.Add(aux).Add(overtime)
	cx.Set(VarTotalDevengado, totalDevengado)

	var details []*entity.PayrollDetail
	otherEarnings := decimal.Zero
	ibcBonuses := decimal.Zero
	parafiscalExtra := decimal.Zero
	// Conceptos dinámicos de devengo, en el orden del catálogo: cada fórmula
	// puede leer los resultados de las anteriores.
	for _, concept := range in.concepts {
		if concept.Type != entity.ConceptTypeEarning || concept.EsProvision {
			continue
		}
		amount, err := uc.conceptValue(concept, cx)
		if err != nil {
			return err
		}
		if amount.IsZero() {
			continue
		}
		otherEarnings = otherEarnings.Add(amount)
		totalDevengado = totalDevengado.Add(amount)
		if concept.AfectaIBC {
			ibcBonuses = ibcBonuses.Add(amount)
		}
		// Lo que afecta parafiscales sin entrar al IBC se suma aparte a la
		// base parafiscal; lo que sí entra ya queda contado dentro del IBC.
		if concept.AfectaParafiscales && !concept.AfectaIBC {
			parafiscalExtra = parafiscalExtra.Add(amount)
		}
		cx.Set(concept.Code, amount)
		cx.Set(VarTotalDevengado, totalDevengado)
		details = append(details, newDetail(record.ID, concept, amount))
	}

	// ── Paso 3: IBC ──────────────────────────────────────────────────────
	// Falla dura: sin SMMLV vigente no hay techo de 25 y el IBC no es
	// calculable (a diferencia de los aportes, que toleran ausencia).
	if smmlv.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("sin SMMLV vigente al %s: %w", asOf.Format("2006-01-02"), domain.ErrIBCInvalido)
	}
	pct := rules.IBCPercentage
	ibc := calc.IBC(basic.Mul(pct), overtime.Mul(pct), ibcBonuses.Mul(pct), decimal.Zero, smmlv)
	cx.Set(VarIBC, ibc)

	// ── Paso 4: deducciones del trabajador ───────────────────────────────
	if uc.cfg.StrictParameters {
		for _, code := range []string{entity.ParamSalud, entity.ParamPension} {
			if !res.Has(code, asOf) {
				return fmt.Errorf("%s: %w", code, domain.ErrParametroFaltante)
			}
		}
	}
	saludEmp := calc.ContributionOf(ibc, res.EmployeePct(entity.ParamSalud, asOf))
	pensionEmp := calc.ContributionOf(ibc, res.EmployeePct(entity.ParamPension, asOf))
	fsp := calc.SolidarityFund(ibc, smmlv)

	otherDeductions := decimal.Zero
	for _, concept := range in.concepts {
		if concept.Type != entity.ConceptTypeDeduction {
			continue
		}
		amount, err := uc.conceptValue(concept, cx)
		if err != nil {
			return err
		}
		if amount.IsZero() {
			continue
		}
		otherDeductions = otherDeductions.Add(amount)
		cx.Set(concept.Code, amount)
		details = append(details, newDetail(record.ID, concept, amount))
	}

	// Retención en la fuente procedimiento 1 (cero si no hay tabla vigente).
	retencion := decimal.Zero
	if in.retention != nil && uvt.GreaterThan(decimal.Zero) {
		ret := calc.RetentionProcedure1(calc.RetentionInput{
			LaborIncome:      totalDevengado.Add(totalItems),
			MandatoryHealth:  saludEmp,
			MandatoryPension: pensionEmp.Add(fsp),
			UVT:              uvt,
			Brackets:         in.retention.Brackets,
		})
		retencion = ret.Tax
	}

	totalDeducciones := calc.TotalDeducted(saludEmp, pensionEmp, fsp, retencion, otherDeductions)

	// ── Pasos 5 y 6: aportes patronales y parafiscales ──────────────────
	var saludPat, pensionPat, arl, sena, icbf, caja decimal.Decimal
	if rules.AportesEmpleador {
		saludPat = calc.ContributionOf(ibc, res.EmployerPct(entity.ParamSalud, asOf))
		pensionPat = calc.ContributionOf(ibc, res.EmployerPct(entity.ParamPension, asOf))
		arl = calc.ContributionOf(ibc, uc.arlRate(res, in.contract.RiskClass, asOf))
		// La exoneración de SENA e ICBF (art. 114-1 ET) solo rige mientras la
		// nómina mensual agregada de la empresa esté por debajo de 10 SMMLV.
		exenta := in.company.ExentaParafiscales &&
			in.payrollTotal.LessThan(smmlv.Mul(decimal.NewFromInt(10)))
		baseParafiscal := ibc.Add(parafiscalExtra)
		sena = calc.Parafiscal(baseParafiscal, res.EmployerPct(entity.ParamSENA, asOf), exenta)
		icbf = calc.Parafiscal(baseParafiscal, res.EmployerPct(entity.ParamICBF, asOf), exenta)
		caja = calc.Parafiscal(baseParafiscal, res.EmployerPct(entity.ParamCaja, asOf), false)
	}

	// ── Paso 7: provisiones prestacionales ───────────────────────────────
	var cesantias, intCesantias, prima, vacaciones decimal.Decimal
	if rules.Prestaciones {
		base := calc.IntegralBase(basic, aux, overtime)
		cesantias = calc.Cesantias(base, uc.provisionRate(res, entity.ParamCesantias, asOf, calc.DefaultCesantiasRate))
		prima = calc.Prima(base, uc.provisionRate(res, entity.ParamPrima, asOf, calc.DefaultPrimaRate))
		vacaciones = calc.Vacaciones(basic, uc.provisionRate(res, entity.ParamVacaciones, asOf, calc.DefaultVacacionesRate))
		// Interés del 1% mensual sobre el acumulado de cesantías del año:
		// lo provisionado en períodos anteriores más lo de esta corrida. El
		// registro actual se excluye de la suma para que recalcular no infle
		// el acumulado con su propio valor previo.
		prior, err := recordRepo.SumCesantiasYear(in.company.ID, in.employee.ID, asOf.Year(), asOf, record.ID)
		if err != nil {
			return fmt.Errorf("acumulado de cesantías: %w", err)
		}
		intCesantias = calc.InteresesCesantias(prior.Add(cesantias), uc.provisionRate(res, entity.ParamIntCesantias, asOf, calc.DefaultIntCesantiasRate))
	}

	// ── Paso 8: cuotas de préstamos (reemplazo total de líneas) ─────────
	loans, err := loanRepo.ListActiveByEmployee(in.company.ID, in.employee.ID)
	if err != nil {
		return fmt.Errorf("cargar préstamos: %w", err)
	}
	totalPrestamos := decimal.Zero
	var loanDetails []*entity.LoanInstallmentDetail
	for _, loan := range loans {
		installment := loan.InstallmentFor()
		if installment.LessThanOrEqual(decimal.Zero) {
			continue
		}
		loan.ApplyInstallment(installment)
		if err := loanRepo.Update(loan); err != nil {
			return fmt.Errorf("actualizar préstamo %s: %w", loan.ID, err)
		}
		totalPrestamos = totalPrestamos.Add(installment)
		loanDetails = append(loanDetails, &entity.LoanInstallmentDetail{
			ID:       uuid.New().String(),
			RecordID: record.ID,
			LoanID:   loan.ID,
			Amount:   installment,
		})
	}
	totalDeducciones = totalDeducciones.Add(totalPrestamos)

	// ── Paso 9: embargos judiciales contra el neto ───────────────────────
	garnishments, err := garnishmentRepo.ListActiveByEmployee(in.company.ID, in.employee.ID)
	if err != nil {
		return fmt.Errorf("cargar embargos: %w", err)
	}
	netBefore := totalItems.Add(totalDevengado).Sub(totalDeducciones)
	totalEmbargos, applied := calc.ApplyGarnishments(netBefore, smmlv, garnishments)
	var garnDetails []*entity.GarnishmentDeductionDetail
	for _, app := range applied {
		if err := garnishmentRepo.Update(app.Garnishment); err != nil {
			return fmt.Errorf("actualizar embargo %s: %w", app.Garnishment.ID, err)
		}
		garnDetails = append(garnDetails, &entity.GarnishmentDeductionDetail{
			ID:            uuid.New().String(),
			RecordID:      record.ID,
			GarnishmentID: app.Garnishment.ID,
			Amount:        app.Amount,
		})
	}
	totalDeducciones = totalDeducciones.Add(totalEmbargos)

	// ── Paso 10: totales finales ─────────────────────────────────────────
	neto, err := calc.NetPay(totalItems.Add(totalDevengado), totalDeducciones)
	if err != nil {
		// Neto negativo: error de configuración que exige corrección humana,
		// jamás se recorta a cero. Aborta la transacción completa.
		return err
	}
	costoTotal := calc.EmployerTotalCost(
		totalItems.Add(totalDevengado),
		[]decimal.Decimal{saludPat, pensionPat, arl, sena, icbf, caja},
		[]decimal.Decimal{cesantias, intCesantias, prima, vacaciones},
	)

	// ── Paso 11: persistir y transicionar ────────────────────────────────
	now := time.Now()
	record.DaysWorked = daysWorked
	record.SalarioBase = in.contract.Salary
	record.IBC = ibc
	record.TotalItems = totalItems
	record.BasicPay = basic
	record.AuxTransporte = aux
	record.HorasExtra = overtime
	record.OtrosDevengados = otherEarnings
	record.TotalDevengado = totalDevengado.Round(2)
	record.SaludEmpleado = saludEmp
	record.PensionEmpleado = pensionEmp
	record.FSP = fsp
	record.RetencionFuente = retencion
	record.OtrasDeducciones = otherDeductions
	record.TotalPrestamos = totalPrestamos
	record.TotalEmbargos = totalEmbargos
	record.TotalDeducciones = totalDeducciones.Round(2)
	record.SaludEmpleador = saludPat
	record.PensionEmpleador = pensionPat
	record.ARL = arl
	record.SENA = sena
	record.ICBF = icbf
	record.CajaCompensacion = caja
	record.Cesantias = cesantias
	record.InteresesCesantias = intCesantias
	record.Prima = prima
	record.Vacaciones = vacaciones
	record.NetoPagar = neto
	record.CostoTotalEmpleador = costoTotal
	record.Status = entity.RecordCalculated
	record.CalculatedAt = &now
	record.UpdatedAt = now

	if err := recordRepo.ReplaceDetails(record.ID, details); err != nil {
		return fmt.Errorf("reemplazar detalles: %w", err)
	}
	if err := recordRepo.ReplaceLoanDetails(record.ID, loanDetails); err != nil {
		return fmt.Errorf("reemplazar cuotas de préstamo: %w", err)
	}
	if err := recordRepo.ReplaceGarnishmentDetails(record.ID, garnDetails); err != nil {
		return fmt.Errorf("reemplazar retenciones de embargo: %w", err)
	}
	if err := recordRepo.Update(record); err != nil {
		return fmt.Errorf("guardar nómina: %w", err)
	}
	return nil
}

// conceptValue calcula el valor de un concepto del catálogo según su modo.
// Los MANUAL llegan por novedad, el motor los salta. El valor debe ser >= 0
// antes de aplicar el signo: devengados suman, deducciones restan.
func (uc *CalculateUseCase) conceptValue(concept *entity.LaborConcept, cx *Contexto) (decimal.Decimal, error) {
	var amount decimal.Decimal
	switch concept.CalcMode {
	case entity.CalcModeFixed:
		amount = concept.Amount
		if concept.Percentage.GreaterThan(decimal.Zero) {
			amount = uc.baseFor(concept, cx).Mul(concept.Percentage.Div(decimal.NewFromInt(100))).Round(2)
		}
	case entity.CalcModeFormula:
		v, err := formula.Evaluate(concept.Formula, cx.Vars())
		if err != nil {
			// El error de fórmula sube hasta quien disparó el cálculo: es un
			// error de autoría de configuración.
			return decimal.Zero, fmt.Errorf("concepto %s: %w", concept.Code, err)
		}
		amount = v
	default:
		return decimal.Zero, nil
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("concepto %s produce valor negativo %s: %w",
			concept.Code, amount, domain.ErrInvalidInput)
	}
	return amount.Round(2), nil
}

func (uc *CalculateUseCase) baseFor(concept *entity.LaborConcept, cx *Contexto) decimal.Decimal {
	switch concept.Base {
	case entity.BaseIBC:
		return cx.Get(VarIBC)
	case entity.BaseDevengados:
		return cx.Get(VarTotalDevengado)
	default:
		return cx.Get(VarSalarioBase)
	}
}

func (uc *CalculateUseCase) provisionRate(res *legal.Resolver, code string, asOf time.Time, def decimal.Decimal) decimal.Decimal {
	if p := res.Resolve(code, asOf); p != nil && p.TotalPct.GreaterThan(decimal.Zero) {
		return p.TotalPct.Div(decimal.NewFromInt(100))
	}
	return def
}

// arlRate resuelve la tarifa de ARL de la clase de riesgo: primero el
// parámetro legal vigente (ARL_NIVEL_I..V), y si no hay ninguno parametrizado
// cae a la tabla del Decreto 1607 de 2002.
func (uc *CalculateUseCase) arlRate(res *legal.Resolver, riskClass int, asOf time.Time) decimal.Decimal {
	if p := res.Resolve(entity.ParamARLForClass(riskClass), asOf); p != nil && p.TotalPct.GreaterThan(decimal.Zero) {
		return p.TotalPct.Div(decimal.NewFromInt(100))
	}
	return calc.ARLRate(riskClass)
}

// revertPreviousRun deshace sobre los saldos lo que la corrida anterior de
// este registro les descontó, leyendo las líneas de detalle persistidas.
// Corre dentro de la misma transacción que el recálculo: o se reversa y se
// vuelve a aplicar todo, o nada.
func (uc *CalculateUseCase) revertPreviousRun(
	record *entity.PayrollRecord,
	recordRepo repository.PayrollRecordRepository,
	loanRepo repository.LoanRepository,
	garnishmentRepo repository.GarnishmentRepository,
) error {
	loanDetails, err := recordRepo.ListLoanDetails(record.ID)
	if err != nil {
		return fmt.Errorf("cargar cuotas previas: %w", err)
	}
	for _, d := range loanDetails {
		loan, err := loanRepo.GetByID(d.LoanID)
		if err != nil {
			return fmt.Errorf("cargar préstamo %s: %w", d.LoanID, err)
		}
		if loan == nil {
			continue
		}
		loan.RestoreInstallment(d.Amount)
		if err := loanRepo.Update(loan); err != nil {
			return fmt.Errorf("reversar préstamo %s: %w", loan.ID, err)
		}
	}

	garnDetails, err := recordRepo.ListGarnishmentDetails(record.ID)
	if err != nil {
		return fmt.Errorf("cargar retenciones previas: %w", err)
	}
	for _, d := range garnDetails {
		g, err := garnishmentRepo.GetByID(d.GarnishmentID)
		if err != nil {
			return fmt.Errorf("cargar embargo %s: %w", d.GarnishmentID, err)
		}
		if g == nil {
			continue
		}
		g.RestoreDeduction(d.Amount)
		if err := garnishmentRepo.Update(g); err != nil {
			return fmt.Errorf("reversar embargo %s: %w", g.ID, err)
		}
	}
	return nil
}

func newDetail(recordID string, concept *entity.LaborConcept, amount decimal.Decimal) *entity.PayrollDetail {
	return &entity.PayrollDetail{
		ID:        uuid.New().String(),
		RecordID:  recordID,
		ConceptID: concept.ID,
		Code:      concept.Code,
		Name:      concept.Name,
		Type:      concept.Type,
		Quantity:  decimal.NewFromInt(1),
		Amount:    amount,
	}
}
