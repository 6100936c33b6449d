package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	calc "github.com/tu-usuario/nomina-pro/internal/domain/payroll"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// ── fakes en memoria ────────────────────────────────────────────────────────

type fakeCompanyRepo struct{ items map[string]*entity.Company }

func (r *fakeCompanyRepo) Create(c *entity.Company) error                    { r.items[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error)        { return r.items[id], nil }
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error                    { r.items[c.ID] = c; return nil }

type fakeEmployeeRepo struct{ items map[string]*entity.Employee }

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error             { r.items[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) Update(e *entity.Employee) error             { r.items[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) { return r.items[id], nil }
func (r *fakeEmployeeRepo) GetByDocument(companyID, dt, dn string) (*entity.Employee, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeEmployeeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error) {
	return r.ListActiveByCompany(companyID)
}
func (r *fakeEmployeeRepo) ListActiveByCompany(companyID string) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.items {
		if e.CompanyID == companyID && e.Status == "active" {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeContractRepo struct{ items []*entity.Contract }

func (r *fakeContractRepo) Create(c *entity.Contract) error { r.items = append(r.items, c); return nil }
func (r *fakeContractRepo) Update(c *entity.Contract) error { return nil }
func (r *fakeContractRepo) GetByID(id string) (*entity.Contract, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeContractRepo) GetActiveByEmployee(companyID, employeeID string) (*entity.Contract, error) {
	for _, c := range r.items {
		if c.CompanyID == companyID && c.EmployeeID == employeeID && c.Active {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeContractRepo) ListByEmployee(companyID, employeeID string) ([]*entity.Contract, error) {
	return r.items, nil
}
func (r *fakeContractRepo) Activate(companyID, employeeID, contractID string) error { return nil }
func (r *fakeContractRepo) SumActiveSalaries(companyID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range r.items {
		if c.CompanyID == companyID && c.Active {
			total = total.Add(c.Salary)
		}
	}
	return total, nil
}

type fakePeriodRepo struct {
	items map[string]*entity.PayrollPeriod
}

func (r *fakePeriodRepo) Create(p *entity.PayrollPeriod) error             { r.items[p.ID] = p; return nil }
func (r *fakePeriodRepo) Update(p *entity.PayrollPeriod) error             { r.items[p.ID] = p; return nil }
func (r *fakePeriodRepo) GetByID(id string) (*entity.PayrollPeriod, error) { return r.items[id], nil }
func (r *fakePeriodRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PayrollPeriod, error) {
	return nil, nil
}
func (r *fakePeriodRepo) HasOverlap(p *entity.PayrollPeriod) (bool, error) { return false, nil }

type fakeLegalRepo struct{ params []*entity.LegalParameter }

func (r *fakeLegalRepo) Create(p *entity.LegalParameter) error {
	r.params = append(r.params, p)
	return nil
}
func (r *fakeLegalRepo) Update(p *entity.LegalParameter) error { return nil }
func (r *fakeLegalRepo) GetByID(id string) (*entity.LegalParameter, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeLegalRepo) ListAsOf(asOf time.Time) ([]*entity.LegalParameter, error) {
	return r.params, nil
}
func (r *fakeLegalRepo) List(limit, offset int) ([]*entity.LegalParameter, error) {
	return r.params, nil
}

type fakeConceptRepo struct{ concepts []*entity.LaborConcept }

func (r *fakeConceptRepo) Create(c *entity.LaborConcept) error {
	r.concepts = append(r.concepts, c)
	return nil
}
func (r *fakeConceptRepo) Update(c *entity.LaborConcept) error { return nil }
func (r *fakeConceptRepo) GetByID(id string) (*entity.LaborConcept, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeConceptRepo) ListActiveByCompany(companyID string) ([]*entity.LaborConcept, error) {
	return r.concepts, nil
}

type fakeRetentionRepo struct{ table *entity.RetentionTable }

func (r *fakeRetentionRepo) Create(t *entity.RetentionTable) error { r.table = t; return nil }
func (r *fakeRetentionRepo) GetAsOf(asOf time.Time) (*entity.RetentionTable, error) {
	if r.table == nil {
		return nil, domain.ErrNotFound
	}
	return r.table, nil
}

type fakeRecordRepo struct {
	items       map[string]*entity.PayrollRecord
	details     map[string][]*entity.PayrollDetail
	loanDetails map[string][]*entity.LoanInstallmentDetail
	garnDetails map[string][]*entity.GarnishmentDeductionDetail
	periods     map[string]*entity.PayrollPeriod
	seq         int64
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{
		items:       map[string]*entity.PayrollRecord{},
		details:     map[string][]*entity.PayrollDetail{},
		loanDetails: map[string][]*entity.LoanInstallmentDetail{},
		garnDetails: map[string][]*entity.GarnishmentDeductionDetail{},
		periods:     map[string]*entity.PayrollPeriod{},
	}
}

func (r *fakeRecordRepo) Create(rec *entity.PayrollRecord) error           { r.items[rec.ID] = rec; return nil }
func (r *fakeRecordRepo) Update(rec *entity.PayrollRecord) error           { r.items[rec.ID] = rec; return nil }
func (r *fakeRecordRepo) GetByID(id string) (*entity.PayrollRecord, error) { return r.items[id], nil }
func (r *fakeRecordRepo) NextDocumentNumber(companyID string) (int64, error) {
	r.seq++
	return r.seq, nil
}
func (r *fakeRecordRepo) GetByEmployeeAndPeriod(companyID, employeeID, periodID string) (*entity.PayrollRecord, error) {
	for _, rec := range r.items {
		if rec.CompanyID == companyID && rec.EmployeeID == employeeID && rec.PeriodID == periodID {
			return rec, nil
		}
	}
	return nil, nil
}
func (r *fakeRecordRepo) ListByPeriod(companyID, periodID string) ([]*entity.PayrollRecord, error) {
	var out []*entity.PayrollRecord
	for _, rec := range r.items {
		if rec.CompanyID == companyID && rec.PeriodID == periodID {
			out = append(out, rec)
		}
	}
	return out, nil
}
func (r *fakeRecordRepo) ListCalculatedByMonth(companyID string, year, month int) ([]*entity.PayrollRecord, error) {
	var out []*entity.PayrollRecord
	for _, rec := range r.items {
		if rec.CompanyID == companyID && rec.Status != entity.RecordDraft && rec.Status != entity.RecordAnnulled {
			out = append(out, rec)
		}
	}
	return out, nil
}
func (r *fakeRecordRepo) ReplaceDetails(recordID string, details []*entity.PayrollDetail) error {
	r.details[recordID] = details
	return nil
}
func (r *fakeRecordRepo) ReplaceLoanDetails(recordID string, details []*entity.LoanInstallmentDetail) error {
	r.loanDetails[recordID] = details
	return nil
}
func (r *fakeRecordRepo) ListDetails(recordID string) ([]*entity.PayrollDetail, error) {
	return r.details[recordID], nil
}
func (r *fakeRecordRepo) ListLoanDetails(recordID string) ([]*entity.LoanInstallmentDetail, error) {
	return r.loanDetails[recordID], nil
}
func (r *fakeRecordRepo) ReplaceGarnishmentDetails(recordID string, details []*entity.GarnishmentDeductionDetail) error {
	r.garnDetails[recordID] = details
	return nil
}
func (r *fakeRecordRepo) ListGarnishmentDetails(recordID string) ([]*entity.GarnishmentDeductionDetail, error) {
	return r.garnDetails[recordID], nil
}
func (r *fakeRecordRepo) SumCesantiasYear(companyID, employeeID string, year int, before time.Time, excludeRecordID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rec := range r.items {
		if rec.CompanyID != companyID || rec.EmployeeID != employeeID || rec.ID == excludeRecordID {
			continue
		}
		switch rec.Status {
		case entity.RecordCalculated, entity.RecordApproved, entity.RecordPaid:
		default:
			continue
		}
		p := r.periods[rec.PeriodID]
		if p == nil || p.EndDate.Year() != year || !p.EndDate.Before(before) {
			continue
		}
		total = total.Add(rec.Cesantias)
	}
	return total, nil
}

type fakeWorkedItemRepo struct{ items []*entity.WorkedItem }

func (r *fakeWorkedItemRepo) Create(i *entity.WorkedItem) error {
	r.items = append(r.items, i)
	return nil
}
func (r *fakeWorkedItemRepo) ListByEmployeeAndPeriod(companyID, employeeID, periodID string) ([]*entity.WorkedItem, error) {
	return r.items, nil
}
func (r *fakeWorkedItemRepo) SumByEmployeeAndPeriod(companyID, employeeID, periodID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, i := range r.items {
		if i.CompanyID == companyID && i.EmployeeID == employeeID && i.PeriodID == periodID {
			total = total.Add(i.Total())
		}
	}
	return total, nil
}

type fakeNoveltyRepo struct{ items []*entity.Novelty }

func (r *fakeNoveltyRepo) Create(n *entity.Novelty) error { r.items = append(r.items, n); return nil }
func (r *fakeNoveltyRepo) ListByEmployeeAndPeriod(companyID, employeeID, periodID string) ([]*entity.Novelty, error) {
	var out []*entity.Novelty
	for _, n := range r.items {
		if n.CompanyID == companyID && n.EmployeeID == employeeID && n.PeriodID == periodID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeLoanRepo struct{ items []*entity.Loan }

func (r *fakeLoanRepo) Create(l *entity.Loan) error { r.items = append(r.items, l); return nil }
func (r *fakeLoanRepo) Update(l *entity.Loan) error { return nil }
func (r *fakeLoanRepo) GetByID(id string) (*entity.Loan, error) {
	for _, l := range r.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}
func (r *fakeLoanRepo) ListActiveByEmployee(companyID, employeeID string) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for _, l := range r.items {
		if l.CompanyID == companyID && l.EmployeeID == employeeID && l.Status == entity.LoanActive {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeGarnishmentRepo struct{ items []*entity.JudicialGarnishment }

func (r *fakeGarnishmentRepo) Create(g *entity.JudicialGarnishment) error {
	r.items = append(r.items, g)
	return nil
}
func (r *fakeGarnishmentRepo) Update(g *entity.JudicialGarnishment) error { return nil }
func (r *fakeGarnishmentRepo) GetByID(id string) (*entity.JudicialGarnishment, error) {
	for _, g := range r.items {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}
func (r *fakeGarnishmentRepo) ListActiveByEmployee(companyID, employeeID string) ([]*entity.JudicialGarnishment, error) {
	var out []*entity.JudicialGarnishment
	for _, g := range r.items {
		if g.CompanyID == companyID && g.EmployeeID == employeeID && g.Status == entity.GarnishmentActive {
			out = append(out, g)
		}
	}
	return out, nil
}

// fakeTxRunner entrega los fakes directamente: sin transacción real, los
// efectos quedan aplicados aunque el closure falle. Suficiente para probar
// la lógica del motor; la atomicidad se prueba en la capa postgres.
type fakeTxRunner struct {
	records      *fakeRecordRepo
	loans        *fakeLoanRepo
	garnishments *fakeGarnishmentRepo
	items        *fakeWorkedItemRepo
	novelties    *fakeNoveltyRepo
}

func (f *fakeTxRunner) RunPayroll(ctx context.Context, fn func(
	repository.PayrollRecordRepository,
	repository.LoanRepository,
	repository.GarnishmentRepository,
	repository.WorkedItemRepository,
	repository.NoveltyRepository,
) error) error {
	return fn(f.records, f.loans, f.garnishments, f.items, f.novelties)
}

// ── escenario base: empresa de construcción, salario mínimo 2026 ───────────

type testEnv struct {
	uc           *CalculateUseCase
	records      *fakeRecordRepo
	loans        *fakeLoanRepo
	garnishments *fakeGarnishmentRepo
	items        *fakeWorkedItemRepo
	novelties    *fakeNoveltyRepo
	concepts     *fakeConceptRepo
	legal        *fakeLegalRepo
	retention    *fakeRetentionRepo
	contracts    *fakeContractRepo
	periods      *fakePeriodRepo
	company      *entity.Company
	employee     *entity.Employee
	contract     *entity.Contract
	period       *entity.PayrollPeriod
}

func param(code string, fixed, total, emp, er string) *entity.LegalParameter {
	return &entity.LegalParameter{
		ID:            code,
		ConceptCode:   code,
		TotalPct:      decimal.RequireFromString(total),
		EmployeePct:   decimal.RequireFromString(emp),
		EmployerPct:   decimal.RequireFromString(er),
		FixedAmount:   decimal.RequireFromString(fixed),
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:        true,
	}
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	env := &testEnv{
		records:      newFakeRecordRepo(),
		loans:        &fakeLoanRepo{},
		garnishments: &fakeGarnishmentRepo{},
		items:        &fakeWorkedItemRepo{},
		novelties:    &fakeNoveltyRepo{},
		concepts:     &fakeConceptRepo{},
		retention:    &fakeRetentionRepo{},
		contracts:    &fakeContractRepo{},
		periods:      &fakePeriodRepo{items: map[string]*entity.PayrollPeriod{}},
	}

	env.legal = &fakeLegalRepo{params: []*entity.LegalParameter{
		param(entity.ParamSMMLV, "1423500", "0", "0", "0"),
		param(entity.ParamAuxTransporte, "200000", "0", "0", "0"),
		param(entity.ParamUVT, "52374", "0", "0", "0"),
		param(entity.ParamSalud, "0", "12.5", "4", "8.5"),
		param(entity.ParamPension, "0", "16", "4", "12"),
		param(entity.ParamSENA, "0", "2", "0", "2"),
		param(entity.ParamICBF, "0", "3", "0", "3"),
		param(entity.ParamCaja, "0", "4", "0", "4"),
	}}

	env.company = &entity.Company{ID: "co-1", Name: "Constructora Andina SAS", NIT: "900123456-7", Status: "active"}
	env.employee = &entity.Employee{ID: "emp-1", CompanyID: "co-1", DocumentType: "CC", DocumentNumber: "1020304050", FirstName: "Pedro", LastName: "Rojas", Status: "active"}
	env.contract = &entity.Contract{
		ID: "ct-1", CompanyID: "co-1", EmployeeID: "emp-1",
		ContractType: entity.ContractTypeIndefinido,
		Salary:       decimal.RequireFromString("1423500"),
		RiskClass:    5,
		Active:       true,
	}
	env.period = &entity.PayrollPeriod{
		ID: "per-1", CompanyID: "co-1",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC),
		Status:    entity.PeriodOpen,
	}

	companyRepo := &fakeCompanyRepo{items: map[string]*entity.Company{env.company.ID: env.company}}
	employeeRepo := &fakeEmployeeRepo{items: map[string]*entity.Employee{env.employee.ID: env.employee}}
	env.contracts.items = []*entity.Contract{env.contract}
	env.periods.items[env.period.ID] = env.period
	// El fake de registros comparte el mapa de períodos para poder filtrar
	// el acumulado de cesantías por fecha de corte.
	env.records.periods = env.periods.items

	tx := &fakeTxRunner{
		records:      env.records,
		loans:        env.loans,
		garnishments: env.garnishments,
		items:        env.items,
		novelties:    env.novelties,
	}
	env.uc = NewCalculateUseCase(tx, companyRepo, employeeRepo, env.contracts, env.periods,
		env.legal, env.concepts, env.retention, cfg)
	return env
}

// ── pruebas ────────────────────────────────────────────────────────────────

func TestCalculate_SalarioMinimoMesCompleto(t *testing.T) {
	env := newTestEnv(t, Config{})

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, entity.RecordCalculated, rec.Status, "la corrida debe dejar la nómina CALCULADA")
	require.NotNil(t, rec.CalculatedAt)

	assert.True(t, rec.BasicPay.Equal(decimal.RequireFromString("1423500")), "básico mes completo: %s", rec.BasicPay)
	assert.True(t, rec.AuxTransporte.Equal(decimal.RequireFromString("200000")), "auxilio de transporte: %s", rec.AuxTransporte)
	assert.True(t, rec.IBC.Equal(decimal.RequireFromString("1423500")), "el auxilio no entra al IBC: %s", rec.IBC)
	assert.True(t, rec.TotalDevengado.Equal(decimal.RequireFromString("1623500")), "devengado: %s", rec.TotalDevengado)

	assert.True(t, rec.SaludEmpleado.Equal(decimal.RequireFromString("56940")), "salud 4%%: %s", rec.SaludEmpleado)
	assert.True(t, rec.PensionEmpleado.Equal(decimal.RequireFromString("56940")), "pensión 4%%: %s", rec.PensionEmpleado)
	assert.True(t, rec.FSP.IsZero(), "bajo 4 SMMLV no hay FSP")
	assert.True(t, rec.TotalDeducciones.Equal(decimal.RequireFromString("113880")), "deducciones: %s", rec.TotalDeducciones)
	assert.True(t, rec.NetoPagar.Equal(decimal.RequireFromString("1509620")), "neto: %s", rec.NetoPagar)

	// Patronales sobre el mismo IBC.
	assert.True(t, rec.SaludEmpleador.Equal(decimal.RequireFromString("120997.50")), "salud patronal 8.5%%: %s", rec.SaludEmpleador)
	assert.True(t, rec.PensionEmpleador.Equal(decimal.RequireFromString("170820")), "pensión patronal 12%%: %s", rec.PensionEmpleador)
	assert.True(t, rec.ARL.Equal(decimal.RequireFromString("99075.60")), "ARL clase V 6.96%%: %s", rec.ARL)
	assert.True(t, rec.SENA.Equal(decimal.RequireFromString("28470")), "SENA 2%%: %s", rec.SENA)
	assert.True(t, rec.ICBF.Equal(decimal.RequireFromString("42705")), "ICBF 3%%: %s", rec.ICBF)
	assert.True(t, rec.CajaCompensacion.Equal(decimal.RequireFromString("56940")), "caja 4%%: %s", rec.CajaCompensacion)

	// Provisiones sobre básico + auxilio (vacaciones solo básico).
	assert.True(t, rec.Cesantias.Equal(decimal.RequireFromString("135237.55")), "cesantías 8.33%%: %s", rec.Cesantias)
	assert.True(t, rec.Vacaciones.Equal(decimal.RequireFromString("59359.95")), "vacaciones 4.17%% del básico: %s", rec.Vacaciones)
}

func TestCalculate_RecalculoIdempotente(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.contract.Salary = decimal.RequireFromString("4000000")
	env.loans.items = append(env.loans.items, &entity.Loan{
		ID: "ln-1", CompanyID: "co-1", EmployeeID: "emp-1",
		Installment: decimal.RequireFromString("100000"),
		Balance:     decimal.RequireFromString("1000000"),
		Status:      entity.LoanActive,
	})
	env.garnishments.items = append(env.garnishments.items, &entity.JudicialGarnishment{
		ID: "gar-1", CompanyID: "co-1", EmployeeID: "emp-1",
		Class:            entity.GarnishmentAlimentos,
		NotificationDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Percentage:       decimal.NewFromInt(50),
		Balance:          decimal.RequireFromString("10000000"),
		Status:           entity.GarnishmentActive,
	})
	ctx := context.Background()

	first, err := env.uc.Calculate(ctx, "co-1", "emp-1", "per-1")
	require.NoError(t, err)
	loanBalance := env.loans.items[0].Balance
	garBalance := env.garnishments.items[0].Balance
	assert.True(t, loanBalance.Equal(decimal.RequireFromString("900000")), "primera corrida descuenta una cuota: %s", loanBalance)

	second, err := env.uc.Calculate(ctx, "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "el recálculo reutiliza el mismo registro")
	assert.True(t, first.NetoPagar.Equal(second.NetoPagar), "mismas entradas, mismo neto")
	assert.Len(t, env.records.items, 1)

	// Recalcular no es volver a pagar: los saldos quedan como tras la
	// primera corrida y los intereses no se acumulan sobre sí mismos.
	assert.True(t, env.loans.items[0].Balance.Equal(loanBalance),
		"la cuota se descuenta una sola vez: %s", env.loans.items[0].Balance)
	assert.True(t, env.garnishments.items[0].Balance.Equal(garBalance),
		"el embargo se descuenta una sola vez: %s", env.garnishments.items[0].Balance)
	assert.True(t, first.TotalEmbargos.Equal(second.TotalEmbargos), "mismo embargo en ambas corridas")
	assert.True(t, first.InteresesCesantias.Equal(second.InteresesCesantias),
		"intereses de cesantías estables: %s vs %s", first.InteresesCesantias, second.InteresesCesantias)

	garDetails, _ := env.records.ListGarnishmentDetails(first.ID)
	require.Len(t, garDetails, 1)
	assert.True(t, garDetails[0].Amount.Equal(first.TotalEmbargos))
}

func TestCalculate_EstadoAprobadoNoSeRecalcula(t *testing.T) {
	env := newTestEnv(t, Config{})
	ctx := context.Background()

	rec, err := env.uc.Calculate(ctx, "co-1", "emp-1", "per-1")
	require.NoError(t, err)
	rec.Status = entity.RecordApproved

	_, err = env.uc.Calculate(ctx, "co-1", "emp-1", "per-1")
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestCalculate_PeriodoCerradoRechaza(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.period.Status = entity.PeriodClosed

	_, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	assert.ErrorIs(t, err, domain.ErrPeriodoCerrado)
}

func TestCalculate_AusenciaDescuentaDias(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.novelties.items = append(env.novelties.items, &entity.Novelty{
		ID: "nov-1", CompanyID: "co-1", EmployeeID: "emp-1", PeriodID: "per-1",
		Type: entity.NoveltyAbsence, Days: 3,
	})

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	assert.Equal(t, 27, rec.DaysWorked)
	// 1423500/30*27 y el auxilio prorrateado igual.
	assert.True(t, rec.BasicPay.Equal(decimal.RequireFromString("1281150")), "básico 27 días: %s", rec.BasicPay)
	assert.True(t, rec.AuxTransporte.Equal(decimal.RequireFromString("180000")), "auxilio 27 días: %s", rec.AuxTransporte)
}

func TestCalculate_HorasExtraEntranAlIBC(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.novelties.items = append(env.novelties.items, &entity.Novelty{
		ID: "nov-1", CompanyID: "co-1", EmployeeID: "emp-1", PeriodID: "per-1",
		Type: entity.NoveltyOvertimeDay, Hours: decimal.NewFromInt(10),
	})

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	// tarifa hora 1423500/240 = 5931.25; extra diurna x1.25 x10h = 74140.63
	expected := calc.OvertimeDay(decimal.RequireFromString("1423500"), decimal.NewFromInt(10))
	assert.True(t, rec.HorasExtra.Equal(expected), "horas extra: %s", rec.HorasExtra)
	assert.True(t, rec.IBC.Equal(decimal.RequireFromString("1423500").Add(expected)),
		"las extras suman al IBC: %s", rec.IBC)
}

func TestCalculate_ConceptoFormulaEnOrden(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.concepts.concepts = []*entity.LaborConcept{
		{
			ID: "cn-1", CompanyID: "co-1", Code: "bono_obra", Name: "Bono de obra",
			Type: entity.ConceptTypeEarning, CalcMode: entity.CalcModeFormula,
			Formula: "salario_base * 0.10", AfectaIBC: true, Orden: 1, Active: true,
		},
		{
			ID: "cn-2", CompanyID: "co-1", Code: "bono_doble", Name: "Bono doble",
			Type: entity.ConceptTypeEarning, CalcMode: entity.CalcModeFormula,
			Formula: "bono_obra * 2", AfectaIBC: false, Orden: 2, Active: true,
		},
	}

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	// 142350 + 284700: la segunda fórmula lee el resultado de la primera.
	assert.True(t, rec.OtrosDevengados.Equal(decimal.RequireFromString("427050")), "otros devengados: %s", rec.OtrosDevengados)
	// Solo bono_obra afecta IBC.
	assert.True(t, rec.IBC.Equal(decimal.RequireFromString("1565850")), "IBC con bono: %s", rec.IBC)

	details, _ := env.records.ListDetails(rec.ID)
	require.Len(t, details, 2)
	assert.Equal(t, "bono_obra", details[0].Code)
	assert.Equal(t, "bono_doble", details[1].Code)
}

func TestCalculate_FormulaInvalidaAbortaCorrida(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.concepts.concepts = []*entity.LaborConcept{{
		ID: "cn-1", CompanyID: "co-1", Code: "bono_malo", Name: "Bono roto",
		Type: entity.ConceptTypeEarning, CalcMode: entity.CalcModeFormula,
		Formula: "variable_inexistente * 2", Orden: 1, Active: true,
	}}

	_, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bono_malo", "el error nombra el concepto culpable")
}

func TestCalculate_PrestamoYEmbargo(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.contract.Salary = decimal.RequireFromString("4000000")
	env.loans.items = append(env.loans.items, &entity.Loan{
		ID: "ln-1", CompanyID: "co-1", EmployeeID: "emp-1",
		Installment: decimal.RequireFromString("100000"),
		Balance:     decimal.RequireFromString("50000"), // la cuota se topa al saldo
		Status:      entity.LoanActive,
	})
	env.garnishments.items = append(env.garnishments.items, &entity.JudicialGarnishment{
		ID: "gar-1", CompanyID: "co-1", EmployeeID: "emp-1",
		Class:            entity.GarnishmentAlimentos,
		NotificationDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Percentage:       decimal.NewFromInt(50),
		Balance:          decimal.RequireFromString("10000000"),
		Status:           entity.GarnishmentActive,
	})

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	assert.True(t, rec.TotalPrestamos.Equal(decimal.RequireFromString("50000")), "cuota topada al saldo: %s", rec.TotalPrestamos)
	assert.True(t, rec.TotalEmbargos.GreaterThan(decimal.Zero), "el embargo aplica sobre el neto")

	loanDetails, _ := env.records.ListLoanDetails(rec.ID)
	require.Len(t, loanDetails, 1)
	assert.True(t, loanDetails[0].Amount.Equal(decimal.RequireFromString("50000")))
}

func TestCalculate_InteresCesantiasSobreAcumuladoDelAnio(t *testing.T) {
	env := newTestEnv(t, Config{})
	// Febrero ya corrió y quedó aprobado: sus cesantías engordan la base de
	// los intereses de marzo.
	env.periods.items["per-0"] = &entity.PayrollPeriod{
		ID: "per-0", CompanyID: "co-1",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		Status:    entity.PeriodClosed,
	}
	prev := &entity.PayrollRecord{
		ID: "rec-0", CompanyID: "co-1", EmployeeID: "emp-1", ContractID: "ct-1", PeriodID: "per-0",
		Status:    entity.RecordApproved,
		Cesantias: decimal.RequireFromString("135237.55"),
	}
	env.records.items[prev.ID] = prev

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	expected := calc.InteresesCesantias(prev.Cesantias.Add(rec.Cesantias), calc.DefaultIntCesantiasRate)
	assert.True(t, rec.InteresesCesantias.Equal(expected),
		"interés del 1%% sobre el acumulado del año: %s", rec.InteresesCesantias)
	soloMarzo := calc.InteresesCesantias(rec.Cesantias, calc.DefaultIntCesantiasRate)
	assert.True(t, rec.InteresesCesantias.GreaterThan(soloMarzo), "las cesantías de febrero cuentan en la base")
}

func TestCalculate_TarifaARLDesdeParametro(t *testing.T) {
	env := newTestEnv(t, Config{})
	// La tarifa vigente parametrizada manda sobre la tabla del Decreto 1607.
	env.legal.params = append(env.legal.params, param(entity.ParamARLNivelV, "0", "7.5", "0", "7.5"))

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	assert.True(t, rec.ARL.Equal(decimal.RequireFromString("106762.50")), "ARL clase V al 7.5%% parametrizado: %s", rec.ARL)
}

func TestCalculate_ConceptoQueAfectaParafiscales(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.concepts.concepts = []*entity.LaborConcept{{
		ID: "cn-1", CompanyID: "co-1", Code: "bono_parafiscal", Name: "Bono habitual",
		Type: entity.ConceptTypeEarning, CalcMode: entity.CalcModeFixed,
		Amount:             decimal.RequireFromString("100000"),
		AfectaIBC:          false,
		AfectaParafiscales: true,
		Orden:              1, Active: true,
	}}

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	// El bono no toca el IBC pero sí la base parafiscal: 1423500 + 100000.
	assert.True(t, rec.IBC.Equal(decimal.RequireFromString("1423500")), "IBC sin el bono: %s", rec.IBC)
	assert.True(t, rec.SENA.Equal(decimal.RequireFromString("30470")), "SENA 2%% sobre 1523500: %s", rec.SENA)
	assert.True(t, rec.ICBF.Equal(decimal.RequireFromString("45705")), "ICBF 3%% sobre 1523500: %s", rec.ICBF)
	assert.True(t, rec.CajaCompensacion.Equal(decimal.RequireFromString("60940")), "caja 4%% sobre 1523500: %s", rec.CajaCompensacion)
}

func TestCalculate_ExoneracionParafiscalesBajoUmbral(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.company.ExentaParafiscales = true

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	// Nómina agregada de un solo mínimo: muy por debajo de 10 SMMLV.
	assert.True(t, rec.SENA.IsZero(), "SENA exonerado")
	assert.True(t, rec.ICBF.IsZero(), "ICBF exonerado")
	assert.True(t, rec.CajaCompensacion.Equal(decimal.RequireFromString("56940")), "caja nunca se exonera: %s", rec.CajaCompensacion)
}

func TestCalculate_ExoneracionNoAplicaSobreUmbral(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.company.ExentaParafiscales = true
	// Otro contrato activo empuja la nómina agregada por encima de 10 SMMLV:
	// el flag deja de surtir efecto.
	env.contracts.items = append(env.contracts.items, &entity.Contract{
		ID: "ct-2", CompanyID: "co-1", EmployeeID: "emp-2",
		ContractType: entity.ContractTypeIndefinido,
		Salary:       decimal.RequireFromString("15000000"),
		Active:       true,
	})

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	assert.True(t, rec.SENA.Equal(decimal.RequireFromString("28470")), "SENA 2%% pese al flag: %s", rec.SENA)
	assert.True(t, rec.ICBF.Equal(decimal.RequireFromString("42705")), "ICBF 3%% pese al flag: %s", rec.ICBF)
}

func TestCalculate_ContratoServiciosSinAportesPatronales(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.contract.ContractType = entity.ContractTypeServicios
	env.contract.Salary = decimal.RequireFromString("3000000")

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	// IBC = 40% de los honorarios.
	assert.True(t, rec.IBC.Equal(decimal.RequireFromString("1200000")), "IBC servicios 40%%: %s", rec.IBC)
	assert.True(t, rec.SaludEmpleador.IsZero(), "sin aportes patronales en servicios")
	assert.True(t, rec.Cesantias.IsZero(), "sin prestaciones en servicios")
	// El auxilio de transporte no aplica: honorarios > 2 SMMLV.
	assert.True(t, rec.AuxTransporte.IsZero())
}

func TestCalculate_ModoEstrictoExigeParametros(t *testing.T) {
	env := newTestEnv(t, Config{StrictParameters: true})
	var sinSalud []*entity.LegalParameter
	for _, p := range env.legal.params {
		if p.ConceptCode != entity.ParamSalud {
			sinSalud = append(sinSalud, p)
		}
	}
	env.legal.params = sinSalud

	_, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	assert.ErrorIs(t, err, domain.ErrParametroFaltante)
}

func TestCalculate_SinSMMLVFallaElIBC(t *testing.T) {
	env := newTestEnv(t, Config{})
	var params []*entity.LegalParameter
	for _, p := range env.legal.params {
		if p.ConceptCode != entity.ParamSMMLV {
			params = append(params, p)
		}
	}
	env.legal.params = params

	_, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	assert.ErrorIs(t, err, domain.ErrIBCInvalido)
}

func TestCalculate_NetoNegativoAborta(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.concepts.concepts = []*entity.LaborConcept{{
		ID: "cn-1", CompanyID: "co-1", Code: "descuento_total", Name: "Descuento excesivo",
		Type: entity.ConceptTypeDeduction, CalcMode: entity.CalcModeFormula,
		Formula: "total_devengado * 2", Orden: 1, Active: true,
	}}

	_, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	assert.ErrorIs(t, err, domain.ErrNetoNegativo)
}

func TestCalculate_DestajoEntraAlNeto(t *testing.T) {
	env := newTestEnv(t, Config{})
	env.items.items = append(env.items.items, &entity.WorkedItem{
		ID: "wi-1", CompanyID: "co-1", EmployeeID: "emp-1", PeriodID: "per-1",
		TaskCode: "M2-MAMPOSTERIA", Quantity: decimal.NewFromInt(100),
		UnitPrice: decimal.RequireFromString("3500"),
	})

	base := newTestEnv(t, Config{})
	recBase, err := base.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	rec, err := env.uc.Calculate(context.Background(), "co-1", "emp-1", "per-1")
	require.NoError(t, err)

	assert.True(t, rec.TotalItems.Equal(decimal.RequireFromString("350000")), "destajo: %s", rec.TotalItems)
	assert.True(t, rec.NetoPagar.Equal(recBase.NetoPagar.Add(decimal.RequireFromString("350000"))),
		"el destajo suma directo al neto: %s", rec.NetoPagar)
}
