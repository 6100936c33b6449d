package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// PeriodRepository acceso a períodos de nómina.
type PeriodRepository interface {
	Create(period *entity.PayrollPeriod) error
	Update(period *entity.PayrollPeriod) error
	GetByID(id string) (*entity.PayrollPeriod, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.PayrollPeriod, error)
	// HasOverlap indica si ya existe un período de la empresa que se cruce
	// con el rango dado (los períodos no se solapan).
	HasOverlap(period *entity.PayrollPeriod) (bool, error)
}

// PayrollRecordRepository acceso a nóminas individuales y sus detalles. El
// registro es dueño exclusivo de sus líneas: Replace* borra y recrea en cada
// corrida, dentro de la transacción del motor.
type PayrollRecordRepository interface {
	Create(record *entity.PayrollRecord) error
	Update(record *entity.PayrollRecord) error
	GetByID(id string) (*entity.PayrollRecord, error)
	GetByEmployeeAndPeriod(companyID, employeeID, periodID string) (*entity.PayrollRecord, error)
	ListByPeriod(companyID, periodID string) ([]*entity.PayrollRecord, error)
	// ListCalculatedByMonth trae las nóminas CALCULADA (o posteriores) de la
	// empresa cuyo período cae en el año/mes dados, para agregados FIC/PILA.
	ListCalculatedByMonth(companyID string, year, month int) ([]*entity.PayrollRecord, error)
	// NextDocumentNumber entrega el siguiente consecutivo del documento de
	// nómina electrónica de la empresa (secuencia monótona, sin huecos
	// garantizados).
	NextDocumentNumber(companyID string) (int64, error)
	ReplaceDetails(recordID string, details []*entity.PayrollDetail) error
	ReplaceLoanDetails(recordID string, details []*entity.LoanInstallmentDetail) error
	ReplaceGarnishmentDetails(recordID string, details []*entity.GarnishmentDeductionDetail) error
	ListDetails(recordID string) ([]*entity.PayrollDetail, error)
	ListLoanDetails(recordID string) ([]*entity.LoanInstallmentDetail, error)
	ListGarnishmentDetails(recordID string) ([]*entity.GarnishmentDeductionDetail, error)
	// SumCesantiasYear suma las cesantías ya provisionadas al empleado en el
	// año, en períodos anteriores a before, excluyendo el registro dado: el
	// acumulado sobre el que corren los intereses del 1% mensual.
	SumCesantiasYear(companyID, employeeID string, year int, before time.Time, excludeRecordID string) (decimal.Decimal, error)
}

// WorkedItemRepository líneas de destajo del período.
type WorkedItemRepository interface {
	Create(item *entity.WorkedItem) error
	ListByEmployeeAndPeriod(companyID, employeeID, periodID string) ([]*entity.WorkedItem, error)
	SumByEmployeeAndPeriod(companyID, employeeID, periodID string) (decimal.Decimal, error)
}

// NoveltyRepository novedades del período (ausencias, extras).
type NoveltyRepository interface {
	Create(novelty *entity.Novelty) error
	ListByEmployeeAndPeriod(companyID, employeeID, periodID string) ([]*entity.Novelty, error)
}

// LoanRepository préstamos a empleados.
type LoanRepository interface {
	Create(loan *entity.Loan) error
	Update(loan *entity.Loan) error
	GetByID(id string) (*entity.Loan, error)
	ListActiveByEmployee(companyID, employeeID string) ([]*entity.Loan, error)
}

// GarnishmentRepository embargos judiciales.
type GarnishmentRepository interface {
	Create(g *entity.JudicialGarnishment) error
	Update(g *entity.JudicialGarnishment) error
	GetByID(id string) (*entity.JudicialGarnishment, error)
	ListActiveByEmployee(companyID, employeeID string) ([]*entity.JudicialGarnishment, error)
}

// FICRepository agregado mensual del Fondo de la Industria de la Construcción.
type FICRepository interface {
	// Upsert idempotente por (company, year, month).
	Upsert(c *entity.FICContribution) error
	GetByMonth(companyID string, year, month int) (*entity.FICContribution, error)
}
