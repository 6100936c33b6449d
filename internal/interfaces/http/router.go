package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/auth"
	"github.com/tu-usuario/nomina-pro/internal/application/edoc"
	"github.com/tu-usuario/nomina-pro/internal/application/payroll"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	ContractUC  *usecase.ContractUseCase
	ConceptUC   *usecase.ConceptUseCase
	LegalUC     *usecase.LegalParameterUseCase
	PeriodUC    *usecase.PeriodUseCase
	NoveltyUC   *usecase.NoveltyUseCase
	CalculateUC *payroll.CalculateUseCase
	BatchUC     *payroll.BatchUseCase
	LifecycleUC *payroll.LifecycleUseCase
	PayslipUC   *payroll.PayslipUseCase
	FICUC       *payroll.FICUseCase
	PilaUC      *payroll.PilaUseCase
	EDoc        *edoc.Orchestrator
	RecordRepo  repository.PayrollRecordRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; el alta de empresa precede al primer usuario)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles con permiso de escritura sobre la nómina.
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleNomina)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Employees (protegido)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	contractHandler := NewContractHandler(deps.ContractUC)
	employees.Post("/", canWrite, employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", canWrite, employeeHandler.Update)
	employees.Get("/:id/contract", contractHandler.GetActive)
	employees.Get("/:id/contracts", contractHandler.ListByEmployee)

	// Contracts (protegido)
	contracts := protected.Group("/contracts")
	contracts.Post("/", canWrite, contractHandler.Create)
	contracts.Post("/terminate", canWrite, contractHandler.Terminate)

	// Catálogo de conceptos (protegido)
	concepts := protected.Group("/concepts")
	conceptHandler := NewConceptHandler(deps.ConceptUC)
	concepts.Post("/", canWrite, conceptHandler.Create)
	concepts.Post("/validate-formula", conceptHandler.ValidateFormula)
	concepts.Get("/", conceptHandler.ListActive)
	concepts.Delete("/:id", canWrite, conceptHandler.Deactivate)

	// Parámetros legales y retención (solo admin)
	legalHandler := NewLegalHandler(deps.LegalUC)
	protected.Post("/legal-parameters", adminOnly, legalHandler.CreateParameter)
	protected.Get("/legal-parameters", legalHandler.ListAsOf)
	protected.Post("/retention-tables", adminOnly, legalHandler.CreateRetentionTable)

	// Períodos (protegido)
	periods := protected.Group("/periods")
	periodHandler := NewPeriodHandler(deps.PeriodUC, deps.LifecycleUC)
	periods.Post("/", canWrite, periodHandler.Create)
	periods.Get("/", periodHandler.List)
	periods.Get("/:id", periodHandler.GetByID)
	periods.Post("/:id/close", canWrite, periodHandler.Close)

	// Novedades y entradas del período (protegido)
	noveltyHandler := NewNoveltyHandler(deps.NoveltyUC)
	protected.Post("/novelties", canWrite, noveltyHandler.CreateNovelty)
	protected.Post("/worked-items", canWrite, noveltyHandler.CreateWorkedItem)
	protected.Post("/loans", canWrite, noveltyHandler.CreateLoan)
	protected.Post("/garnishments", canWrite, noveltyHandler.CreateGarnishment)

	// Motor de nómina (protegido)
	payrollGroup := protected.Group("/payroll")
	payrollHandler := NewPayrollHandler(deps.CalculateUC, deps.BatchUC, deps.LifecycleUC, deps.PayslipUC, deps.EDoc, deps.RecordRepo)
	payrollGroup.Post("/calculate", canWrite, payrollHandler.Calculate)
	payrollGroup.Post("/calculate-period", canWrite, payrollHandler.CalculatePeriod)
	payrollGroup.Get("/records/:id", payrollHandler.GetRecord)
	payrollGroup.Post("/records/:id/approve", canWrite, payrollHandler.Approve)
	payrollGroup.Post("/records/:id/pay", canWrite, payrollHandler.Pay)
	payrollGroup.Post("/records/:id/annul", canWrite, payrollHandler.Annul)
	payrollGroup.Post("/records/:id/emit", canWrite, payrollHandler.Emit)
	payrollGroup.Get("/records/:id/payslip", payrollHandler.Payslip)

	// Reportes mensuales (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.FICUC, deps.PilaUC)
	reports.Post("/fic", canWrite, reportHandler.ConsolidateFIC)
	reports.Get("/fic", reportHandler.GetFIC)
	reports.Get("/pila", reportHandler.Pila)
}
