package main

// docs/swagger.json se regenera desde las anotaciones de los handlers:
//go:generate go run github.com/swaggo/swag/cmd/swag init -g main.go -d .,../../internal/interfaces/http -o ../../docs

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/nomina-pro/internal/application/auth"
	"github.com/tu-usuario/nomina-pro/internal/application/edoc"
	"github.com/tu-usuario/nomina-pro/internal/application/payroll"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	infradian "github.com/tu-usuario/nomina-pro/internal/infrastructure/dian"
	"github.com/tu-usuario/nomina-pro/internal/infrastructure/dian/signer"
	infrapdf "github.com/tu-usuario/nomina-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/nomina-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/nomina-pro/internal/interfaces/http"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	legalRepo := postgres.NewLegalParameterRepository(pool)
	conceptRepo := postgres.NewLaborConceptRepository(pool)
	retentionRepo := postgres.NewRetentionTableRepository(pool)
	periodRepo := postgres.NewPeriodRepository(pool)
	recordRepo := postgres.NewPayrollRecordRepository(pool)
	noveltyRepo := postgres.NewNoveltyRepository(pool)
	workedItemRepo := postgres.NewWorkedItemRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	garnishmentRepo := postgres.NewGarnishmentRepository(pool)
	ficRepo := postgres.NewFICRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	contractUC := usecase.NewContractUseCase(contractRepo, employeeRepo)
	conceptUC := usecase.NewConceptUseCase(conceptRepo)
	legalUC := usecase.NewLegalParameterUseCase(legalRepo, retentionRepo)
	periodUC := usecase.NewPeriodUseCase(periodRepo)
	noveltyUC := usecase.NewNoveltyUseCase(noveltyRepo, workedItemRepo, loanRepo, garnishmentRepo, periodRepo)

	calcUC := payroll.NewCalculateUseCase(
		txRunner, companyRepo, employeeRepo, contractRepo, periodRepo,
		legalRepo, conceptRepo, retentionRepo,
		payroll.Config{StrictParameters: cfg.Payroll.StrictParameters},
	)
	batchUC := payroll.NewBatchUseCase(calcUC, employeeRepo)
	lifecycleUC := payroll.NewLifecycleUseCase(recordRepo, periodRepo)
	ficUC := payroll.NewFICUseCase(recordRepo, ficRepo, legalRepo)
	pilaUC := payroll.NewPilaUseCase(recordRepo, employeeRepo)

	// PDF: representación gráfica del desprendible de pago
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	payslipUC := payroll.NewPayslipUseCase(
		recordRepo, companyRepo, employeeRepo, contractRepo, periodRepo, pdfGenerator,
	)

	// Cliente SOAP DIAN — solo se usa si DIAN_ENV es "test" o "prod".
	// En modo "dev" el orquestador no lo invoca.
	xmlBuilder := infradian.NewXMLBuilderService()
	signerSvc := signer.NewDigitalSignatureService()
	var dianSubmitter infradian.DIANSubmitter
	if cfg.DIAN.AppEnv != "dev" && cfg.DIAN.AppEnv != "" {
		dianSubmitter = infradian.NewSOAPDIANClient()
	}

	// Orquestador de nómina electrónica: CUNE → XML → XAdES-EPES → ZIP → SOAP → DB
	edocOrchestrator := edoc.NewOrchestrator(
		recordRepo, companyRepo, employeeRepo, contractRepo, periodRepo,
		xmlBuilder, signerSvc, dianSubmitter, cfg.DIAN,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nómina Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		EmployeeUC:  employeeUC,
		ContractUC:  contractUC,
		ConceptUC:   conceptUC,
		LegalUC:     legalUC,
		PeriodUC:    periodUC,
		NoveltyUC:   noveltyUC,
		CalculateUC: calcUC,
		BatchUC:     batchUC,
		LifecycleUC: lifecycleUC,
		PayslipUC:   payslipUC,
		FICUC:       ficUC,
		PilaUC:      pilaUC,
		EDoc:        edocOrchestrator,
		RecordRepo:  recordRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
