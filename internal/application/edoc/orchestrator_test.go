package edoc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	infradian "github.com/tu-usuario/nomina-pro/internal/infrastructure/dian"
	"github.com/tu-usuario/nomina-pro/internal/infrastructure/dian/signer"
	"github.com/tu-usuario/nomina-pro/pkg/config"
)

// ─── fakes de repositorio ─────────────────────────────────────────────

type stubRecordRepo struct {
	rec     *entity.PayrollRecord
	details []*entity.PayrollDetail
	seq     int64
	updates int
}

func (r *stubRecordRepo) Create(rec *entity.PayrollRecord) error { r.rec = rec; return nil }
func (r *stubRecordRepo) Update(rec *entity.PayrollRecord) error {
	r.rec = rec
	r.updates++
	return nil
}
func (r *stubRecordRepo) GetByID(id string) (*entity.PayrollRecord, error) {
	if r.rec != nil && r.rec.ID == id {
		return r.rec, nil
	}
	return nil, nil
}
func (r *stubRecordRepo) GetByEmployeeAndPeriod(companyID, employeeID, periodID string) (*entity.PayrollRecord, error) {
	return r.rec, nil
}
func (r *stubRecordRepo) ListByPeriod(companyID, periodID string) ([]*entity.PayrollRecord, error) {
	return []*entity.PayrollRecord{r.rec}, nil
}
func (r *stubRecordRepo) ListCalculatedByMonth(companyID string, year, month int) ([]*entity.PayrollRecord, error) {
	return nil, nil
}
func (r *stubRecordRepo) NextDocumentNumber(companyID string) (int64, error) {
	r.seq++
	return r.seq, nil
}
func (r *stubRecordRepo) ReplaceDetails(recordID string, details []*entity.PayrollDetail) error {
	r.details = details
	return nil
}
func (r *stubRecordRepo) ReplaceLoanDetails(recordID string, details []*entity.LoanInstallmentDetail) error {
	return nil
}
func (r *stubRecordRepo) ListDetails(recordID string) ([]*entity.PayrollDetail, error) {
	return r.details, nil
}
func (r *stubRecordRepo) ListLoanDetails(recordID string) ([]*entity.LoanInstallmentDetail, error) {
	return nil, nil
}
func (r *stubRecordRepo) ReplaceGarnishmentDetails(recordID string, details []*entity.GarnishmentDeductionDetail) error {
	return nil
}
func (r *stubRecordRepo) ListGarnishmentDetails(recordID string) ([]*entity.GarnishmentDeductionDetail, error) {
	return nil, nil
}
func (r *stubRecordRepo) SumCesantiasYear(companyID, employeeID string, year int, before time.Time, excludeRecordID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubCompanyRepo struct{ company *entity.Company }

func (r *stubCompanyRepo) Create(c *entity.Company) error             { return nil }
func (r *stubCompanyRepo) GetByID(id string) (*entity.Company, error) { return r.company, nil }
func (r *stubCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	return []*entity.Company{r.company}, nil
}
func (r *stubCompanyRepo) Update(c *entity.Company) error { return nil }

type stubEmployeeRepo struct{ employee *entity.Employee }

func (r *stubEmployeeRepo) Create(e *entity.Employee) error             { return nil }
func (r *stubEmployeeRepo) Update(e *entity.Employee) error             { return nil }
func (r *stubEmployeeRepo) GetByID(id string) (*entity.Employee, error) { return r.employee, nil }
func (r *stubEmployeeRepo) GetByDocument(companyID, documentType, documentNumber string) (*entity.Employee, error) {
	return nil, nil
}
func (r *stubEmployeeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error) {
	return nil, nil
}
func (r *stubEmployeeRepo) ListActiveByCompany(companyID string) ([]*entity.Employee, error) {
	return nil, nil
}

type stubContractRepo struct{ contract *entity.Contract }

func (r *stubContractRepo) Create(c *entity.Contract) error             { return nil }
func (r *stubContractRepo) Update(c *entity.Contract) error             { return nil }
func (r *stubContractRepo) GetByID(id string) (*entity.Contract, error) { return r.contract, nil }
func (r *stubContractRepo) GetActiveByEmployee(companyID, employeeID string) (*entity.Contract, error) {
	return r.contract, nil
}
func (r *stubContractRepo) ListByEmployee(companyID, employeeID string) ([]*entity.Contract, error) {
	return nil, nil
}
func (r *stubContractRepo) Activate(companyID, employeeID, contractID string) error { return nil }
func (r *stubContractRepo) SumActiveSalaries(companyID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubPeriodRepo struct{ period *entity.PayrollPeriod }

func (r *stubPeriodRepo) Create(p *entity.PayrollPeriod) error             { return nil }
func (r *stubPeriodRepo) Update(p *entity.PayrollPeriod) error             { return nil }
func (r *stubPeriodRepo) GetByID(id string) (*entity.PayrollPeriod, error) { return r.period, nil }
func (r *stubPeriodRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PayrollPeriod, error) {
	return nil, nil
}
func (r *stubPeriodRepo) HasOverlap(p *entity.PayrollPeriod) (bool, error) { return false, nil }

type stubSubmitter struct {
	result   *infradian.SubmitResult
	err      error
	failures int // primeras n llamadas fallan con err
	calls    int
}

func (s *stubSubmitter) SubmitZip(ctx context.Context, zipBytes []byte, zipName, appEnv string) (*infradian.SubmitResult, error) {
	s.calls++
	if s.failures > 0 && s.calls <= s.failures {
		return nil, s.err
	}
	if s.err != nil && s.failures == 0 {
		return nil, s.err
	}
	return s.result, nil
}

// ─── helpers ──────────────────────────────────────────────────────────

// writeSelfSignedPEM genera un certificado RSA autofirmado en dir y devuelve
// las rutas del certificado y la llave.
func writeSelfSignedPEM(t *testing.T, dir string) (certPath, keyPath string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "pruebas nomina-pro"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)

	certPath = filepath.Join(dir, "cert.pem")
	keyPath = filepath.Join(dir, "key.pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
	require.NoError(t, os.WriteFile(certPath, certPEM, 0o600))
	require.NoError(t, os.WriteFile(keyPath, keyPEM, 0o600))
	return certPath, keyPath
}

type orchestratorEnv struct {
	records   *stubRecordRepo
	submitter *stubSubmitter
	orch      *Orchestrator
}

func newOrchestratorEnv(t *testing.T, cfg config.DIANConfig, sub *stubSubmitter) *orchestratorEnv {
	t.Helper()

	if cfg.CertPath == "" {
		cfg.CertPath, cfg.CertKeyPath = writeSelfSignedPEM(t, t.TempDir())
	}
	if cfg.SoftwarePIN == "" {
		cfg.SoftwarePIN = "75315"
	}
	if cfg.SoftwareID == "" {
		cfg.SoftwareID = "soft-001"
	}

	dev := decimal.RequireFromString("1623500.00")
	ded := decimal.RequireFromString("113880.00")
	rec := &entity.PayrollRecord{
		ID: "rec-1", CompanyID: "co-1", EmployeeID: "emp-1", ContractID: "ct-1", PeriodID: "per-1",
		DaysWorked:       30,
		BasicPay:         decimal.RequireFromString("1423500.00"),
		AuxTransporte:    decimal.RequireFromString("200000.00"),
		TotalDevengado:   dev,
		SaludEmpleado:    decimal.RequireFromString("56940.00"),
		PensionEmpleado:  decimal.RequireFromString("56940.00"),
		TotalDeducciones: ded,
		NetoPagar:        dev.Sub(ded),
		Status:           entity.RecordCalculated,
		DIANStatus:       entity.DIANStatusDraft,
	}
	records := &stubRecordRepo{
		rec: rec,
		details: []*entity.PayrollDetail{
			{RecordID: "rec-1", Code: "bono_obra", Name: "Bono de obra", Type: "DEVENGADO", Amount: decimal.RequireFromString("100000.00")},
		},
	}
	orch := NewOrchestrator(
		records,
		&stubCompanyRepo{company: &entity.Company{ID: "co-1", Name: "Construcciones El Dorado SAS", NIT: "900123456-8", Address: "Cra 7 # 12-34, Bogotá"}},
		&stubEmployeeRepo{employee: &entity.Employee{ID: "emp-1", CompanyID: "co-1", DocumentType: entity.DocTypeCC, DocumentNumber: "1030405", FirstName: "Pedro", LastName: "Pérez"}},
		&stubContractRepo{contract: &entity.Contract{ID: "ct-1", EmployeeID: "emp-1", ContractType: entity.ContractTypeIndefinido, Salary: decimal.RequireFromString("1423500"), StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}},
		&stubPeriodRepo{period: &entity.PayrollPeriod{ID: "per-1", CompanyID: "co-1", StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC), PaymentDate: time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC), Status: entity.PeriodOpen}},
		infradian.NewXMLBuilderService(),
		signer.NewDigitalSignatureService(),
		sub,
		cfg,
	)
	return &orchestratorEnv{records: records, submitter: sub, orch: orch}
}

// ─── tests ────────────────────────────────────────────────────────────

func TestProcess_ModoDevFirmaSinEnviar(t *testing.T) {
	env := newOrchestratorEnv(t, config.DIANConfig{AppEnv: "dev", Environment: "2"}, nil)

	env.orch.Process("rec-1")

	rec := env.records.rec
	assert.Equal(t, entity.DIANStatusExitoso, rec.DIANStatus, "en dev el envío se simula como exitoso")
	assert.Equal(t, "MOCK-TRACK-123", rec.TrackID)
	assert.Len(t, rec.CUNE, 96, "el CUNE es SHA-384 en hex")
	assert.Contains(t, rec.XMLSigned, "ds:Signature", "el XML queda firmado")
	assert.Contains(t, rec.XMLSigned, "NominaIndividual")
	assert.Contains(t, rec.XMLSigned, rec.CUNE)
	assert.Contains(t, rec.QRData, rec.CUNE, "el QR referencia el CUNE")
	assert.True(t, strings.Contains(rec.QRData, "|NIE") || strings.HasPrefix(rec.QRData, "NIE"))
}

func TestProcess_AceptadaPorLaDIAN(t *testing.T) {
	sub := &stubSubmitter{result: &infradian.SubmitResult{TrackID: "track-77", Accepted: true}}
	env := newOrchestratorEnv(t, config.DIANConfig{AppEnv: "test", Environment: "2", MaxRetries: 3}, sub)

	env.orch.Process("rec-1")

	assert.Equal(t, entity.DIANStatusExitoso, env.records.rec.DIANStatus)
	assert.Equal(t, "track-77", env.records.rec.TrackID)
	assert.Equal(t, 1, sub.calls)
}

func TestProcess_RechazadaPorLaDIAN(t *testing.T) {
	sub := &stubSubmitter{result: &infradian.SubmitResult{TrackID: "track-99", Accepted: false, Errors: "Regla NIE030: CUNE inválido"}}
	env := newOrchestratorEnv(t, config.DIANConfig{AppEnv: "test", Environment: "2", MaxRetries: 1}, sub)

	env.orch.Process("rec-1")

	rec := env.records.rec
	assert.Equal(t, entity.DIANStatusRechazado, rec.DIANStatus)
	assert.Contains(t, rec.DIANErrors, "NIE030")
	assert.Equal(t, entity.RecordCalculated, rec.Status, "el rechazo DIAN no toca el ciclo de vida de la nómina")
}

func TestProcess_ReintentaErroresDeRed(t *testing.T) {
	sub := &stubSubmitter{
		result:   &infradian.SubmitResult{TrackID: "track-55", Accepted: true},
		err:      errors.New("connection reset"),
		failures: 2,
	}
	env := newOrchestratorEnv(t, config.DIANConfig{AppEnv: "test", Environment: "2", MaxRetries: 3}, sub)

	env.orch.Process("rec-1")

	assert.Equal(t, entity.DIANStatusExitoso, env.records.rec.DIANStatus)
	assert.Equal(t, 3, sub.calls, "dos fallas de red y un éxito")
}

func TestProcess_BorradorNoSeEmite(t *testing.T) {
	env := newOrchestratorEnv(t, config.DIANConfig{AppEnv: "dev", Environment: "2"}, nil)
	env.records.rec.Status = entity.RecordDraft

	env.orch.Process("rec-1")

	assert.Equal(t, entity.DIANStatusErrorGeneration, env.records.rec.DIANStatus,
		"una nómina en borrador no pasa la validación de emisión")
}

func TestProcess_YaProcesadaNoSeRepite(t *testing.T) {
	env := newOrchestratorEnv(t, config.DIANConfig{AppEnv: "dev", Environment: "2"}, nil)
	env.records.rec.DIANStatus = entity.DIANStatusExitoso
	env.records.rec.TrackID = "track-original"

	env.orch.Process("rec-1")

	assert.Equal(t, "track-original", env.records.rec.TrackID, "no se reprocesa un documento ya emitido")
	assert.Zero(t, env.records.updates)
}

func TestProcess_SinCertificadoMarcaError(t *testing.T) {
	cfg := config.DIANConfig{AppEnv: "dev", Environment: "2", CertPath: "/no/existe.pem", CertKeyPath: "/no/existe.key", SoftwarePIN: "75315", SoftwareID: "soft-001"}
	env := newOrchestratorEnv(t, cfg, nil)

	env.orch.Process("rec-1")

	rec := env.records.rec
	assert.Equal(t, entity.DIANStatusErrorGeneration, rec.DIANStatus)
	assert.NotEmpty(t, rec.DIANErrors)
	assert.Empty(t, rec.XMLSigned, "sin certificado no hay XML firmado")
}
