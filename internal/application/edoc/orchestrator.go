// Package edoc orquesta el ciclo de nómina electrónica DIAN:
//
//	Validación → CUNE → XML NominaIndividual → Firma XAdES → ZIP → Envío SOAP → Update DB
package edoc

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
	infradian "github.com/tu-usuario/nomina-pro/internal/infrastructure/dian"
	"github.com/tu-usuario/nomina-pro/internal/infrastructure/dian/signer"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	pkgdian "github.com/tu-usuario/nomina-pro/pkg/dian"
)

// Prefijo del consecutivo del documento de nómina electrónica.
const documentPrefix = "NIE"

// Orchestrator ejecuta la generación, firma y envío del documento
// NominaIndividual. Siempre corre en goroutine propia (ProcessAsync) con su
// context.Background() + timeout, desacoplado del ciclo HTTP.
//
// Modos (config.DIANConfig.AppEnv):
//   - "dev"  → genera y firma el XML, NO envía al WS. Estado final: EXITOSO (simulado).
//   - "test" → envía al ambiente de habilitación vpfe-hab.dian.gov.co.
//   - "prod" → envía al ambiente de producción vpfe.dian.gov.co.
type Orchestrator struct {
	recordRepo   repository.PayrollRecordRepository
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	contractRepo repository.ContractRepository
	periodRepo   repository.PeriodRepository
	xmlBuilder   *infradian.XMLBuilderService
	signer       pkgdian.Signer
	submitter    infradian.DIANSubmitter // nil en dev
	dianConfig   config.DIANConfig
}

// NewOrchestrator construye el orquestador. submitter puede ser nil: en ese
// caso solo funciona el modo dev.
func NewOrchestrator(
	recordRepo repository.PayrollRecordRepository,
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
	contractRepo repository.ContractRepository,
	periodRepo repository.PeriodRepository,
	xmlBuilder *infradian.XMLBuilderService,
	sig pkgdian.Signer,
	submitter infradian.DIANSubmitter,
	dianConfig config.DIANConfig,
) *Orchestrator {
	return &Orchestrator{
		recordRepo:   recordRepo,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
		periodRepo:   periodRepo,
		xmlBuilder:   xmlBuilder,
		signer:       sig,
		submitter:    submitter,
		dianConfig:   dianConfig,
	}
}

// ProcessAsync dispara el procesamiento en goroutine independiente.
// recordID es la nómina ya calculada (CALCULADA, APROBADA o PAGADA).
func (o *Orchestrator) ProcessAsync(recordID string) {
	go o.Process(recordID)
}

// Process es el núcleo síncrono. Siempre termina actualizando dian_status en
// la DB (EXITOSO, RECHAZADO o ERROR_GENERATION).
func (o *Orchestrator) Process(recordID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	markError := func(rec *entity.PayrollRecord, step, msg string) {
		rec.DIANStatus = entity.DIANStatusErrorGeneration
		rec.DIANErrors = msg
		rec.UpdatedAt = time.Now()
		if err := o.recordRepo.Update(rec); err != nil {
			log.Error().Str("record_id", recordID).Err(err).Msg("dian: no se pudo persistir ERROR_GENERATION")
		}
		log.Error().Str("record_id", recordID).Str("step", step).Msg("dian: " + msg)
	}

	// 0. Re-fetch datos frescos (evita data races con el goroutine HTTP)
	rec, err := o.recordRepo.GetByID(recordID)
	if err != nil || rec == nil {
		log.Error().Str("record_id", recordID).Err(err).Msg("dian: nómina no encontrada")
		return
	}
	if rec.DIANStatus != entity.DIANStatusDraft && rec.DIANStatus != "" {
		log.Warn().Str("record_id", recordID).Str("status", rec.DIANStatus).
			Msg("dian: estado inesperado (ya procesada?), saltando")
		return
	}

	company, err := o.companyRepo.GetByID(rec.CompanyID)
	if err != nil || company == nil {
		markError(rec, "fetch-company", fmt.Sprintf("empresa %s no encontrada: %v", rec.CompanyID, err))
		return
	}
	employee, err := o.employeeRepo.GetByID(rec.EmployeeID)
	if err != nil || employee == nil {
		markError(rec, "fetch-employee", fmt.Sprintf("empleado %s no encontrado: %v", rec.EmployeeID, err))
		return
	}
	contract, err := o.contractRepo.GetByID(rec.ContractID)
	if err != nil || contract == nil {
		markError(rec, "fetch-contract", fmt.Sprintf("contrato %s no encontrado: %v", rec.ContractID, err))
		return
	}
	period, err := o.periodRepo.GetByID(rec.PeriodID)
	if err != nil || period == nil {
		markError(rec, "fetch-period", fmt.Sprintf("período %s no encontrado: %v", rec.PeriodID, err))
		return
	}
	details, err := o.recordRepo.ListDetails(recordID)
	if err != nil {
		markError(rec, "fetch-details", fmt.Sprintf("error obteniendo detalles: %v", err))
		return
	}

	// 1. Validaciones previas a la emisión (NIT, identidad de totales, estado)
	if err := nomina.ValidateForDIAN(rec, company, employee); err != nil {
		markError(rec, "validate", err.Error())
		return
	}

	// 2. Consecutivo del documento
	seq, err := o.recordRepo.NextDocumentNumber(rec.CompanyID)
	if err != nil {
		markError(rec, "sequence", fmt.Sprintf("error obteniendo consecutivo: %v", err))
		return
	}
	number := documentPrefix + strconv.FormatInt(seq, 10)

	tipoAmb := o.dianConfig.Environment
	if tipoAmb == "" {
		tipoAmb = "2"
	}
	buildCtx := &infradian.PayrollBuildContext{
		Record:       rec,
		Company:      company,
		Employee:     employee,
		Contract:     contract,
		Period:       period,
		Details:      detailLines(details),
		Number:       number,
		GeneratedAt:  time.Now(),
		SoftwareID:   o.dianConfig.SoftwareID,
		TipoAmbiente: tipoAmb,
	}

	// 3. CUNE (SHA-384, Anexo Técnico v1.0)
	if _, err := infradian.CalculateCuneFromRecord(buildCtx, o.dianConfig.SoftwarePIN); err != nil {
		markError(rec, "cune", err.Error())
		return
	}

	// 4. XML NominaIndividual
	xmlBytes, errXML := o.xmlBuilder.Build(buildCtx)
	if errXML != nil {
		markError(rec, "xml-build", errXML.Error())
		return
	}

	// 5. Firma digital XAdES-EPES
	cert, errCert := loadCertificate(o.dianConfig)
	if errCert != nil {
		markError(rec, "cert-load", errCert.Error())
		return
	}
	if len(cert.Certificate) == 0 || cert.PrivateKey == nil {
		markError(rec, "cert-load", "certificado vacío: verifica DIAN_CERT_PATH y DIAN_CERT_PASSWORD")
		return
	}
	signedXMLBytes, errSign := o.signer.Sign(xmlBytes, cert)
	if errSign != nil {
		markError(rec, "xml-sign", errSign.Error())
		return
	}

	// Persistir SIGNED: el XML firmado queda disponible para descarga aunque
	// el envío posterior falle.
	rec.QRData = buildDIANQR(rec, number, buildCtx.GeneratedAt)
	rec.XMLSigned = string(signedXMLBytes)
	rec.DIANStatus = entity.DIANStatusSigned
	rec.UpdatedAt = time.Now()
	if err := o.recordRepo.Update(rec); err != nil {
		log.Error().Str("record_id", recordID).Err(err).Msg("dian: error persistiendo SIGNED")
		return
	}

	// 6. ZIP
	xmlName, zipName := infradian.DIANFilenames(company, number)
	zipBytes, errZIP := infradian.CompressXMLToZip(signedXMLBytes, xmlName)
	if errZIP != nil {
		markError(rec, "zip", errZIP.Error())
		return
	}

	// 7. Envío condicional al WS DIAN
	appEnv := strings.ToLower(strings.TrimSpace(o.dianConfig.AppEnv))

	var finalStatus, trackID, dianErrors string

	switch appEnv {
	case infradian.AppEnvDev, "":
		log.Info().Str("record_id", recordID).Str("zip", zipName).Int("bytes", len(zipBytes)).
			Msg("dian: [DEV] simulando envío, ZIP generado")
		trackID = "MOCK-TRACK-123"
		finalStatus = entity.DIANStatusExitoso

	case infradian.AppEnvTest, infradian.AppEnvProd:
		if o.submitter == nil {
			markError(rec, "soap", "DIANSubmitter no inyectado para entorno "+appEnv)
			return
		}
		result, soapErr := o.submitWithRetry(ctx, zipBytes, zipName, appEnv)
		if soapErr != nil {
			markError(rec, "soap", soapErr.Error())
			return
		}
		trackID = result.TrackID
		dianErrors = result.Errors
		if result.Accepted {
			finalStatus = entity.DIANStatusExitoso
			log.Info().Str("record_id", recordID).Str("track_id", trackID).Msg("dian: aceptada")
		} else {
			finalStatus = entity.DIANStatusRechazado
			log.Warn().Str("record_id", recordID).Str("errors", dianErrors).Msg("dian: rechazada")
		}

	default:
		markError(rec, "config", fmt.Sprintf("DIAN_ENV desconocido: %q (usar dev|test|prod)", appEnv))
		return
	}

	// 8. Persistir resultado final
	rec.DIANStatus = finalStatus
	rec.TrackID = trackID
	rec.DIANErrors = dianErrors
	rec.UpdatedAt = time.Now()
	if err := o.recordRepo.Update(rec); err != nil {
		log.Error().Str("record_id", recordID).Str("status", finalStatus).Err(err).
			Msg("dian: error persistiendo estado final")
		return
	}

	log.Info().Str("record_id", recordID).Str("status", finalStatus).Str("track_id", trackID).
		Msg("dian: procesada")
}

// submitWithRetry reintenta el envío ante errores de red, con backoff lineal.
// Los rechazos de negocio de la DIAN no se reintentan.
func (o *Orchestrator) submitWithRetry(ctx context.Context, zipBytes []byte, zipName, appEnv string) (*infradian.SubmitResult, error) {
	retries := o.dianConfig.MaxRetries
	if retries < 1 {
		retries = 1
	}
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		result, err := o.submitter.SubmitZip(ctx, zipBytes, zipName, appEnv)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, fmt.Errorf("dian: envío fallido tras %d intentos: %w", retries, lastErr)
}

func detailLines(details []*entity.PayrollDetail) []infradian.PayrollLineForXML {
	lines := make([]infradian.PayrollLineForXML, len(details))
	for i, d := range details {
		lines[i] = infradian.PayrollLineForXML{
			Code:   d.Code,
			Name:   d.Name,
			Type:   d.Type,
			Amount: d.Amount.Round(2).StringFixed(2),
		}
	}
	return lines
}

func loadCertificate(cfg config.DIANConfig) (tls.Certificate, error) {
	if cfg.CertPath == "" {
		return tls.Certificate{}, fmt.Errorf("DIAN_CERT_PATH no configurado")
	}
	lower := strings.ToLower(cfg.CertPath)
	if strings.HasSuffix(lower, ".p12") || strings.HasSuffix(lower, ".pfx") {
		return signer.LoadFromP12(cfg.CertPath, cfg.CertPassword)
	}
	return infradian.LoadCertFromPEM(cfg.CertPath, cfg.CertKeyPath)
}

// buildDIANQR contenido del código QR del comprobante: campos separados por
// pipe y URL de consulta del documento en el catálogo DIAN.
func buildDIANQR(rec *entity.PayrollRecord, number string, generatedAt time.Time) string {
	const urlBase = "https://catalogo-vpfe.dian.gov.co/document/searchqr?documentkey="
	return strings.Join([]string{
		number,
		generatedAt.Format("2006-01-02"),
		rec.TotalDevengado.Add(rec.TotalItems).Round(2).StringFixed(2),
		rec.TotalDeducciones.Round(2).StringFixed(2),
		rec.NetoPagar.Round(2).StringFixed(2),
		rec.CUNE,
		urlBase + rec.CUNE,
	}, "|")
}
