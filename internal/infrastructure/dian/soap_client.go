package dian

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	soapURLTest = "https://vpfe-hab.dian.gov.co/WcfDianCustomerServices.svc"
	soapURLProd = "https://vpfe.dian.gov.co/WcfDianCustomerServices.svc"

	soapNS         = "http://schemas.xmlsoap.org/soap/envelope/"
	soapNSTempuri  = "http://tempuri.org/"
	soapActionBase = "http://tempuri.org/IWcfDianCustomerServices/"
)

// SOAPDIANClient implementa DIANSubmitter contra el WS SOAP de la DIAN.
// La nómina electrónica usa las mismas operaciones de recepción que factura
// (SendTestSetAsync en habilitación, SendBillAsync en producción).
type SOAPDIANClient struct {
	httpClient *http.Client
}

// NewSOAPDIANClient construye el cliente SOAP con timeout de 60 s; el WS DIAN
// puede tardar varios segundos en responder.
func NewSOAPDIANClient() *SOAPDIANClient {
	return &SOAPDIANClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type soapEnvelope struct {
	XMLName xml.Name   `xml:"s:Envelope"`
	XmlnsS  string     `xml:"xmlns:s,attr"`
	Header  soapHeader `xml:"s:Header"`
	Body    soapBody   `xml:"s:Body"`
}

type soapHeader struct{}

type soapBody struct {
	Content interface{}
}

func (b soapBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "s:Body"
	e.EncodeToken(start)
	if err := e.Encode(b.Content); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// sendBillAsyncBody cuerpo de SendBillAsync (producción).
type sendBillAsyncBody struct {
	XMLName     xml.Name `xml:"SendBillAsync"`
	Xmlns       string   `xml:"xmlns,attr"`
	FileName    string   `xml:"fileName"`
	ContentFile string   `xml:"contentFile"` // ZIP en Base64
}

// sendTestSetAsyncBody cuerpo de SendTestSetAsync (habilitación).
type sendTestSetAsyncBody struct {
	XMLName     xml.Name `xml:"SendTestSetAsync"`
	Xmlns       string   `xml:"xmlns,attr"`
	FileName    string   `xml:"fileName"`
	ContentFile string   `xml:"contentFile"` // ZIP en Base64
	TestSetID   string   `xml:"testSetId"`   // vacío: la DIAN asigna uno
}

type soapResponseEnvelope struct {
	Body soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	SendBillResponse    *sendBillAsyncResponse    `xml:"SendBillAsyncResponse"`
	SendTestSetResponse *sendTestSetAsyncResponse `xml:"SendTestSetAsyncResponse"`
	Fault               *soapFault                `xml:"Fault"`
}

type sendBillAsyncResponse struct {
	Result sendAsyncResult `xml:"SendBillAsyncResult"`
}

type sendTestSetAsyncResponse struct {
	Result sendAsyncResult `xml:"SendTestSetAsyncResult"`
}

type sendAsyncResult struct {
	HasErrors        bool     `xml:"HasErrors"`
	ErrorMessageList []string `xml:"ErrorMessageList>string"`
	ZipKey           string   `xml:"ZipKey"`
}

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

// SubmitZip envía el ZIP al WS DIAN con la operación SOAP del entorno.
func (c *SOAPDIANClient) SubmitZip(ctx context.Context, zipBytes []byte, filename, env string) (*SubmitResult, error) {
	soapURL, soapAction, body, err := c.buildRequest(zipBytes, filename, env)
	if err != nil {
		return nil, err
	}

	envelope := soapEnvelope{
		XmlnsS: soapNS,
		Body:   soapBody{Content: body},
	}

	xmlPayload, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("soap: serializar envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, soapURL,
		bytes.NewReader(xmlPayload))
	if err != nil {
		return nil, fmt.Errorf("soap: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("soap: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("soap: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("soap: leer respuesta: %w", err)
	}

	return c.parseResponse(rawBody, env)
}

func (c *SOAPDIANClient) buildRequest(zipBytes []byte, filename, env string) (url, action string, body interface{}, err error) {
	b64Content := base64.StdEncoding.EncodeToString(zipBytes)

	switch env {
	case AppEnvProd:
		url = soapURLProd
		action = soapActionBase + "SendBillAsync"
		body = &sendBillAsyncBody{
			Xmlns:       soapNSTempuri,
			FileName:    filename,
			ContentFile: b64Content,
		}
	case AppEnvTest:
		url = soapURLTest
		action = soapActionBase + "SendTestSetAsync"
		body = &sendTestSetAsyncBody{
			Xmlns:       soapNSTempuri,
			FileName:    filename,
			ContentFile: b64Content,
		}
	default:
		return "", "", nil, fmt.Errorf("soap: entorno desconocido %q (usar 'test' o 'prod')", env)
	}
	return url, action, body, nil
}

// parseResponse desempaqueta la respuesta SOAP y extrae TrackID y errores.
// Los errores de negocio de la DIAN se devuelven en el resultado, no como error.
func (c *SOAPDIANClient) parseResponse(rawBody []byte, env string) (*SubmitResult, error) {
	var envResp soapResponseEnvelope
	if err := xml.Unmarshal(rawBody, &envResp); err != nil {
		return &SubmitResult{
			Accepted: false,
			Errors:   fmt.Sprintf("no se pudo parsear respuesta SOAP: %s", string(rawBody)),
		}, nil
	}

	if envResp.Body.Fault != nil {
		return &SubmitResult{
			Accepted: false,
			Errors:   fmt.Sprintf("SOAP Fault [%s]: %s", envResp.Body.Fault.FaultCode, envResp.Body.Fault.FaultString),
		}, nil
	}

	var result *sendAsyncResult
	if env == AppEnvProd && envResp.Body.SendBillResponse != nil {
		result = &envResp.Body.SendBillResponse.Result
	} else if env == AppEnvTest && envResp.Body.SendTestSetResponse != nil {
		result = &envResp.Body.SendTestSetResponse.Result
	}

	if result == nil {
		return &SubmitResult{
			Accepted: false,
			Errors:   "respuesta SOAP vacía o inesperada: " + string(rawBody),
		}, nil
	}

	return &SubmitResult{
		TrackID:  result.ZipKey,
		Accepted: !result.HasErrors,
		Errors:   strings.Join(result.ErrorMessageList, "; "),
	}, nil
}

var _ DIANSubmitter = (*SOAPDIANClient)(nil)
