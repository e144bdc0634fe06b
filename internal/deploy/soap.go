// =============================================================================
// fieldforge - Metadata API SOAP Client
// =============================================================================
//
// The real MetadataClient implementation. The Metadata API is SOAP-only, so
// this module speaks two envelopes:
//
//   1. login          (partner API)  - exchanges credentials for a session id
//                                      and the org's metadata endpoint
//   2. createMetadata (Metadata API) - submits the CustomField batch
//
// One synchronous request/response per call, no retries, no pooling.
// Transport-level timeouts are inherited from the supplied http.Client.
//
// =============================================================================

package deploy

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/sforcekit/fieldforge/internal/field"
	"github.com/sforcekit/fieldforge/internal/metaxml"
	"github.com/sforcekit/fieldforge/internal/org"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the result of a successful login.
type Session struct {
	// ID is the session id sent in the SessionHeader of metadata calls.
	ID string

	// MetadataServerURL is the org's Metadata API endpoint.
	MetadataServerURL string
}

// Login performs the SOAP login call against the org's login endpoint and
// returns the session for subsequent metadata calls.
func Login(ctx context.Context, httpClient *http.Client, o *org.Org, apiVersion string) (*Session, error) {
	endpoint := fmt.Sprintf("%s/services/Soap/u/%s", o.LoginURL, apiVersion)

	var body bytes.Buffer
	body.WriteString(xmlHeader)
	body.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">` + "\n")
	body.WriteString("  <soapenv:Body>\n")
	body.WriteString(`    <login xmlns="urn:partner.soap.sforce.com">` + "\n")
	body.WriteString(fmt.Sprintf("      <username>%s</username>\n", escape(o.Username)))
	body.WriteString(fmt.Sprintf("      <password>%s</password>\n", escape(o.LoginPassword())))
	body.WriteString("    </login>\n")
	body.WriteString("  </soapenv:Body>\n")
	body.WriteString("</soapenv:Envelope>\n")

	respBody, err := post(ctx, httpClient, endpoint, "login", body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	var envelope loginEnvelope
	if err := xml.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("login failed: unreadable response: %w", err)
	}
	if envelope.Body.Fault != nil {
		return nil, fmt.Errorf("login failed: %s", envelope.Body.Fault.String())
	}
	if envelope.Body.Result.SessionID == "" {
		return nil, fmt.Errorf("login failed: response carried no session id")
	}

	return &Session{
		ID:                envelope.Body.Result.SessionID,
		MetadataServerURL: envelope.Body.Result.MetadataServerURL,
	}, nil
}

// =============================================================================
// SOAP CLIENT
// =============================================================================

// SOAPClient implements MetadataClient over the Metadata API createMetadata
// call.
type SOAPClient struct {
	httpClient *http.Client
	session    *Session
}

// NewSOAPClient creates a client bound to an authenticated session.
func NewSOAPClient(httpClient *http.Client, session *Session) *SOAPClient {
	return &SOAPClient{httpClient: httpClient, session: session}
}

// CreateFields submits all descriptors in a single createMetadata call and
// returns the per-item results in submission order.
func (c *SOAPClient) CreateFields(ctx context.Context, objectName string, descriptors []field.Descriptor) ([]SaveResult, error) {
	var body bytes.Buffer
	body.WriteString(xmlHeader)
	body.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` + "\n")
	body.WriteString("  <soapenv:Header>\n")
	body.WriteString(fmt.Sprintf(`    <SessionHeader xmlns=%q><sessionId>%s</sessionId></SessionHeader>`+"\n",
		metaxml.MetadataNamespace, escape(c.session.ID)))
	body.WriteString("  </soapenv:Header>\n")
	body.WriteString("  <soapenv:Body>\n")
	body.WriteString(fmt.Sprintf("    <createMetadata xmlns=%q>\n", metaxml.MetadataNamespace))

	for _, d := range descriptors {
		body.WriteString(`      <metadata xsi:type="CustomField">` + "\n")
		// Members are qualified as <Object>.<Field> on the wire.
		metaxml.WriteFieldElements(&body, d, fmt.Sprintf("%s.%s", objectName, d.FullName), 4)
		body.WriteString("      </metadata>\n")
	}

	body.WriteString("    </createMetadata>\n")
	body.WriteString("  </soapenv:Body>\n")
	body.WriteString("</soapenv:Envelope>\n")

	respBody, err := post(ctx, c.httpClient, c.session.MetadataServerURL, "createMetadata", body.Bytes())
	if err != nil {
		return nil, err
	}

	var envelope createMetadataEnvelope
	if err := xml.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("unreadable createMetadata response: %w", err)
	}
	if envelope.Body.Fault != nil {
		return nil, fmt.Errorf("createMetadata fault: %s", envelope.Body.Fault.String())
	}

	// The endpoint emits one <result> per submitted item; a lone result
	// decodes as a one-element slice here, so everything downstream handles
	// a single shape. Result order is assumed to match submission order,
	// per the Metadata API contract.
	results := make([]SaveResult, 0, len(envelope.Body.Results))
	for _, r := range envelope.Body.Results {
		result := SaveResult{FullName: r.FullName, Success: r.Success}
		for _, e := range r.Errors {
			result.Errors = append(result.Errors, SaveError{StatusCode: e.StatusCode, Message: e.Message})
		}
		results = append(results, result)
	}

	return results, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// post sends one SOAP request and returns the raw response body.
func post(ctx context.Context, httpClient *http.Client, endpoint, action string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", action)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// SOAP faults arrive with a 500 status; those are surfaced by the
	// caller's fault check with the fault detail intact.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		return nil, fmt.Errorf("metadata endpoint returned HTTP %d", resp.StatusCode)
	}

	return respBody, nil
}

// escape escapes text for embedding in the request envelopes.
func escape(s string) string {
	var buffer bytes.Buffer
	xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}

// =============================================================================
// RESPONSE ENVELOPES
// =============================================================================

type soapFault struct {
	Code   string `xml:"faultcode"`
	Detail string `xml:"faultstring"`
}

func (f *soapFault) String() string {
	if f.Code == "" {
		return f.Detail
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Detail)
}

type loginEnvelope struct {
	Body struct {
		Result struct {
			SessionID         string `xml:"sessionId"`
			ServerURL         string `xml:"serverUrl"`
			MetadataServerURL string `xml:"metadataServerUrl"`
		} `xml:"loginResponse>result"`
		Fault *soapFault `xml:"Fault"`
	} `xml:"Body"`
}

type createMetadataEnvelope struct {
	Body struct {
		Results []struct {
			FullName string `xml:"fullName"`
			Success  bool   `xml:"success"`
			Errors   []struct {
				StatusCode string `xml:"statusCode"`
				Message    string `xml:"message"`
			} `xml:"errors"`
		} `xml:"createMetadataResponse>result"`
		Fault *soapFault `xml:"Fault"`
	} `xml:"Body"`
}
