package services

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Reasons reported by the account service
const (
	ReasonUserCreated = "New user created successfully."
	ReasonUserExists  = "User name already exists"
	FaultCodeClient   = "soap:Client"
)

type responseEnvelope struct {
	XMLName xml.Name     `xml:"soap:Envelope"`
	SOAPNS  string       `xml:"xmlns:soap,attr"`
	Body    responseBody `xml:"soap:Body"`
}

type responseBody struct {
	Response *accountCreateResponse
	Fault    *soapFault
}

type accountCreateResponse struct {
	XMLName   xml.Name      `xml:"ns2:AccountCreateResponse"`
	NS        string        `xml:"xmlns:ns2,attr"`
	Status    statusMessage `xml:"ns2:StatusMessage"`
	AccountID string        `xml:"ns2:accountId,omitempty"`
}

type statusMessage struct {
	Success bool   `xml:"ns2:success"`
	UserID  string `xml:"ns2:userId,omitempty"`
	Reason  string `xml:"ns2:reason"`
}

type soapFault struct {
	XMLName xml.Name `xml:"soap:Fault"`
	Code    string   `xml:"faultcode"`
	String  string   `xml:"faultstring"`
}

// AccountCreateOutcome is what the service decided about one request
type AccountCreateOutcome struct {
	Success   bool
	AccountID int64
	Reason    string
}

// BuildAccountCreateResponse renders an AccountCreateResponse envelope. The
// account id is only written for successful outcomes.
func BuildAccountCreateResponse(outcome AccountCreateOutcome) ([]byte, error) {
	resp := &accountCreateResponse{
		NS: AccountServiceNamespace,
		Status: statusMessage{
			Success: outcome.Success,
			Reason:  outcome.Reason,
		},
	}
	if outcome.Success {
		id := strconv.FormatInt(outcome.AccountID, 10)
		resp.Status.UserID = id
		resp.AccountID = id
	}
	return marshalResponse(responseBody{Response: resp})
}

// BuildFault renders a SOAP 1.1 Fault envelope
func BuildFault(code, message string) ([]byte, error) {
	return marshalResponse(responseBody{Fault: &soapFault{Code: code, String: message}})
}

func marshalResponse(body responseBody) ([]byte, error) {
	env := responseEnvelope{SOAPNS: SOAPEnvelopeNamespace, Body: body}
	out, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
