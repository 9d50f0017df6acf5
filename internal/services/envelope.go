package services

import (
	"encoding/xml"
	"fmt"

	"github.com/advantage-qa/aos-e2e/internal/models"
)

// SOAP constants of the account service
const (
	SOAPEnvelopeNamespace   = "http://schemas.xmlsoap.org/soap/envelope/"
	XSINamespace            = "http://www.w3.org/2001/XMLSchema-instance"
	XSDNamespace            = "http://www.w3.org/2001/XMLSchema"
	AccountServiceNamespace = "com.advantage.online.store.accountservice"
	AccountCreateSOAPAction = AccountServiceNamespace + "AccountCreateRequest"
)

// soapEnvelope is the outgoing envelope. Prefixed names are written literally
// so the document matches what the service's own web client sends.
type soapEnvelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	SOAPNS  string   `xml:"xmlns:soap,attr"`
	XSINS   string   `xml:"xmlns:xsi,attr"`
	XSDNS   string   `xml:"xmlns:xsd,attr"`
	Body    soapBody `xml:"soap:Body"`
}

type soapBody struct {
	Request *AccountCreateRequest `xml:"AccountCreateRequest"`
}

// AccountCreateRequest is the SOAP operation payload. Field order is the
// wire order and the service rejects any other.
type AccountCreateRequest struct {
	XMLName              xml.Name `xml:"com.advantage.online.store.accountservice AccountCreateRequest"`
	AccountType          string   `xml:"accountType"`
	Address              string   `xml:"address"`
	AllowOffersPromotion bool     `xml:"allowOffersPromotion"`
	CityName             string   `xml:"cityName"`
	CountryID            string   `xml:"countryId"`
	Email                string   `xml:"email"`
	FirstName            string   `xml:"firstName"`
	LastName             string   `xml:"lastName"`
	LoginName            string   `xml:"loginName"`
	Password             string   `xml:"password"`
	PhoneNumber          string   `xml:"phoneNumber"`
	StateProvince        string   `xml:"stateProvince"`
	Zipcode              string   `xml:"zipcode"`
}

// NewAccountCreateRequest maps params onto the wire payload
func NewAccountCreateRequest(params models.AccountCreateParams) *AccountCreateRequest {
	return &AccountCreateRequest{
		AccountType:          models.AccountTypeUser,
		Address:              params.Address,
		AllowOffersPromotion: params.AllowOffersPromotion,
		CityName:             params.CityName,
		CountryID:            params.CountryID,
		Email:                params.Email,
		FirstName:            params.FirstName,
		LastName:             params.LastName,
		LoginName:            params.LoginName,
		Password:             params.Password,
		PhoneNumber:          params.PhoneNumber,
		StateProvince:        params.StateProvince,
		Zipcode:              params.Zipcode,
	}
}

// Params converts the payload back into creation parameters
func (r *AccountCreateRequest) Params() models.AccountCreateParams {
	return models.AccountCreateParams{
		Email:                r.Email,
		LoginName:            r.LoginName,
		Password:             r.Password,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		Address:              r.Address,
		CityName:             r.CityName,
		StateProvince:        r.StateProvince,
		Zipcode:              r.Zipcode,
		PhoneNumber:          r.PhoneNumber,
		CountryID:            r.CountryID,
		AllowOffersPromotion: r.AllowOffersPromotion,
	}
}

// BuildAccountCreateEnvelope serializes params into a UTF-8 SOAP envelope.
// Values are escaped by the encoder.
func BuildAccountCreateEnvelope(params models.AccountCreateParams) ([]byte, error) {
	env := soapEnvelope{
		SOAPNS: SOAPEnvelopeNamespace,
		XSINS:  XSINamespace,
		XSDNS:  XSDNamespace,
		Body:   soapBody{Request: NewAccountCreateRequest(params)},
	}

	out, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// inboundEnvelope decodes an envelope by namespace rather than by prefix
type inboundEnvelope struct {
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    struct {
		Request *AccountCreateRequest `xml:"com.advantage.online.store.accountservice AccountCreateRequest"`
	} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

// ParseAccountCreateEnvelope decodes an AccountCreateRequest envelope
func ParseAccountCreateEnvelope(data []byte) (*AccountCreateRequest, error) {
	var env inboundEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.Body.Request == nil {
		return nil, fmt.Errorf("envelope has no AccountCreateRequest")
	}
	return env.Body.Request, nil
}
