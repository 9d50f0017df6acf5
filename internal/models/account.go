package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AccountTypeUser is the only account type the suite provisions
const AccountTypeUser = "USER"

// FailureKind tells callers which stage of account creation failed
type FailureKind string

// Failure kinds
const (
	FailureNone        FailureKind = ""
	FailureTransport   FailureKind = "transport"
	FailureProtocol    FailureKind = "protocol"
	FailureApplication FailureKind = "application"
)

// Domain errors
var (
	ErrInvalidAccountParams = errors.New("invalid account parameters")
	ErrAccountNotFound      = errors.New("provisioned account not found")
)

var paramsValidator = newParamsValidator()

func newParamsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// AccountCreateParams describes a candidate user account.
// Zero values are the defaults sent on the wire.
type AccountCreateParams struct {
	Email                string `json:"email" validate:"required,email"`
	LoginName            string `json:"loginName" validate:"required"`
	Password             string `json:"password" validate:"required"`
	FirstName            string `json:"firstName,omitempty"`
	LastName             string `json:"lastName,omitempty"`
	Address              string `json:"address,omitempty"`
	CityName             string `json:"cityName,omitempty"`
	StateProvince        string `json:"stateProvince,omitempty"`
	Zipcode              string `json:"zipcode,omitempty"`
	PhoneNumber          string `json:"phoneNumber,omitempty"`
	CountryID            string `json:"countryId,omitempty"`
	AllowOffersPromotion bool   `json:"allowOffersPromotion"`
}

// Validate checks the required fields and the email syntax
func (p AccountCreateParams) Validate() error {
	err := paramsValidator.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.ActualTag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrInvalidAccountParams, fe.Field())
		case "email":
			return fmt.Errorf("%w: %s is not a valid email address: %q", ErrInvalidAccountParams, fe.Field(), fe.Value())
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalidAccountParams, fe.Field(), fe.ActualTag())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidAccountParams, err)
}

// Merge returns a copy of p with every non-empty field of overrides applied
func (p AccountCreateParams) Merge(overrides AccountCreateParams) AccountCreateParams {
	merged := p
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&merged.Email, overrides.Email)
	set(&merged.LoginName, overrides.LoginName)
	set(&merged.Password, overrides.Password)
	set(&merged.FirstName, overrides.FirstName)
	set(&merged.LastName, overrides.LastName)
	set(&merged.Address, overrides.Address)
	set(&merged.CityName, overrides.CityName)
	set(&merged.StateProvince, overrides.StateProvince)
	set(&merged.Zipcode, overrides.Zipcode)
	set(&merged.PhoneNumber, overrides.PhoneNumber)
	set(&merged.CountryID, overrides.CountryID)
	if overrides.AllowOffersPromotion {
		merged.AllowOffersPromotion = true
	}
	return merged
}

// AccountCreateResult is the normalized outcome of one account creation call.
// Failures never surface as Go errors; callers branch on Success or Kind.
type AccountCreateResult struct {
	Success    bool                `json:"success"`
	AccountID  string              `json:"accountId,omitempty"`
	Message    string              `json:"message,omitempty"`
	Error      string              `json:"error,omitempty"`
	Kind       FailureKind         `json:"kind,omitempty"`
	StatusCode int                 `json:"statusCode,omitempty"`
	Params     AccountCreateParams `json:"params"`
}

// HasAccountID reports whether the service returned an identifier
func (r *AccountCreateResult) HasAccountID() bool {
	return r.AccountID != ""
}

// IsTransportFailure returns true if no HTTP response was received
func (r *AccountCreateResult) IsTransportFailure() bool {
	return r.Kind == FailureTransport
}

// IsProtocolFailure returns true if the service answered with a non-2xx status
func (r *AccountCreateResult) IsProtocolFailure() bool {
	return r.Kind == FailureProtocol
}

// IsApplicationFailure returns true if a 2xx response carried a fault
func (r *AccountCreateResult) IsApplicationFailure() bool {
	return r.Kind == FailureApplication
}

// ProvisionedParams is what scenario setup needs: the submitted
// parameters and a go/no-go flag.
type ProvisionedParams struct {
	AccountCreateParams
	Success bool `json:"success"`
}

// ProvisionedAccount is a ledger row recording one provisioning attempt
type ProvisionedAccount struct {
	ID        string
	LoginName string
	Email     string
	Password  string
	AccountID string
	Success   bool
	Error     string
	CreatedAt time.Time
}

// NewProvisionedAccount builds a ledger row from a creation result
func NewProvisionedAccount(result *AccountCreateResult) *ProvisionedAccount {
	return &ProvisionedAccount{
		ID:        uuid.New().String(),
		LoginName: result.Params.LoginName,
		Email:     result.Params.Email,
		Password:  result.Params.Password,
		AccountID: result.AccountID,
		Success:   result.Success,
		Error:     result.Error,
		CreatedAt: time.Now().UTC(),
	}
}
