package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretResponse(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantFault     bool
		wantAccountID string
	}{
		{
			name:          "account id element",
			body:          `<Response><accountId>12345</accountId></Response>`,
			wantAccountID: "12345",
		},
		{
			name: "real service success without id",
			body: `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
				`<ns2:AccountCreateResponse xmlns:ns2="com.advantage.online.store.accountservice"><ns2:StatusMessage>` +
				`<ns2:success>true</ns2:success><ns2:userId>981</ns2:userId><ns2:reason>New user created successfully.</ns2:reason>` +
				`</ns2:StatusMessage></ns2:AccountCreateResponse></soap:Body></soap:Envelope>`,
		},
		{
			name:      "success false",
			body:      `<StatusMessage><success>false</success><reason>User name already exists</reason></StatusMessage>`,
			wantFault: true,
		},
		{
			name:      "soap fault element",
			body:      `<Envelope><Body><Fault><Code>Server</Code></Fault></Body></Envelope>`,
			wantFault: true,
		},
		{
			name:      "error element",
			body:      `<Response><ErrorMessage>Bad</ErrorMessage></Response>`,
			wantFault: true,
		},
		{
			name:      "lowercase fault substring",
			body:      `<Envelope><faultstring>boom</faultstring></Envelope>`,
			wantFault: true,
		},
		{
			name:      "error word in a value",
			body:      `<Response><reason>no error</reason><accountId>1</accountId></Response>`,
			wantFault: true,
		},
		{
			name:          "malformed xml falls back to regex",
			body:          `garbage <accountId>777</accountId> <unclosed>`,
			wantAccountID: "777",
		},
		{
			name: "non-digit account id ignored",
			body: `<Response><accountId>abc</accountId></Response>`,
		},
		{
			name:          "first account id wins",
			body:          `<Response><accountId>1</accountId><accountId>2</accountId></Response>`,
			wantAccountID: "1",
		},
		{
			name: "plain text",
			body: `OK`,
		},
		{
			name: "empty body",
			body: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := interpretResponse(tt.body)
			assert.Equal(t, tt.wantFault, v.Fault)
			if !tt.wantFault {
				assert.Equal(t, tt.wantAccountID, v.AccountID)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("abc", 0))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "abc", truncateRunes("abc", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 200))
	assert.Equal(t, "héé", truncateRunes("héééé", 3))
	assert.Equal(t, 200, len([]rune(truncateRunes(strings.Repeat("x", 500), 200))))
}
