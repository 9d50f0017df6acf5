package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAccountCreateResponse_ReadByClient(t *testing.T) {
	tests := []struct {
		name          string
		outcome       AccountCreateOutcome
		wantFault     bool
		wantAccountID string
	}{
		{
			name:          "created",
			outcome:       AccountCreateOutcome{Success: true, AccountID: 1001, Reason: ReasonUserCreated},
			wantAccountID: "1001",
		},
		{
			name:      "user exists",
			outcome:   AccountCreateOutcome{Success: false, AccountID: 5, Reason: ReasonUserExists},
			wantFault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			doc, err := BuildAccountCreateResponse(tt.outcome)
			require.NoError(t, err)

			// THEN
			v := interpretResponse(string(doc))
			assert.Equal(t, tt.wantFault, v.Fault)
			assert.Equal(t, tt.wantAccountID, v.AccountID)
			assert.Contains(t, string(doc), `xmlns:ns2="com.advantage.online.store.accountservice"`)
			assert.Contains(t, string(doc), tt.outcome.Reason)
		})
	}
}

func TestBuildAccountCreateResponse_FailureOmitsID(t *testing.T) {
	doc, err := BuildAccountCreateResponse(AccountCreateOutcome{Success: false, AccountID: 9, Reason: ReasonUserExists})
	require.NoError(t, err)

	assert.NotContains(t, string(doc), "accountId")
	assert.NotContains(t, string(doc), "userId")
	assert.Contains(t, string(doc), "<ns2:success>false</ns2:success>")
}

func TestBuildFault(t *testing.T) {
	doc, err := BuildFault(FaultCodeClient, "unmarshalling error")
	require.NoError(t, err)

	s := string(doc)
	assert.Contains(t, s, "<soap:Fault>")
	assert.Contains(t, s, "<faultcode>soap:Client</faultcode>")
	assert.Contains(t, s, "<faultstring>unmarshalling error</faultstring>")
	assert.True(t, interpretResponse(s).Fault)
}
