/*
Copyright 2025 Bankview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bankview_test

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdiomande/bankview/internal/apierror"
)

func TestTransferRejectsInvalidRequestsLocally(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)

	tests := []struct {
		name     string
		sender   string
		receiver string
		amount   decimal.Decimal
	}{
		{"self transfer", "FR100", "FR100", decimal.NewFromInt(10)},
		{"zero amount", "FR100", "FR200", decimal.Zero},
		{"negative amount", "FR100", "FR200", decimal.NewFromInt(-10)},
		{"missing sender", "", "FR200", decimal.NewFromInt(10)},
		{"missing receiver", "FR100", "", decimal.NewFromInt(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Transfer(context.Background(), tt.sender, tt.receiver, tt.amount, "rent")
			assert.True(t, apierror.HasCode(err, apierror.ErrInvalidTransfer))
		})
	}

	assert.Zero(t, httpmock.GetTotalCallCount(), "rejected transfers must not reach the network")
}

func TestTransferAppliesProvisionalDelta(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	seedAccounts(t, session, `[
		{"id":1,"accountNumber":"FR100","balance":500,"currency":"EUR"},
		{"id":2,"accountNumber":"FR200","balance":50,"currency":"EUR"}
	]`)

	httpmock.RegisterResponder("POST", baseURL+"/transfers",
		httpmock.NewStringResponder(201, `{"senderAccountNumber":"FR100","receiverAccountNumber":"FR200","amount":120,"description":"rent","type":"TRANSFER","timestamp":"2025-08-30T12:00:00"}`))

	tx, err := session.Transfer(context.Background(), "FR100", "FR200", decimal.NewFromInt(120), "rent")
	require.NoError(t, err)
	assert.Equal(t, "FR200", tx.ReceiverAccountNumber)

	accounts := session.Accounts()
	assert.Equal(t, "380", accounts[0].Balance.String(), "sender debited locally")
	assert.Equal(t, "170", accounts[1].Balance.String(), "owned receiver credited locally")
}

func TestTransferToExternalAccountOnlyDebitsSender(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	seedAccounts(t, session, `[{"id":1,"accountNumber":"FR100","balance":500,"currency":"EUR"}]`)

	httpmock.RegisterResponder("POST", baseURL+"/transfers",
		httpmock.NewStringResponder(201, `{"senderAccountNumber":"FR100","receiverAccountNumber":"DE999","amount":100,"type":"TRANSFER","timestamp":"2025-08-30T12:00:00"}`))

	_, err := session.Transfer(context.Background(), "FR100", "DE999", decimal.NewFromInt(100), "gift")
	require.NoError(t, err)

	accounts := session.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "400", accounts[0].Balance.String())
}

func TestTransferLeavesSelectionUntouched(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	seedAccounts(t, session, `[{"id":1,"accountNumber":"FR100","balance":500,"currency":"EUR"}]`)
	session.SelectAccount(session.Accounts()[0])

	httpmock.RegisterResponder("POST", baseURL+"/transfers",
		httpmock.NewStringResponder(201, `{"senderAccountNumber":"FR100","receiverAccountNumber":"DE999","amount":100,"type":"TRANSFER","timestamp":"2025-08-30T12:00:00"}`))

	_, err := session.Transfer(context.Background(), "FR100", "DE999", decimal.NewFromInt(100), "gift")
	require.NoError(t, err)

	// The collection entry carries the delta; the selection snapshot does
	// not, until the next fetch reconciles it.
	assert.Equal(t, "400", session.Accounts()[0].Balance.String())
	selected, ok := session.SelectedAccount()
	require.True(t, ok)
	assert.Equal(t, "500", selected.Balance.String())
}

func TestTransferFailureLeavesBalancesAlone(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	seedAccounts(t, session, `[{"id":1,"accountNumber":"FR100","balance":500,"currency":"EUR"}]`)

	httpmock.RegisterResponder("POST", baseURL+"/transfers",
		httpmock.NewStringResponder(400, `{"message":"Insufficient funds"}`))

	_, err := session.Transfer(context.Background(), "FR100", "DE999", decimal.NewFromInt(100), "gift")
	assert.True(t, apierror.HasCode(err, apierror.ErrTransferFailed))
	assert.Contains(t, err.Error(), "Insufficient funds")
	assert.Equal(t, "500", session.Accounts()[0].Balance.String())
}

func TestTransferListingsFailSoft(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/transfers/received/account/FR100",
		httpmock.NewStringResponder(500, `{"message":"down"}`))

	transactions := session.IncomingTransfers(context.Background(), "FR100")
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
	assert.Error(t, session.LastListError(), "the swallowed failure is still observable")

	// A subsequent success clears the sentinel.
	httpmock.RegisterResponder("GET", baseURL+"/transfers/sent/account/FR100",
		httpmock.NewStringResponder(200, `[{"senderAccountNumber":"FR100","receiverAccountNumber":"FR200","amount":10,"type":"TRANSFER","timestamp":"2025-08-30T12:00:00"}]`))

	sent := session.OutgoingTransfers(context.Background(), "FR100")
	assert.Len(t, sent, 1)
	assert.NoError(t, session.LastListError())
}

func TestTransferListingsNormalizeNullBody(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/transfers/account/FR100",
		httpmock.NewStringResponder(200, `null`))

	transactions := session.TransfersForAccount(context.Background(), "FR100")
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
	assert.NoError(t, session.LastListError())
}
