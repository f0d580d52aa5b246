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

package bankview

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/kdiomande/bankview/internal/apierror"
	"github.com/kdiomande/bankview/internal/notification"
	"github.com/kdiomande/bankview/model"
)

type transferRequest struct {
	SenderAccountNumber   string          `json:"senderAccountNumber"`
	ReceiverAccountNumber string          `json:"receiverAccountNumber"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
}

func (t transferRequest) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.SenderAccountNumber, validation.Required),
		validation.Field(&t.ReceiverAccountNumber, validation.Required, validation.By(func(interface{}) error {
			if t.ReceiverAccountNumber == t.SenderAccountNumber {
				return errors.New("sender and receiver must differ")
			}
			return nil
		})),
		validation.Field(&t.Amount, validation.By(func(interface{}) error {
			if t.Amount.LessThanOrEqual(decimal.Zero) {
				return errors.New("amount must be positive")
			}
			return nil
		})),
	)
}

// Transfer moves money between accounts. Preconditions (positive amount,
// sender distinct from receiver) fail before any network call. The response
// is a transaction record, not an account, so no authoritative balance is
// available: on success the known delta is applied locally to the sender
// and, when it happens to be one of the caller's own accounts, the
// receiver. The next FetchAccounts is the reconciliation point. Callers
// should re-fetch after a failure too, to resynchronize.
func (s *Session) Transfer(ctx context.Context, senderAccountNumber, receiverAccountNumber string, amount decimal.Decimal, description string) (model.Transaction, error) {
	payload := transferRequest{
		SenderAccountNumber:   senderAccountNumber,
		ReceiverAccountNumber: receiverAccountNumber,
		Amount:                amount,
		Description:           description,
	}
	if err := payload.Validate(); err != nil {
		return model.Transaction{}, apierror.NewAPIError(apierror.ErrInvalidTransfer, "invalid transfer", err.Error())
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var transaction model.Transaction
	if err := s.client.Post(ctx, "/transfers", payload, &transaction); err != nil {
		message := "transfer failed"
		if remote, ok := apierror.AsRemote(err); ok && remote.Message != "" {
			message = remote.Message
		}
		failure := apierror.NewAPIError(apierror.ErrTransferFailed, message, err)
		notification.NotifyError(failure)
		return model.Transaction{}, failure
	}

	// Provisional delta on the local collection only. The selection is left
	// untouched, matching the observed behavior of the hosted client.
	s.mu.Lock()
	for i := range s.accounts {
		switch s.accounts[i].AccountNumber {
		case senderAccountNumber:
			s.accounts[i].Balance = s.accounts[i].Balance.Sub(amount)
		case receiverAccountNumber:
			s.accounts[i].Balance = s.accounts[i].Balance.Add(amount)
		}
	}
	s.mu.Unlock()

	notification.Notify("transferred " + amount.String() + " to account " + receiverAccountNumber)
	return transaction, nil
}

// IncomingTransfers lists transfers received by the account. Fails soft: a
// remote failure is reported out-of-band and yields an empty list, never an
// error, so the view always renders. See LastListError.
func (s *Session) IncomingTransfers(ctx context.Context, accountNumber string) []model.Transaction {
	return s.listTransfers(ctx, "/transfers/received/account/"+accountNumber, "incoming transfers")
}

// OutgoingTransfers lists transfers sent from the account. Fails soft.
func (s *Session) OutgoingTransfers(ctx context.Context, accountNumber string) []model.Transaction {
	return s.listTransfers(ctx, "/transfers/sent/account/"+accountNumber, "outgoing transfers")
}

// TransfersForAccount lists all transfers touching the account. Fails soft.
func (s *Session) TransfersForAccount(ctx context.Context, accountNumber string) []model.Transaction {
	return s.listTransfers(ctx, "/transfers/account/"+accountNumber, "transfers")
}

func (s *Session) listTransfers(ctx context.Context, path, what string) []model.Transaction {
	var transactions []model.Transaction
	if err := s.client.Get(ctx, path, &transactions); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrapf(err, "failed to load %s", what))
		return []model.Transaction{}
	}
	s.setListError(nil)
	if transactions == nil {
		return []model.Transaction{}
	}
	return transactions
}
