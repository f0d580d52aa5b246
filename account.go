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
	"github.com/sirupsen/logrus"

	"github.com/kdiomande/bankview/internal/apierror"
	"github.com/kdiomande/bankview/internal/notification"
	"github.com/kdiomande/bankview/internal/store"
	"github.com/kdiomande/bankview/model"
)

// maxDepositAmount is the client-side ceiling on a single deposit.
var maxDepositAmount = decimal.NewFromInt(10000)

type depositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (d depositRequest) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Amount, validation.By(func(interface{}) error {
			if d.Amount.LessThanOrEqual(decimal.Zero) {
				return errors.New("amount must be positive")
			}
			if d.Amount.GreaterThan(maxDepositAmount) {
				return errors.New("amount exceeds the deposit limit")
			}
			return nil
		})),
	)
}

// FetchAccounts replaces the in-memory accounts collection with the owned
// accounts from the backend and re-applies the durable selected-account
// pointer when the referenced number is still present. A stale pointer
// leaves the selection unset; that is not an error.
func (s *Session) FetchAccounts(ctx context.Context) ([]model.Account, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var accounts []model.Account
	if err := s.client.Get(ctx, "/accounts/owned", &accounts); err != nil {
		notification.NotifyError(errors.Wrap(err, "failed to load accounts"))
		return nil, err
	}

	number, found, err := s.store.Get(store.KeySelectedAccount)
	if err != nil {
		logrus.WithError(err).Warn("could not read selected-account pointer")
		found = false
	}

	s.mu.Lock()
	s.accounts = accounts
	s.selected = nil
	if found {
		for i := range accounts {
			if accounts[i].AccountNumber == number {
				selected := accounts[i]
				s.selected = &selected
				break
			}
		}
	}
	out := make([]model.Account, len(accounts))
	copy(out, accounts)
	s.mu.Unlock()

	return out, nil
}

// SelectAccount puts the given account in focus, persists its number so the
// selection survives a restart, and navigates to its dashboard. Purely
// local; cannot fail from the caller's perspective.
func (s *Session) SelectAccount(account model.Account) {
	s.mu.Lock()
	selected := account
	s.selected = &selected
	s.mu.Unlock()

	if err := s.store.Put(store.KeySelectedAccount, account.AccountNumber); err != nil {
		logrus.WithError(err).Warn("could not persist selected account")
	}
	s.goTo(RouteDashboard(account.AccountNumber))
}

// CreateAccount opens a new account server-side and appends it to the local
// collection. The new account is not auto-selected.
func (s *Session) CreateAccount(ctx context.Context) (model.Account, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var account model.Account
	if err := s.client.Post(ctx, "/accounts/new", struct{}{}, &account); err != nil {
		failure := apierror.NewAPIError(apierror.ErrAccountCreationFailed, "could not open a new account", err)
		notification.NotifyError(failure)
		return model.Account{}, failure
	}

	// Append rather than replace, so concurrent local state is not discarded.
	s.mu.Lock()
	s.accounts = append(s.accounts, account)
	s.mu.Unlock()

	notification.Notify("account " + account.AccountNumber + " created")
	return account, nil
}

// AccountByNumber is a read-through lookup of a single account. No local
// state is touched.
func (s *Session) AccountByNumber(ctx context.Context, accountNumber string) (model.Account, error) {
	var account model.Account
	if err := s.client.Get(ctx, "/accounts/"+accountNumber, &account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// Deposit credits an account. The amount must be positive and within the
// deposit limit; violations fail before any network call. On success the
// server's returned account object replaces the local entry wholesale (and
// the selection, when it points at that account): the response is the
// authoritative balance, not a delta to merge.
func (s *Session) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (model.Account, error) {
	payload := depositRequest{Amount: amount, Description: description}
	if err := payload.Validate(); err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidAmount, "invalid deposit amount", err.Error())
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var updated model.Account
	if err := s.client.Post(ctx, "/accounts/"+accountNumber+"/deposit", payload, &updated); err != nil {
		message := "deposit failed"
		if remote, ok := apierror.AsRemote(err); ok && remote.Message != "" {
			message = remote.Message
		}
		failure := apierror.NewAPIError(apierror.ErrDepositFailed, message, err)
		notification.NotifyError(failure)
		return model.Account{}, failure
	}

	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].AccountNumber == accountNumber {
			s.accounts[i] = updated
			break
		}
	}
	if s.selected != nil && s.selected.AccountNumber == accountNumber {
		selected := updated
		s.selected = &selected
	}
	s.mu.Unlock()

	notification.Notify("deposited " + amount.String() + " " + updated.Currency + " into " + accountNumber)
	return updated, nil
}
