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

package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account mirrors the account representation served by the backend. The
// balance is authoritative only as last fetched; deposit and transfer apply
// provisional local updates that the next fetch supersedes.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	OpeningDate   string          `json:"openingDate"`
	UserID        int64           `json:"userId"`
}

// MaskedNumber returns the account number with all but the last four
// characters hidden. The number is otherwise opaque and never parsed.
func (a *Account) MaskedNumber() string {
	if len(a.AccountNumber) <= 4 {
		return a.AccountNumber
	}
	return strings.Repeat("*", len(a.AccountNumber)-4) + a.AccountNumber[len(a.AccountNumber)-4:]
}
