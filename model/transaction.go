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
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Transaction is a transfer record as returned by the backend. Records are
// created server-side only; the client never constructs the authoritative
// entry. The timestamp is kept verbatim because the backend serializes it
// without a zone offset.
type Transaction struct {
	SenderAccountNumber   string          `json:"senderAccountNumber"`
	ReceiverAccountNumber string          `json:"receiverAccountNumber"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	Type                  string          `json:"type,omitempty"`
	Timestamp             string          `json:"timestamp"`
}

func (t *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}
