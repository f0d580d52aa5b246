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

import "github.com/shopspring/decimal"

// AdminUser is the user record served by the admin listing endpoints. It is
// wider than the session User and read-only from this client.
type AdminUser struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// SystemStats is the aggregate counters block from /admin/system-stats.
type SystemStats struct {
	TotalUsers              int64           `json:"totalUsers"`
	TotalAccounts           int64           `json:"totalAccounts"`
	TotalTransactions       int64           `json:"totalTransactions"`
	TotalTransactionsAmount decimal.Decimal `json:"totalTransactionsAmount"`
}

// MonthlyStats is one bucket of the rolling 12-month transaction series.
type MonthlyStats struct {
	Month            string          `json:"month"`
	TransactionCount int64           `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

// DailyStats is one bucket of the per-day transaction series.
type DailyStats struct {
	Date             string          `json:"date"`
	TransactionCount int64           `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}
