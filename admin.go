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

	"github.com/pkg/errors"

	"github.com/kdiomande/bankview/internal/notification"
	"github.com/kdiomande/bankview/model"
)

// Admin listings follow the same fail-soft policy as the transfer listers:
// a remote failure degrades the view to empty, reported out-of-band through
// the notifier and LastListError, never as a returned error. Authorization
// is entirely server-side; these calls simply fail for non-admins.

// AdminUsers lists every user in the system.
func (s *Session) AdminUsers(ctx context.Context) []model.AdminUser {
	var users []model.AdminUser
	if err := s.client.Get(ctx, "/admin/users", &users); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrap(err, "failed to fetch users"))
		return []model.AdminUser{}
	}
	s.setListError(nil)
	return users
}

// AdminAccounts lists every account in the system.
func (s *Session) AdminAccounts(ctx context.Context) []model.Account {
	var accounts []model.Account
	if err := s.client.Get(ctx, "/admin/accounts", &accounts); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrap(err, "failed to fetch accounts"))
		return []model.Account{}
	}
	s.setListError(nil)
	return accounts
}

// AdminTransactions lists every transaction in the system.
func (s *Session) AdminTransactions(ctx context.Context) []model.Transaction {
	var transactions []model.Transaction
	if err := s.client.Get(ctx, "/admin/transactions", &transactions); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrap(err, "failed to fetch transactions"))
		return []model.Transaction{}
	}
	s.setListError(nil)
	return transactions
}

// AdminSystemStats returns the aggregate system counters, or the zero value
// when the fetch fails.
func (s *Session) AdminSystemStats(ctx context.Context) model.SystemStats {
	var stats model.SystemStats
	if err := s.client.Get(ctx, "/admin/system-stats", &stats); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrap(err, "failed to fetch system stats"))
		return model.SystemStats{}
	}
	s.setListError(nil)
	return stats
}

// AdminMonthlyStats returns the rolling 12-month transaction series.
func (s *Session) AdminMonthlyStats(ctx context.Context) []model.MonthlyStats {
	var stats []model.MonthlyStats
	if err := s.client.Get(ctx, "/admin/12-month-stats", &stats); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrap(err, "failed to fetch monthly stats"))
		return []model.MonthlyStats{}
	}
	s.setListError(nil)
	return stats
}

// AdminDailyStats returns the per-day transaction series.
func (s *Session) AdminDailyStats(ctx context.Context) []model.DailyStats {
	var stats []model.DailyStats
	if err := s.client.Get(ctx, "/admin/daily-stats", &stats); err != nil {
		s.setListError(err)
		notification.NotifyError(errors.Wrap(err, "failed to fetch daily stats"))
		return []model.DailyStats{}
	}
	s.setListError(nil)
	return stats
}
