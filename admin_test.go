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
	"github.com/stretchr/testify/assert"
)

func TestAdminUsersListing(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/admin/users",
		httpmock.NewStringResponder(200, `[
			{"id":1,"email":"a@bank.test","firstName":"Awa","lastName":"Diomande","phoneNumber":"+33100000000","createdAt":"2024-05-01T08:00:00"},
			{"id":2,"email":"b@bank.test","firstName":"Brice","lastName":"Kone"}
		]`))

	users := session.AdminUsers(context.Background())
	assert.Len(t, users, 2)
	assert.Equal(t, "a@bank.test", users[0].Email)
	assert.NoError(t, session.LastListError())
}

func TestAdminListingsFailSoft(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	for _, path := range []string{
		"/admin/users", "/admin/accounts", "/admin/transactions",
		"/admin/system-stats", "/admin/12-month-stats", "/admin/daily-stats",
	} {
		httpmock.RegisterResponder("GET", baseURL+path,
			httpmock.NewStringResponder(403, `{"message":"Access denied"}`))
	}

	assert.Empty(t, session.AdminUsers(context.Background()))
	assert.Empty(t, session.AdminAccounts(context.Background()))
	assert.Empty(t, session.AdminTransactions(context.Background()))
	assert.Empty(t, session.AdminMonthlyStats(context.Background()))
	assert.Empty(t, session.AdminDailyStats(context.Background()))

	stats := session.AdminSystemStats(context.Background())
	assert.Zero(t, stats.TotalUsers)
	assert.True(t, stats.TotalTransactionsAmount.IsZero())

	assert.Error(t, session.LastListError())
}

func TestAdminSystemStats(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/admin/system-stats",
		httpmock.NewStringResponder(200, `{"totalUsers":12,"totalAccounts":30,"totalTransactions":420,"totalTransactionsAmount":98765.43}`))

	stats := session.AdminSystemStats(context.Background())
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(30), stats.TotalAccounts)
	assert.Equal(t, int64(420), stats.TotalTransactions)
	assert.Equal(t, "98765.43", stats.TotalTransactionsAmount.String())
	assert.NoError(t, session.LastListError())
}

func TestAdminMonthlyStatsSeries(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	session, _, _ := newTestSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/admin/12-month-stats",
		httpmock.NewStringResponder(200, `[
			{"month":"2025-07","transactionCount":10,"totalAmount":1500},
			{"month":"2025-08","transactionCount":3,"totalAmount":99.90}
		]`))

	series := session.AdminMonthlyStats(context.Background())
	assert.Len(t, series, 2)
	assert.Equal(t, "2025-08", series[1].Month)
	assert.Equal(t, "99.9", series[1].TotalAmount.String())
}
