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

// Package bankview is the session and account-state orchestrator for the
// banking dashboard client. A Session owns the authenticated user, the set
// of owned accounts and the selected-account pointer, and reconciles that
// in-memory state with the backend after every operation. It is an explicit,
// injected object with a defined lifecycle, never ambient global state.
package bankview

import (
	"sync"

	"github.com/kdiomande/bankview/internal/request"
	"github.com/kdiomande/bankview/internal/store"
	"github.com/kdiomande/bankview/model"
)

// Routes the orchestrator navigates to. The presentation layer decides what
// a route means; the orchestrator only announces transitions.
const (
	RouteLogin            = "/login"
	RouteAdminDashboard   = "/admin/dashboard"
	RouteCreateAccount    = "/user/create-account"
	RouteAccountSelection = "/user/account-selection"
)

// RouteDashboard is the account view route for the given account number.
func RouteDashboard(accountNumber string) string {
	return "/user/dashboard/" + accountNumber
}

// NavigateFunc receives route transitions triggered by session operations.
type NavigateFunc func(route string)

// Session orchestrates the client session: token lifecycle through the
// durable store, the owned-accounts collection and the selected-account
// pointer. Each operation applies its state change fully or not at all;
// two concurrent operations touching the same account are not coordinated
// beyond that, and the next FetchAccounts reconciles any drift against the
// server, which stays the source of truth.
type Session struct {
	client *request.Client
	store  *store.Store

	mu          sync.Mutex
	user        *model.User
	accounts    []model.Account
	selected    *model.Account
	loading     bool
	lastListErr error

	navigate NavigateFunc
}

// NewSession builds a session over the given transport client and durable
// store. The session starts unauthenticated; call Restore to rehydrate a
// previous session from the store.
func NewSession(client *request.Client, st *store.Store) *Session {
	return &Session{client: client, store: st}
}

// OnNavigate registers the navigation side effect consumed by the
// presentation layer. Without one, transitions are silently dropped.
func (s *Session) OnNavigate(fn NavigateFunc) {
	s.navigate = fn
}

// User returns a copy of the session user, or nil when unauthenticated.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Accounts returns a copy of the owned-accounts collection as last fetched.
func (s *Session) Accounts() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// SelectedAccount returns the account currently in focus, if any.
func (s *Session) SelectedAccount() (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.Account{}, false
	}
	return *s.selected, true
}

// IsAuthenticated reports whether a user is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// IsAdmin reports whether the session user carries the admin role.
func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsAdmin()
}

// IsLoading reports whether an operation is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastListError exposes the most recent failure swallowed by a fail-soft
// listing operation. The listers themselves return an empty result on
// failure; this sentinel lets a surface distinguish "empty" from "failed".
func (s *Session) LastListError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastListErr
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) setListError(err error) {
	s.mu.Lock()
	s.lastListErr = err
	s.mu.Unlock()
}

// goTo announces a route transition and records it as the current path for
// the transport's return-to parameter.
func (s *Session) goTo(route string) {
	s.client.SetCurrentPath(route)
	if s.navigate != nil {
		s.navigate(route)
	}
}
