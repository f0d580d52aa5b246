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
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sirupsen/logrus"

	"github.com/kdiomande/bankview/internal/apierror"
	"github.com/kdiomande/bankview/internal/notification"
	"github.com/kdiomande/bankview/internal/store"
	"github.com/kdiomande/bankview/internal/tokens"
	"github.com/kdiomande/bankview/model"
)

// RegisterData is the payload for a new user registration.
type RegisterData struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Validate enforces the registration preconditions locally so obviously bad
// payloads never reach the network.
func (d RegisterData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Email, validation.Required, is.Email),
		validation.Field(&d.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&d.FirstName, validation.Required),
		validation.Field(&d.LastName, validation.Required),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the backend, merges the token's role claims
// with the fetched profile, persists both and moves the session to the
// matching view: admin dashboard for admins (no account fetch), otherwise
// account selection or creation depending on what the user owns. Any
// failure rolls the session back to its pre-call state.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var resp loginResponse
	if err := s.client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		if remote, ok := apierror.AsRemote(err); ok && (remote.Status == http.StatusUnauthorized || remote.Status == http.StatusForbidden) {
			return apierror.NewAPIError(apierror.ErrInvalidCredentials, "email or password incorrect", remote)
		}
		return apierror.NewAPIError(apierror.ErrLoginFailed, "login failed", err)
	}

	claims, err := tokens.Decode(resp.Token)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrLoginFailed, "server returned an unusable token", err)
	}

	// The profile fetch must go out authenticated, so the token lands in the
	// store before the full session does. Failure past this point clears it
	// again: login never leaves a partial session behind.
	if err := s.store.Put(store.KeyToken, resp.Token); err != nil {
		return apierror.NewAPIError(apierror.ErrLoginFailed, "could not persist credential", err)
	}

	var profile model.User
	if err := s.client.Get(ctx, "/users/me", &profile); err != nil {
		s.rollbackLogin()
		return apierror.NewAPIError(apierror.ErrLoginFailed, "could not fetch profile", err)
	}
	profile.Roles = mergeRoles(claims.Roles, profile.Roles)

	userJSON, err := profile.ToJSON()
	if err != nil {
		s.rollbackLogin()
		return apierror.NewAPIError(apierror.ErrLoginFailed, "could not serialize profile", err)
	}
	if err := s.store.PutAll(map[string]string{store.KeyToken: resp.Token, store.KeyUser: string(userJSON)}); err != nil {
		s.rollbackLogin()
		return apierror.NewAPIError(apierror.ErrLoginFailed, "could not persist session", err)
	}

	s.mu.Lock()
	s.user = &profile
	s.mu.Unlock()

	notification.Notify("logged in as " + profile.Email)

	// Admins have no personal accounts in this model; go straight to the
	// admin view without an account fetch.
	if profile.IsAdmin() {
		s.goTo(RouteAdminDashboard)
		return nil
	}

	accounts, err := s.FetchAccounts(ctx)
	if err != nil {
		s.rollbackLogin()
		return apierror.NewAPIError(apierror.ErrLoginFailed, "could not load accounts", err)
	}

	if len(accounts) == 0 {
		s.goTo(RouteCreateAccount)
	} else {
		s.goTo(RouteAccountSelection)
	}
	return nil
}

// rollbackLogin drops any partially persisted session so state is unchanged
// from before the login attempt.
func (s *Session) rollbackLogin() {
	if err := s.store.ClearCredentials(); err != nil {
		logrus.WithError(err).Warn("could not roll back credentials")
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// Register creates a new user. It performs no local session mutation:
// registration does not imply login, the caller logs in separately.
func (s *Session) Register(ctx context.Context, data RegisterData) error {
	if err := data.Validate(); err != nil {
		return apierror.NewAPIError(apierror.ErrRegistrationFailed, "invalid registration data", err.Error())
	}

	if err := s.client.Post(ctx, "/auth/register", data, nil); err != nil {
		message := "registration failed"
		var details interface{} = err
		if remote, ok := apierror.AsRemote(err); ok {
			if remote.Message != "" {
				message = remote.Message
			}
			if len(remote.Fields) > 0 {
				details = remote.Fields
			}
		}
		return apierror.NewAPIError(apierror.ErrRegistrationFailed, message, details)
	}

	notification.Notify("registration successful")
	return nil
}

// Logout ends the session. The remote logout call is best-effort: its
// failure is logged, never surfaced, and local state is cleared regardless.
// From the caller's perspective this operation cannot fail.
func (s *Session) Logout(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		logrus.WithError(err).Warn("remote logout failed, clearing local session anyway")
	}

	if err := s.store.Delete(store.KeyToken, store.KeyUser, store.KeySelectedAccount); err != nil {
		logrus.WithError(err).Warn("could not clear local store")
	}

	s.mu.Lock()
	s.user = nil
	s.accounts = nil
	s.selected = nil
	s.mu.Unlock()

	notification.Notify("logged out")
	s.goTo(RouteLogin)
}

// RefreshUser re-applies the cached user from the durable store to in-memory
// state. It is a local reconciliation step, not a server round-trip: if the
// cache is absent or unreadable the session is treated as invalid and
// credentials are cleared.
func (s *Session) RefreshUser() {
	raw, found, err := s.store.Get(store.KeyUser)
	if err != nil {
		logrus.WithError(err).Warn("could not read cached user")
		return
	}

	var cached model.User
	if !found || json.Unmarshal([]byte(raw), &cached) != nil {
		if err := s.store.ClearCredentials(); err != nil {
			logrus.WithError(err).Warn("could not clear credentials")
		}
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.user = &cached
	s.mu.Unlock()
}

// Restore rehydrates a previous session at startup: user and token are read
// back from the durable store, and for non-admin users the owned accounts
// are fetched so the selected-account pointer can be re-applied. A fetch
// failure leaves the session authenticated with no accounts loaded.
func (s *Session) Restore(ctx context.Context) {
	s.setLoading(true)

	_, hasToken, err := s.store.Get(store.KeyToken)
	if err != nil || !hasToken {
		s.setLoading(false)
		return
	}

	s.RefreshUser()

	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	s.setLoading(false)

	if user != nil && !user.IsAdmin() {
		if _, err := s.FetchAccounts(ctx); err != nil {
			logrus.WithError(err).Warn("could not restore accounts")
		}
	}
}

// mergeRoles unions the credential's role claims with the profile's roles,
// keeping first-seen order.
func mergeRoles(claimRoles, profileRoles []string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, roles := range [][]string{claimRoles, profileRoles} {
		for _, role := range roles {
			if _, dup := seen[role]; dup {
				continue
			}
			seen[role] = struct{}{}
			merged = append(merged, role)
		}
	}
	return merged
}
