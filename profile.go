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
	"github.com/sirupsen/logrus"

	"github.com/kdiomande/bankview/internal/notification"
	"github.com/kdiomande/bankview/internal/store"
	"github.com/kdiomande/bankview/model"
)

// FetchProfile re-reads the user profile from the backend and applies it to
// the session and the durable cache.
func (s *Session) FetchProfile(ctx context.Context) (model.User, error) {
	var profile model.User
	if err := s.client.Get(ctx, "/users/me", &profile); err != nil {
		return model.User{}, errors.Wrap(err, "failed to fetch profile")
	}

	s.applyUser(profile)
	return profile, nil
}

// UpdateProfile pushes profile changes to the backend and applies the
// server's returned record locally.
func (s *Session) UpdateProfile(ctx context.Context, update model.User) (model.User, error) {
	var updated model.User
	if err := s.client.Put(ctx, "/users/me", update, &updated); err != nil {
		notification.NotifyError(errors.Wrap(err, "failed to update profile"))
		return model.User{}, err
	}

	s.applyUser(updated)
	notification.Notify("profile updated")
	return updated, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword swaps the account password. The session and credential are
// unaffected; the current token stays valid until its own expiry.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := s.client.Patch(ctx, "/users/me/password", payload, nil); err != nil {
		notification.NotifyError(errors.Wrap(err, "failed to change password"))
		return err
	}

	notification.Notify("password changed")
	return nil
}

// applyUser sets the in-memory user and refreshes the durable cached copy.
func (s *Session) applyUser(user model.User) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.mu.Unlock()

	if raw, err := user.ToJSON(); err == nil {
		if err := s.store.Put(store.KeyUser, string(raw)); err != nil {
			logrus.WithError(err).Warn("could not cache user profile")
		}
	}
}
