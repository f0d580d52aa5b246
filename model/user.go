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

import "encoding/json"

const (
	// RoleAdmin marks users allowed into the admin views. Role names mirror
	// the claim values issued by the backend.
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// User is the session identity: the profile record returned by /users/me
// merged with the role claims carried in the bearer token.
type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Roles       []string `json:"roles"`
}

// HasRole reports whether the user carries the given role claim.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// FullName joins the first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) ToJSON() ([]byte, error) {
	return json.Marshal(u)
}
