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

// Package tokens reads claims out of a bearer token without verifying its
// signature. The backend is the sole verifier; the client only needs the
// claims for routing, role display and the proactive expiry check, so a
// decode failure simply means the session is unusable.
package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kdiomande/bankview/internal/apierror"
)

// GraceWindow is the lead time before the real expiry at which a credential
// is already treated as expired, so calls are not sent with a token about to
// lapse in flight.
const GraceWindow = 300 * time.Second

// Claims are the decoded fields of a bearer credential.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Decode extracts the claims from a three-segment bearer token. It fails
// with a DECODE_ERROR when the token is structurally malformed or when the
// subject or expiry claim is missing. No signature check is performed.
func Decode(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrDecode, "malformed bearer token", err.Error())
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.NewAPIError(apierror.ErrDecode, "unexpected claims payload", nil)
	}

	subject, err := mapClaims.GetSubject()
	if err != nil || subject == "" {
		return nil, apierror.NewAPIError(apierror.ErrDecode, "missing subject claim", nil)
	}

	expiry, err := mapClaims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil, apierror.NewAPIError(apierror.ErrDecode, "missing expiry claim", nil)
	}

	claims := &Claims{
		Subject:   subject,
		ExpiresAt: expiry.Time,
	}

	if issued, err := mapClaims.GetIssuedAt(); err == nil && issued != nil {
		claims.IssuedAt = issued.Time
	}

	if raw, found := mapClaims["roles"]; found {
		if roles, ok := raw.([]interface{}); ok {
			for _, role := range roles {
				if name, ok := role.(string); ok {
					claims.Roles = append(claims.Roles, name)
				}
			}
		}
	}

	return claims, nil
}

// Usable reports whether the credential is still good at the given instant,
// applying the grace window ahead of the real expiry.
func (c *Claims) Usable(now time.Time) bool {
	return now.Before(c.ExpiresAt.Add(-GraceWindow))
}

// HasRole reports whether the credential carries the given role claim.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
