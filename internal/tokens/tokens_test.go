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

package tokens_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdiomande/bankview/internal/apierror"
	"github.com/kdiomande/bankview/internal/tokens"
)

func makeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("signature"))
}

func TestDecode(t *testing.T) {
	issued := time.Now().Add(-time.Minute)
	expiry := time.Now().Add(time.Hour)

	token := makeToken(t, map[string]interface{}{
		"sub":   "user@bank.test",
		"roles": []string{"ROLE_USER", "ROLE_ADMIN"},
		"iat":   issued.Unix(),
		"exp":   expiry.Unix(),
	})

	claims, err := tokens.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user@bank.test", claims.Subject)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, claims.Roles)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiry.Unix(), claims.ExpiresAt.Unix())
	assert.True(t, claims.HasRole("ROLE_ADMIN"))
	assert.False(t, claims.HasRole("ROLE_AUDITOR"))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"payload not base64", "eyJhbGciOiJIUzI1NiJ9.%%%.sig"},
		{"payload not json", "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Decode(tt.token)
			assert.Error(t, err)
			assert.True(t, apierror.HasCode(err, apierror.ErrDecode))
		})
	}
}

func TestDecodeMissingClaims(t *testing.T) {
	missingExp := makeToken(t, map[string]interface{}{"sub": "user@bank.test"})
	_, err := tokens.Decode(missingExp)
	assert.True(t, apierror.HasCode(err, apierror.ErrDecode))

	missingSub := makeToken(t, map[string]interface{}{"exp": time.Now().Add(time.Hour).Unix()})
	_, err = tokens.Decode(missingSub)
	assert.True(t, apierror.HasCode(err, apierror.ErrDecode))
}

func TestUsableAppliesGraceWindow(t *testing.T) {
	now := time.Now()

	fresh := &tokens.Claims{ExpiresAt: now.Add(tokens.GraceWindow + time.Minute)}
	assert.True(t, fresh.Usable(now))

	// Inside the grace window: not yet expired, but already unusable.
	closing := &tokens.Claims{ExpiresAt: now.Add(tokens.GraceWindow - time.Second)}
	assert.False(t, closing.Usable(now))

	expired := &tokens.Claims{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Usable(now))
}
