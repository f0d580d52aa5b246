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

package request_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdiomande/bankview/internal/apierror"
	"github.com/kdiomande/bankview/internal/request"
	"github.com/kdiomande/bankview/internal/store"
	"github.com/kdiomande/bankview/internal/tokens"
)

const baseURL = "http://bank.test/api"

func makeToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(map[string]interface{}{
		"sub":   "user@bank.test",
		"roles": []string{"ROLE_USER"},
		"iat":   time.Now().Unix(),
		"exp":   expiry.Unix(),
	})
	require.NoError(t, err)

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("signature"))
}

func newTestClient(t *testing.T, timeout time.Duration) (*request.Client, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "bankview.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return request.New(baseURL, timeout, st), st
}

func TestAttachesBearerToken(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, st := newTestClient(t, 5*time.Second)
	token := makeToken(t, time.Now().Add(time.Hour))
	require.NoError(t, st.Put(store.KeyToken, token))

	var gotAuth, gotRequestID string
	httpmock.RegisterResponder("GET", baseURL+"/accounts/owned",
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			gotRequestID = req.Header.Get("X-Request-Id")
			return httpmock.NewStringResponse(200, `[{"id":1,"accountNumber":"FR1","balance":100,"currency":"EUR"}]`), nil
		})

	var out []map[string]interface{}
	err := client.Get(context.Background(), "/accounts/owned", &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Len(t, out, 1)
}

func TestNoTokenNoHeader(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, _ := newTestClient(t, 5*time.Second)

	var gotAuth string
	httpmock.RegisterResponder("POST", baseURL+"/auth/login",
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			return httpmock.NewStringResponse(200, `{"token":"abc"}`), nil
		})

	var out map[string]string
	err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, &out)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "abc", out["token"])
}

func TestExpiredTokenShortCircuits(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, st := newTestClient(t, 5*time.Second)

	// Not yet past its real expiry, but inside the grace window.
	token := makeToken(t, time.Now().Add(tokens.GraceWindow-time.Minute))
	require.NoError(t, st.Put(store.KeyToken, token))
	require.NoError(t, st.Put(store.KeyUser, "{}"))

	var redirectedTo string
	client.OnSessionExpired(func(loginRoute string) { redirectedTo = loginRoute })
	client.SetCurrentPath("/user/dashboard/FR1")

	err := client.Get(context.Background(), "/accounts/owned", nil)
	assert.True(t, apierror.HasCode(err, apierror.ErrSessionExpired))

	// The call never reached the network.
	assert.Zero(t, httpmock.GetTotalCallCount())

	// Credentials are cleared and the redirect carries the return-to path.
	_, found, _ := st.Get(store.KeyToken)
	assert.False(t, found)
	_, found, _ = st.Get(store.KeyUser)
	assert.False(t, found)
	assert.Equal(t, "/login?redirect=%2Fuser%2Fdashboard%2FFR1", redirectedTo)
}

func TestMalformedTokenTreatedAsExpired(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, st := newTestClient(t, 5*time.Second)
	require.NoError(t, st.Put(store.KeyToken, "not-a-jwt"))

	var redirected bool
	client.OnSessionExpired(func(string) { redirected = true })

	err := client.Get(context.Background(), "/accounts/owned", nil)
	assert.True(t, apierror.HasCode(err, apierror.ErrSessionExpired))
	assert.Zero(t, httpmock.GetTotalCallCount())
	assert.True(t, redirected)

	_, found, _ := st.Get(store.KeyToken)
	assert.False(t, found)
}

func TestRemoteErrorCarriesServerMessage(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, _ := newTestClient(t, 5*time.Second)

	httpmock.RegisterResponder("POST", baseURL+"/auth/register",
		httpmock.NewStringResponder(400, `{"message":"Email already in use","errors":{"email":"Email already in use"}}`))

	err := client.Post(context.Background(), "/auth/register", map[string]string{}, nil)
	remote, ok := apierror.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 400, remote.Status)
	assert.Equal(t, "Email already in use", remote.Message)
	assert.Equal(t, "Email already in use", remote.Fields["email"])
}

func TestRemoteErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, _ := newTestClient(t, 5*time.Second)

	httpmock.RegisterResponder("GET", baseURL+"/accounts/owned",
		httpmock.NewStringResponder(500, ""))

	err := client.Get(context.Background(), "/accounts/owned", nil)
	remote, ok := apierror.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 500, remote.Status)
	assert.Equal(t, "Internal Server Error", remote.Message)
}

func TestTransportFailureIsRemoteError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	client, _ := newTestClient(t, 5*time.Second)

	httpmock.RegisterResponder("GET", baseURL+"/accounts/owned",
		httpmock.NewErrorResponder(assert.AnError))

	err := client.Get(context.Background(), "/accounts/owned", nil)
	remote, ok := apierror.AsRemote(err)
	require.True(t, ok)
	assert.Zero(t, remote.Status)
}
