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

package request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kdiomande/bankview/internal/apierror"
	"github.com/kdiomande/bankview/internal/store"
	"github.com/kdiomande/bankview/internal/tokens"
)

// RedirectFunc is invoked when the client detects an unusable credential.
// It receives the login route, including a redirect parameter pointing back
// at the path the user was on.
type RedirectFunc func(loginRoute string)

// Client is the single chokepoint for outbound API calls. Before every send
// it checks the stored credential: a token that fails to decode, or whose
// expiry minus the grace window has passed, short-circuits the call, clears
// the stored credentials and triggers the redirect hook. Valid tokens are
// attached as a bearer Authorization header.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *store.Store
	onExpired  RedirectFunc

	mu          sync.Mutex
	currentPath string
}

// New builds a client for the given API base URL with a fixed timeout
// applied to every call. A timeout surfaces as a RemoteError like any other
// transport failure.
func New(baseURL string, timeout time.Duration, st *store.Store) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		store:      st,
	}
}

// OnSessionExpired registers the navigation-to-login side effect.
func (c *Client) OnSessionExpired(fn RedirectFunc) {
	c.onExpired = fn
}

// SetCurrentPath records the route the user is on, carried as the return-to
// parameter when an expired session forces a redirect to login.
func (c *Client) SetCurrentPath(path string) {
	c.mu.Lock()
	c.currentPath = path
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) Put(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) Patch(ctx context.Context, path string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, payload, out)
}

// do runs one outbound call. The credential check happens exactly once,
// before the request is built, so a locally-expired session never reaches
// the network.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	token, err := c.usableToken()
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		buf, err := ToJsonReq(payload)
		if err != nil {
			return apierror.RemoteError{Message: err.Error()}
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apierror.RemoteError{Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierror.RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.RemoteError{Status: resp.StatusCode, Message: err.Error()}
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.RemoteError{Status: resp.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	return nil
}

// usableToken loads the stored credential and enforces the expiry contract.
// An absent token is fine; only login, register and logout go out without
// one, and the backend rejects the rest.
func (c *Client) usableToken() (string, error) {
	token, found, err := c.store.Get(store.KeyToken)
	if err != nil {
		logrus.WithError(err).Warn("could not read stored credential")
		return "", nil
	}
	if !found {
		return "", nil
	}

	claims, err := tokens.Decode(token)
	if err == nil && claims.Usable(time.Now()) {
		return token, nil
	}

	if clearErr := c.store.ClearCredentials(); clearErr != nil {
		logrus.WithError(clearErr).Warn("could not clear expired credentials")
	}
	c.redirectToLogin()
	return "", apierror.NewAPIError(apierror.ErrSessionExpired, "session expired, log in again", err)
}

func (c *Client) redirectToLogin() {
	if c.onExpired == nil {
		return
	}

	c.mu.Lock()
	path := c.currentPath
	c.mu.Unlock()

	route := "/login"
	if path != "" && path != "/login" {
		route += "?redirect=" + url.QueryEscape(path)
	}
	c.onExpired(route)
}

func remoteError(resp *http.Response) error {
	remote := apierror.RemoteError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		return remote
	}

	var serverErr struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &serverErr); err == nil {
		if serverErr.Message != "" {
			remote.Message = serverErr.Message
		}
		remote.Fields = serverErr.Errors
	}
	return remote
}
