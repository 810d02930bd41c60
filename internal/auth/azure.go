package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techspheredynamics/bc-mcp-server/internal/config"
)

// Scope granting access to the Business Central API.
const defaultScope = "https://api.businesscentral.dynamics.com/.default"

// Margin subtracted from expires_in so a token is never used right at its
// expiry boundary.
const expiryMargin = 60 * time.Second

// ErrNotConfigured is returned when a token is requested without Azure AD
// credentials. The adapter never asks in that case; this guards misuse.
var ErrNotConfigured = errors.New("azure ad credentials not configured")

// Manager acquires and caches an Azure AD access token via the
// client-credentials flow. The cached token is swapped under a mutex so
// concurrent invocations never observe a half-updated value.
type Manager struct {
	cfg    config.AzureAD
	scope  string
	client *http.Client
	log    *logrus.Entry

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewManager builds a token manager for the given credentials.
func NewManager(cfg config.AzureAD, log *logrus.Entry) *Manager {
	return &Manager{
		cfg:    cfg,
		scope:  defaultScope,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// Configured reports whether credential material is present.
func (m *Manager) Configured() bool {
	return m.cfg.Configured()
}

// Token returns a valid bearer token, fetching a fresh one when the cached
// token is absent or expired.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}

	m.mu.Lock()
	if m.token != "" && time.Now().Before(m.expires) {
		token := m.token
		m.mu.Unlock()
		return token, nil
	}
	m.mu.Unlock()

	return m.fetch(ctx)
}

// Invalidate drops the cached token. The Business Central client calls
// this on a 401 so the next attempt re-authenticates.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.expires = time.Time{}
	m.mu.Unlock()
}

func (m *Manager) fetch(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.cfg.ClientID},
		"client_secret": {m.cfg.ClientSecret},
		"scope":         {m.scope},
	}

	endpoint := strings.TrimSuffix(m.cfg.Authority, "/") + "/oauth2/v2.0/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	ttl := time.Duration(body.ExpiresIn) * time.Second
	if body.ExpiresIn == 0 {
		ttl = time.Hour
	}
	ttl -= expiryMargin

	m.mu.Lock()
	m.token = body.AccessToken
	m.expires = time.Now().Add(ttl)
	m.mu.Unlock()

	if m.log != nil {
		m.log.Debugf("acquired azure ad token, valid for %s", ttl)
	}
	return body.AccessToken, nil
}
