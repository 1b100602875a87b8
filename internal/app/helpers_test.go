package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smarthire_backend/internal/config"
	"smarthire_backend/internal/email"
	"smarthire_backend/internal/repositories/memory"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// TestServer - приложение на in-memory хранилище за httptest.Server
type TestServer struct {
	Server *httptest.Server
	App    *App
	Store  *memory.Store
	Mail   *email.MockProvider
	Clock  *testClock
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-secret"
	cfg.Admin.Email = "admin@smarthire.test"
	cfg.Admin.Password = "admin123"

	store := memory.New()
	mail := email.NewMockProvider()
	clock := &testClock{t: time.Now().UTC()}

	a, err := build(cfg, store, mail, clock.Now)
	require.NoError(t, err)
	require.NoError(t, a.seedFirstAdmin(context.Background()))

	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close()
	})

	return &TestServer{Server: srv, App: a, Store: store, Mail: mail, Clock: clock}
}

// envelope - общий формат ответов API
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// SendRequest отправляет запрос и возвращает статус и разобранный конверт
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return res.StatusCode, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), "data: %s", env.Data)
	return v
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Role     string `json:"role"`
		IsActive bool   `json:"isActive"`
	} `json:"user"`
}

type jobData struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Status     string     `json:"status"`
	Employer   string     `json:"employer"`
	ApprovedBy *string    `json:"approvedBy"`
	ApprovedAt *time.Time `json:"approvedAt"`
	IsActive   bool       `json:"isActive"`
}

func (ts *TestServer) register(t *testing.T, name, role, company string) authData {
	t.Helper()
	body := map[string]interface{}{
		"name":     name,
		"email":    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		"password": "secret123",
		"role":     role,
	}
	if company != "" {
		body["companyName"] = company
	}
	status, env := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	return decodeData[authData](t, env)
}

func (ts *TestServer) login(t *testing.T, emailAddr, password string) (int, envelope) {
	t.Helper()
	return ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    emailAddr,
		"password": password,
	})
}

func (ts *TestServer) adminToken(t *testing.T) string {
	t.Helper()
	status, env := ts.login(t, "admin@smarthire.test", "admin123")
	require.Equal(t, http.StatusOK, status, env.Message)
	return decodeData[authData](t, env).Token
}

func (ts *TestServer) jobBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":           title,
		"description":     strings.Repeat("We are hiring a backend engineer. ", 3),
		"companyName":     "Acme",
		"location":        map[string]interface{}{"city": "Kathmandu", "country": "Nepal", "remote": false},
		"jobType":         "full-time",
		"experienceLevel": "mid",
		"salary":          map[string]interface{}{"min": 1000, "max": 2000, "currency": "USD"},
		"skillsRequired":  []string{"go", "sql"},
		"expiryDate":      ts.Clock.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
	}
}

func (ts *TestServer) createJob(t *testing.T, token, title string) jobData {
	t.Helper()
	status, env := ts.SendRequest(t, http.MethodPost, "/api/jobs", token, ts.jobBody(title))
	require.Equal(t, http.StatusCreated, status, env.Message)
	return decodeData[jobData](t, env)
}

func (ts *TestServer) moderate(t *testing.T, adminToken, jobID, status string) (int, envelope) {
	t.Helper()
	return ts.SendRequest(t, http.MethodPatch, "/api/admin/jobs/"+jobID+"/status", adminToken, map[string]string{"status": status})
}
