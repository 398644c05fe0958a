package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RDP08/agenda.capas/datastores"
	"github.com/RDP08/agenda.capas/router"
)

type panicking struct{}

func (panicking) RegisterPanic(api huma.API) {
	huma.Get(api, "/panic", func(context.Context, *struct{}) (*struct{}, error) {
		panic("panic argument")
	})
}

func setupRouter(t *testing.T, store datastores.ContactsStore, logs io.Writer) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	return NewRouter(
		&RouterOptions{EndpointsPrefix: "/api"},
		BuildInfo{Title: "Contacts", Version: "1.2.3", Revision: "abc", Created: "now"},
		store,
		logger,
		router.OptGroup("/debug", router.OptAutoRegister(panicking{})),
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ContactsEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	var logs bytes.Buffer
	h := setupRouter(t, NewStore(&StoreOptions{Datafile: path}, slog.New(slog.DiscardHandler)), &logs)

	rec := do(t, h, http.MethodPost, "/api/contacts", `{"firstName":"Juan","lastName":"Perez","phone":"809-123-4567"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = do(t, h, http.MethodPost, "/api/contacts", `{"firstName":"","lastName":"Perez","phone":"8091234567"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "firstName is required")

	rec = do(t, h, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "8091234567", listed[0]["phone"])
	assert.Len(t, listed[0]["id"], 22)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"firstName": "Juan"`)

	assert.Contains(t, logs.String(), `"msg":"contact created"`)
	assert.Contains(t, logs.String(), `"level":"WARN","msg":"error occurred"`)
}

func TestRouter_RequestIDIsKept(t *testing.T) {
	h := setupRouter(t, datastores.NewContactsInmem(), io.Discard)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}

func TestRouter_Metrics(t *testing.T) {
	h := setupRouter(t, datastores.NewContactsInmem(), io.Discard)

	require.Equal(t, http.StatusCreated,
		do(t, h, http.MethodPost, "/api/contacts", `{"firstName":"Juan","lastName":"Perez","phone":"8091234567"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/contacts", "").Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `build_info{goversion="`)
	assert.Contains(t, out, `title="Contacts",version="1.2.3",revision="abc",created="now"} 1`)
	assert.Contains(t, out, "contacts_created_total 1")
	assert.Contains(t, out, `http_requests_total{method="GET",path="/api/contacts",status="200"} 1`)
	assert.Contains(t, out, `http_requests_total{method="POST",path="/api/contacts",status="201"} 1`)
	assert.Contains(t, out, `contacts_store_errors_total{op="load"} 0`)
}

func TestRouter_Readiness(t *testing.T) {
	dir := t.TempDir()
	h := setupRouter(t, NewStore(&StoreOptions{Datafile: dir}, slog.New(slog.DiscardHandler)), io.Discard)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/liveness", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/readiness", "").Code,
		"a directory cannot be loaded as the contacts document")

	h = setupRouter(t, NewStore(&StoreOptions{Datafile: filepath.Join(dir, "contacts.json")}, slog.New(slog.DiscardHandler)), io.Discard)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readiness", "").Code)
}

func TestRouter_StoreErrorIsGeneric(t *testing.T) {
	var logs bytes.Buffer
	h := setupRouter(t, NewStore(&StoreOptions{Datafile: t.TempDir()}, slog.New(slog.DiscardHandler)), &logs)

	rec := do(t, h, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"internal server error"`)
	assert.NotContains(t, rec.Body.String(), "datastores")

	assert.Contains(t, logs.String(), `"level":"ERROR","msg":"error occurred"`)
	assert.Contains(t, logs.String(), "datastores: load contacts")
}

func TestRouter_RecoversPanics(t *testing.T) {
	var logs bytes.Buffer
	h := setupRouter(t, datastores.NewContactsInmem(), &logs)

	rec := do(t, h, http.MethodGet, "/debug/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), `"level":"ERROR","msg":"panic occurred"`)
	assert.Contains(t, logs.String(), `"recovered":"panic argument"`)
}

func TestNewStore(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	assert.IsType(t, &datastores.ContactsInmem{}, NewStore(&StoreOptions{Datafile: InMemory}, logger))

	file, ok := NewStore(&StoreOptions{Datafile: "x.json"}, logger).(*datastores.ContactsFile)
	require.True(t, ok)
	assert.Equal(t, "x.json", file.Path)
}

func TestNewServer(t *testing.T) {
	srv := NewServer(&ServerOptions{Host: "127.0.0.1", Port: "0"}, http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.NotNil(t, srv.ErrorLog)
}
