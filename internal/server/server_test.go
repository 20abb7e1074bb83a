package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylasweb/IOC-Spinwheel/internal/catalog"
	"github.com/kylasweb/IOC-Spinwheel/internal/claim"
	"github.com/kylasweb/IOC-Spinwheel/internal/concurrency"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/memory"
	"github.com/kylasweb/IOC-Spinwheel/internal/ledger"
	"github.com/kylasweb/IOC-Spinwheel/internal/message"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
	"github.com/kylasweb/IOC-Spinwheel/internal/session"
)

const testAPIKey = "test-admin-key"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := catalog.NewStore(catalog.DefaultSeed(), nil)
	require.NoError(t, err)

	repo := memory.NewPlayerRepository()
	codes := claim.NewCodeGenerator(memory.NewCodeRegistry())
	locks := concurrency.NewLockManager()
	led := ledger.NewService(repo, store, codes, locks, nil)

	manager := session.NewManager(session.Dependencies{
		Ledger:       led,
		Claims:       claim.NewService(repo, codes, locks, nil),
		Catalog:      store,
		Messages:     message.NewSafe(nil, time.Second),
		SpinDelay:    10 * time.Millisecond,
		ScratchDelay: 10 * time.Millisecond,
	}, time.Hour, nil)
	t.Cleanup(func() { manager.Shutdown(context.Background()) })

	return NewServer(Options{
		Port:        0,
		AdminAPIKey: testAPIKey,
		Sessions:    manager,
		Players:     led,
		Catalog:     store,
		RNG:         prize.NewSeededRNG(7),
	}).Handler()
}

func serve(h http.Handler, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicEndpoints(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics", "/api/v1/prizes", "/api/v1/rewards"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(h, http.MethodGet, path, "", "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_AdminRequiresKey(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, http.MethodGet, "/api/v1/admin/config", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/admin/config", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/admin/config", "", testAPIKey)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"odds_sum":100`)
}

func TestRouter_KioskFlowIsPublic(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, http.MethodPost, "/api/v1/session", `{"mobile":"9876543210"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"state":"DASHBOARD"`)
}

func TestRouter_SessionAdminBranchRequiresKey(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, http.MethodPost, "/api/v1/session", `{"mobile":"9876543210"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := extractSessionID(t, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/v1/session/"+id+"/admin", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodPost, "/api/v1/session/"+id+"/admin", "", testAPIKey)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"ADMIN"`)
}

func TestRouter_RequestSizeLimit(t *testing.T) {
	h := newTestServer(t)
	huge := `{"mobile":"` + strings.Repeat("9", DefaultMaxRequestBody) + `"}`

	rec := serve(h, http.MethodPost, "/api/v1/session", huge, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func extractSessionID(t *testing.T, body string) string {
	t.Helper()
	const key = `"session_id":"`
	i := strings.Index(body, key)
	require.GreaterOrEqual(t, i, 0, body)
	rest := body[i+len(key):]
	return rest[:strings.Index(rest, `"`)]
}
