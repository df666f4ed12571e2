package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/loader"
	"github.com/Zachkp/portfolio/internal/store"
)

var adminNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func testAdmin(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	history, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	cfg := config.Default()
	cfg.Admin = config.Admin{Username: "zach", Password: "secret"}
	cfg.RetentionDays = 30

	a := newAdmin(history, cfg)
	a.now = func() time.Time { return adminNow }

	r := gin.New()
	r.LoadHTMLGlob("templates/*.html")
	a.setupRoutes(r)
	return r, history
}

func login(t *testing.T, r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authed(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := login(t, r, "zach", "secret")
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdmin_LoginRejectsBadCredentials(t *testing.T) {
	r, _ := testAdmin(t)

	w := login(t, r, "zach", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAdmin_ProtectedRoutesRedirect(t *testing.T) {
	r, _ := testAdmin(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdmin_StatsAndLoads(t *testing.T) {
	r, history := testAdmin(t)
	ctx := context.Background()

	require.NoError(t, history.Record(ctx, loader.Result{ID: "a", StartedAt: adminNow.Add(-time.Hour), OK: true, Reason: loader.ReasonOK}))
	require.NoError(t, history.Record(ctx, loader.Result{
		ID: "b", StartedAt: adminNow.Add(-time.Minute), Reason: loader.ReasonParse,
		Document: "projects", Message: "load projects: invalid JSON",
	}))

	w := authed(t, r, http.MethodGet, "/admin/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalLoads)
	assert.Equal(t, int64(1), stats.FailedLoads)
	assert.Equal(t, int64(1), stats.FailuresByCause["parse"])

	w = authed(t, r, http.MethodGet, "/admin/api/loads?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	var loads []loader.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loads))
	require.Len(t, loads, 1)
	assert.Equal(t, "b", loads[0].ID)

	w = authed(t, r, http.MethodGet, "/admin/api/loads?limit=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = authed(t, r, http.MethodGet, "/admin/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON")

	w = authed(t, r, http.MethodGet, "/admin/export/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "load-stats.json")
}

func TestAdmin_Cleanup(t *testing.T) {
	r, history := testAdmin(t)
	ctx := context.Background()

	require.NoError(t, history.Record(ctx, loader.Result{ID: "old", StartedAt: adminNow.AddDate(0, 0, -60), OK: true, Reason: loader.ReasonOK}))
	require.NoError(t, history.Record(ctx, loader.Result{ID: "new", StartedAt: adminNow, OK: true, Reason: loader.ReasonOK}))

	w := authed(t, r, http.MethodPost, "/admin/cleanup")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed": 1}`, w.Body.String())

	recent, err := history.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].ID)
}

func TestAdmin_HashIPIsStableAndOpaque(t *testing.T) {
	a := &admin{salt: "pepper"}

	assert.Equal(t, a.hashIP("10.0.0.1"), a.hashIP("10.0.0.1"))
	assert.NotEqual(t, a.hashIP("10.0.0.1"), a.hashIP("10.0.0.2"))
	assert.Len(t, a.hashIP("10.0.0.1"), 16)
	assert.NotContains(t, a.hashIP("10.0.0.1"), "10.0.0.1")
}

func TestAdminAllowed(t *testing.T) {
	cfg := config.Default()

	assert.False(t, adminAllowed(cfg, gin.ReleaseMode), "no password outside debug mode")
	assert.False(t, adminAllowed(cfg, gin.TestMode))
	assert.True(t, adminAllowed(cfg, gin.DebugMode), "dev defaults in debug mode")

	cfg.Admin.Password = "secret"
	assert.True(t, adminAllowed(cfg, gin.ReleaseMode))
}
