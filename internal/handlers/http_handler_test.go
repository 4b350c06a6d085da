package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eddyzhang/jd-matcher/internal/models"
	"eddyzhang/jd-matcher/internal/services"
)

func newTestMux(agent services.Agent, maxBodySize int64) http.Handler {
	matcher := services.NewMatcherService(staticResume(""), agent)
	return NewHTTPMux(NewHTTPHandler(matcher, maxBodySize))
}

func doRaw(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHTTPHandlerSuccess(t *testing.T) {
	agent := &fakeAgent{reply: agentReply}
	h := newTestMux(agent, 1000000)

	rec, out := doRaw(t, h, http.MethodPost, "/", `{"jd": "Python backend developer, 3 years, AWS"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, 100.0, out["score"].(map[string]any)["overall"])
	assert.Equal(t, []any{map[string]any{"name": "Django", "reason": "web framework experience"}}, out["related"])
	assert.Equal(t, "Good backend overlap.", out["summary"])
	assert.Equal(t, 1, agent.calls)
}

func TestHTTPHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		agent      *fakeAgent
		wantStatus int
		wantErr    string
	}{
		{
			name: "invalid json", method: http.MethodPost, path: "/", body: "not json",
			agent: &fakeAgent{}, wantStatus: http.StatusBadRequest, wantErr: "Invalid JSON",
		},
		{
			name: "missing jd", method: http.MethodPost, path: "/", body: `{}`,
			agent: &fakeAgent{}, wantStatus: http.StatusBadRequest, wantErr: "jd is required",
		},
		{
			name: "whitespace jd", method: http.MethodPost, path: "/", body: `{"jd": "\n  "}`,
			agent: &fakeAgent{}, wantStatus: http.StatusBadRequest, wantErr: "jd is required",
		},
		{
			name: "wrong method", method: http.MethodGet, path: "/",
			agent: &fakeAgent{}, wantStatus: http.StatusMethodNotAllowed, wantErr: "Only POST is allowed",
		},
		{
			name: "body too large", method: http.MethodPost, path: "/", body: `{"jd": "` + strings.Repeat("x", 128) + `"}`,
			agent: &fakeAgent{}, wantStatus: http.StatusRequestEntityTooLarge, wantErr: "Payload too large",
		},
		{
			name: "agent failure", method: http.MethodPost, path: "/", body: `{"jd": "SRE"}`,
			agent: &fakeAgent{err: errors.New("deadline exceeded")}, wantStatus: http.StatusInternalServerError,
			wantErr: "failed to run matcher agent: deadline exceeded",
		},
		{
			name: "unknown path", method: http.MethodPost, path: "/match", body: `{"jd": "SRE"}`,
			agent: &fakeAgent{}, wantStatus: http.StatusNotFound, wantErr: "Cannot POST /match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestMux(tt.agent, 100)

			rec, out := doRaw(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.wantErr}, out)
			if tt.agent.err == nil {
				assert.Zero(t, tt.agent.calls)
			}
		})
	}
}

func TestHTTPMuxHealth(t *testing.T) {
	rec, out := doRaw(t, newTestMux(&fakeAgent{}, 100), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", out["status"])
}

type panickingMatcher struct{}

func (panickingMatcher) Match(context.Context, string) (*models.MatchResult, error) {
	panic("boom")
}

func TestHTTPMuxRecoversPanics(t *testing.T) {
	h := NewHTTPMux(NewHTTPHandler(panickingMatcher{}, 100))

	rec, out := doRaw(t, h, http.MethodPost, "/", `{"jd": "SRE"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", out["error"])
}
