package logging

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitAndLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.json")
	if err := Init(Config{Level: "warn", Format: "json", OutputPath: out}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at warn level")
	}
	SetLevel("debug")
	if !L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled after SetLevel")
	}
	SetLevel("not-a-level")
	if !L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("invalid level must not change the current level")
	}
}

func TestMiddlewareRequestID(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request id")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc" {
		t.Errorf("request id = %q, want abc", got)
	}
}
