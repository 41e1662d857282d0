package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neardeal/neardeal-backend/pkg/logger"
)

func TestLoggingRecordsStatusAndBytes(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/stores", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected recorder to pass through status, got %d", rec.Code)
	}

	var complete map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if entry["message"] == "request.complete" {
			complete = entry
		}
	}
	if complete == nil {
		t.Fatal("expected a request.complete entry")
	}
	if got, ok := complete["status"].(float64); !ok || int(got) != http.StatusTeapot {
		t.Fatalf("expected logged status 418, got %v", complete["status"])
	}
	if got, ok := complete["bytes"].(float64); !ok || int(got) != len("short and stout") {
		t.Fatalf("expected logged byte count, got %v", complete["bytes"])
	}
}

func TestLoggingDefaultsStatusToOK(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("expected implicit 200 in log output, got %s", buf.String())
	}
}
