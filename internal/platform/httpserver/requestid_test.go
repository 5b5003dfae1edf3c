package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "trace-abc-123")
	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, req)

	if got != "trace-abc-123" {
		t.Fatalf("expected incoming id in context, got %q", got)
	}
	if rr.Header().Get(HeaderRequestID) != "trace-abc-123" {
		t.Fatalf("expected incoming id echoed, got %q", rr.Header().Get(HeaderRequestID))
	}
}

func TestRequestID_MintsWhenAbsentOrOversized(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for name, header := range map[string]string{
		"absent":    "",
		"oversized": strings.Repeat("x", 65),
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(HeaderRequestID, header)
		}
		rr := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rr, req)

		rid := rr.Header().Get(HeaderRequestID)
		if rid == "" || rid == header {
			t.Fatalf("%s: expected a minted id, got %q", name, rid)
		}
	}
}
