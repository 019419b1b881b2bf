package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-builder/internal/middleware"
)

// decodingHandler decodes a title update the way the API handlers do and
// reports 413 when the body reader hits the cap.
var decodingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func titleBody(n int) string {
	return `{"title":"` + strings.Repeat("a", n) + `"}`
}

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		body          string
		contentLength int64 // -1 means streamed, 0 means len(body)
		wantStatus    int
		wantEnvelope  bool
	}{
		{name: "under the cap", body: titleBody(10), wantStatus: http.StatusOK},
		{name: "declared length over the cap", body: titleBody(100), wantStatus: http.StatusRequestEntityTooLarge, wantEnvelope: true},
		{name: "streamed body over the cap", body: titleBody(100), contentLength: -1, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "streamed body under the cap", body: titleBody(10), contentLength: -1, wantStatus: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.NewMaxBodySizeHandler(limit)(decodingHandler)

			req := httptest.NewRequest(http.MethodPut, "/trip/title", strings.NewReader(tc.body))
			if tc.contentLength != 0 {
				req.ContentLength = tc.contentLength
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantEnvelope {
				// Rejected before the handler ran, so the middleware wrote the body.
				assert.JSONEq(t,
					`{"error":{"code":"payload_too_large","message":"request body exceeds 64 bytes"}}`,
					rec.Body.String())
			}
		})
	}
}
