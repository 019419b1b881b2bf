package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-builder/internal/catalog"
	"github.com/pkordes/trip-builder/internal/domain"
	"github.com/pkordes/trip-builder/internal/handler"
	"github.com/pkordes/trip-builder/internal/service"
)

// The handlers are exercised against a real in-memory store; only the
// publisher and the saved-trip repository are doubled.

// mockPublisher is a test double for service.Publisher.
// Unset fields succeed.
type mockPublisher struct {
	publish   func(ctx context.Context, trip domain.Trip) error
	saveDraft func(ctx context.Context, trip domain.Trip) error
}

func (m *mockPublisher) Publish(ctx context.Context, t domain.Trip) error {
	if m.publish == nil {
		return nil
	}
	return m.publish(ctx, t)
}
func (m *mockPublisher) SaveDraft(ctx context.Context, t domain.Trip) error {
	if m.saveDraft == nil {
		return nil
	}
	return m.saveDraft(ctx, t)
}

// mockSavedTrips is a test double for handler.SavedTrips.
// Set only the method fields your test needs.
type mockSavedTrips struct {
	getByID func(ctx context.Context, id string) (domain.Trip, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockSavedTrips) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockSavedTrips) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockSavedTrips) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time checks: the production types must satisfy the handler's interfaces.
var (
	_ handler.TripBuilder   = (*service.TripBuilder)(nil)
	_ handler.RegionCatalog = (*catalog.Catalog)(nil)
	_ handler.SavedTrips    = (*service.SavedTripService)(nil)
	_ handler.SavedTrips    = (*mockSavedTrips)(nil)
)

var testStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	builder *service.TripBuilder
	http    http.Handler
}

func newTestEnv(t *testing.T, pub service.Publisher, opts ...handler.Option) testEnv {
	t.Helper()
	if pub == nil {
		pub = &mockPublisher{}
	}
	cat := catalog.Default()
	b := service.NewTripBuilder(cat, pub, service.Options{
		CreatorID: "user-123",
		Now:       func() time.Time { return testStart },
	})
	return testEnv{builder: b, http: handler.NewServer(b, cat, opts...).Handler()}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// do sends a request and returns the recorder.
func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, jsonBody(t, body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.http.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeInto[handler.ErrorResponse](t, rec).Error.Code
}
