package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type memoryIdempotencyStore struct {
	values map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memoryIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (m *memoryIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func newIdempotentRouter(store *memoryIdempotencyStore, calls *int) http.Handler {
	router := chi.NewRouter()
	router.Use(Idempotency(store, nil))
	router.Post("/api/v1/vehicles", func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"v-1"}}`))
	})
	router.Get("/api/v1/vehicles", func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
	return router
}

// Mirrors the production mounting: the middleware sits on a subrouter via
// Use, where chi has not resolved the route pattern yet, so guarding must
// key off the request path.
func TestIdempotencyGuardsRoutesOnNestedSubrouter(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(Idempotency(store, nil))
		r.Route("/vehicles", func(r chi.Router) {
			r.Post("/", func(w http.ResponseWriter, req *http.Request) {
				calls++
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"data":{"id":"v-9"}}`))
			})
			r.Route("/{vehicleID}", func(r chi.Router) {
				r.Post("/transition", func(w http.ResponseWriter, req *http.Request) {
					calls++
					w.WriteHeader(http.StatusOK)
				})
			})
		})
	})

	keyless := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, keyless)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", w.Code)
	}
	if calls != 0 {
		t.Fatalf("expected handler not to run, ran %d times", calls)
	}

	for i := 0; i < 2; i++ {
		transition := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/3f1c9a52-0a4f-4f0e-9a55-6f2e7f1c9a52/transition", strings.NewReader(`{"status":"IN_SERVICE"}`))
		transition.Header.Set("Idempotency-Key", "key-t1")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, transition)
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i, w.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("expected transition handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	body := `{"license_plate":"ABC1234"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d", i, w.Code)
		}
		if !strings.Contains(w.Body.String(), "v-1") {
			t.Fatalf("attempt %d: unexpected body %s", i, w.Body.String())
		}
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", strings.NewReader(`{"license_plate":"ABC1234"}`))
	first.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", strings.NewReader(`{"license_plate":"XYZ9876"}`))
	second.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, second)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyRequiresHeaderOnGuardedRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if calls != 0 {
		t.Fatalf("expected handler not to run, ran %d times", calls)
	}
}

func TestIdempotencySkipsUnguardedRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run, ran %d times", calls)
	}
}
