package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubTokens struct {
	mu    sync.Mutex
	token string
}

func (s *stubTokens) GetToken(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *stubTokens) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

type stubSessions struct {
	mu      sync.Mutex
	cleared int
	tokens  *stubTokens
}

func (s *stubSessions) ClearSession(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	if s.tokens != nil {
		s.tokens.clear()
	}
	return nil
}

type stubNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *stubNavigator) Navigate(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

type fixture struct {
	tokens   *stubTokens
	sessions *stubSessions
	nav      *stubNavigator
}

func newFixture(token string) *fixture {
	tokens := &stubTokens{token: token}
	return &fixture{
		tokens:   tokens,
		sessions: &stubSessions{tokens: tokens},
		nav:      &stubNavigator{},
	}
}

func (f *fixture) client(t *testing.T, baseURL string) *Client {
	t.Helper()
	log := zerolog.Nop()
	c, err := New(baseURL, nil,
		WithRequestID(),
		WithCredentials(f.tokens),
		ExpireSessionOnUnauthorized(f.sessions, f.nav, "/login", log),
		WithLogging(log),
		WithMetrics(),
		TranslateTransportErrors(baseURL),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew_RejectsRelativeBase(t *testing.T) {
	if _, err := New("/api", nil); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

func TestClient_URL_JoinsAndEscapes(t *testing.T) {
	c, err := New("http://localhost:5000/api", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := c.URL("doctors", "hospital", "City General")
	want := "http://localhost:5000/api/doctors/hospital/City%20General"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

func TestClient_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		if r.Header.Get(HeaderRequestID) == "" {
			t.Errorf("missing %s", HeaderRequestID)
		}
		if r.URL.Path != "/api/patients" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"name":"A"},{"name":"B"}]`))
	}))
	defer srv.Close()

	f := newFixture("tok-1")
	var out []map[string]any
	if err := f.client(t, srv.URL+"/api").Get(context.Background(), &out, "patients"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
}

func TestClient_NoTokenSendsUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("Authorization header should be absent, got %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	f := newFixture("")
	if err := f.client(t, srv.URL).Get(context.Background(), nil, "medicines"); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestClient_PostEncodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"_id": "m1", "name": body["name"]})
	}))
	defer srv.Close()

	f := newFixture("tok")
	var out map[string]string
	if err := f.client(t, srv.URL).Post(context.Background(), map[string]string{"name": "Paracetamol"}, &out, "medicines"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if out["_id"] != "m1" || out["name"] != "Paracetamol" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

// ---------------------------------------------------------------------------
// 401
// ---------------------------------------------------------------------------

func TestClient_UnauthorizedClearsSessionAndNavigatesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
	}))
	defer srv.Close()

	f := newFixture("stale")
	err := f.client(t, srv.URL).Get(context.Background(), nil, "patients")

	var ae *AuthExpiredError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AuthExpiredError, got %T %v", err, err)
	}
	if ae.Location != "/login" {
		t.Fatalf("expected location /login, got %q", ae.Location)
	}
	if f.sessions.cleared != 1 {
		t.Fatalf("expected session cleared once, got %d", f.sessions.cleared)
	}
	if len(f.nav.paths) != 1 || f.nav.paths[0] != "/login" {
		t.Fatalf("expected exactly one navigation to /login, got %v", f.nav.paths)
	}
	if _, ok := f.tokens.GetToken(context.Background()); ok {
		t.Fatalf("token should be gone")
	}
}

func TestClient_ConcurrentUnauthorizedAreIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := newFixture("stale")
	c := f.client(t, srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Get(context.Background(), nil, "patients")
		}()
	}
	wg.Wait()

	if f.sessions.cleared != 2 || len(f.nav.paths) != 2 {
		t.Fatalf("expected one clear+navigation per response, got %d clears, %d navigations",
			f.sessions.cleared, len(f.nav.paths))
	}
}

// ---------------------------------------------------------------------------
// Transport failures
// ---------------------------------------------------------------------------

func TestClient_TransportFailureNamesBaseAddress(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	f := newFixture("tok")
	err := f.client(t, base).Get(context.Background(), nil, "doctors")

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T %v", err, err)
	}
	if !strings.Contains(te.Error(), base) {
		t.Fatalf("message %q should name %s", te.Error(), base)
	}
	if te.Code() != CodeNetwork {
		t.Fatalf("expected code %s, got %s", CodeNetwork, te.Code())
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("original *net.OpError should stay reachable, got %v", te.Err)
	}
	if f.sessions.cleared != 0 || len(f.nav.paths) != 0 {
		t.Fatalf("transport failure must not touch the session")
	}
}

func TestTranslateTransportErrors_PassesCancellation(t *testing.T) {
	base := RoundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, context.Canceled
	})
	rt := Chain(base, TranslateTransportErrors("http://backend"))

	req := httptest.NewRequest(http.MethodGet, "http://backend/x", nil)
	_, err := rt.RoundTrip(req)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var te *TransportError
	if errors.As(err, &te) {
		t.Fatalf("cancellation must not become a TransportError")
	}
}

// ---------------------------------------------------------------------------
// Other statuses
// ---------------------------------------------------------------------------

func TestClient_ServerErrorsPassThrough(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"doctor already exists","field":"email"}`))
		}))

		f := newFixture("tok")
		err := f.client(t, srv.URL).Post(context.Background(), map[string]string{}, nil, "doctors")
		srv.Close()

		var se *ServerError
		if !errors.As(err, &se) {
			t.Fatalf("%d: expected *ServerError, got %T %v", status, err, err)
		}
		if se.StatusCode() != status {
			t.Fatalf("expected %d, got %d", status, se.StatusCode())
		}
		if se.Message != "doctor already exists" {
			t.Fatalf("unexpected message %q", se.Message)
		}
		if !strings.Contains(string(se.Body), `"field":"email"`) {
			t.Fatalf("body should pass through verbatim, got %s", se.Body)
		}
		if f.sessions.cleared != 0 || len(f.nav.paths) != 0 {
			t.Fatalf("%d must not clear the session", status)
		}
	}
}

func TestClient_DecodeErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}))
	defer srv.Close()

	f := newFixture("tok")
	var out []map[string]any
	if err := f.client(t, srv.URL).Get(context.Background(), &out, "patients"); err == nil {
		t.Fatalf("expected decode error")
	}
}

// ---------------------------------------------------------------------------
// Chain order
// ---------------------------------------------------------------------------

func TestChain_FirstStageIsOutermost(t *testing.T) {
	var order []string
	mark := func(name string) Stage {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := RoundTripFunc(func(*http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Chain(base, mark("a"), mark("b"))
	if _, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://x/", nil)); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	if strings.Join(order, ",") != "a,b,base" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestClient_Probe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	f := newFixture("")
	c := f.client(t, srv.URL)

	if err := c.Probe(context.Background()); err != nil {
		t.Fatalf("any response should count as reachable: %v", err)
	}
	srv.Close()

	var te *TransportError
	if err := c.Probe(context.Background()); !errors.As(err, &te) {
		t.Fatalf("expected *TransportError after close, got %v", err)
	}
}
