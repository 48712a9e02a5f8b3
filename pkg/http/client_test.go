package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestBuildQueryString(t *testing.T) {
	got := buildQueryString(map[string]string{
		"stationTriplets": "*:*:SNTL,*:*:USGS",
		"activeOnly":      "false",
	})

	// keys sorted, values left unescaped
	want := "activeOnly=false&stationTriplets=*:*:SNTL,*:*:USGS"
	if got != want {
		t.Errorf("buildQueryString() = %q; want %q", got, want)
	}

	if got := buildQueryString(nil); got != "" {
		t.Errorf("buildQueryString(nil) = %q; want empty", got)
	}
}

func TestBuildURL(t *testing.T) {
	client := NewHttpClient("http://example.com/api/", ClientOptions{})

	tests := []struct {
		path string
		want string
	}{
		{"/stations", "http://example.com/api/stations"},
		{"stations", "http://example.com/api/stations"},
		{"", "http://example.com/api"},
	}
	for _, tt := range tests {
		if got := client.buildURL(tt.path); got != tt.want {
			t.Errorf("buildURL(%q) = %q; want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetDecodesJSON(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "basin"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	type payload struct {
		Name string `json:"name"`
	}
	var out payload

	success, _, status, err := client.Get("/", nil, nil, &out, nil)
	if err != nil {
		t.Fatalf("Get() = %v", err)
	}
	if status != nethttp.StatusOK {
		t.Errorf("status = %d; want 200", status)
	}
	if success.(*payload).Name != "basin" {
		t.Errorf("name = %q; want basin", out.Name)
	}
}

func TestErrorResponseDecoded(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "bad triplet"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	type apiError struct {
		Message string `json:"message"`
	}
	var errOut apiError

	_, errResp, status, err := client.Get("/", nil, nil, nil, &errOut)
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if status != nethttp.StatusBadRequest {
		t.Errorf("status = %d; want 400", status)
	}
	if errResp.(*apiError).Message != "bad triplet" {
		t.Errorf("message = %q; want bad triplet", errOut.Message)
	}
}

func TestBackoffRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(nethttp.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	backoff := NewBackoffConfig().
		WithMaxRetries(3).
		WithInitialDelay(time.Millisecond).
		WithMaxDelay(5 * time.Millisecond)

	client := NewHttpClient(server.URL, ClientOptions{Backoff: backoff})

	var out map[string]any
	_, _, status, err := client.Get("/", nil, nil, &out, nil)
	if err != nil {
		t.Fatalf("Get() = %v; want success after retries", err)
	}
	if status != nethttp.StatusOK {
		t.Errorf("status = %d; want 200", status)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d; want 3", got)
	}
}

func TestBackoffGivesUp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	defer server.Close()

	backoff := NewBackoffConfig().
		WithMaxRetries(2).
		WithInitialDelay(time.Millisecond).
		WithMaxDelay(2 * time.Millisecond)

	client := NewHttpClient(server.URL, ClientOptions{Backoff: backoff})

	_, _, status, err := client.Get("/", nil, nil, nil, nil)
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if status != nethttp.StatusServiceUnavailable {
		t.Errorf("status = %d; want 503", status)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d; want initial attempt plus 2 retries", got)
	}
}

func TestClientErrorsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(nethttp.StatusBadRequest)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{Backoff: NewBackoffConfig().WithInitialDelay(time.Millisecond)})

	_, _, _, err := client.Get("/", nil, nil, nil, nil)
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d; 4xx responses must not be retried", got)
	}
}

func TestBackoffInitialDelayCappedByMaxDelay(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(nethttp.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	// InitialDelay above MaxDelay must honor the cap on the first retry too
	backoff := NewBackoffConfig().
		WithMaxRetries(1).
		WithInitialDelay(time.Hour).
		WithMaxDelay(10 * time.Millisecond)

	client := NewHttpClient(server.URL, ClientOptions{Backoff: backoff})

	start := time.Now()
	_, _, status, err := client.Get("/", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Get() = %v; want success after one retry", err)
	}
	if status != nethttp.StatusOK {
		t.Errorf("status = %d; want 200", status)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("request took %v; first retry delay was not capped at MaxDelay", elapsed)
	}
}

func TestRedirectNotFollowedByDefault(t *testing.T) {
	target := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer target.Close()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.Redirect(w, r, target.URL, nethttp.StatusFound)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	_, _, status, _ := client.Get("/", nil, nil, nil, nil)
	if status != nethttp.StatusFound {
		t.Errorf("status = %d; want 302 when redirects are not followed", status)
	}

	following := NewHttpClient(server.URL, ClientOptions{FollowRedirect: true})
	_, _, status, err := following.Get("/", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Get() = %v", err)
	}
	if status != nethttp.StatusOK {
		t.Errorf("status = %d; want 200 when redirects are followed", status)
	}
}
