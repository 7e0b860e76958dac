package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	vault "github.com/hashicorp/vault/api"
)

func TestParseRef(t *testing.T) {
	p, k, err := ParseRef("vault:secret/cms/db#password")
	if err != nil || p != "secret/cms/db" || k != "password" {
		t.Fatalf("got %q %q %v", p, k, err)
	}
	for _, bad := range []string{"secret/cms#pw", "vault:secret/cms", "vault:#pw", "vault:secret/cms#"} {
		if _, _, err := ParseRef(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestSplitMount(t *testing.T) {
	m, r := splitMount("secret/cms/db")
	if m != "secret" || r != "cms/db" {
		t.Fatalf("got %q %q", m, r)
	}
}

// fakeKV serves the KV-v2 read endpoint for one secret.
func fakeKV(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/secret/data/cms" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":{"db_password":"s3cret","port":3306},"metadata":{"version":1}}}`))
	}))
}

func testClient(t *testing.T, addr string) *Client {
	t.Helper()
	cfg := vault.DefaultConfig()
	cfg.Address = addr
	api, err := vault.NewClient(cfg)
	if err != nil {
		t.Fatalf("vault client: %v", err)
	}
	api.SetToken("test")
	return newClient(api)
}

func TestResolveCachesWithinTTL(t *testing.T) {
	var hits int32
	srv := fakeKV(t, &hits)
	defer srv.Close()
	c := testClient(t, srv.URL)

	for i := 0; i < 3; i++ {
		v, err := c.Resolve(context.Background(), "vault:secret/cms#db_password", time.Minute)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if v != "s3cret" {
			t.Fatalf("value = %q", v)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("vault hit %d times, want 1", n)
	}
}

func TestResolveErrors(t *testing.T) {
	var hits int32
	srv := fakeKV(t, &hits)
	defer srv.Close()
	c := testClient(t, srv.URL)

	if _, err := c.Resolve(context.Background(), "vault:secret/cms#missing", 0); err == nil {
		t.Fatal("expected missing key error")
	}
	if _, err := c.Resolve(context.Background(), "vault:secret/cms#port", 0); err == nil {
		t.Fatal("expected non-string error")
	}
}
