package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetResource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resources/function/orders-api" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Resource{
			ID:   "function/orders-api",
			Type: "function",
			Attributes: map[string]string{
				"runtime": "python3.12",
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	res, err := c.GetResource(context.Background(), "function/orders-api")
	if err != nil {
		t.Fatalf("GetResource failed: %v", err)
	}
	if res.Attr("runtime") != "python3.12" {
		t.Errorf("runtime = %q, want python3.12", res.Attr("runtime"))
	}
}

func TestGetResource_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.GetResource(context.Background(), "function/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != "type=table" {
			t.Errorf("filter = %q, want type=table", got)
		}
		json.NewEncoder(w).Encode([]Resource{
			{ID: "table/orders", Type: "table"},
			{ID: "table/customers", Type: "table"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	out, err := c.ListResources(context.Background(), "type=table")
	if err != nil {
		t.Fatalf("ListResources failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d resources, want 2", len(out))
	}
}

func TestInvokeHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.Header.Get("X-Probe") != "wiregate" {
			t.Errorf("missing probe header")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	code, body, err := c.InvokeHTTP(context.Background(), srv.URL+"/health", http.MethodPost,
		map[string]string{"X-Probe": "wiregate"}, `{"ping":true}`)
	if err != nil {
		t.Fatalf("InvokeHTTP failed: %v", err)
	}
	if code != 200 {
		t.Errorf("status = %d, want 200", code)
	}
	if body != `{"status":"ok"}` {
		t.Errorf("body = %q", body)
	}
}

func TestInvokeHTTP_TransportError(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1")
	_, _, err := c.InvokeHTTP(context.Background(), "http://127.0.0.1:1/health", http.MethodGet, nil, "")
	if err == nil {
		t.Fatal("expected transport error")
	}
}

func TestRegistryResolver(t *testing.T) {
	r := NewRegistryResolverFunc(func(ref string) (string, error) {
		if ref != "registry.example.com/orders:v3" {
			t.Errorf("ref = %q", ref)
		}
		return "sha256:abc123", nil
	})

	d, err := r.Digest("registry.example.com/orders:v3")
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if d != "sha256:abc123" {
		t.Errorf("digest = %q", d)
	}
}

func TestRegistryResolver_BadReference(t *testing.T) {
	r := NewRegistryResolverFunc(func(string) (string, error) { return "", nil })
	if _, err := r.Digest("not a valid ref!!"); err == nil {
		t.Fatal("expected parse error")
	}
}
