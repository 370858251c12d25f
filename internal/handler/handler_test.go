package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topocat/internal/analysis"
	"topocat/internal/catalog"
	"topocat/internal/codec"
	"topocat/internal/domain"
	"topocat/internal/repository/sqlite"
	"topocat/internal/scenario"
	"topocat/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.NewCatalogService(nil, nil)
	for _, c := range scenario.Catalogs() {
		if err := svc.Add(c); err != nil {
			t.Fatalf("add catalog: %v", err)
		}
	}

	broken := catalog.New("broken")
	broken.MustRegister("dangling", func() (*domain.Graph, error) {
		g := domain.NewGraph("dangling")
		return g, g.Connect("h1", "s1")
	})
	if err := svc.Add(broken); err != nil {
		t.Fatalf("add catalog: %v", err)
	}

	srv := httptest.NewServer(NewRouter(NewCatalogHandler(svc, ""), nil))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestListCatalogs(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/api/catalogs")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []service.CatalogInfo
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 catalogs, got %d", len(got))
	}
	if got[0].Name != "balancer" || got[0].Topologies[0] != "topo31" {
		t.Errorf("unexpected first catalog: %+v", got[0])
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestGetTopology(t *testing.T) {
	srv := newTestServer(t)

	t.Run("json document", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/nat/topologies/nat4")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		g, err := codec.NewJSONCodec().Parse(resp.Body)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		topo := g.Freeze()
		if topo.NodeCount() != 11 || topo.LinkCount() != 10 {
			t.Errorf("expected 11 nodes and 10 links, got %d and %d", topo.NodeCount(), topo.LinkCount())
		}
	})

	t.Run("yaml document", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/balancer/topologies/simple_topo?format=yaml")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/yaml" {
			t.Errorf("expected application/yaml, got %s", ct)
		}

		g, err := codec.NewYAMLCodec().Parse(resp.Body)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if nodes, links := g.Len(); nodes != 5 || links != 4 {
			t.Errorf("expected 5 nodes and 4 links, got %d and %d", nodes, links)
		}
	})

	t.Run("status codes", func(t *testing.T) {
		tests := []struct {
			path   string
			status int
		}{
			{"/api/catalogs/nat/topologies/unknown_name", http.StatusNotFound},
			{"/api/catalogs/missing/topologies/nat4", http.StatusNotFound},
			{"/api/catalogs/broken/topologies/dangling", http.StatusUnprocessableEntity},
			{"/api/catalogs/nat/topologies/nat4?format=toml", http.StatusBadRequest},
			{"/api/nothing", http.StatusNotFound},
		}

		for _, tt := range tests {
			resp := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("GET %s: expected %d, got %d", tt.path, tt.status, resp.StatusCode)
				continue
			}

			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Errorf("GET %s: decode error body: %v", tt.path, err)
			}
			if body.Error == "" {
				t.Errorf("GET %s: expected error message", tt.path)
			}
		}
	})
}

func TestGetSummary(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/api/catalogs/balancer/topologies/topo31/summary")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var s analysis.Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Nodes != 12 || s.Links != 12 || s.Components != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestGetPath(t *testing.T) {
	srv := newTestServer(t)

	t.Run("hop path", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/nat/topologies/nat4/path?from=l1&to=h2")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var got PathResponse
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if strings.Join(got.Path, ",") != "l1,s1,s2,s4,h2" {
			t.Errorf("unexpected path: %v", got.Path)
		}
		if got.Hops != 4 {
			t.Errorf("expected 4 hops, got %d", got.Hops)
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/nat/topologies/nat4/path?from=l1")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown node", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/nat/topologies/nat4/path?from=l1&to=x9")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestGetSnapshot(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := service.NewCatalogService(repo, nil)
	if err := svc.Add(scenario.NAT()); err != nil {
		t.Fatalf("add catalog: %v", err)
	}
	snaps, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	srv := httptest.NewServer(NewRouter(NewCatalogHandler(svc, ""), nil))
	t.Cleanup(srv.Close)

	t.Run("latest stored version", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/nat/topologies/nat4/snapshot")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		g, err := codec.NewJSONCodec().Parse(resp.Body)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if nodes, links := g.Len(); nodes != 11 || links != 10 {
			t.Errorf("expected 11 nodes and 10 links, got %d and %d", nodes, links)
		}
	})

	t.Run("by id as yaml", func(t *testing.T) {
		resp := get(t, srv, "/api/catalogs/nat/topologies/"+snaps[0].Name+"/snapshot?format=yaml&id="+snaps[0].ID)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		g, err := codec.NewYAMLCodec().Parse(resp.Body)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if g.Freeze().Fingerprint() != snaps[0].Fingerprint {
			t.Error("expected stored content")
		}
	})

	t.Run("status codes", func(t *testing.T) {
		tests := []struct {
			path   string
			status int
		}{
			{"/api/catalogs/nat/topologies/nat4/snapshot?id=no-such-id", http.StatusNotFound},
			{"/api/catalogs/balancer/topologies/nat4/snapshot?id=" + snaps[0].ID, http.StatusNotFound},
			{"/api/catalogs/nat/topologies/nat4/snapshot?format=toml", http.StatusBadRequest},
		}
		for _, tt := range tests {
			if resp := get(t, srv, tt.path); resp.StatusCode != tt.status {
				t.Errorf("GET %s: expected %d, got %d", tt.path, tt.status, resp.StatusCode)
			}
		}
	})

	t.Run("without repository", func(t *testing.T) {
		resp := get(t, newTestServer(t), "/api/catalogs/nat/topologies/nat4/snapshot")
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", resp.StatusCode)
		}
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
