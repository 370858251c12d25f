package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"topocat/internal/catalog"
	"topocat/internal/config"
	"topocat/internal/domain"
	"topocat/internal/repository"
	"topocat/internal/repository/sqlite"
	"topocat/internal/service"
)

func builtinService(t *testing.T) *service.CatalogService {
	t.Helper()
	svc, err := newService(config.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func TestResolveTopology(t *testing.T) {
	svc := builtinService(t)

	t.Run("unique name without catalog", func(t *testing.T) {
		topo, catalogName, err := resolveTopology(svc, "", "nat4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalogName != "nat" || topo.Name() != "nat4" {
			t.Errorf("expected nat/nat4, got %s/%s", catalogName, topo.Name())
		}
	})

	t.Run("shared name needs a catalog", func(t *testing.T) {
		_, _, err := resolveTopology(svc, "", "simplest_topo")
		if !errors.Is(err, errAmbiguousTopology) {
			t.Fatalf("expected errAmbiguousTopology, got %v", err)
		}
		if !strings.Contains(err.Error(), "balancer, nat") {
			t.Errorf("expected both catalogs in message, got %v", err)
		}
	})

	t.Run("shared name with catalog", func(t *testing.T) {
		topo, catalogName, err := resolveTopology(svc, "nat", "simplest_topo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalogName != "nat" || topo.NodeCount() != 4 {
			t.Errorf("expected nat/simplest_topo with 4 nodes, got %s with %d", catalogName, topo.NodeCount())
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, _, err := resolveTopology(svc, "", "unknown_name"); !errors.Is(err, catalog.ErrUnknownTopologyName) {
			t.Errorf("expected ErrUnknownTopologyName, got %v", err)
		}
	})

	t.Run("unknown catalog", func(t *testing.T) {
		if _, _, err := resolveTopology(svc, "missing", "nat4"); !errors.Is(err, service.ErrUnknownCatalog) {
			t.Errorf("expected ErrUnknownCatalog, got %v", err)
		}
	})
}

func TestShowTopology(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc, err := newService(config.DefaultConfig(), repo, nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	ctx := context.Background()

	snaps, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var stored repository.Snapshot
	for _, s := range snaps {
		if s.Catalog == "nat" && s.Name == "nat4" {
			stored = s
		}
	}

	t.Run("live build", func(t *testing.T) {
		topo, err := showTopology(ctx, svc, "", "nat4", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topo.Fingerprint() != stored.Fingerprint {
			t.Error("expected live build to match the stored snapshot")
		}
	})

	t.Run("newest snapshot", func(t *testing.T) {
		topo, err := showTopology(ctx, svc, "", "nat4", latestSnapshot)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topo.NodeCount() != 11 {
			t.Errorf("expected 11 nodes, got %d", topo.NodeCount())
		}
	})

	t.Run("snapshot by id", func(t *testing.T) {
		topo, err := showTopology(ctx, svc, "nat", "nat4", stored.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topo.Fingerprint() != stored.Fingerprint {
			t.Error("expected stored content")
		}
	})

	t.Run("snapshot of an ambiguous name", func(t *testing.T) {
		if _, err := showTopology(ctx, svc, "", "simple_topo", latestSnapshot); !errors.Is(err, errAmbiguousTopology) {
			t.Errorf("expected errAmbiguousTopology, got %v", err)
		}
	})

	t.Run("unknown snapshot", func(t *testing.T) {
		if _, err := showTopology(ctx, svc, "nat", "nat4", "no-such-id"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestNewServiceLoadsTopologyDir(t *testing.T) {
	dir := t.TempDir()
	doc := `name: lab
nodes:
  - label: h1
    kind: host
    ip: 192.168.0.1
  - label: s1
    kind: switch
links:
  - a: h1
    b: s1
`
	if err := os.WriteFile(filepath.Join(dir, "lab.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.TopologyDir = dir
	svc, err := newService(cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	catalogs := svc.Catalogs()
	if last := catalogs[len(catalogs)-1]; last.Name() != FilesCatalog {
		t.Fatalf("expected files catalog last, got %s", last.Name())
	}

	topo, catalogName, err := resolveTopology(svc, "", "lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalogName != FilesCatalog || topo.NodeCount() != 2 || topo.LinkCount() != 1 {
		t.Errorf("unexpected topology %s/%s", catalogName, topo.Name())
	}
}

func TestWriteList(t *testing.T) {
	svc := builtinService(t)
	broken := catalog.New("broken")
	broken.MustRegister("dangling", func() (*domain.Graph, error) {
		g := domain.NewGraph("dangling")
		return g, g.Connect("h1", "s1")
	})

	var buf bytes.Buffer
	writeList(&buf, append(svc.Catalogs(), broken))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected header and 8 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[1]); fields[0] != "balancer" || fields[1] != "topo31" || fields[2] != "12" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if fields := strings.Fields(lines[8]); fields[1] != "dangling" || fields[2] != "-" {
		t.Errorf("expected failed row for dangling, got %s", lines[8])
	}
}

func TestWriteAnalysis(t *testing.T) {
	svc := builtinService(t)
	topo, err := svc.Topology("nat", "nat4")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("summary and path", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeAnalysis(&buf, "nat", topo, "l1", "h1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{
			"Topology:    nat/nat4",
			"Nodes:       11 (6 hosts, 5 switches)",
			"Components:  1",
			"Path l1 -> h1 (5 hops): l1 -> s1 -> s2 -> s4 -> sg3 -> h1",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("unknown path endpoint", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeAnalysis(&buf, "nat", topo, "l1", "x9"); !errors.Is(err, domain.ErrUnknownEndpoint) {
			t.Errorf("expected ErrUnknownEndpoint, got %v", err)
		}
	})
}

func TestVerifyCatalogs(t *testing.T) {
	svc := builtinService(t)
	ctx := context.Background()

	t.Run("builtins pass", func(t *testing.T) {
		var buf bytes.Buffer
		if err := verifyCatalogs(ctx, &buf, svc.Catalogs(), 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "ok    balancer      4 topologies") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("failure is reported", func(t *testing.T) {
		broken := catalog.New("broken")
		broken.MustRegister("loop", func() (*domain.Graph, error) {
			g := domain.NewGraph("loop")
			return g, g.Connect("s1", "s1")
		})

		var buf bytes.Buffer
		err := verifyCatalogs(ctx, &buf, []*catalog.Catalog{broken}, 1)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(buf.String(), "FAIL  broken") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}
