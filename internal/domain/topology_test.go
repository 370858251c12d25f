package domain

import "testing"

func buildStar(t *testing.T, name string) *Graph {
	t.Helper()
	graph := NewGraph(name)
	for _, label := range []string{"h1", "h2", "h3"} {
		if err := graph.AddHost(label, ""); err != nil {
			t.Fatalf("add host: %v", err)
		}
	}
	if err := graph.AddSwitch("s1", ProtocolOpenFlow13); err != nil {
		t.Fatalf("add switch: %v", err)
	}
	for _, label := range []string{"h1", "h2", "h3"} {
		if err := graph.Connect(label, "s1"); err != nil {
			t.Fatalf("connect: %v", err)
		}
	}
	return graph
}

func TestTopologyLookup(t *testing.T) {
	topo := buildStar(t, "star").Freeze()

	t.Run("finds node by label", func(t *testing.T) {
		node, ok := topo.Node("s1")
		if !ok {
			t.Fatal("expected s1 to be found")
		}
		if !node.IsSwitch() {
			t.Errorf("expected s1 to be a switch, got %s", node.Kind())
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		if _, ok := topo.Node("s9"); ok {
			t.Error("expected s9 not to be found")
		}
	})

	t.Run("hosts and switches", func(t *testing.T) {
		if len(topo.Hosts()) != 3 {
			t.Errorf("expected 3 hosts, got %d", len(topo.Hosts()))
		}
		if len(topo.Switches()) != 1 {
			t.Errorf("expected 1 switch, got %d", len(topo.Switches()))
		}
	})

	t.Run("links of a node", func(t *testing.T) {
		if got := len(topo.LinksOf("s1")); got != 3 {
			t.Errorf("expected 3 links on s1, got %d", got)
		}
		if got := len(topo.LinksOf("h2")); got != 1 {
			t.Errorf("expected 1 link on h2, got %d", got)
		}
	})
}

func TestTopologyIsolation(t *testing.T) {
	topo := buildStar(t, "star").Freeze()

	nodes := topo.Nodes()
	nodes[0] = NewSwitch("evil", "")

	if first := topo.Nodes()[0]; first.Label() != "h1" {
		t.Errorf("expected snapshot nodes to be unaffected, got %s", first.Label())
	}
}

func TestTopologyFingerprint(t *testing.T) {
	t.Run("same content gives same fingerprint", func(t *testing.T) {
		a := buildStar(t, "a").Freeze()
		b := buildStar(t, "b").Freeze()

		if a.Fingerprint() != b.Fingerprint() {
			t.Error("expected equal fingerprints for equal content")
		}
		if len(a.Fingerprint()) != 64 {
			t.Errorf("expected 64 hex chars, got %d", len(a.Fingerprint()))
		}
	})

	t.Run("metadata changes fingerprint", func(t *testing.T) {
		plain := buildStar(t, "plain")
		tagged := buildStar(t, "tagged")
		plain.Connect("h1", "h2")
		tagged.ConnectWith("h1", "h2", map[string]any{"bw": 10})

		if plain.Freeze().Fingerprint() == tagged.Freeze().Fingerprint() {
			t.Error("expected metadata to change the fingerprint")
		}
	})

	t.Run("metadata value types are distinguished", func(t *testing.T) {
		tests := []struct {
			name  string
			a, b  any
			equal bool
		}{
			{"string and number", "10", 10, false},
			{"int and float", 10, 10.0, true},
			{"bool and string", true, "true", false},
			{"nested maps", map[string]any{"x": 1}, map[string]any{"x": "1"}, false},
		}

		for _, tt := range tests {
			a := buildStar(t, "a")
			b := buildStar(t, "b")
			a.ConnectWith("h1", "h2", map[string]any{"bw": tt.a})
			b.ConnectWith("h1", "h2", map[string]any{"bw": tt.b})

			got := a.Freeze().Fingerprint() == b.Freeze().Fingerprint()
			if got != tt.equal {
				t.Errorf("%s: expected equal=%v, got %v", tt.name, tt.equal, got)
			}
		}
	})

	t.Run("fields cannot run together", func(t *testing.T) {
		a := NewGraph("a")
		a.AddHost("h1", "10.0.0.1")
		b := NewGraph("b")
		b.AddHost("h1", "")

		// a host whose label absorbs what was an address must not collide
		c := NewGraph("c")
		c.AddHost("h110.0.0.1", "")

		fa, fb, fc := a.Freeze().Fingerprint(), b.Freeze().Fingerprint(), c.Freeze().Fingerprint()
		if fa == fb || fa == fc {
			t.Error("expected distinct fingerprints")
		}
	})

	t.Run("address changes fingerprint", func(t *testing.T) {
		a := NewGraph("a")
		a.AddHost("h1", "10.0.0.1")
		b := NewGraph("b")
		b.AddHost("h1", "10.0.0.2")

		if a.Freeze().Fingerprint() == b.Freeze().Fingerprint() {
			t.Error("expected different addresses to change the fingerprint")
		}
	})
}
