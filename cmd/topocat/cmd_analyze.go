package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"topocat/internal/analysis"
	"topocat/internal/domain"
)

func cmdAnalyze(args []string, out io.Writer) error {
	var from, to string
	a, err := newApp("analyze", args, func(f *pflag.FlagSet) {
		f.StringVar(&from, "from", "", "path start node")
		f.StringVar(&to, "to", "", "path end node")
	})
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := positional(a.flags, "topocat analyze <name> [--catalog NAME] [--from LABEL --to LABEL]")
	if err != nil {
		return err
	}
	if (from == "") != (to == "") {
		return fmt.Errorf("--from and --to must be given together")
	}

	if err := a.loadCatalogs(); err != nil {
		return err
	}

	t, catalogName, err := resolveTopology(a.svc, a.cfg.Catalog, name)
	if err != nil {
		return err
	}

	return writeAnalysis(out, catalogName, t, from, to)
}

func writeAnalysis(out io.Writer, catalogName string, t *domain.Topology, from, to string) error {
	g := analysis.New(t)
	s := g.Summarize()

	fmt.Fprintf(out, "Topology:    %s/%s\n", catalogName, s.Name)
	fmt.Fprintf(out, "Nodes:       %d (%d hosts, %d switches)\n", s.Nodes, s.Hosts, s.Switches)
	fmt.Fprintf(out, "Links:       %d\n", s.Links)
	fmt.Fprintf(out, "Components:  %d\n", s.Components)
	fmt.Fprintf(out, "Max degree:  %d\n", s.MaxDegree)

	if !g.Connected() {
		for i, c := range g.Components() {
			fmt.Fprintf(out, "  component %d: %s\n", i+1, strings.Join(c, " "))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-10s  %-7s  %-6s  %s\n", "NODE", "KIND", "DEGREE", "NEIGHBORS")
	for _, n := range t.Nodes() {
		fmt.Fprintf(out, "%-10s  %-7s  %-6d  %s\n",
			n.Label(),
			n.Kind(),
			g.Degree(n.Label()),
			strings.Join(g.Neighbors(n.Label()), " "),
		)
	}

	if from == "" {
		return nil
	}

	p, err := g.Path(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Path %s -> %s (%d hops): %s\n", from, to, len(p)-1, strings.Join(p, " -> "))
	return nil
}
