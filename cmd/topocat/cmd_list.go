package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"topocat/internal/catalog"
)

func cmdList(args []string, out io.Writer) error {
	a, err := newApp("list", args, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.loadCatalogs(); err != nil {
		return err
	}

	catalogs, err := selectCatalogs(a.svc, a.cfg.Catalog)
	if err != nil {
		return err
	}
	writeList(out, catalogs)
	return nil
}

// writeList prints one row per topology. Topologies that fail to build
// are listed with "-" counts.
func writeList(out io.Writer, catalogs []*catalog.Catalog) {
	fmt.Fprintf(out, "%-12s  %-20s  %-6s  %-6s  %s\n",
		"CATALOG", "TOPOLOGY", "NODES", "LINKS", "HOSTS")

	for _, c := range catalogs {
		for _, name := range c.List() {
			t, err := c.Get(name)
			if err != nil {
				log.WithError(err).WithField("catalog", c.Name()).Warn("Topology failed to build")
				fmt.Fprintf(out, "%-12s  %-20s  %-6s  %-6s  %s\n", c.Name(), name, "-", "-", "-")
				continue
			}

			fmt.Fprintf(out, "%-12s  %-20s  %-6d  %-6d  %d\n",
				c.Name(),
				name,
				t.NodeCount(),
				t.LinkCount(),
				len(t.Hosts()),
			)
		}
	}
}
