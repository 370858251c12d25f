package main

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"topocat/internal/codec"
	"topocat/internal/domain"
	"topocat/internal/service"
)

// latestSnapshot is the --snapshot value given without an ID
const latestSnapshot = "latest"

func cmdShow(args []string, out io.Writer) error {
	var snapshot string
	a, err := newApp("show", args, func(f *pflag.FlagSet) {
		f.StringVar(&snapshot, "snapshot", "", "print a stored version: --snapshot for the newest, --snapshot=ID for one")
		f.Lookup("snapshot").NoOptDefVal = latestSnapshot
	})
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := positional(a.flags, "topocat show <name> [--catalog NAME] [--format json|yaml] [--snapshot[=ID]]")
	if err != nil {
		return err
	}

	c, err := codec.ForFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	if snapshot != "" {
		if err := a.openRepository(); err != nil {
			return err
		}
	}
	if err := a.loadCatalogs(); err != nil {
		return err
	}

	t, err := showTopology(context.Background(), a.svc, a.cfg.Catalog, name, snapshot)
	if err != nil {
		return err
	}
	return c.Export(t, out)
}

// showTopology builds name live, or rebuilds a stored version when
// snapshot is set
func showTopology(ctx context.Context, svc *service.CatalogService, catalogName, name, snapshot string) (*domain.Topology, error) {
	if snapshot == "" {
		t, _, err := resolveTopology(svc, catalogName, name)
		return t, err
	}

	catalogName, err := resolveCatalog(svc, catalogName, name)
	if err != nil {
		return nil, err
	}
	if snapshot == latestSnapshot {
		snapshot = ""
	}
	return svc.StoredTopology(ctx, catalogName, name, snapshot)
}
