package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"topocat/internal/repository"
)

func cmdSnapshot(args []string, out io.Writer) error {
	var list bool
	a, err := newApp("snapshot", args, func(f *pflag.FlagSet) {
		f.BoolVar(&list, "list", false, "list stored snapshots instead of saving")
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openRepository(); err != nil {
		return err
	}

	ctx := context.Background()
	if list {
		snaps, err := a.repo.ListSnapshots(ctx)
		if err != nil {
			return err
		}
		writeSnapshots(out, snaps)
		return nil
	}

	if err := a.loadCatalogs(); err != nil {
		return err
	}
	snaps, err := a.svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	writeSnapshots(out, snaps)
	return nil
}

func writeSnapshots(out io.Writer, snaps []repository.Snapshot) {
	fmt.Fprintf(out, "%-8s  %-12s  %-20s  %-12s  %-6s  %-6s  %s\n",
		"ID", "CATALOG", "TOPOLOGY", "FINGERPRINT", "NODES", "LINKS", "CREATED")

	for _, s := range snaps {
		fmt.Fprintf(out, "%-8s  %-12s  %-20s  %-12s  %-6d  %-6d  %s\n",
			truncate(s.ID, 8),
			s.Catalog,
			s.Name,
			truncate(s.Fingerprint, 12),
			s.Nodes,
			s.Links,
			s.CreatedAt.Local().Format(time.DateTime),
		)
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
