package main

import (
	"context"
	"fmt"
	"io"

	"topocat/internal/catalog"
)

func cmdVerify(args []string, out io.Writer) error {
	a, err := newApp("verify", args, nil)
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
	return verifyCatalogs(context.Background(), out, catalogs, a.cfg.Workers)
}

// verifyCatalogs builds every topology and reports one line per catalog.
// It returns the joined failures of all catalogs.
func verifyCatalogs(ctx context.Context, out io.Writer, catalogs []*catalog.Catalog, workers int) error {
	var failed int
	var errs []error
	for _, c := range catalogs {
		if err := c.Verify(ctx, workers); err != nil {
			failed++
			errs = append(errs, fmt.Errorf("catalog %s: %w", c.Name(), err))
			fmt.Fprintf(out, "FAIL  %-12s  %d topologies\n", c.Name(), c.Len())
			continue
		}
		fmt.Fprintf(out, "ok    %-12s  %d topologies\n", c.Name(), c.Len())
	}

	if failed > 0 {
		for _, err := range errs {
			fmt.Fprintf(out, "\n%v\n", err)
		}
		return fmt.Errorf("%d of %d catalogs failed verification", failed, len(catalogs))
	}
	return nil
}
