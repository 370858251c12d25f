package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"topocat/internal/catalog"
	"topocat/internal/config"
	"topocat/internal/domain"
	"topocat/internal/loader"
	"topocat/internal/logging"
	"topocat/internal/repository"
	"topocat/internal/repository/sqlite"
	"topocat/internal/scenario"
	"topocat/internal/service"
)

// FilesCatalog is the catalog built from the configured topology directory
const FilesCatalog = "files"

// errAmbiguousTopology is returned when a name exists in several catalogs
// and none was selected
var errAmbiguousTopology = errors.New("ambiguous topology name")

// app is the state shared by every command
type app struct {
	cfg      *config.Config
	flags    *pflag.FlagSet
	svc      *service.CatalogService
	eventBus *service.EventBus
	repo     repository.SnapshotRepository
	closers  []io.Closer
}

// newApp parses args, loads configuration and sets up logging. extra, when
// not nil, registers command-specific flags.
func newApp(command string, args []string, extra func(*pflag.FlagSet)) (*app, error) {
	f := pflag.NewFlagSet(command, pflag.ContinueOnError)
	config.RegisterFlags(f)
	if extra != nil {
		extra(f)
	}
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	cfg, path, err := config.Load(f)
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	closer, err := logging.Setup(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.LogJSON,
	})
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.WithField("path", path).Debug("Loaded config file")
	}

	a := &app{
		cfg:      cfg,
		flags:    f,
		eventBus: service.NewEventBus(),
		closers:  []io.Closer{closer},
	}
	return a, nil
}

// openRepository opens the snapshot database named by the configuration
func (a *app) openRepository() error {
	repo, err := sqlite.New(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	log.WithField("path", a.cfg.DBPath).Debug("Database opened")
	a.repo = repo
	a.closers = append(a.closers, repo)
	return nil
}

// loadCatalogs builds the service from the built-in catalogs and, when
// configured, the topology directory
func (a *app) loadCatalogs() error {
	svc, err := newService(a.cfg, a.repo, a.eventBus)
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.WithError(err).Warn("Close failed")
		}
	}
}

// newService registers the built-in catalogs followed by the files catalog
func newService(cfg *config.Config, repo repository.SnapshotRepository, eventBus *service.EventBus) (*service.CatalogService, error) {
	svc := service.NewCatalogService(repo, eventBus)
	svc.SetWorkers(cfg.Workers)

	for _, c := range scenario.Catalogs() {
		if err := svc.Add(c); err != nil {
			return nil, err
		}
	}

	if cfg.TopologyDir != "" {
		files, err := loader.LoadDir(cfg.TopologyDir, FilesCatalog)
		if err != nil {
			return nil, err
		}
		if err := svc.Add(files); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"dir":        cfg.TopologyDir,
			"topologies": files.Len(),
		}).Info("Loaded topology directory")
	}

	return svc, nil
}

// selectCatalogs returns the named catalog, or every catalog when name is
// empty
func selectCatalogs(svc *service.CatalogService, name string) ([]*catalog.Catalog, error) {
	if name == "" {
		return svc.Catalogs(), nil
	}
	c, err := svc.Catalog(name)
	if err != nil {
		return nil, err
	}
	return []*catalog.Catalog{c}, nil
}

// resolveTopology builds name from catalogName, or from the only catalog
// that has it when catalogName is empty
func resolveTopology(svc *service.CatalogService, catalogName, name string) (*domain.Topology, string, error) {
	catalogName, err := resolveCatalog(svc, catalogName, name)
	if err != nil {
		return nil, "", err
	}
	t, err := svc.Topology(catalogName, name)
	return t, catalogName, err
}

// resolveCatalog returns catalogName when set, otherwise the name of the
// only catalog that has the topology
func resolveCatalog(svc *service.CatalogService, catalogName, name string) (string, error) {
	if catalogName != "" {
		return catalogName, nil
	}

	var found []string
	for _, c := range svc.Catalogs() {
		if c.Has(name) {
			found = append(found, c.Name())
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %q", catalog.ErrUnknownTopologyName, name)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %q is in catalogs %s, use --catalog",
			errAmbiguousTopology, name, strings.Join(found, ", "))
	}
}

// positional returns the single positional argument a command requires
func positional(f *pflag.FlagSet, usage string) (string, error) {
	if f.NArg() != 1 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return f.Arg(0), nil
}
