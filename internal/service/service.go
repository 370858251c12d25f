package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"topocat/internal/analysis"
	"topocat/internal/catalog"
	"topocat/internal/domain"
	"topocat/internal/repository"
)

var (
	// ErrUnknownCatalog is returned when no catalog has the requested name
	ErrUnknownCatalog = errors.New("unknown catalog")

	// ErrDuplicateCatalog is returned by Add when the name is taken
	ErrDuplicateCatalog = errors.New("duplicate catalog")

	// ErrNoRepository is returned by Snapshot when no store is configured
	ErrNoRepository = errors.New("no snapshot repository configured")
)

// CatalogInfo describes one catalog and its topologies
type CatalogInfo struct {
	Name       string   `json:"name"`
	Topologies []string `json:"topologies"`
}

// CatalogService provides access to a set of topology catalogs
type CatalogService struct {
	mu       sync.RWMutex
	catalogs []*catalog.Catalog

	repo     repository.SnapshotRepository
	eventBus *EventBus
	workers  int
}

// NewCatalogService creates a service with no catalogs. repo may be nil
// when snapshots are not needed.
func NewCatalogService(repo repository.SnapshotRepository, eventBus *EventBus) *CatalogService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &CatalogService{
		catalogs: make([]*catalog.Catalog, 0),
		repo:     repo,
		eventBus: eventBus,
	}
}

// SetWorkers bounds the worker pool used by Verify. Zero means one per CPU.
func (s *CatalogService) SetWorkers(n int) {
	s.workers = n
}

// Add appends a catalog. Names must be unique within the service.
func (s *CatalogService) Add(c *catalog.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(c.Name()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateCatalog, c.Name())
	}
	s.catalogs = append(s.catalogs, c)

	s.eventBus.Publish(Event{
		Type:    EventCatalogAdded,
		Payload: infoOf(c),
	})
	return nil
}

// Replace swaps the catalog with the same name for c, keeping its position.
// A catalog with a new name is appended.
func (s *CatalogService) Replace(c *catalog.Catalog) {
	s.mu.Lock()
	if i := s.indexOf(c.Name()); i >= 0 {
		s.catalogs[i] = c
	} else {
		s.catalogs = append(s.catalogs, c)
	}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"catalog":    c.Name(),
		"topologies": c.Len(),
	}).Info("Catalog replaced")

	s.eventBus.Publish(Event{
		Type:    EventCatalogReplaced,
		Payload: infoOf(c),
	})
}

// ReportReloadFailure publishes a failed reload of a catalog
func (s *CatalogService) ReportReloadFailure(name string, err error) {
	s.eventBus.Publish(Event{
		Type:    EventReloadFailed,
		Payload: map[string]string{"catalog": name, "error": err.Error()},
	})
}

// indexOf must be called with mu held
func (s *CatalogService) indexOf(name string) int {
	for i, c := range s.catalogs {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// Catalogs returns the current catalogs in order
func (s *CatalogService) Catalogs() []*catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*catalog.Catalog(nil), s.catalogs...)
}

// Describe lists every catalog with its topology names
func (s *CatalogService) Describe() []CatalogInfo {
	catalogs := s.Catalogs()
	out := make([]CatalogInfo, len(catalogs))
	for i, c := range catalogs {
		out[i] = infoOf(c)
	}
	return out
}

// Catalog returns the catalog with the given name
func (s *CatalogService) Catalog(name string) (*catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(name); i >= 0 {
		return s.catalogs[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCatalog, name)
}

// Topology builds one topology from one catalog
func (s *CatalogService) Topology(catalogName, name string) (*domain.Topology, error) {
	c, err := s.Catalog(catalogName)
	if err != nil {
		return nil, err
	}
	return c.Get(name)
}

// Summary builds a topology and summarizes its structure
func (s *CatalogService) Summary(catalogName, name string) (analysis.Summary, error) {
	t, err := s.Topology(catalogName, name)
	if err != nil {
		return analysis.Summary{}, err
	}
	return analysis.New(t).Summarize(), nil
}

// Verify builds every topology of every catalog and returns all failures
func (s *CatalogService) Verify(ctx context.Context) error {
	var errs []error
	for _, c := range s.Catalogs() {
		if err := c.Verify(ctx, s.workers); err != nil {
			errs = append(errs, fmt.Errorf("catalog %s: %w", c.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Snapshot stores every topology of every catalog. Unchanged topologies
// keep their existing snapshot.
func (s *CatalogService) Snapshot(ctx context.Context) ([]repository.Snapshot, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}

	var snaps []repository.Snapshot
	for _, c := range s.Catalogs() {
		for _, name := range c.List() {
			t, err := c.Get(name)
			if err != nil {
				return snaps, fmt.Errorf("catalog %s: %w", c.Name(), err)
			}

			snap, err := s.repo.SaveSnapshot(ctx, c.Name(), t)
			if err != nil {
				return snaps, fmt.Errorf("save %s/%s: %w", c.Name(), name, err)
			}
			snaps = append(snaps, *snap)
		}
	}

	s.eventBus.Publish(Event{
		Type:    EventSnapshotSaved,
		Payload: map[string]int{"snapshots": len(snaps)},
	})
	return snaps, nil
}

// StoredTopology rebuilds a stored snapshot of catalogName/name. An empty id
// selects the newest one. The catalog need not be loaded, so versions of a
// topology that has since been removed stay readable.
func (s *CatalogService) StoredTopology(ctx context.Context, catalogName, name, id string) (*domain.Topology, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}

	var (
		t   *domain.Topology
		err error
	)
	if id == "" {
		t, err = s.repo.LatestSnapshot(ctx, catalogName, name)
	} else {
		t, err = s.repo.GetSnapshot(ctx, catalogName, name, id)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot of %s/%s: %w", catalogName, name, err)
	}
	return t, nil
}

func infoOf(c *catalog.Catalog) CatalogInfo {
	return CatalogInfo{Name: c.Name(), Topologies: c.List()}
}
