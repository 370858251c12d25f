package catalog

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"

	"topocat/internal/domain"
)

// Constructor builds a fresh, unfrozen graph for one topology
type Constructor func() (*domain.Graph, error)

// Catalog is a named, ordered registry of topology constructors
type Catalog struct {
	name string

	mu    sync.RWMutex
	order []string
	ctors map[string]Constructor
}

// New creates an empty catalog
func New(name string) *Catalog {
	return &Catalog{
		name:  name,
		order: make([]string, 0),
		ctors: make(map[string]Constructor),
	}
}

// Name returns the catalog name
func (c *Catalog) Name() string {
	return c.name
}

// Register binds name to ctor. The first registration of a name wins.
func (c *Catalog) Register(name string, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("register in catalog %s: empty topology name", c.name)
	}
	if ctor == nil {
		return fmt.Errorf("register %q in catalog %s: nil constructor", name, c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.ctors[name]; exists {
		return fmt.Errorf("%w: %q in catalog %s", ErrDuplicateTopologyName, name, c.name)
	}

	c.ctors[name] = ctor
	c.order = append(c.order, name)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// compiled-in tables where a failure is a programming mistake.
func (c *Catalog) MustRegister(name string, ctor Constructor) {
	if err := c.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Get builds the named topology and returns its frozen snapshot
func (c *Catalog) Get(name string) (*domain.Topology, error) {
	c.mu.RLock()
	ctor, ok := c.ctors[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q in catalog %s", ErrUnknownTopologyName, name, c.name)
	}

	graph, err := ctor()
	if err != nil {
		return nil, fmt.Errorf("build topology %q: %w", name, err)
	}
	if graph == nil {
		return nil, fmt.Errorf("build topology %q: constructor returned no graph", name)
	}

	return graph.Freeze(), nil
}

// List returns the registered names in registration order
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Has reports whether name is registered
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ctors[name]
	return ok
}

// Len returns the number of registered topologies
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Verify builds every registered topology on a pool of at most workers
// goroutines and returns all failures joined together. workers <= 0 means
// one worker per CPU.
func (c *Catalog) Verify(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create verify pool: %w", err)
	}
	defer pool.Release()

	names := c.List()
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			errs[i] = fmt.Errorf("verify %q: %w", name, err)
			continue
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("verify %q: %w", name, err)
				return
			}
			topo, err := c.Get(name)
			if err != nil {
				errs[i] = err
				return
			}
			log.WithFields(log.Fields{
				"catalog":  c.name,
				"topology": name,
				"nodes":    topo.NodeCount(),
				"links":    topo.LinkCount(),
			}).Debug("Verified topology")
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("verify %q: %w", name, submitErr)
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}
