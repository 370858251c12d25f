package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"topocat/internal/catalog"
	"topocat/internal/codec"
	"topocat/internal/domain"
)

// File is one topology document read from disk
type File struct {
	Path  string
	Name  string
	data  []byte
	codec codec.Importer
}

// LoadFile reads and validates a topology document. The topology name is
// taken from the document, or from the file stem when the document has none.
func LoadFile(path string) (*File, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f := &File{Path: path, data: data, codec: c}
	g, err := f.parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f.Name = g.Name()
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

func (f *File) parse() (*domain.Graph, error) {
	return f.codec.Parse(bytes.NewReader(f.data))
}

// Constructor returns a catalog constructor that re-parses the stored
// document on every call. The file is not read again.
func (f *File) Constructor() catalog.Constructor {
	return func() (*domain.Graph, error) {
		g, err := f.parse()
		if err != nil {
			return nil, err
		}
		if g.Name() != f.Name {
			return rename(g, f.Name)
		}
		return g, nil
	}
}

// rename copies g into a graph carrying name
func rename(g *domain.Graph, name string) (*domain.Graph, error) {
	out := domain.NewGraph(name)
	for _, n := range g.Nodes() {
		if err := out.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, l := range g.Links() {
		if err := out.AddLink(l); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LoadDir builds a catalog from every topology document directly inside
// dir. Files without a supported extension are skipped. Any invalid file or
// repeated topology name fails the whole load.
func LoadDir(dir, catalogName string) (*catalog.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology directory: %w", err)
	}

	c := catalog.New(catalogName)
	for _, entry := range entries {
		if entry.IsDir() || !codec.Supported(entry.Name()) {
			continue
		}

		f, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if err := c.Register(f.Name, f.Constructor()); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}

		log.WithFields(log.Fields{
			"catalog":  catalogName,
			"topology": f.Name,
			"file":     f.Path,
		}).Debug("Loaded topology file")
	}

	return c, nil
}
