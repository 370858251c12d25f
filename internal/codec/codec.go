package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"topocat/internal/domain"
)

// Importer parses a topology document into an unfrozen graph
type Importer interface {
	Parse(r io.Reader) (*domain.Graph, error)
	Format() string
}

// Exporter writes a frozen topology as a document
type Exporter interface {
	Export(topo *domain.Topology, w io.Writer) error
	Format() string
}

// Codec is both an Importer and an Exporter
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered for a format name
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("no file extension: %s", path)
	}
	return ForFormat(ext)
}

// Supported reports whether a file extension has a codec
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}
