package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"topocat/internal/domain"
	"topocat/internal/repository"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalToNull marshals a map to nullable JSON string.
// Returns empty NullString for nil or empty maps.
func marshalToNull(m map[string]any) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Row Scanners
// ============================================================================
//
// Column order must match between the *Columns constant, scanArgs() and
// every SELECT using the constant.

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

const snapshotColumns = `id, catalog, name, fingerprint, node_count, link_count, created_at`

func scanSnapshot(row rowScanner) (*repository.Snapshot, error) {
	var s repository.Snapshot
	err := row.Scan(&s.ID, &s.Catalog, &s.Name, &s.Fingerprint, &s.Nodes, &s.Links, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	return &s, nil
}

const nodeColumns = `label, kind, ip, protocol`

// nodeRow holds one snapshot_nodes row
type nodeRow struct {
	Label    string
	Kind     string
	IP       sql.NullString
	Protocol sql.NullString
}

func (r *nodeRow) scanArgs() []any {
	return []any{&r.Label, &r.Kind, &r.IP, &r.Protocol}
}

func (r *nodeRow) toDomain() (domain.Node, error) {
	switch domain.NodeKind(r.Kind) {
	case domain.NodeKindHost:
		return domain.NewHost(r.Label, nullToString(r.IP)), nil
	case domain.NodeKindSwitch:
		return domain.NewSwitch(r.Label, nullToString(r.Protocol)), nil
	default:
		return domain.Node{}, fmt.Errorf("node %s: unknown kind %q", r.Label, r.Kind)
	}
}

func nodeInsertArgs(snapshotID string, position int, n domain.Node) []any {
	ip, _ := n.IP()
	protocol, _ := n.Protocol()
	return []any{snapshotID, position, n.Label(), string(n.Kind()), stringToNull(ip), stringToNull(protocol)}
}

const linkColumns = `a, b, metadata`

// linkRow holds one snapshot_links row
type linkRow struct {
	A            string
	B            string
	MetadataJSON sql.NullString
}

func (r *linkRow) scanArgs() []any {
	return []any{&r.A, &r.B, &r.MetadataJSON}
}

func (r *linkRow) toDomain() (domain.Link, error) {
	var metadata map[string]any
	if err := unmarshalJSONField(r.MetadataJSON, &metadata); err != nil {
		return domain.Link{}, fmt.Errorf("unmarshal link metadata: %w", err)
	}
	return domain.NewLink(r.A, r.B, metadata)
}

func linkInsertArgs(snapshotID string, position int, l domain.Link) ([]any, error) {
	metadata, err := marshalToNull(l.Metadata())
	if err != nil {
		return nil, err
	}
	return []any{snapshotID, position, l.A(), l.B(), metadata}, nil
}
