package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"topocat/internal/domain"
	"topocat/internal/repository"
)

// Repository implements repository.SnapshotRepository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.SnapshotRepository = (*Repository)(nil)

// New creates a new SQLite repository. Use ":memory:" for a private
// in-memory database.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		catalog TEXT NOT NULL,
		name TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		node_count INTEGER NOT NULL,
		link_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_nodes (
		snapshot_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		kind TEXT NOT NULL,
		ip TEXT,
		protocol TEXT,
		PRIMARY KEY (snapshot_id, position),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS snapshot_links (
		snapshot_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		a TEXT NOT NULL,
		b TEXT NOT NULL,
		metadata JSON,
		PRIMARY KEY (snapshot_id, position),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_topology ON snapshots(catalog, name, seq);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveSnapshot stores t unless the latest snapshot already has its content
func (r *Repository) SaveSnapshot(ctx context.Context, catalog string, t *domain.Topology) (*repository.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	fingerprint := t.Fingerprint()

	latest, err := latestRow(ctx, tx, catalog, t.Name())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if latest != nil && latest.Fingerprint == fingerprint {
		return latest, nil
	}

	snap := &repository.Snapshot{
		ID:          uuid.NewString(),
		Catalog:     catalog,
		Name:        t.Name(),
		Fingerprint: fingerprint,
		Nodes:       t.NodeCount(),
		Links:       t.LinkCount(),
		CreatedAt:   time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, catalog, name, fingerprint, node_count, link_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Catalog, snap.Name, snap.Fingerprint, snap.Nodes, snap.Links, snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for i, n := range t.Nodes() {
		args := nodeInsertArgs(snap.ID, i, n)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_nodes (snapshot_id, position, label, kind, ip, protocol)
			VALUES (?, ?, ?, ?, ?, ?)
		`, args...); err != nil {
			return nil, fmt.Errorf("failed to insert node %s: %w", n.Label(), err)
		}
	}

	for i, l := range t.Links() {
		args, err := linkInsertArgs(snap.ID, i, l)
		if err != nil {
			return nil, fmt.Errorf("failed to encode link %s: %w", l, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_links (snapshot_id, position, a, b, metadata)
			VALUES (?, ?, ?, ?, ?)
		`, args...); err != nil {
			return nil, fmt.Errorf("failed to insert link %s: %w", l, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return snap, nil
}

// LatestSnapshot rebuilds the newest snapshot of catalog/name
func (r *Repository) LatestSnapshot(ctx context.Context, catalog, name string) (*domain.Topology, error) {
	snap, err := latestRow(ctx, r.db, catalog, name)
	if err != nil {
		return nil, err
	}
	return r.loadTopology(ctx, snap)
}

// GetSnapshot rebuilds one stored version of catalog/name by snapshot ID
func (r *Repository) GetSnapshot(ctx context.Context, catalog, name, id string) (*domain.Topology, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+` FROM snapshots
		WHERE id = ? AND catalog = ? AND name = ?
	`, id, catalog, name)
	snap, err := scanSnapshot(row)
	if err != nil {
		return nil, err
	}
	return r.loadTopology(ctx, snap)
}

// ListSnapshots returns every stored snapshot, newest first
func (r *Repository) ListSnapshots(ctx context.Context) ([]repository.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := make([]repository.Snapshot, 0)
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snaps, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func latestRow(ctx context.Context, q queryer, catalog, name string) (*repository.Snapshot, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+` FROM snapshots
		WHERE catalog = ? AND name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, catalog, name)
	return scanSnapshot(row)
}

// loadTopology rebuilds a stored snapshot through the graph builder
func (r *Repository) loadTopology(ctx context.Context, snap *repository.Snapshot) (*domain.Topology, error) {
	g := domain.NewGraph(snap.Name)

	nodeRows, err := r.db.QueryContext(ctx, `
		SELECT `+nodeColumns+` FROM snapshot_nodes
		WHERE snapshot_id = ?
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer nodeRows.Close()

	for nodeRows.Next() {
		var row nodeRow
		if err := nodeRows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		node, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
		}
	}
	if err := nodeRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodes: %w", err)
	}

	linkRows, err := r.db.QueryContext(ctx, `
		SELECT `+linkColumns+` FROM snapshot_links
		WHERE snapshot_id = ?
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var row linkRow
		if err := linkRows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		link, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		if err := g.AddLink(link); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return g.Freeze(), nil
}
