package graph

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// SQLiteStore is an embedded Store backed by a single SQLite file. Node
// payloads are kept as JSON documents and indexed by expression.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, ErrMissingSQLitePath
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// One connection serialises writers; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func sqliteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

func propertyExpr(key string) string {
	return fmt.Sprintf("json_extract(data, '$.%s')", key)
}

func (s *SQLiteStore) IndexedNodes(ctx context.Context, key string, value any) ([]Node, error) {
	if err := checkIdentifier(key); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT handle, data FROM nodes WHERE %s = ? ORDER BY handle`, propertyExpr(key))
	rows, err := s.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("indexed lookup %s: %w", key, err)
	}
	defer rows.Close()

	nodes := []Node{}
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("indexed lookup %s: %w", key, err)
	}
	return nodes, nil
}

func (s *SQLiteStore) IndexedNode(ctx context.Context, key string, value any) (*Node, error) {
	if err := checkIdentifier(key); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT handle, data FROM nodes WHERE %s = ? ORDER BY handle LIMIT 1`, propertyExpr(key))
	node, err := scanNode(s.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("indexed lookup %s: %w", key, err)
	}
	return &node, nil
}

func (s *SQLiteStore) CreateNode(ctx context.Context, data map[string]any) (Node, error) {
	payload, err := json.Marshal(cloneData(data))
	if err != nil {
		return Node{}, fmt.Errorf("marshaling node data: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO nodes (data) VALUES (?)`, string(payload))
	if err != nil {
		return Node{}, fmt.Errorf("create node: %w", err)
	}
	handle, err := res.LastInsertId()
	if err != nil {
		return Node{}, fmt.Errorf("create node: %w", err)
	}
	return s.nodeByHandle(ctx, handle)
}

func (s *SQLiteStore) SaveNode(ctx context.Context, node Node) (Node, error) {
	handle, err := strconv.ParseInt(node.Handle, 10, 64)
	if err != nil {
		return Node{}, fmt.Errorf("save node %q: %w", node.Handle, ErrNodeNotFound)
	}
	payload, err := json.Marshal(cloneData(node.Data))
	if err != nil {
		return Node{}, fmt.Errorf("marshaling node data: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE nodes SET data = ? WHERE handle = ?`, string(payload), handle)
	if err != nil {
		return Node{}, fmt.Errorf("save node %d: %w", handle, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Node{}, fmt.Errorf("save node %d: %w", handle, err)
	}
	if affected == 0 {
		return Node{}, fmt.Errorf("save node %d: %w", handle, ErrNodeNotFound)
	}
	return s.nodeByHandle(ctx, handle)
}

func (s *SQLiteStore) DeleteNodes(ctx context.Context, where ...Match) error {
	if err := checkMatches(where); err != nil {
		return err
	}
	conds := make([]string, 0, len(where))
	args := make([]any, 0, len(where))
	for _, m := range where {
		conds = append(conds, propertyExpr(m.Key)+" = ?")
		args = append(args, m.Value)
	}
	filter := strings.Join(conds, " AND ")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete nodes: %w", err)
	}
	defer tx.Rollback()

	detach := fmt.Sprintf(`
		DELETE FROM relationships
		WHERE source IN (SELECT handle FROM nodes WHERE %[1]s)
		   OR target IN (SELECT handle FROM nodes WHERE %[1]s)`, filter)
	if _, err := tx.ExecContext(ctx, detach, append(append([]any{}, args...), args...)...); err != nil {
		return fmt.Errorf("delete relationships: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE `+filter, args...); err != nil {
		return fmt.Errorf("delete nodes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete nodes: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Relate(ctx context.Context, from, to Match, relType string) error {
	for _, name := range []string{from.Key, to.Key, relType} {
		if err := checkIdentifier(name); err != nil {
			return err
		}
	}
	source, err := s.IndexedNode(ctx, from.Key, from.Value)
	if err != nil {
		return err
	}
	target, err := s.IndexedNode(ctx, to.Key, to.Value)
	if err != nil {
		return err
	}
	if source == nil || target == nil {
		return fmt.Errorf("relate %s: %w", relType, ErrNodeNotFound)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO relationships (source, target, type) VALUES (?, ?, ?)`,
		source.Handle, target.Handle, relType)
	if err != nil {
		return fmt.Errorf("relate %s: %w", relType, err)
	}
	return nil
}

func (s *SQLiteStore) EnsureIndexes(ctx context.Context) error {
	for _, stmt := range sqliteSchemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) VerifyConnectivity(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}

func (s *SQLiteStore) nodeByHandle(ctx context.Context, handle int64) (Node, error) {
	node, err := scanNode(s.db.QueryRowContext(ctx, `SELECT handle, data FROM nodes WHERE handle = ?`, handle))
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, fmt.Errorf("node %d: %w", handle, ErrNodeNotFound)
	}
	if err != nil {
		return Node{}, fmt.Errorf("node %d: %w", handle, err)
	}
	return node, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (Node, error) {
	var (
		handle  int64
		payload string
	)
	if err := row.Scan(&handle, &payload); err != nil {
		return Node{}, err
	}
	data := map[string]any{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return Node{}, fmt.Errorf("unmarshaling node %d: %w", handle, err)
	}
	return Node{Handle: strconv.FormatInt(handle, 10), Data: data}, nil
}
