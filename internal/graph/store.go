package graph

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Node is a stored graph node. Handle is the backend's internal identifier
// and must never leak to API clients; Data is the attribute payload.
type Node struct {
	Handle string
	Data   map[string]any
}

// Store is the database-access object used by the repositories: indexed
// lookups by property, node create/save primitives and the detaching delete.
type Store interface {
	// IndexedNodes returns every node whose property key equals value.
	IndexedNodes(ctx context.Context, key string, value any) ([]Node, error)
	// IndexedNode returns the first node whose property key equals value,
	// or nil when nothing matches.
	IndexedNode(ctx context.Context, key string, value any) (*Node, error)
	CreateNode(ctx context.Context, data map[string]any) (Node, error)
	// SaveNode replaces the payload of an existing node.
	SaveNode(ctx context.Context, node Node) (Node, error)
	// DeleteNodes removes the nodes matching every given property together
	// with their incident relationships. Matching nothing is not an error.
	DeleteNodes(ctx context.Context, where ...Match) error
	// Relate links two nodes, each located by an indexed property.
	Relate(ctx context.Context, from, to Match, relType string) error
	EnsureIndexes(ctx context.Context) error
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Match locates a node by property.
type Match struct {
	Key   string
	Value any
}

var (
	// ErrNodeNotFound is returned when a save or relate targets a node that
	// does not exist.
	ErrNodeNotFound = errors.New("graph node not found")
	// ErrInvalidKey rejects property keys and relationship types that are not
	// plain identifiers; they are interpolated into query text.
	ErrInvalidKey = errors.New("invalid graph identifier")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	return nil
}

// Open builds the Store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverNeo4j:
		client, err := NewNeo4jClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewCypherStore(client), nil
	case DriverSQLite:
		return NewSQLiteStore(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, opts.Driver)
	}
}

// ErrNoMatch is returned when a delete is issued without any property.
var ErrNoMatch = errors.New("at least one property match is required")

func checkMatches(where []Match) error {
	if len(where) == 0 {
		return ErrNoMatch
	}
	for _, m := range where {
		if err := checkIdentifier(m.Key); err != nil {
			return err
		}
	}
	return nil
}

func cloneData(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
