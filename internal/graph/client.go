package graph

import (
	"context"
	"errors"
)

// Client defines the minimal contract required by the Cypher store to interact
// with the underlying graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Driver names accepted by Open.
const (
	DriverNeo4j  = "neo4j"
	DriverSQLite = "sqlite"
)

// Options configures a graph backend.
type Options struct {
	Driver         string
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
	SQLitePath     string
}

var (
	// ErrMissingURI indicates the graph URI is not provided.
	ErrMissingURI = errors.New("graph URI is required")
	// ErrMissingSQLitePath indicates the embedded store has no file to open.
	ErrMissingSQLitePath = errors.New("sqlite path is required")
	// ErrUnsupportedDriver is returned by Open for unknown driver names.
	ErrUnsupportedDriver = errors.New("unsupported graph driver")
)
