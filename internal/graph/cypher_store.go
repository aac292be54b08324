package graph

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CypherStore implements Store on top of a Cypher-speaking Client.
type CypherStore struct {
	client Client
}

// NewCypherStore wraps client.
func NewCypherStore(client Client) *CypherStore {
	return &CypherStore{client: client}
}

func (s *CypherStore) IndexedNodes(ctx context.Context, key string, value any) ([]Node, error) {
	if err := checkIdentifier(key); err != nil {
		return nil, err
	}
	res, err := s.client.ExecuteRead(ctx, fmt.Sprintf(indexedNodesCypherTemplate, key), map[string]any{
		"value": value,
	})
	if err != nil {
		return nil, fmt.Errorf("indexed lookup %s: %w", key, err)
	}
	return recordsToNodes(res.Records)
}

func (s *CypherStore) IndexedNode(ctx context.Context, key string, value any) (*Node, error) {
	if err := checkIdentifier(key); err != nil {
		return nil, err
	}
	res, err := s.client.ExecuteRead(ctx, fmt.Sprintf(indexedNodeCypherTemplate, key), map[string]any{
		"value": value,
	})
	if err != nil {
		return nil, fmt.Errorf("indexed lookup %s: %w", key, err)
	}
	if len(res.Records) == 0 {
		return nil, nil
	}
	node, err := recordToNode(res.Records[0])
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (s *CypherStore) CreateNode(ctx context.Context, data map[string]any) (Node, error) {
	res, err := s.client.ExecuteWrite(ctx, createNodeCypher, map[string]any{
		"props": cloneData(data),
	})
	if err != nil {
		return Node{}, fmt.Errorf("create node: %w", err)
	}
	if len(res.Records) == 0 {
		return Node{}, fmt.Errorf("create node: no record returned")
	}
	return recordToNode(res.Records[0])
}

func (s *CypherStore) SaveNode(ctx context.Context, node Node) (Node, error) {
	res, err := s.client.ExecuteWrite(ctx, saveNodeCypher, map[string]any{
		"handle": node.Handle,
		"props":  cloneData(node.Data),
	})
	if err != nil {
		return Node{}, fmt.Errorf("save node %s: %w", node.Handle, err)
	}
	if len(res.Records) == 0 {
		return Node{}, fmt.Errorf("save node %s: %w", node.Handle, ErrNodeNotFound)
	}
	return recordToNode(res.Records[0])
}

func (s *CypherStore) DeleteNodes(ctx context.Context, where ...Match) error {
	if err := checkMatches(where); err != nil {
		return err
	}
	pattern, params := propertyPattern(where)
	_, err := s.client.ExecuteWrite(ctx, fmt.Sprintf(deleteNodesCypherTemplate, pattern), params)
	if err != nil {
		return fmt.Errorf("delete nodes %s: %w", pattern, err)
	}
	return nil
}

// propertyPattern renders where as an inline map such as
// "id: $p0, type: $p1" with matching parameters.
func propertyPattern(where []Match) (string, map[string]any) {
	parts := make([]string, 0, len(where))
	params := make(map[string]any, len(where))
	for i, m := range where {
		name := "p" + strconv.Itoa(i)
		parts = append(parts, m.Key+": $"+name)
		params[name] = m.Value
	}
	return strings.Join(parts, ", "), params
}

func (s *CypherStore) Relate(ctx context.Context, from, to Match, relType string) error {
	for _, name := range []string{from.Key, to.Key, relType} {
		if err := checkIdentifier(name); err != nil {
			return err
		}
	}
	query := fmt.Sprintf(relateCypherTemplate, from.Key, to.Key, relType)
	res, err := s.client.ExecuteWrite(ctx, query, map[string]any{
		"from": from.Value,
		"to":   to.Value,
	})
	if err != nil {
		return fmt.Errorf("relate %s: %w", relType, err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("relate %s: %w", relType, ErrNodeNotFound)
	}
	return nil
}

func (s *CypherStore) EnsureIndexes(ctx context.Context) error {
	for _, stmt := range indexCypher {
		if _, err := s.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}

func (s *CypherStore) VerifyConnectivity(ctx context.Context) error {
	return s.client.VerifyConnectivity(ctx)
}

func (s *CypherStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func recordsToNodes(records []Record) ([]Node, error) {
	nodes := make([]Node, 0, len(records))
	for _, rec := range records {
		node, err := recordToNode(rec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func recordToNode(rec Record) (Node, error) {
	handle, _ := rec["handle"].(string)
	data, ok := rec["data"].(map[string]any)
	if !ok {
		return Node{}, fmt.Errorf("unexpected node payload %T", rec["data"])
	}
	return Node{Handle: handle, Data: data}, nil
}

// Label applied to every catalog node.
const nodeLabel = "CatalogNode"

const indexedNodesCypherTemplate = `
MATCH (n:` + nodeLabel + ` {%s: $value})
RETURN elementId(n) AS handle, properties(n) AS data
`

const indexedNodeCypherTemplate = `
MATCH (n:` + nodeLabel + ` {%s: $value})
RETURN elementId(n) AS handle, properties(n) AS data
LIMIT 1
`

const createNodeCypher = `
CREATE (n:` + nodeLabel + `)
SET n = $props
RETURN elementId(n) AS handle, properties(n) AS data
`

const saveNodeCypher = `
MATCH (n:` + nodeLabel + `)
WHERE elementId(n) = $handle
SET n = $props
RETURN elementId(n) AS handle, properties(n) AS data
`

const deleteNodesCypherTemplate = `
MATCH (n:` + nodeLabel + ` {%s})
OPTIONAL MATCH (n)-[r]-()
DELETE r, n
`

const relateCypherTemplate = `
MATCH (a:` + nodeLabel + ` {%s: $from}), (b:` + nodeLabel + ` {%s: $to})
MERGE (a)-[r:%s]->(b)
RETURN type(r) AS type
`

var indexCypher = []string{
	`CREATE INDEX catalog_node_id IF NOT EXISTS FOR (n:` + nodeLabel + `) ON (n.id)`,
	`CREATE INDEX catalog_node_type IF NOT EXISTS FOR (n:` + nodeLabel + `) ON (n.type)`,
}
