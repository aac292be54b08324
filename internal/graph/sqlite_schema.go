package graph

const sqliteSchemaNodes = `
CREATE TABLE IF NOT EXISTS nodes (
    handle INTEGER PRIMARY KEY AUTOINCREMENT,
    data TEXT NOT NULL CHECK (json_valid(data))
)`

const sqliteSchemaRelationships = `
CREATE TABLE IF NOT EXISTS relationships (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source INTEGER NOT NULL REFERENCES nodes(handle),
    target INTEGER NOT NULL REFERENCES nodes(handle),
    type TEXT NOT NULL,
    UNIQUE(source, target, type)
)`

// The expression indexes must use the same json_extract form as the lookup
// queries built by propertyExpr, otherwise SQLite falls back to a scan.
var sqliteIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_nodes_id ON nodes (json_extract(data, '$.id'))`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_type ON nodes (json_extract(data, '$.type'))`,
	`CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships (source)`,
	`CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships (target)`,
}

func sqliteSchemaStatements() []string {
	return append([]string{sqliteSchemaNodes, sqliteSchemaRelationships}, sqliteIndexes...)
}
