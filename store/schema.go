package store

import "database/sql"

const corpusSchema = `
CREATE TABLE IF NOT EXISTS corpus (
    pos INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    embedding BLOB NOT NULL
);
`

var clusterSchema = []string{
	`
CREATE TABLE IF NOT EXISTS centroids (
    id INTEGER PRIMARY KEY,
    vector BLOB NOT NULL
);
`,
	`
CREATE TABLE IF NOT EXISTS assignments (
    pos INTEGER PRIMARY KEY,
    cluster INTEGER NOT NULL
);
`,
	`
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`,
}

func ensureCorpusSchema(db *sql.DB) error {
	_, err := db.Exec(corpusSchema)
	return err
}

func ensureClusterSchema(db *sql.DB) error {
	for _, stmt := range clusterSchema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
