package storage

import "database/sql"

// initSchema creates all tables if they do not exist.
// Schema changes must remain additive; the database file survives restarts.
func initSchema(conn *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		provider   TEXT PRIMARY KEY,
		api_key    TEXT NOT NULL,
		model      TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notices (
		url        TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		published  TEXT NOT NULL DEFAULT '',
		source     TEXT NOT NULL DEFAULT '',
		position   INTEGER NOT NULL DEFAULT 0,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notices_position ON notices(position);
	`

	_, err := conn.Exec(schema)
	return err
}
