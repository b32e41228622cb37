package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Photos table - one row per imported photo. Layout columns are
		// written once at import and never updated.
		`CREATE TABLE IF NOT EXISTS photos (
			id TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			tree_x REAL NOT NULL,
			tree_y REAL NOT NULL,
			tree_z REAL NOT NULL,
			scatter_x REAL NOT NULL,
			scatter_y REAL NOT NULL,
			scatter_z REAL NOT NULL,
			rot_x REAL NOT NULL,
			rot_y REAL NOT NULL,
			rot_z REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
