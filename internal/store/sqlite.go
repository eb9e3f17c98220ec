package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/vfs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
// The session is stored as an aggregate row: files, open tabs, and logs are
// JSON columns, since the core only ever loads and saves whole sessions.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single connection
	// serializes all access through Go's pool and avoids "database is
	// locked" errors when the API server and CLI overlap.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Migrate runs all embedded SQL migration files in order.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var count int
		err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE filename = ?", name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSession upserts the full session aggregate.
func (s *SQLiteStore) SaveSession(ctx context.Context, sess *models.Session) error {
	if sess.ID == "" {
		sess.ID = models.NewID()
	}

	files, err := json.Marshal(sess.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}
	open, err := json.Marshal(sess.OpenFileIDs)
	if err != nil {
		return fmt.Errorf("marshal open files: %w", err)
	}
	logs, err := json.Marshal(sess.Logs)
	if err != nil {
		return fmt.Errorf("marshal logs: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, template, files, active_file_id, open_file_ids, logs, build_status, deploy_status, version, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, template=excluded.template, files=excluded.files,
			active_file_id=excluded.active_file_id, open_file_ids=excluded.open_file_ids,
			logs=excluded.logs, build_status=excluded.build_status,
			deploy_status=excluded.deploy_status, version=excluded.version,
			last_modified=excluded.last_modified`,
		sess.ID, sess.Name, string(sess.Template), string(files), sess.ActiveFileID,
		string(open), string(logs), string(sess.BuildStatus), string(sess.DeployStatus),
		sess.Version, sess.LastModified,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetSession loads a session by id and validates its file tree before
// handing it back, so a corrupt row cannot smuggle cycles into the core.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	sess := &models.Session{}
	var files, open, logs, template, build, deploy string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, template, files, active_file_id, open_file_ids, logs, build_status, deploy_status, version, last_modified
		FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Name, &template, &files, &sess.ActiveFileID, &open, &logs, &build, &deploy, &sess.Version, &sess.LastModified)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	sess.Template = models.Template(template)
	sess.BuildStatus = models.BuildStatus(build)
	sess.DeployStatus = models.DeployStatus(deploy)

	if err := json.Unmarshal([]byte(files), &sess.Files); err != nil {
		return nil, fmt.Errorf("unmarshal files: %w", err)
	}
	if err := json.Unmarshal([]byte(open), &sess.OpenFileIDs); err != nil {
		return nil, fmt.Errorf("unmarshal open files: %w", err)
	}
	if err := json.Unmarshal([]byte(logs), &sess.Logs); err != nil {
		return nil, fmt.Errorf("unmarshal logs: %w", err)
	}

	if err := vfs.ValidateTree(sess.Files); err != nil {
		return nil, fmt.Errorf("session %s has a corrupt file tree: %w", id, err)
	}
	return sess, nil
}

// ListRecent returns session summaries ordered by last modification, newest
// first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, template, last_modified FROM sessions
		ORDER BY last_modified DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.SessionSummary
	for rows.Next() {
		var sum models.SessionSummary
		var template string
		if err := rows.Scan(&sum.ID, &sum.Name, &template, &sum.LastModified); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.Template = models.Template(template)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteSession removes a session row.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}
