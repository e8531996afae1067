package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/geosearch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/geosearch/internal/logger"
)

// DefaultFileName is the gazetteer file inside the data directory.
const DefaultFileName = "geonames.db"

// ErrInvalidPlace indicates a place is missing required fields.
var ErrInvalidPlace = errors.New("sqlite: place needs an id and a full name")

// Place is one localised name of a gazetteer entry.
type Place struct {
	GeoID       int64
	Lang        string
	Name        string
	FullName    string
	Importance  int64
	Latitude    float64
	Longitude   float64
	Population  int64
	FeatureCode string
	FeatureName string
	Links       []string
}

// Store is the SQLite gazetteer.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the gazetteer at path.
// If path is empty, defaults to ~/.geosearch/data/geonames.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".geosearch", "data", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("Opened gazetteer %s", path)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AddPlace inserts one localised name, creating the place record on first
// sight. Links are only stored with the first name of a place.
func (s *Store) AddPlace(ctx context.Context, p Place) error {
	if p.GeoID == 0 || strings.TrimSpace(p.FullName) == "" {
		return ErrInvalidPlace
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO geoinfo (id, latitude, longitude, population, feature_code, feature_name)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, p.GeoID, formatCoord(p.Latitude), formatCoord(p.Longitude),
		strconv.FormatInt(p.Population, 10), p.FeatureCode, p.FeatureName)
	if err != nil {
		return fmt.Errorf("saving geoinfo: %w", err)
	}

	if inserted, _ := res.RowsAffected(); inserted > 0 {
		for _, link := range p.Links {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO geolinks (geoid, link) VALUES (?, ?)`, p.GeoID, link); err != nil {
				return fmt.Errorf("saving geolink: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO geonames (geoid, lang, name, fullname, importance)
		VALUES (?, ?, ?, ?, ?)
	`, p.GeoID, nullString(p.Lang), p.Name, p.FullName, p.Importance); err != nil {
		return fmt.Errorf("saving geoname: %w", err)
	}

	return tx.Commit()
}

// Search returns names starting with prefix, most important first.
// An empty lang matches every language. Rows with unparseable coordinates
// are skipped.
func (s *Store) Search(ctx context.Context, prefix, lang string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT DISTINCT n.geoid, COALESCE(n.lang, ''), n.name, n.fullname, n.importance,
			i.latitude, i.longitude, COALESCE(i.population, ''),
			COALESCE(i.feature_code, ''), COALESCE(i.feature_name, '')
		FROM geonames n
		JOIN geoinfo i ON i.id = n.geoid
		WHERE n.fullname LIKE ? ESCAPE '\'`
	args := []any{escapeLike(prefix) + "%"}
	if lang != "" {
		query += ` AND n.lang = ?`
		args = append(args, lang)
	}
	query += ` ORDER BY n.importance DESC, n.fullname LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching geonames: %w", err)
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var (
			p                   Place
			lat, lon, population string
		)
		if err := rows.Scan(&p.GeoID, &p.Lang, &p.Name, &p.FullName, &p.Importance,
			&lat, &lon, &population, &p.FeatureCode, &p.FeatureName); err != nil {
			return nil, fmt.Errorf("scanning geoname: %w", err)
		}

		if p.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
			logger.Debug("Skipping geoid %d: latitude %q", p.GeoID, lat)
			continue
		}
		if p.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
			logger.Debug("Skipping geoid %d: longitude %q", p.GeoID, lon)
			continue
		}
		p.Population, _ = strconv.ParseInt(population, 10, 64)
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating geonames: %w", err)
	}

	for i := range places {
		links, err := s.links(ctx, places[i].GeoID)
		if err != nil {
			return nil, err
		}
		places[i].Links = links
	}
	return places, nil
}

// Count returns the number of names in the gazetteer.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM geonames`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting geonames: %w", err)
	}
	return n, nil
}

func (s *Store) links(ctx context.Context, geoID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT link FROM geolinks WHERE geoid = ? ORDER BY id`, geoID)
	if err != nil {
		return nil, fmt.Errorf("loading geolinks: %w", err)
	}
	defer rows.Close()

	var links []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scanning geolink: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// migrate applies pending NNN_name.up.sql files and records each version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		logger.Debug("Applied migration %s", name)
	}

	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
