package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/models"
)

// Persisted keys. The names match what the web dashboard kept in
// localStorage so the semantics carry over one to one.
const (
	keyToken     = "adminToken"
	keyActiveTab = "adminActiveTab"
	keyStatuses  = "messageStatuses"
)

// State is everything the store remembers across runs.
type State struct {
	Token     string
	ActiveTab models.Tab
	Statuses  map[int]models.Status
}

// Store persists small session bookkeeping in a local SQLite database:
// the bearer token, the last active tab and the message status map.
// All operations are synchronous and best-effort; corrupt values read
// back as their zero state rather than failing.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open creates or opens <dir>/pano.db and ensures the kv table exists.
func Open(dir string, log logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "pano.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init state database: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted session state. Missing keys yield zero values;
// a corrupt status map is treated as empty, never as an error.
func (s *Store) Load() (State, error) {
	state := State{Statuses: map[int]models.Status{}}

	token, err := s.get(keyToken)
	if err != nil {
		return state, err
	}
	state.Token = token

	tab, err := s.get(keyActiveTab)
	if err != nil {
		return state, err
	}
	if t := models.Tab(tab); t.Valid() {
		state.ActiveTab = t
	}

	raw, err := s.get(keyStatuses)
	if err != nil {
		return state, err
	}
	if raw != "" {
		state.Statuses = decodeStatuses(raw, s.log)
	}

	return state, nil
}

func (s *Store) SaveToken(token string) error {
	return s.set(keyToken, token)
}

func (s *Store) ClearToken() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, keyToken)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (s *Store) SaveActiveTab(tab models.Tab) error {
	return s.set(keyActiveTab, string(tab))
}

// SaveStatusMap persists the full triage map as a JSON object keyed by
// message id, the same shape the web dashboard wrote.
func (s *Store) SaveStatusMap(statuses map[int]models.Status) error {
	encoded := make(map[string]models.Status, len(statuses))
	for id, status := range statuses {
		encoded[strconv.Itoa(id)] = status
	}

	data, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("failed to encode status map: %w", err)
	}
	return s.set(keyStatuses, string(data))
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// decodeStatuses parses the persisted status map. Malformed JSON or entries
// with non-numeric ids or unknown statuses are dropped; a broken map must
// never prevent the session from restoring.
func decodeStatuses(raw string, log logging.Logger) map[int]models.Status {
	statuses := map[int]models.Status{}

	var encoded map[string]models.Status
	if err := json.Unmarshal([]byte(raw), &encoded); err != nil {
		log.Debug("discarding corrupt status map", "err", err)
		return statuses
	}

	for key, status := range encoded {
		id, err := strconv.Atoi(key)
		if err != nil || !status.Valid() {
			continue
		}
		statuses[id] = status
	}
	return statuses
}
