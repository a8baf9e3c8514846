package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/migrations"
	"github.com/studiowebux/quickcap/internal/types"
)

const (
	// ContentTypeText is the only content type captured today
	ContentTypeText = "text"

	timestampLayout = "2006-01-02 15:04:05"
)

// ErrEmptyContent is returned by Add for whitespace-only content
var ErrEmptyContent = errors.New("clipboard content is empty")

// Manager is the sqlite-backed clipboard history store
type Manager struct {
	db            *sql.DB
	previewLength int
}

// Option configures a Manager
type Option func(*Manager)

// WithPreviewLength sets the rune limit for entry previews
func WithPreviewLength(n int) Option {
	return func(m *Manager) {
		if n > 3 {
			m.previewLength = n
		}
	}
}

func NewManager(dbPath string, opts ...Option) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	m := &Manager{db: db, previewLength: config.DefaultPreviewLength}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Add stores content unless it is blank or identical to the most recent
// entry. It reports the new id and whether a row was written.
func (m *Manager) Add(ctx context.Context, content, contentType string) (int64, bool, error) {
	if strings.TrimSpace(content) == "" {
		return 0, false, ErrEmptyContent
	}
	if contentType == "" {
		contentType = ContentTypeText
	}

	var last string
	err := m.db.QueryRowContext(ctx,
		"SELECT content FROM clipboard_history ORDER BY created_at DESC, id DESC LIMIT 1",
	).Scan(&last)
	switch {
	case err == nil && last == content:
		return 0, false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("failed to read latest clipboard entry: %w", err)
	}

	res, err := m.db.ExecContext(ctx,
		"INSERT INTO clipboard_history (content, content_type, created_at, char_count) VALUES (?, ?, ?, ?)",
		content,
		contentType,
		time.Now().UTC().Format(timestampLayout),
		len([]rune(content)),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to save clipboard entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read clipboard entry id: %w", err)
	}
	return id, true, nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (m *Manager) Recent(ctx context.Context, limit int) ([]types.ClipboardEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, content, content_type, created_at, COALESCE(char_count, 0)
		FROM clipboard_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load clipboard history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// Search returns entries whose content contains query, newest first.
// The query is matched literally; LIKE wildcards in it are escaped.
func (m *Manager) Search(ctx context.Context, query string, limit int) ([]types.ClipboardEntry, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, content, content_type, created_at, COALESCE(char_count, 0)
		FROM clipboard_history
		WHERE content LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, pattern, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search clipboard history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// Get returns a single entry by id
func (m *Manager) Get(ctx context.Context, id int64) (types.ClipboardEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, content, content_type, created_at, COALESCE(char_count, 0)
		FROM clipboard_history
		WHERE id = ?
	`, id)
	if err != nil {
		return types.ClipboardEntry{}, fmt.Errorf("failed to load clipboard entry: %w", err)
	}
	defer rows.Close()

	entries, err := m.scanEntries(rows)
	if err != nil {
		return types.ClipboardEntry{}, err
	}
	if len(entries) == 0 {
		return types.ClipboardEntry{}, fmt.Errorf("clipboard entry %d: %w", id, sql.ErrNoRows)
	}
	return entries[0], nil
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.ClipboardEntry, error) {
	entries := []types.ClipboardEntry{}

	for rows.Next() {
		var (
			entry     types.ClipboardEntry
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.Content, &entry.ContentType, &createdAt, &entry.CharCount); err != nil {
			return nil, fmt.Errorf("failed to scan clipboard entry: %w", err)
		}

		entry.CreatedAt = parseTimestamp(createdAt)
		entry.Preview = CreatePreview(entry.Content, m.previewLength)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (m *Manager) Delete(ctx context.Context, id int64) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM clipboard_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete clipboard entry: %w", err)
	}
	return nil
}

func (m *Manager) Clear(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM clipboard_history")
	if err != nil {
		return fmt.Errorf("failed to clear clipboard history: %w", err)
	}
	return nil
}

// Cleanup keeps only the newest maxEntries rows and reports how many were removed
func (m *Manager) Cleanup(ctx context.Context, maxEntries int) (int, error) {
	if maxEntries <= 0 {
		return 0, nil
	}

	res, err := m.db.ExecContext(ctx, `
		DELETE FROM clipboard_history WHERE id NOT IN (
			SELECT id FROM clipboard_history ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, maxEntries)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up clipboard history: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed entries: %w", err)
	}
	return int(n), nil
}

// Record adds content and trims the store to maxEntries. Blank content
// is ignored.
func (m *Manager) Record(ctx context.Context, content string, maxEntries int) error {
	_, added, err := m.Add(ctx, content, ContentTypeText)
	if errors.Is(err, ErrEmptyContent) {
		return nil
	}
	if err != nil || !added {
		return err
	}

	if _, err := m.Cleanup(ctx, maxEntries); err != nil {
		return err
	}
	return nil
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clipboard_history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get clipboard history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// parseTimestamp reads the stored UTC timestamp. The driver may hand back
// either the raw text or an RFC3339 rendering of a parsed DATETIME.
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.UTC); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
