package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"instamailer/internal/model"
	"instamailer/internal/repository"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDraftRepository struct {
	db *sql.DB
}

func NewSQLiteDraftRepository(db *sql.DB) *SQLiteDraftRepository {
	return &SQLiteDraftRepository{db: db}
}

// Open opens the single-file database and creates the schema if absent.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := InitializeDatabase(db); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// InitializeDatabase creates the necessary tables
func InitializeDatabase(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		prompt TEXT NOT NULL,
		content TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		recipient TEXT NOT NULL,
		tone TEXT NOT NULL DEFAULT 'friendly',
		type TEXT NOT NULL DEFAULT 'general',
		status TEXT NOT NULL DEFAULT 'draft',
		created_at DATETIME NOT NULL,
		sent_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_drafts_created_at ON drafts(created_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepository) Create(ctx context.Context, draft *model.Draft) error {
	query := `
		INSERT INTO drafts (prompt, content, subject, recipient, tone, type, status, created_at, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		draft.Prompt, draft.Content, draft.Subject, draft.Recipient,
		draft.Tone, draft.Type, draft.Status, draft.CreatedAt, draft.SentAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	draft.ID = id
	return nil
}

func (r *SQLiteDraftRepository) FindByID(ctx context.Context, id int64) (*model.Draft, error) {
	query := `SELECT id, prompt, content, subject, recipient, tone, type, status, created_at, sent_at FROM drafts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanDraft(row)
}

func (r *SQLiteDraftRepository) FindAll(ctx context.Context) ([]*model.Draft, error) {
	query := `SELECT id, prompt, content, subject, recipient, tone, type, status, created_at, sent_at FROM drafts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*model.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	return drafts, rows.Err()
}

func (r *SQLiteDraftRepository) Update(ctx context.Context, draft *model.Draft) error {
	query := `UPDATE drafts SET content=?, subject=?, status=?, sent_at=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		draft.Content, draft.Subject, draft.Status, draft.SentAt, draft.ID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SQLiteDraftRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDraft(row scanner) (*model.Draft, error) {
	draft := &model.Draft{}
	var sentAt sql.NullTime
	err := row.Scan(
		&draft.ID, &draft.Prompt, &draft.Content, &draft.Subject,
		&draft.Recipient, &draft.Tone, &draft.Type, &draft.Status,
		&draft.CreatedAt, &sentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if sentAt.Valid {
		t := sentAt.Time
		draft.SentAt = &t
	}
	return draft, nil
}
