package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// Schema creates the projects table used by PostgresRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
    project_id     TEXT PRIMARY KEY,
    title          TEXT NOT NULL,
    description    TEXT NOT NULL,
    tags           TEXT[] NOT NULL DEFAULT '{}',
    category       TEXT NOT NULL DEFAULT '',
    project_date   TEXT NOT NULL,
    images         JSONB NOT NULL DEFAULT '[]',
    is_highlighted BOOLEAN NOT NULL DEFAULT FALSE,
    status         TEXT NOT NULL DEFAULT 'draft',
    sort_order     INTEGER NOT NULL DEFAULT 0,
    extra          JSONB NOT NULL DEFAULT '{}',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
`

const projectColumns = `project_id, title, description, tags, category, project_date, images,
is_highlighted, status, sort_order, extra, created_at, updated_at`

// PostgresRepository persists projects in PostgreSQL through a pgx pool.
type PostgresRepository struct {
	db  *pgxpool.Pool
	now Clock
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, now: utcNow}
}

// Migrate applies Schema.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate projects: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, status domain.Status) ([]domain.ProjectRecord, error) {
	q := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, string(status))
	}
	q += ` ORDER BY sort_order DESC, project_date DESC, updated_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ProjectRecord, 0, 16)
	for rows.Next() {
		rec, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, projectID string) (*domain.ProjectRecord, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1`
	rec, err := scanProject(r.db.QueryRow(ctx, q, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error) {
	rec := newRecord(in, r.now())
	if err := r.insert(ctx, rec); err != nil {
		// unique violation on project_id
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1 FOR UPDATE`
	existing, err := scanProject(tx.QueryRow(ctx, q, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	updated := patch.Apply(*existing, r.now())
	images, extra, err := encodeJSONColumns(updated)
	if err != nil {
		return nil, err
	}

	const upd = `
UPDATE projects
SET title = $2, description = $3, tags = $4, category = $5, project_date = $6, images = $7,
    is_highlighted = $8, status = $9, sort_order = $10, extra = $11, updated_at = $12
WHERE project_id = $1;
`
	if _, err := tx.Exec(ctx, upd, updated.ProjectID, updated.Title, updated.Description, updated.Tags,
		string(updated.Category), updated.ProjectDate, images, updated.IsHighlighted, string(updated.Status),
		updated.SortOrder, extra, updated.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, projectID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresRepository) insert(ctx context.Context, rec domain.ProjectRecord) error {
	images, extra, err := encodeJSONColumns(rec)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO projects (project_id, title, description, tags, category, project_date, images,
                      is_highlighted, status, sort_order, extra, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`
	_, err = r.db.Exec(ctx, q, rec.ProjectID, rec.Title, rec.Description, rec.Tags, string(rec.Category),
		rec.ProjectDate, images, rec.IsHighlighted, string(rec.Status), rec.SortOrder, extra,
		rec.CreatedAt, rec.UpdatedAt)
	return err
}

func encodeJSONColumns(rec domain.ProjectRecord) ([]byte, []byte, error) {
	images, err := json.Marshal(rec.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal images: %w", err)
	}
	extra, err := json.Marshal(rec.Extra)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal extra: %w", err)
	}
	return images, extra, nil
}

func scanProject(row pgx.Row) (*domain.ProjectRecord, error) {
	var (
		rec              domain.ProjectRecord
		category, status string
		images, extra    []byte
	)
	err := row.Scan(&rec.ProjectID, &rec.Title, &rec.Description, &rec.Tags, &category, &rec.ProjectDate,
		&images, &rec.IsHighlighted, &status, &rec.SortOrder, &extra, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Category = domain.Category(category)
	rec.Status = domain.Status(status)
	if err := json.Unmarshal(images, &rec.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if err := json.Unmarshal(extra, &rec.Extra); err != nil {
		return nil, fmt.Errorf("decode extra: %w", err)
	}
	return &rec, nil
}
