package layout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// Repository defines the interface for layout persistence operations.
type Repository interface {
	Save(ctx context.Context, layout *Layout) error
	Get(ctx context.Context, id string) (*Layout, error)
	List(ctx context.Context) ([]Layout, error)
	Delete(ctx context.Context, id string) error

	SaveQuick(ctx context.Context, objects []hasp.Object) error
	LoadQuick(ctx context.Context) ([]hasp.Object, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed layout repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save inserts or updates a layout. A missing ID gets a fresh UUID;
// CreatedAt is set on first save and UpdatedAt on every save.
func (r *SQLiteRepository) Save(ctx context.Context, layout *Layout) error {
	if layout.ID == "" {
		layout.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = now
	}
	layout.UpdatedAt = now

	pages, err := json.Marshal(layout.Pages)
	if err != nil {
		return fmt.Errorf("marshalling pages for layout %s: %w", layout.ID, err)
	}

	const query = `INSERT INTO layouts (id, name, device_id, description, pages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			device_id = excluded.device_id,
			description = excluded.description,
			pages = excluded.pages,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		layout.ID, layout.Name, layout.DeviceID, layout.Description, string(pages),
		layout.CreatedAt.Format(time.RFC3339), layout.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving layout %s: %w", layout.ID, err)
	}
	return nil
}

// Get returns a single layout by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Layout, error) {
	const query = `SELECT id, name, device_id, description, pages, created_at, updated_at
		FROM layouts WHERE id = ?`
	layout, err := scanLayout(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("layout %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return layout, nil
}

// List returns all layouts, most recently updated first.
func (r *SQLiteRepository) List(ctx context.Context) ([]Layout, error) {
	const query = `SELECT id, name, device_id, description, pages, created_at, updated_at
		FROM layouts ORDER BY updated_at DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing layouts: %w", err)
	}
	defer rows.Close()

	var layouts []Layout
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, *layout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layouts: %w", err)
	}
	return layouts, nil
}

// Delete removes a layout by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM layouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting layout %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("layout %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveQuick overwrites the single scratch save with the given objects.
func (r *SQLiteRepository) SaveQuick(ctx context.Context, objects []hasp.Object) error {
	if objects == nil {
		objects = []hasp.Object{}
	}
	data, err := json.Marshal(objects)
	if err != nil {
		return fmt.Errorf("marshalling quick layout: %w", err)
	}

	const query = `INSERT INTO quick_layout (id, objects, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			objects = excluded.objects,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query, string(data),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving quick layout: %w", err)
	}
	return nil
}

// LoadQuick returns the scratch save, or an empty list if none exists.
func (r *SQLiteRepository) LoadQuick(ctx context.Context) ([]hasp.Object, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		"SELECT objects FROM quick_layout WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []hasp.Object{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading quick layout: %w", err)
	}

	var objects []hasp.Object
	if err := json.Unmarshal([]byte(data), &objects); err != nil {
		return nil, fmt.Errorf("unmarshalling quick layout: %w", err)
	}
	return objects, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLayout(row scanner) (*Layout, error) {
	var l Layout
	var pages, createdAt, updatedAt string
	if err := row.Scan(&l.ID, &l.Name, &l.DeviceID, &l.Description,
		&pages, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning layout row: %w", err)
	}

	if err := json.Unmarshal([]byte(pages), &l.Pages); err != nil {
		return nil, fmt.Errorf("unmarshalling pages for layout %s: %w", l.ID, err)
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is ours
	l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is ours
	return &l, nil
}
