package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/anvesh/phototree/internal/photo"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// PhotoRepository provides CRUD operations for the session photo
// collection.
type PhotoRepository struct {
	db *sql.DB
}

// Photos returns the photo repository for this store.
func (s *Store) Photos() *PhotoRepository {
	return &PhotoRepository{db: s.db}
}

const photoColumns = `id, source_url,
	tree_x, tree_y, tree_z,
	scatter_x, scatter_y, scatter_z,
	rot_x, rot_y, rot_z,
	created_at`

// Create inserts a new photo into the collection.
func (r *PhotoRepository) Create(p *photo.Photo) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO photos (`+photoColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SourceURL,
		p.TreePosition.X, p.TreePosition.Y, p.TreePosition.Z,
		p.ScatterPosition.X, p.ScatterPosition.Y, p.ScatterPosition.Z,
		p.RestRotation.X, p.RestRotation.Y, p.RestRotation.Z,
		p.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a photo by its ID.
func (r *PhotoRepository) GetByID(id string) (*photo.Photo, error) {
	row := r.db.QueryRow(
		`SELECT `+photoColumns+` FROM photos WHERE id = ?`,
		id,
	)

	p, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// List retrieves all photos in import order.
func (r *PhotoRepository) List() ([]*photo.Photo, error) {
	rows, err := r.db.Query(
		`SELECT ` + photoColumns + ` FROM photos ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*photo.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

// Count returns the number of photos in the collection.
func (r *PhotoRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Random returns one photo chosen uniformly at random from the collection.
func (r *PhotoRepository) Random() (*photo.Photo, error) {
	row := r.db.QueryRow(
		`SELECT ` + photoColumns + ` FROM photos ORDER BY RANDOM() LIMIT 1`,
	)

	p, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// Delete removes a photo from the collection by its ID.
func (r *PhotoRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPhoto(s scanner) (*photo.Photo, error) {
	p := &photo.Photo{}

	err := s.Scan(
		&p.ID, &p.SourceURL,
		&p.TreePosition.X, &p.TreePosition.Y, &p.TreePosition.Z,
		&p.ScatterPosition.X, &p.ScatterPosition.Y, &p.ScatterPosition.Z,
		&p.RestRotation.X, &p.RestRotation.Y, &p.RestRotation.Z,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}
