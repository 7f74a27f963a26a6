package repository

import (
	"context"
	"fmt"

	"github.com/azizikri/edulearn/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertCourseSQL = `INSERT INTO courses (id, position, title, description, instructor, price, rating, students, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`
	insertBannerSQL = `INSERT INTO banners (id, position, title, subtitle, image_url)
VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`

	selectCoursesSQL = `SELECT id, title, description, instructor, price, rating, students, image FROM courses ORDER BY position, id`
	selectBannersSQL = `SELECT id, title, subtitle, image_url FROM banners ORDER BY position, id`
)

type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SeedCatalog inserts the given records, leaving rows that already exist untouched.
func SeedCatalog(ctx context.Context, db Execer, courses []domain.Course, banners []domain.Banner) error {
	for i, c := range courses {
		_, err := db.Exec(ctx, insertCourseSQL,
			c.ID, i, c.Title, c.Description, c.Instructor, c.Price, c.Rating, c.Students, c.Image)
		if err != nil {
			return fmt.Errorf("seed course %s: %w", c.ID, err)
		}
	}
	for i, b := range banners {
		if _, err := db.Exec(ctx, insertBannerSQL, b.ID, i, b.Title, b.Subtitle, b.ImageURL); err != nil {
			return fmt.Errorf("seed banner %s: %w", b.ID, err)
		}
	}
	return nil
}

// LoadSnapshot reads the full catalog in stored order.
func LoadSnapshot(ctx context.Context, q Querier) (*Snapshot, error) {
	rows, err := q.Query(ctx, selectCoursesSQL)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	courses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Course])
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}

	rows, err = q.Query(ctx, selectBannersSQL)
	if err != nil {
		return nil, fmt.Errorf("query banners: %w", err)
	}
	banners, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Banner])
	if err != nil {
		return nil, fmt.Errorf("scan banners: %w", err)
	}

	return NewSnapshot(courses, banners)
}

// OpenPostgresSnapshot migrates and seeds the database behind dsn, then loads
// the catalog once. The pool is closed before returning.
func OpenPostgresSnapshot(ctx context.Context, dsn string) (*Snapshot, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		return nil, err
	}
	if err := SeedCatalog(ctx, pool, DefaultCourses(), DefaultBanners()); err != nil {
		return nil, err
	}

	return LoadSnapshot(ctx, pool)
}
