package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"research-blog-backend/internal/domains/author"
	infradb "research-blog-backend/internal/infrastructure/database"
	"research-blog-backend/internal/shared/query"
	"research-blog-backend/pkg/database"
)

const ownerKind = "author"

var selectColumns = []string{
	"id", "unique_id", "name", "topic", "description",
	"image", "facebook", "twitter", "instagram",
	"created_at", "updated_at",
}

type postgresRepository struct {
	db database.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db database.DB) author.Repository {
	return &postgresRepository{db: db}
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (
			id, unique_id, name, topic, description,
			image, facebook, twitter, instagram
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.ID, a.UniqueID, a.Name, a.Topic, a.Description,
		a.Image, a.Facebook, a.Twitter, a.Instagram,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return infradb.TranslateWriteError("create author", err)
	}

	return nil
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `
		SELECT
			a.id, a.unique_id, a.name, a.topic, a.description,
			a.image, a.facebook, a.twitter, a.instagram,
			a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM posts p WHERE p.owner_kind = $2 AND p.owner_id = a.id)
		FROM authors a
		WHERE a.id = $1
	`

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id, ownerKind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.NotFound(id)
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}
	return exists, nil
}

// List - filters compose with sort and page; the total ignores the page.
func (r *postgresRepository) List(ctx context.Context, params author.ListParams) ([]author.Author, int64, error) {
	listing := &query.Listing{
		Table:     "authors",
		Columns:   selectColumns,
		Order:     query.Order{Column: string(params.Sort.Field), Direction: params.Sort.Direction},
		Page:      params.Page,
		PostCount: &query.PostCountJoin{OwnerKind: ownerKind},
	}
	listing.Where(query.Contains("topic", params.Topic)).
		Where(query.Search("name", params.Search))

	countSQL, countArgs := listing.CountSQL()
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	selectSQL, args := listing.SelectSQL()
	rows, err := r.db.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0, params.Page.Limit)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, total, nil
}

// ════════════════════════════════════════════════════════════════
// UPDATE
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors SET
			name = $2,
			topic = $3,
			description = $4,
			image = $5,
			facebook = $6,
			twitter = $7,
			instagram = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.ID, a.Name, a.Topic, a.Description,
		a.Image, a.Facebook, a.Twitter, a.Instagram,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.NotFound(a.ID)
		}
		return infradb.TranslateWriteError("update author", err)
	}

	return nil
}

// ════════════════════════════════════════════════════════════════
// DELETE
// ════════════════════════════════════════════════════════════════

// DeleteWithPosts locks the author row, deletes its posts and then the author.
// The lock makes a concurrent post insert for this author wait and then fail
// its ownership check.
func (r *postgresRepository) DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var postIDs []uuid.UUID
	err := database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM authors WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return author.NotFound(id)
			}
			return fmt.Errorf("lock author: %w", err)
		}

		ids, err := infradb.DeleteOwnedPosts(ctx, tx, ownerKind, id)
		if err != nil {
			return fmt.Errorf("delete author posts: %w", err)
		}
		postIDs = ids

		if _, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete author: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return postIDs, nil
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var (
		a     author.Author
		count int64
	)
	err := row.Scan(
		&a.ID, &a.UniqueID, &a.Name, &a.Topic, &a.Description,
		&a.Image, &a.Facebook, &a.Twitter, &a.Instagram,
		&a.CreatedAt, &a.UpdatedAt,
		&count,
	)
	if err != nil {
		return nil, err
	}
	a.PostCount = &count
	return &a, nil
}
