package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"research-blog-backend/internal/domains/post"
	infradb "research-blog-backend/internal/infrastructure/database"
	"research-blog-backend/internal/shared/query"
	"research-blog-backend/pkg/database"
)

var selectColumns = []string{
	"id", "unique_id", "title", "description", "topics",
	"cover_image", "body_images", "owner_kind", "owner_id",
	"created_at", "updated_at",
}

// ownerTables - table holding each kind of owner.
var ownerTables = map[post.OwnerKind]string{
	post.OwnerUser:   "users",
	post.OwnerAuthor: "authors",
	post.OwnerTeam:   "teams",
}

type postgresRepository struct {
	db database.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db database.DB) post.Repository {
	return &postgresRepository{db: db}
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

// Create inserts the post through a SELECT on the owner row. If the owner is
// missing nothing is inserted; if the owner is being deleted the FOR SHARE
// lock waits for that transaction and then finds no row.
func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	table, ok := ownerTables[p.OwnerKind]
	if !ok {
		return fmt.Errorf("create post: unknown owner kind %q", p.OwnerKind)
	}

	query := fmt.Sprintf(`
		INSERT INTO posts (
			id, unique_id, title, description, topics,
			cover_image, body_images, owner_kind, owner_id
		)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::text[], $6::text, $7::text[], $8::text, o.id
		FROM %s o
		WHERE o.id = $9
		FOR SHARE
		RETURNING created_at, updated_at
	`, table)

	err := r.db.QueryRow(ctx, query,
		p.ID, p.UniqueID, p.Title, p.Description, p.Topics,
		p.CoverImage, textArray(p.BodyImages), string(p.OwnerKind), p.OwnerID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.OwnerNotFound(p.OwnerKind, p.OwnerID)
		}
		return infradb.TranslateWriteError("create post", err)
	}

	return nil
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

// GetByID embeds the owner's name. Only the join matching the row's
// owner_kind can produce a row; the owner summary stays nil when none does.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `
		SELECT
			p.id, p.unique_id, p.title, p.description, p.topics,
			p.cover_image, p.body_images, p.owner_kind, p.owner_id,
			p.created_at, p.updated_at,
			COALESCE(u.name, a.name, tm.name) AS owner_name
		FROM posts p
		LEFT JOIN users u ON p.owner_kind = 'user' AND u.id = p.owner_id
		LEFT JOIN authors a ON p.owner_kind = 'author' AND a.id = p.owner_id
		LEFT JOIN teams tm ON p.owner_kind = 'team' AND tm.id = p.owner_id
		WHERE p.id = $1
	`

	var ownerName *string
	p, err := scanPost(r.db.QueryRow(ctx, query, id), &ownerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.NotFound(id)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	if ownerName != nil {
		p.Owner = &post.OwnerSummary{ID: p.OwnerID, Name: *ownerName}
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, params post.ListParams) ([]post.Post, int64, error) {
	listing := &query.Listing{
		Table:   "posts",
		Columns: selectColumns,
		Order:   query.Order{Column: string(params.Sort.Field), Direction: params.Sort.Direction},
		Page:    params.Page,
	}
	listing.Where(query.Equal("owner_kind", string(params.OwnerKind)))
	if params.Owner != nil {
		listing.Where(query.Equal("owner_id", *params.Owner))
	}
	listing.Where(query.Contains("topics", params.Topic)).
		Where(query.Search("title", params.Search))

	countSQL, countArgs := listing.CountSQL()
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	selectSQL, args := listing.SelectSQL()
	rows, err := r.db.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, params.Page.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, total, nil
}

// ════════════════════════════════════════════════════════════════
// UPDATE
// ════════════════════════════════════════════════════════════════

// Update never touches owner_kind or owner_id.
func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts SET
			title = $2,
			description = $3,
			topics = $4,
			cover_image = $5,
			body_images = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Description, p.Topics, p.CoverImage, textArray(p.BodyImages),
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.NotFound(p.ID)
		}
		return infradb.TranslateWriteError("update post", err)
	}

	return nil
}

// ════════════════════════════════════════════════════════════════
// DELETE
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.NotFound(id)
	}
	return nil
}

// scanPost reads selectColumns in order, followed by any extra columns.
func scanPost(row pgx.Row, extra ...any) (*post.Post, error) {
	var p post.Post
	dest := []any{
		&p.ID, &p.UniqueID, &p.Title, &p.Description, &p.Topics,
		&p.CoverImage, &p.BodyImages, &p.OwnerKind, &p.OwnerID,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// textArray keeps a nil slice from being written as NULL.
func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
