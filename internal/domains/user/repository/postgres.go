package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"research-blog-backend/internal/domains/user"
	infradb "research-blog-backend/internal/infrastructure/database"
	"research-blog-backend/internal/shared/query"
	"research-blog-backend/pkg/database"
)

// ownerKind is the owner_kind value of posts belonging to a user.
const ownerKind = "user"

// Columns returned by every read. password_hash is deliberately absent.
var selectColumns = []string{
	"id", "unique_id", "name", "email", "role",
	"image", "description", "google_scholar", "linked_in", "orcid",
	"created_at", "updated_at",
}

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) user.Repository {
	return &postgresRepository{db: db}
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, unique_id, name, email, role, password_hash,
			image, description, google_scholar, linked_in, orcid
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		u.ID,
		u.UniqueID,
		u.Name,
		u.Email,
		u.Role,
		u.PasswordHash,
		u.Image,
		u.Description,
		u.GoogleScholar,
		u.LinkedIn,
		u.ORCID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT
			u.id, u.unique_id, u.name, u.email, u.role,
			u.image, u.description, u.google_scholar, u.linked_in, u.orcid,
			u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM posts p WHERE p.owner_kind = $2 AND p.owner_id = u.id)
		FROM users u
		WHERE u.id = $1
	`

	var (
		u     user.User
		count int64
	)
	err := r.db.QueryRow(ctx, query, id, ownerKind).Scan(
		&u.ID, &u.UniqueID, &u.Name, &u.Email, &u.Role,
		&u.Image, &u.Description, &u.GoogleScholar, &u.LinkedIn, &u.ORCID,
		&u.CreatedAt, &u.UpdatedAt,
		&count,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	u.PostCount = &count
	return &u, nil
}

func (r *postgresRepository) FindByEmailWithPassword(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, unique_id, name, email, role, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.UniqueID, &u.Name, &u.Email, &u.Role, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// ========================================
// LISTING
// ========================================

func (r *postgresRepository) List(ctx context.Context, params user.ListParams) ([]user.User, int64, error) {
	listing := &query.Listing{
		Table:     "users",
		Columns:   selectColumns,
		Order:     query.Order{Column: string(params.Sort.Field), Direction: params.Sort.Direction},
		Page:      params.Page,
		PostCount: &query.PostCountJoin{OwnerKind: ownerKind},
	}
	listing.Where(query.Equal("role", params.Role)).
		Where(query.Search("name", params.Search))

	countSQL, countArgs := listing.CountSQL()
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	selectSQL, args := listing.SelectSQL()
	rows, err := r.db.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, params.Page.Limit)
	for rows.Next() {
		var (
			u     user.User
			count int64
		)
		if err := rows.Scan(
			&u.ID, &u.UniqueID, &u.Name, &u.Email, &u.Role,
			&u.Image, &u.Description, &u.GoogleScholar, &u.LinkedIn, &u.ORCID,
			&u.CreatedAt, &u.UpdatedAt,
			&count,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		u.PostCount = &count
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return users, total, nil
}

// ========================================
// UPDATE / DELETE
// ========================================

func (r *postgresRepository) Update(ctx context.Context, u *user.User, newPasswordHash *string) error {
	query := `
		UPDATE users SET
			name = $2,
			email = $3,
			role = $4,
			password_hash = COALESCE($5, password_hash),
			image = $6,
			description = $7,
			google_scholar = $8,
			linked_in = $9,
			orcid = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Role,
		newPasswordHash,
		u.Image,
		u.Description,
		u.GoogleScholar,
		u.LinkedIn,
		u.ORCID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return mapWriteError(err)
	}

	return nil
}

// DeleteWithPosts locks the user row so no post can be attached to it while
// its posts are removed. Posts go first.
func (r *postgresRepository) DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var postIDs []uuid.UUID
	err := database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}

		ids, err := infradb.DeleteOwnedPosts(ctx, tx, ownerKind, id)
		if err != nil {
			return fmt.Errorf("delete user posts: %w", err)
		}
		postIDs = ids

		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return postIDs, nil
}

func mapWriteError(err error) error {
	if constraint, ok := infradb.IsUniqueViolation(err); ok && constraint == "users_email_key" {
		return user.ErrEmailAlreadyExists
	}
	return infradb.TranslateWriteError("write user", err)
}
