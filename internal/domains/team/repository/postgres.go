package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"research-blog-backend/internal/domains/team"
	infradb "research-blog-backend/internal/infrastructure/database"
	"research-blog-backend/internal/shared/query"
	"research-blog-backend/pkg/database"
)

const ownerKind = "team"

var selectColumns = []string{
	"id", "unique_id", "name", "description",
	"image", "google_scholar", "linked_in", "orcid",
	"created_at", "updated_at",
}

type postgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) team.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, t *team.Team) error {
	query := `
		INSERT INTO teams (
			id, unique_id, name, description,
			image, google_scholar, linked_in, orcid
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.ID, t.UniqueID, t.Name, t.Description,
		t.Image, t.GoogleScholar, t.LinkedIn, t.ORCID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return infradb.TranslateWriteError("create team", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	query := `
		SELECT
			t.id, t.unique_id, t.name, t.description,
			t.image, t.google_scholar, t.linked_in, t.orcid,
			t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM posts p WHERE p.owner_kind = $2 AND p.owner_id = t.id)
		FROM teams t
		WHERE t.id = $1
	`

	t, err := scanTeam(r.db.QueryRow(ctx, query, id, ownerKind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, team.NotFound(id)
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check team exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, params team.ListParams) ([]team.Team, int64, error) {
	listing := &query.Listing{
		Table:     "teams",
		Columns:   selectColumns,
		Order:     query.Order{Column: string(params.Sort.Field), Direction: params.Sort.Direction},
		Page:      params.Page,
		PostCount: &query.PostCountJoin{OwnerKind: ownerKind},
	}
	listing.Where(query.Search("name", params.Search))

	countSQL, countArgs := listing.CountSQL()
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count teams: %w", err)
	}

	selectSQL, args := listing.SelectSQL()
	rows, err := r.db.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]team.Team, 0, params.Page.Limit)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, t *team.Team) error {
	query := `
		UPDATE teams SET
			name = $2,
			description = $3,
			image = $4,
			google_scholar = $5,
			linked_in = $6,
			orcid = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.ID, t.Name, t.Description,
		t.Image, t.GoogleScholar, t.LinkedIn, t.ORCID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.NotFound(t.ID)
		}
		return infradb.TranslateWriteError("update team", err)
	}
	return nil
}

func (r *postgresRepository) DeleteWithPosts(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var postIDs []uuid.UUID
	err := database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM teams WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return team.NotFound(id)
			}
			return fmt.Errorf("lock team: %w", err)
		}

		ids, err := infradb.DeleteOwnedPosts(ctx, tx, ownerKind, id)
		if err != nil {
			return fmt.Errorf("delete team posts: %w", err)
		}
		postIDs = ids
		if _, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return postIDs, nil
}

func scanTeam(row pgx.Row) (*team.Team, error) {
	var (
		t     team.Team
		count int64
	)
	err := row.Scan(
		&t.ID, &t.UniqueID, &t.Name, &t.Description,
		&t.Image, &t.GoogleScholar, &t.LinkedIn, &t.ORCID,
		&t.CreatedAt, &t.UpdatedAt,
		&count,
	)
	if err != nil {
		return nil, err
	}
	t.PostCount = &count
	return &t, nil
}
