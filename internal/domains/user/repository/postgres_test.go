package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/domains/user"
	"research-blog-backend/internal/shared/query"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func userRow(id uuid.UUID, name string, role user.Role, posts int64) []any {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var none *string
	return []any{
		id, uuid.New(), name, name + "@example.com", role,
		none, none, none, none, none,
		now, now,
		posts,
	}
}

var rowColumns = []string{
	"id", "unique_id", "name", "email", "role",
	"image", "description", "google_scholar", "linked_in", "orcid",
	"created_at", "updated_at", "post_count",
}

func TestCreate_DuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &user.User{ID: uuid.New(), Email: "a@b.com", Role: user.RoleUser})

	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_FillsTimestamps(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &user.User{ID: uuid.New(), Email: "a@b.com", Role: user.RoleUser}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectQuery("FROM users u").
		WithArgs(id, "user").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), id)

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestFindByID_IncludesPostCount(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectQuery("FROM users u").
		WithArgs(id, "user").
		WillReturnRows(pgxmock.NewRows(rowColumns).AddRow(userRow(id, "ann", user.RoleAdmin, 3)...))

	u, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, user.RoleAdmin, u.Role)
	require.NotNil(t, u.PostCount)
	assert.Equal(t, int64(3), *u.PostCount)
	assert.Empty(t, u.PasswordHash)
}

func TestList_CountsFilteredRowsAndPaginates(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)

	params := user.ListParams{
		Sort: query.Sort[user.SortField]{Field: user.SortByName, Direction: query.Descending},
		Page: query.Page{Number: 2, Limit: 10},
		Role: "admin",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "users" t WHERE t."role" = $1`)).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(25)))

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY t."name" DESC, t."id" DESC LIMIT $3 OFFSET $4`)).
		WithArgs("user", "admin", 10, 10).
		WillReturnRows(pgxmock.NewRows(rowColumns).
			AddRow(userRow(uuid.New(), "zed", user.RoleAdmin, 0)...).
			AddRow(userRow(uuid.New(), "amy", user.RoleAdmin, 2)...))

	users, total, err := repo.List(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, users, 2)
	assert.Equal(t, "zed", users[0].Name)
	assert.Equal(t, int64(2), *users[1].PostCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_KeepsHashWhenPasswordAbsent(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	u := &user.User{ID: uuid.New(), Name: "ann", Email: "ann@example.com", Role: user.RoleUser}
	var noHash *string

	mock.ExpectQuery(regexp.QuoteMeta("password_hash = COALESCE($5, password_hash)")).
		WithArgs(u.ID, u.Name, u.Email, u.Role, noHash,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	require.NoError(t, repo.Update(context.Background(), u, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithPosts_DeletesPostsBeforeUser(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	postA, postB := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM posts WHERE owner_kind = $1 AND owner_id = $2 RETURNING id")).
		WithArgs("user", id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(postA).AddRow(postB))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	postIDs, err := repo.DeleteWithPosts(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{postA, postB}, postIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithPosts_MissingUserRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	postIDs, err := repo.DeleteWithPosts(context.Background(), id)

	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Nil(t, postIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
