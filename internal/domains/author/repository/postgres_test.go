package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-blog-backend/internal/domains/author"
	"research-blog-backend/internal/shared/apperror"
	"research-blog-backend/internal/shared/query"
)

var authorColumns = []string{
	"id", "unique_id", "name", "topic", "description",
	"image", "facebook", "twitter", "instagram",
	"created_at", "updated_at", "post_count",
}

func authorRow(id uuid.UUID, name string, posts int64) []any {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var none *string
	return []any{
		id, uuid.New(), name, []string{"ml", "nlp"}, "bio",
		none, none, none, none,
		now, now, posts,
	}
}

func TestGetByID_NotFoundMentionsID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectQuery("FROM authors a").WithArgs(id, "author").WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	assert.Equal(t, "Author not found with id of "+id.String(), apperror.From(err).Message)
}

func TestList_FiltersByTopicAndJoinsPostCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	params := author.ListParams{
		Sort:  author.DefaultSort,
		Page:  query.DefaultPagination(),
		Topic: "ml",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "authors" t WHERE $1 = ANY(t."topic")`)).
		WithArgs("ml").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`LEFT JOIN (SELECT owner_id, COUNT(*) AS post_count FROM posts WHERE owner_kind = $1 GROUP BY owner_id) pc`)).
		WithArgs("author", "ml", 10, 0).
		WillReturnRows(pgxmock.NewRows(authorColumns).AddRow(authorRow(uuid.New(), "Ada", 3)...))

	authors, total, err := repo.List(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, authors, 1)
	assert.Equal(t, []string{"ml", "nlp"}, authors[0].Topic)
	assert.Equal(t, int64(3), *authors[0].PostCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithPosts_PostsGoFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM authors WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	postID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM posts WHERE owner_kind = $1 AND owner_id = $2 RETURNING id")).
		WithArgs("author", id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(postID))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM authors")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	postIDs, err := repo.DeleteWithPosts(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{postID}, postIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithPosts_FailureKeepsAuthor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectQuery("DELETE FROM posts").WithArgs("author", id).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = repo.DeleteWithPosts(context.Background(), id)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
