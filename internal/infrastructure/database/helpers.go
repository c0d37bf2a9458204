package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"research-blog-backend/internal/shared/apperror"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02"
	codeCheckViolation      = "23514"
)

func pgCode(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// IsUniqueViolation reports a duplicate key error and the violated constraint.
func IsUniqueViolation(err error) (string, bool) {
	code, constraint, ok := pgCode(err)
	return constraint, ok && code == codeUniqueViolation
}

// IsForeignKeyViolation reports a broken reference.
func IsForeignKeyViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == codeForeignKeyViolation
}

// IsInvalidInput reports malformed input rejected by Postgres,
// such as a value that does not parse as the column type or fails a CHECK.
func IsInvalidInput(err error) bool {
	code, _, ok := pgCode(err)
	return ok && (code == codeInvalidTextRep || code == codeCheckViolation)
}

var (
	ErrDuplicate    = apperror.Conflict("Duplicate field value entered")
	ErrInvalidInput = apperror.Validation("Invalid field value")
)

// TranslateWriteError maps constraint failures of an INSERT or UPDATE onto the
// error taxonomy. Other errors are wrapped with op.
func TranslateWriteError(op string, err error) error {
	if _, ok := IsUniqueViolation(err); ok {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	if IsInvalidInput(err) || IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// DeleteOwnedPosts removes every post of one owner inside tx and returns the
// ids of the removed posts so their stored images can be cleaned up later.
func DeleteOwnedPosts(ctx context.Context, tx pgx.Tx, ownerKind string, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx,
		`DELETE FROM posts WHERE owner_kind = $1 AND owner_id = $2 RETURNING id`,
		ownerKind, ownerID,
	)
	if err != nil {
		return nil, err
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, err
	}
	return ids, nil
}
