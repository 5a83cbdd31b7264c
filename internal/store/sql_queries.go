package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared squirrel builder configured for PostgreSQL
// dollar-numbered placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns lists every persisted column of the users table in scan order.
var userColumns = []string{
	"user_id",
	"username",
	"email",
	"phone",
	"full_name",
	"bio",
	"gender",
	"hashed_password",
	"token_balance",
	"profile_picture",
	"is_active",
	"is_superuser",
	"created_at",
	"updated_at",
}

// filterableUserColumns restricts which columns may appear in client-supplied
// filter and sort parameters. Unknown names are rejected before any SQL is
// built.
var filterableUserColumns = map[string]struct{}{
	"user_id":      {},
	"username":     {},
	"email":        {},
	"gender":       {},
	"is_active":    {},
	"is_superuser": {},
	"created_at":   {},
	"updated_at":   {},
}

const (
	createUser = `INSERT INTO users (username, email, phone, full_name, bio, gender, hashed_password, token_balance, profile_picture, is_superuser)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING user_id, username, email, phone, full_name, bio, gender, hashed_password, token_balance, profile_picture, is_active, is_superuser, created_at, updated_at;`

	findUserByID = `SELECT user_id, username, email, phone, full_name, bio, gender, hashed_password, token_balance, profile_picture, is_active, is_superuser, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	findUserByUsername = `SELECT user_id, username, email, phone, full_name, bio, gender, hashed_password, token_balance, profile_picture, is_active, is_superuser, created_at, updated_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT user_id, username, email, phone, full_name, bio, gender, hashed_password, token_balance, profile_picture, is_active, is_superuser, created_at, updated_at
    FROM users
    WHERE email = $1;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`

	softDeleteUser = `UPDATE users SET is_active = FALSE, updated_at = NOW()
    WHERE user_id = $1
    RETURNING user_id, username, email, phone, full_name, bio, gender, hashed_password, token_balance, profile_picture, is_active, is_superuser, created_at, updated_at;`
)

// defaultListLimit caps collection queries when the caller does not specify
// a page size.
const defaultListLimit = 100

// buildListQuery assembles the paginated SELECT for List from the given
// options. Filter and sort columns are validated against
// [filterableUserColumns].
func buildListQuery(opts ListOptions) (string, []any, error) {
	builder := psql.Select(userColumns...).From("users")

	builder, err := applyFilter(builder, opts.Filter)
	if err != nil {
		return "", nil, err
	}

	for _, column := range opts.OrderBy {
		direction := "ASC"
		name := column
		if strings.HasPrefix(column, "-") {
			direction = "DESC"
			name = column[1:]
		}
		if _, ok := filterableUserColumns[name]; !ok {
			return "", nil, fmt.Errorf("%w: unknown sort column %q", ErrBuildingSQLQuery, name)
		}
		builder = builder.OrderBy(name + " " + direction)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	builder = builder.Offset(opts.Offset).Limit(limit)

	return builder.ToSql()
}

// buildCountQuery assembles the COUNT companion of [buildListQuery].
func buildCountQuery(opts ListOptions) (string, []any, error) {
	builder := psql.Select("COUNT(*)").From("users")

	builder, err := applyFilter(builder, opts.Filter)
	if err != nil {
		return "", nil, err
	}

	return builder.ToSql()
}

// buildUpdateQuery assembles a partial UPDATE that sets only the given
// fields, bumps updated_at, and returns the full updated row.
func buildUpdateQuery(id int64, fields map[string]any) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	for name := range fields {
		if _, ok := updatableUserColumns[name]; !ok {
			return "", nil, fmt.Errorf("%w: unknown update column %q", ErrBuildingSQLQuery, name)
		}
	}

	return psql.Update("users").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

// updatableUserColumns restricts which columns the partial UPDATE may touch.
var updatableUserColumns = map[string]struct{}{
	"email":           {},
	"phone":           {},
	"full_name":       {},
	"bio":             {},
	"gender":          {},
	"hashed_password": {},
	"token_balance":   {},
	"profile_picture": {},
	"is_active":       {},
	"is_superuser":    {},
}

func applyFilter(builder sq.SelectBuilder, filter map[string]any) (sq.SelectBuilder, error) {
	for name := range filter {
		if _, ok := filterableUserColumns[name]; !ok {
			return builder, fmt.Errorf("%w: unknown filter column %q", ErrBuildingSQLQuery, name)
		}
	}
	if len(filter) > 0 {
		builder = builder.Where(sq.Eq(filter))
	}
	return builder, nil
}
