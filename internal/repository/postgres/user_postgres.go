package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, name, email, email_verified, role, image, created_at, updated_at`

// FindByID fetches a single user.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// UpdateImage stores the public URL of the user's profile photo.
func (r *UserPostgres) UpdateImage(ctx context.Context, id, imageURL string) error {
	const q = `UPDATE users SET image = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, imageURL)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns a filtered page of users, newest first, with the filtered total.
// Search matches name or email case-insensitively.
func (r *UserPostgres) List(ctx context.Context, f repository.UserFilter) (*repository.PageResult[model.User], error) {
	where, args := userWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	pageArgs := append(append([]any{}, args...), f.Page.Limit, f.Page.Offset)
	q := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC, id ASC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.db.QueryContext(ctx, q, pageArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0, f.Page.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{
		Items: items,
		Total: total,
	}, nil
}

func userWhere(f repository.UserFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, "(name ILIKE $"+n+" OR email ILIKE $"+n+")")
	}
	if f.Role != nil {
		args = append(args, string(*f.Role))
		conds = append(conds, "role = $"+strconv.Itoa(len(args)))
	}
	if f.EmailVerified != nil {
		args = append(args, *f.EmailVerified)
		conds = append(conds, "email_verified = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanUser(s scanner) (*model.User, error) {
	var (
		u     model.User
		role  string
		image sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.EmailVerified, &role, &image, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	if image.Valid {
		u.Image = &image.String
	}
	return &u, nil
}
