// Package repository provides persistence implementations for the user
// and blog services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"bloglist/internal/common"
	"bloglist/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint
// violation.
const uniqueViolation = "23505"

// PostgresUserRepository implements user persistence against a
// PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new user row. A username collision is reported
// as common.ErrDuplicate.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, name, password_hash, blogs)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, user.Name, user.PasswordHash, pq.Array(user.Blogs))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("username %q: %w", user.Username, common.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user by id. Returns common.ErrNotFound if no
// row matches.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, name, password_hash, blogs FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, pq.Array(&user.Blogs))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches a user by username. Returns
// common.ErrNotFound if no row matches.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, name, password_hash, blogs FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, pq.Array(&user.Blogs))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// AppendBlog appends blogID to the user's owned-blog list.
func (r *PostgresUserRepository) AppendBlog(ctx context.Context, userID, blogID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET blogs = array_append(blogs, $2) WHERE id = $1
	`, userID, blogID)
	if err != nil {
		return fmt.Errorf("append blog: %w", err)
	}
	return nil
}

// RemoveBlog removes blogID from the user's owned-blog list.
func (r *PostgresUserRepository) RemoveBlog(ctx context.Context, userID, blogID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET blogs = array_remove(blogs, $2) WHERE id = $1
	`, userID, blogID)
	if err != nil {
		return fmt.Errorf("remove blog: %w", err)
	}
	return nil
}

// ListUsersWithBlogs returns all users, each annotated with the reduced
// projection of its owned blogs in list order. No credential material
// is included.
func (r *PostgresUserRepository) ListUsersWithBlogs(ctx context.Context) ([]models.UserWithBlogs, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, name, blogs FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.UserWithBlogs
	var owned [][]string
	for rows.Next() {
		var u models.UserWithBlogs
		var ids []string
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, pq.Array(&ids)); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Blogs = []models.BlogRef{}
		users = append(users, u)
		owned = append(owned, ids)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	refs, err := r.blogRefs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		for _, id := range owned[i] {
			if ref, ok := refs[id]; ok {
				users[i].Blogs = append(users[i].Blogs, ref)
			}
		}
	}
	return users, nil
}

// blogRefs loads the reduced projection of every blog, keyed by id.
func (r *PostgresUserRepository) blogRefs(ctx context.Context) (map[string]models.BlogRef, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, author, url, likes FROM blogs
	`)
	if err != nil {
		return nil, fmt.Errorf("list blog refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]models.BlogRef)
	for rows.Next() {
		var ref models.BlogRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL, &ref.Likes); err != nil {
			return nil, fmt.Errorf("scan blog ref: %w", err)
		}
		refs[ref.ID] = ref
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blog refs: %w", err)
	}
	return refs, nil
}
