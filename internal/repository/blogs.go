package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bloglist/internal/common"
	"bloglist/internal/models"
)

// PostgresBlogRepository implements blog persistence against a
// PostgreSQL database.
type PostgresBlogRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresBlogRepository creates a new PostgresBlogRepository with the
// given database connection.
func NewPostgresBlogRepository(db *sql.DB) *PostgresBlogRepository {
	return &PostgresBlogRepository{DB: db}
}

// CreateBlog inserts a new blog row.
func (r *PostgresBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO blogs (id, title, url, author, likes, owner)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, blog.ID, blog.Title, blog.URL, blog.Author, blog.Likes, blog.Owner)
	if err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

// GetBlogByID fetches a blog by id. Returns common.ErrNotFound if no
// row matches.
func (r *PostgresBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, url, author, likes, owner FROM blogs WHERE id = $1
	`, id).Scan(&blog.ID, &blog.Title, &blog.URL, &blog.Author, &blog.Likes, &blog.Owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog by id: %w", err)
	}
	return &blog, nil
}

// UpdateLikes overwrites the likes counter of the blog with the given id
// and returns the updated row. Returns common.ErrNotFound if no row
// matches.
func (r *PostgresBlogRepository) UpdateLikes(ctx context.Context, id string, likes int64) (*models.Blog, error) {
	var blog models.Blog
	err := r.DB.QueryRowContext(ctx, `
		UPDATE blogs SET likes = $2 WHERE id = $1
		RETURNING id, title, url, author, likes, owner
	`, id, likes).Scan(&blog.ID, &blog.Title, &blog.URL, &blog.Author, &blog.Likes, &blog.Owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	return &blog, nil
}

// DeleteBlog removes the blog row with the given id.
func (r *PostgresBlogRepository) DeleteBlog(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM blogs WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

// ListBlogsWithOwners returns all blogs, each annotated with the reduced
// projection of its owner.
func (r *PostgresBlogRepository) ListBlogsWithOwners(ctx context.Context) ([]models.BlogWithOwner, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.title, b.url, b.author, b.likes, b.owner, u.username, u.name
		FROM blogs b JOIN users u ON u.id = b.owner
	`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.BlogWithOwner
	for rows.Next() {
		var b models.BlogWithOwner
		if err := rows.Scan(&b.ID, &b.Title, &b.URL, &b.Author, &b.Likes, &b.Owner,
			&b.User.Username, &b.User.Name); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		b.User.ID = b.Owner
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}
