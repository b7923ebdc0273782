package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bloglist/internal/common"
	"bloglist/internal/models"
)

// BlogRepository defines the persistence operations required by the
// blog service.
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	// UpdateLikes overwrites the likes counter and returns the updated
	// blog, or common.ErrNotFound.
	UpdateLikes(ctx context.Context, id string, likes int64) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	ListBlogsWithOwners(ctx context.Context) ([]models.BlogWithOwner, error)
}

// OwnerRepository defines the user-side operations the blog service
// needs to resolve identities and maintain the owned-blog list.
type OwnerRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	AppendBlog(ctx context.Context, userID, blogID string) error
	RemoveBlog(ctx context.Context, userID, blogID string) error
}

// CreateBlogRequest carries the fields accepted on blog creation.
// Likes is optional and defaults to zero.
type CreateBlogRequest struct {
	Title  string
	URL    string
	Author string
	Likes  *int64
}

// BlogService implements the blog ledger: listing, authenticated
// creation, likes updates, and owner-only deletion. Creation and
// deletion keep the owner's blog list in step with the blog rows.
type BlogService struct {
	blogs  BlogRepository
	owners OwnerRepository
}

// NewBlogService constructs a BlogService from its repositories.
func NewBlogService(blogs BlogRepository, owners OwnerRepository) *BlogService {
	return &BlogService{blogs: blogs, owners: owners}
}

// resolveOwner loads the user a verified token was issued for. A
// subject id with no matching user yields common.ErrUnknownUser.
func (s *BlogService) resolveOwner(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.owners.GetUserByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all blogs annotated with their owner projection.
func (s *BlogService) List(ctx context.Context) ([]models.BlogWithOwner, error) {
	return s.blogs.ListBlogsWithOwners(ctx)
}

// Create validates req, persists a new blog owned by userID, and
// appends its id to the owner's blog list. The two writes are separate
// statements; the ownership reconciler repairs a crash between them.
func (s *BlogService) Create(ctx context.Context, userID string, req CreateBlogRequest) (*models.Blog, error) {
	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Title == "" || req.URL == "" {
		return nil, common.NewValidation("title or url missing")
	}
	var likes int64
	if req.Likes != nil {
		if *req.Likes < 0 {
			return nil, common.NewValidation("likes must not be negative")
		}
		likes = *req.Likes
	}

	blog := &models.Blog{
		ID:     uuid.NewString(),
		Title:  req.Title,
		URL:    req.URL,
		Author: req.Author,
		Likes:  likes,
		Owner:  owner.ID,
	}
	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}
	if err := s.owners.AppendBlog(ctx, owner.ID, blog.ID); err != nil {
		return nil, err
	}
	return blog, nil
}

// UpdateLikes applies a partial update to the blog with the given id.
// Only the likes field is honored; when it is absent the stored blog is
// returned unchanged. No ownership check applies here.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes *int64) (*models.Blog, error) {
	if likes == nil {
		return s.blogs.GetBlogByID(ctx, id)
	}
	if *likes < 0 {
		return nil, common.NewValidation("likes must not be negative")
	}
	return s.blogs.UpdateLikes(ctx, id, *likes)
}

// Delete removes the blog with the given id on behalf of userID. Only
// the owner may delete; a missing blog is reported as
// common.ErrNotFound. The blog id is also removed from the owner's
// blog list.
func (s *BlogService) Delete(ctx context.Context, userID, blogID string) error {
	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}
	blog, err := s.blogs.GetBlogByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.Owner != owner.ID {
		return common.ErrForbidden
	}
	if err := s.blogs.DeleteBlog(ctx, blogID); err != nil {
		return err
	}
	return s.owners.RemoveBlog(ctx, owner.ID, blogID)
}
