package service_test

import (
	"context"
	"errors"
	"testing"

	"bloglist/internal/common"
	"bloglist/internal/models"
	"bloglist/internal/service"
)

type mockBlogRepo struct {
	CreateBlogFunc          func(ctx context.Context, blog *models.Blog) error
	GetBlogByIDFunc         func(ctx context.Context, id string) (*models.Blog, error)
	UpdateLikesFunc         func(ctx context.Context, id string, likes int64) (*models.Blog, error)
	DeleteBlogFunc          func(ctx context.Context, id string) error
	ListBlogsWithOwnersFunc func(ctx context.Context) ([]models.BlogWithOwner, error)
}

func (m *mockBlogRepo) CreateBlog(ctx context.Context, blog *models.Blog) error {
	return m.CreateBlogFunc(ctx, blog)
}
func (m *mockBlogRepo) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	return m.GetBlogByIDFunc(ctx, id)
}
func (m *mockBlogRepo) UpdateLikes(ctx context.Context, id string, likes int64) (*models.Blog, error) {
	return m.UpdateLikesFunc(ctx, id, likes)
}
func (m *mockBlogRepo) DeleteBlog(ctx context.Context, id string) error {
	return m.DeleteBlogFunc(ctx, id)
}
func (m *mockBlogRepo) ListBlogsWithOwners(ctx context.Context) ([]models.BlogWithOwner, error) {
	return m.ListBlogsWithOwnersFunc(ctx)
}

type mockOwnerRepo struct {
	GetUserByIDFunc func(ctx context.Context, id string) (*models.User, error)
	AppendBlogFunc  func(ctx context.Context, userID, blogID string) error
	RemoveBlogFunc  func(ctx context.Context, userID, blogID string) error
}

func (m *mockOwnerRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return m.GetUserByIDFunc(ctx, id)
}
func (m *mockOwnerRepo) AppendBlog(ctx context.Context, userID, blogID string) error {
	return m.AppendBlogFunc(ctx, userID, blogID)
}
func (m *mockOwnerRepo) RemoveBlog(ctx context.Context, userID, blogID string) error {
	return m.RemoveBlogFunc(ctx, userID, blogID)
}

func knownOwner(id string) *mockOwnerRepo {
	return &mockOwnerRepo{
		GetUserByIDFunc: func(ctx context.Context, got string) (*models.User, error) {
			if got != id {
				return nil, common.ErrNotFound
			}
			return &models.User{ID: id, Username: "alice", Blogs: []string{}}, nil
		},
	}
}

func TestCreate_UnknownSubject(t *testing.T) {
	created := false
	blogs := &mockBlogRepo{
		CreateBlogFunc: func(context.Context, *models.Blog) error {
			created = true
			return nil
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	_, err := svc.Create(context.Background(), "ghost", service.CreateBlogRequest{
		Title: "t", URL: "http://x",
	})
	if !errors.Is(err, common.ErrUnknownUser) {
		t.Fatalf("Create error = %v; want ErrUnknownUser", err)
	}
	if created {
		t.Error("blog must not be persisted for an unknown subject")
	}
}

func TestCreate_MissingTitleOrURL(t *testing.T) {
	created := false
	blogs := &mockBlogRepo{
		CreateBlogFunc: func(context.Context, *models.Blog) error {
			created = true
			return nil
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	for _, req := range []service.CreateBlogRequest{
		{URL: "http://x"},
		{Title: "t"},
		{},
	} {
		_, err := svc.Create(context.Background(), "u1", req)
		if !errors.Is(err, common.ErrValidation) {
			t.Fatalf("Create(%+v) error = %v; want ErrValidation", req, err)
		}
		if err.Error() != "title or url missing" {
			t.Errorf("Create(%+v) message = %q", req, err.Error())
		}
	}
	if created {
		t.Error("blog must not be persisted when validation fails")
	}
}

func TestCreate_DefaultsLikesAndAppendsToOwner(t *testing.T) {
	var persisted *models.Blog
	blogs := &mockBlogRepo{
		CreateBlogFunc: func(_ context.Context, blog *models.Blog) error {
			persisted = blog
			return nil
		},
	}
	owners := knownOwner("u1")
	var appendedUser, appendedBlog string
	owners.AppendBlogFunc = func(_ context.Context, userID, blogID string) error {
		appendedUser, appendedBlog = userID, blogID
		return nil
	}
	svc := service.NewBlogService(blogs, owners)

	blog, err := svc.Create(context.Background(), "u1", service.CreateBlogRequest{
		Title: "First", URL: "http://a/1", Author: "Alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blog.ID == "" {
		t.Error("expected a generated id")
	}
	if blog.Likes != 0 {
		t.Errorf("expected likes to default to 0, got %d", blog.Likes)
	}
	if blog.Owner != "u1" {
		t.Errorf("expected owner u1, got %q", blog.Owner)
	}
	if persisted == nil || persisted.ID != blog.ID {
		t.Error("expected the returned blog to be the persisted one")
	}
	if appendedUser != "u1" || appendedBlog != blog.ID {
		t.Errorf("expected blog id appended to owner's list, got (%q, %q)", appendedUser, appendedBlog)
	}
}

func TestCreate_NegativeLikes(t *testing.T) {
	svc := service.NewBlogService(&mockBlogRepo{}, knownOwner("u1"))

	likes := int64(-5)
	_, err := svc.Create(context.Background(), "u1", service.CreateBlogRequest{
		Title: "t", URL: "http://x", Likes: &likes,
	})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("Create error = %v; want ErrValidation", err)
	}
}

func TestUpdateLikes_AbsentField(t *testing.T) {
	stored := &models.Blog{ID: "b1", Title: "First", URL: "http://a/1", Likes: 4, Owner: "u1"}
	blogs := &mockBlogRepo{
		GetBlogByIDFunc: func(_ context.Context, id string) (*models.Blog, error) {
			return stored, nil
		},
		UpdateLikesFunc: func(context.Context, string, int64) (*models.Blog, error) {
			t.Fatal("UpdateLikes must not be called when the field is absent")
			return nil, nil
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	blog, err := svc.UpdateLikes(context.Background(), "b1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blog.Likes != 4 {
		t.Errorf("expected stored likes 4, got %d", blog.Likes)
	}
}

func TestUpdateLikes_NegativeLikes(t *testing.T) {
	blogs := &mockBlogRepo{
		UpdateLikesFunc: func(context.Context, string, int64) (*models.Blog, error) {
			t.Fatal("UpdateLikes must not be called with negative likes")
			return nil, nil
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	likes := int64(-5)
	_, err := svc.UpdateLikes(context.Background(), "b1", &likes)
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("UpdateLikes error = %v; want ErrValidation", err)
	}
	if err.Error() != "likes must not be negative" {
		t.Errorf("UpdateLikes message = %q", err.Error())
	}
}

func TestUpdateLikes_NotFound(t *testing.T) {
	blogs := &mockBlogRepo{
		UpdateLikesFunc: func(context.Context, string, int64) (*models.Blog, error) {
			return nil, common.ErrNotFound
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	likes := int64(9)
	_, err := svc.UpdateLikes(context.Background(), "missing", &likes)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("UpdateLikes error = %v; want ErrNotFound", err)
	}
}

func TestDelete_NotOwner(t *testing.T) {
	deleted := false
	blogs := &mockBlogRepo{
		GetBlogByIDFunc: func(context.Context, string) (*models.Blog, error) {
			return &models.Blog{ID: "b1", Owner: "someone-else"}, nil
		},
		DeleteBlogFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	err := svc.Delete(context.Background(), "u1", "b1")
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("Delete error = %v; want ErrForbidden", err)
	}
	if deleted {
		t.Error("blog must not be deleted by a non-owner")
	}
}

func TestDelete_MissingBlog(t *testing.T) {
	blogs := &mockBlogRepo{
		GetBlogByIDFunc: func(context.Context, string) (*models.Blog, error) {
			return nil, common.ErrNotFound
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	err := svc.Delete(context.Background(), "u1", "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Delete error = %v; want ErrNotFound", err)
	}
}

func TestDelete_Owner(t *testing.T) {
	deleted := ""
	blogs := &mockBlogRepo{
		GetBlogByIDFunc: func(context.Context, string) (*models.Blog, error) {
			return &models.Blog{ID: "b1", Owner: "u1"}, nil
		},
		DeleteBlogFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	owners := knownOwner("u1")
	removed := ""
	owners.RemoveBlogFunc = func(_ context.Context, userID, blogID string) error {
		removed = blogID
		return nil
	}
	svc := service.NewBlogService(blogs, owners)

	if err := svc.Delete(context.Background(), "u1", "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "b1" {
		t.Errorf("expected blog b1 deleted, got %q", deleted)
	}
	if removed != "b1" {
		t.Errorf("expected blog b1 removed from owner's list, got %q", removed)
	}
}

func TestList_PassesThrough(t *testing.T) {
	want := []models.BlogWithOwner{{
		Blog: models.Blog{ID: "b1", Title: "First", URL: "http://a/1", Owner: "u1"},
		User: models.UserRef{ID: "u1", Username: "alice"},
	}}
	blogs := &mockBlogRepo{
		ListBlogsWithOwnersFunc: func(context.Context) ([]models.BlogWithOwner, error) {
			return want, nil
		},
	}
	svc := service.NewBlogService(blogs, knownOwner("u1"))

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b1" || got[0].User.Username != "alice" {
		t.Errorf("unexpected listing: %+v", got)
	}
}
