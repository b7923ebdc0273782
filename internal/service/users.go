// Package service provides the business logic for user accounts and the
// blog ledger, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/common"
	"bloglist/internal/models"
)

// minCredentialLength is the shortest accepted username or password.
const minCredentialLength = 3

// UserRepository defines the persistence operations required by the
// user service.
type UserRepository interface {
	// CreateUser inserts a new user. Username collisions are reported
	// as common.ErrDuplicate.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByUsername fetches a user by its unique username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// ListUsersWithBlogs returns all users with their owned-blog projection.
	ListUsersWithBlogs(ctx context.Context) ([]models.UserWithBlogs, error)
}

// TokenIssuer mints a signed credential for the given user id.
type TokenIssuer interface {
	Generate(userID string) (string, error)
}

// UserService implements registration, login, and user listing.
type UserService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewUserService constructs a UserService from its repository and the
// token issuer used on login.
func NewUserService(repo UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a new user with a hashed password. The username must
// be unique and both credentials at least three characters long.
func (s *UserService) Register(ctx context.Context, username, name, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.NewValidation("both username and password must be given")
	}
	if len(username) < minCredentialLength {
		return nil, common.NewValidation("username must be at least 3 characters long")
	}
	if len(password) < minCredentialLength {
		return nil, common.NewValidation("password must be at least 3 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Blogs:        []string{},
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the username and password and returns a signed bearer
// token for the user. Unknown usernames and wrong passwords both yield
// common.ErrBadCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil, common.ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.ErrBadCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Users returns all users annotated with the reduced projection of the
// blogs they own.
func (s *UserService) Users(ctx context.Context) ([]models.UserWithBlogs, error) {
	return s.repo.ListUsersWithBlogs(ctx)
}
