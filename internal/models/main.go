// Package models defines the core data structures for users and blogs.
package models

// User represents an application user with credentials and the ordered
// list of blog ids it owns.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name chosen by the user. Unique.
	Username string `json:"username"`
	// Name is an optional display name.
	Name string `json:"name,omitempty"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in responses.
	PasswordHash string `json:"-"`
	// Blogs holds the ids of blogs owned by this user, in creation order.
	// Every id must reference an existing blog whose Owner equals ID.
	Blogs []string `json:"blogs"`
}

// Blog represents a single catalogued blog entry.
type Blog struct {
	// ID is the unique identifier for the blog.
	ID string `json:"id"`
	// Title of the entry. Required.
	Title string `json:"title"`
	// URL of the entry. Required.
	URL string `json:"url"`
	// Author is an optional free-form author string.
	Author string `json:"author,omitempty"`
	// Likes is a non-negative counter, zero when omitted on creation.
	Likes int64 `json:"likes"`
	// Owner is the id of the user that created the blog. Set once.
	Owner string `json:"owner"`
}

// UserRef is the reduced owner projection attached to listed blogs.
// It carries no credential material.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// BlogRef is the reduced blog projection attached to listed users.
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int64  `json:"likes"`
}

// BlogWithOwner is a blog annotated with its owner projection,
// as returned by the blogs listing endpoint.
type BlogWithOwner struct {
	Blog
	User UserRef `json:"user"`
}

// UserWithBlogs is a user annotated with the projection of its owned
// blogs, as returned by the users listing endpoint.
type UserWithBlogs struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name,omitempty"`
	Blogs    []BlogRef `json:"blogs"`
}
