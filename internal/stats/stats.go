// Package stats computes likes aggregations over a set of blogs.
package stats

import "bloglist/internal/models"

// AuthorCount names an author together with the number of blogs they wrote.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes names an author together with their cumulative likes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int64  `json:"likes"`
}

// Summary bundles every aggregation for the stats endpoint. Pointer
// fields are nil when there are no blogs.
type Summary struct {
	TotalLikes int64        `json:"totalLikes"`
	Favorite   *models.Blog `json:"favorite,omitempty"`
	MostBlogs  *AuthorCount `json:"mostBlogs,omitempty"`
	MostLikes  *AuthorLikes `json:"mostLikes,omitempty"`
}

// TotalLikes sums the likes of all blogs.
func TotalLikes(blogs []models.Blog) int64 {
	var sum int64
	for _, b := range blogs {
		sum += b.Likes
	}
	return sum
}

// FavoriteBlog returns the blog with the most likes, or nil when blogs
// is empty. Ties keep the earlier blog.
func FavoriteBlog(blogs []models.Blog) *models.Blog {
	if len(blogs) == 0 {
		return nil
	}
	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}
	return &fav
}

// MostBlogs returns the author with the largest number of blogs and the
// count, or nil when blogs is empty.
func MostBlogs(blogs []models.Blog) *AuthorCount {
	if len(blogs) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, b := range blogs {
		counts[b.Author]++
	}
	top := &AuthorCount{}
	for author, n := range counts {
		if n > top.Blogs {
			top.Author = author
			top.Blogs = n
		}
	}
	return top
}

// MostLikes returns the author with the largest cumulative likes and the
// total, or nil when blogs is empty.
func MostLikes(blogs []models.Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}
	likes := make(map[string]int64)
	for _, b := range blogs {
		likes[b.Author] += b.Likes
	}
	var top *AuthorLikes
	for author, n := range likes {
		if top == nil || n > top.Likes {
			top = &AuthorLikes{Author: author, Likes: n}
		}
	}
	return top
}

// Summarize computes every aggregation in one pass-friendly bundle.
func Summarize(blogs []models.Blog) Summary {
	return Summary{
		TotalLikes: TotalLikes(blogs),
		Favorite:   FavoriteBlog(blogs),
		MostBlogs:  MostBlogs(blogs),
		MostLikes:  MostLikes(blogs),
	}
}
