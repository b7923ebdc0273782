package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"bloglist/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// bloglist API. It applies JSON content-type enforcement and request
// logging everywhere, and bearer-token authentication on the routes
// that mutate owned resources.
//
// Routes:
//
//	POST   /users            → usersHandler.Register
//	GET    /users            → usersHandler.List
//	POST   /login            → usersHandler.Login
//	GET    /blogs            → blogsHandler.List
//	GET    /blogs/stats      → blogsHandler.Stats
//	PUT    /blogs/{id}       → blogsHandler.Update
//	POST   /blogs            → blogsHandler.Create (bearer token required)
//	DELETE /blogs/{id}       → blogsHandler.Delete (bearer token required)
func NewRouter(
	usersHandler *UsersHandler,
	blogsHandler *BlogsHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Post("/users", usersHandler.Register)
	r.Get("/users", usersHandler.List)
	r.Post("/login", usersHandler.Login)
	r.Get("/blogs", blogsHandler.List)
	r.Get("/blogs/stats", blogsHandler.Stats)
	r.Put("/blogs/{id}", blogsHandler.Update)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(verifier))
		r.Post("/blogs", blogsHandler.Create)
		r.Delete("/blogs/{id}", blogsHandler.Delete)
	})

	return r
}
