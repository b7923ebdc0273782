// Package main initializes and starts the bloglist HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"bloglist/internal/auth"
	"bloglist/internal/config"
	"bloglist/internal/db"
	"bloglist/internal/logger"
	"bloglist/internal/repository"
	"bloglist/internal/server/handler/http"
	"bloglist/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("a JWT secret is required (-s flag or JWT_SECRET)")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Repair blog↔owner cross-references in the background.
	db.StartOwnershipReconciler(context.Background(), postgresDB,
		time.Minute, zapLogger)

	// Initialize repositories for users and blogs.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	blogRepo := repository.NewPostgresBlogRepository(postgresDB)

	// Token authenticator shared by login and the auth middleware.
	tokens := auth.NewTokenAuthenticator([]byte(options.JWTSecret), options.TokenTTL)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo, tokens)
	blogService := service.NewBlogService(blogRepo, userRepo)

	// Create HTTP handlers for the user and blog endpoints.
	usersHandler := &http.UsersHandler{UserService: userService}
	blogsHandler := &http.BlogsHandler{BlogService: blogService}

	// Build the router with middleware and routes.
	router := http.NewRouter(usersHandler, blogsHandler, tokens, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:         options.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
