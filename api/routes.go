package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public site endpoints and the authenticated admin
// endpoints. Story deletion sits in the admin group too: the shared-secret
// header is accepted there alongside a session token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/health", handlers.healthHandler.health())
		r.Post("/api/auth/login", handlers.authHandler.login())

		r.Get("/api/projects", handlers.projectHandler.listProjects())
		r.Get("/api/projects/{slug}", handlers.projectHandler.getProject())
		r.Get("/api/projects/{slug}/stories", handlers.projectHandler.listProjectStories())
		r.Get("/api/stories/{slug}", handlers.storyHandler.getStory())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Admin project management
		r.Get("/api/admin/projects", handlers.adminHandler.getAllProjects())
		r.Patch("/api/admin/projects", handlers.adminHandler.updateProject())
		r.Put("/api/admin/projects", handlers.adminHandler.reorderProjects())

		// Project and story CRUD
		r.Post("/api/projects", handlers.projectHandler.createProject())
		r.Delete("/api/projects/{slug}", handlers.projectHandler.deleteProject())
		r.Post("/api/projects/{slug}/stories", handlers.projectHandler.createProjectStory())
		r.Patch("/api/stories/{slug}", handlers.storyHandler.updateStory())
		r.Delete("/api/stories/{slug}", handlers.storyHandler.deleteStory())

		// Media upload signing
		r.Post("/api/uploads/sign", handlers.uploadHandler.signUpload())
	})
}
