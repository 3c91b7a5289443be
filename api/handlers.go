package api

import (
	"time"

	"github.com/omar-mohamud/raagsanplatform/database"
	"github.com/omar-mohamud/raagsanplatform/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, signer *services.UploadSigner, tokens tokenManager, adminUser, adminPass string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(db.ProjectStore(), db.StoryStore()),
		adminHandler:   newAdminHandler(db.ProjectStore()),
		storyHandler:   newStoryHandler(db.StoryStore()),
		uploadHandler:  newUploadHandler(signer),
		authHandler:    newAuthHandler(tokens, adminUser, adminPass),
		healthHandler:  newHealthHandler(db.Conns(), startupTime),
	}
}
