package routes

import (
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/labstack/echo/v4"

	"pipecrm/internal/config"
	"pipecrm/internal/db"
	"pipecrm/internal/handlers"
)

// SetupUploadRoutes mounts attachment creation. Reads and deletes go through
// the generic attachment controller; creation is multipart so it gets its
// own handler.
func SetupUploadRoutes(api *echo.Group, cfg *config.Config) {
	uploadHandler := handlers.NewUploadHandler(
		db.GetDB(),
		types.ObjectCannedACLAuthenticatedRead,
	)
	api.POST("/attachments", uploadHandler.UploadAttachment)
}
