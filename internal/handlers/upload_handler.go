package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pipecrm/internal/api/middleware"
	"pipecrm/internal/models"
	console "pipecrm/internal/utils/logger"
)

// UploadHandler stores attachment uploads: bytes go to the object store, the
// metadata row goes to Postgres, optionally linked to a deal.
type UploadHandler struct {
	db  *gorm.DB
	log *console.Logger
	acl types.ObjectCannedACL
}

func NewUploadHandler(db *gorm.DB, acl types.ObjectCannedACL) *UploadHandler {
	if acl == "" {
		acl = types.ObjectCannedACLAuthenticatedRead
	}
	return &UploadHandler{
		db:  db,
		log: console.New("upload_handler"),
		acl: acl,
	}
}

// UploadAttachment handles POST /attachments as multipart/form-data with a
// "file" part and an optional "deal_id" field.
func (h *UploadHandler) UploadAttachment(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return echo.NewHTTPError(http.StatusBadRequest, "Content-Type must be multipart/form-data")
	}

	storage := GetStorageHandler()
	if storage == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "storage backend not configured")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	}

	src, err := file.Open()
	if err != nil {
		return h.log.Error("failed to open uploaded file", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return h.log.Error("failed to read uploaded file", err)
	}

	fileType := file.Header.Get("Content-Type")
	_, key, err := storage.UploadFile(c.Request().Context(), content, file.Filename, h.acl, fileType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store file")
	}

	attachment := models.Attachment{
		Name:        file.Filename,
		Path:        key,
		Size:        file.Size,
		ContentType: fileType,
	}
	if dealID := strings.TrimSpace(c.FormValue("deal_id")); dealID != "" {
		attachment.DealID = &dealID
	}
	if userID := middleware.GetUserID(c); userID != "" {
		attachment.UploaderID = &userID
	}

	if err := h.db.WithContext(c.Request().Context()).Create(&attachment).Error; err != nil {
		return h.log.Error("failed to store attachment record", err)
	}

	return c.JSON(http.StatusCreated, attachment)
}
