package registry

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pipecrm/internal/api/controllers"
	"pipecrm/internal/api/middleware"
	"pipecrm/internal/models"
	"pipecrm/internal/resource"
)

// RegisterCRUDRoutes wires every CRM resource to the generic controller. The
// privilege each repository runs at is decided here, once, instead of per
// call site: record resources run at anonymous privilege (owner scoping
// enforced where the descriptor declares it), administration resources run
// at service privilege behind an admin-role gate.
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB) {
	mount[models.Lead](g, db, "/leads", resource.Leads, resource.PrivilegeAnon, middleware.RequireMethodAccess())
	mount[models.Contact](g, db, "/contacts", resource.Contacts, resource.PrivilegeAnon, middleware.RequireMethodAccess())
	mount[models.Company](g, db, "/companies", resource.Companies, resource.PrivilegeAnon, middleware.RequireMethodAccess())
	mount[models.Deal](g, db, "/deals", resource.Deals, resource.PrivilegeAnon, middleware.RequireMethodAccess())
	mount[models.Task](g, db, "/tasks", resource.Tasks, resource.PrivilegeAnon, middleware.RequireMethodAccess())
	mount[models.Campaign](g, db, "/campaigns", resource.Campaigns, resource.PrivilegeAnon, middleware.RequireMethodAccess())

	mount[models.Role](g, db, "/roles", resource.Roles, resource.PrivilegeService, middleware.RequireRole(models.RoleAdmin))
	mount[models.Profile](g, db, "/profiles", resource.Profiles, resource.PrivilegeService, middleware.RequireRole(models.RoleAdmin))

	mountAttachments(g, db)
}

func mount[T any](g *echo.Group, db *gorm.DB, path string, desc resource.Descriptor, priv resource.Privilege, guard echo.MiddlewareFunc) {
	repo := resource.NewRepository[T](db, desc, priv)
	controller := controllers.NewCRUDController[T](repo, desc)
	group := g.Group(path)
	group.Use(guard)
	controller.RegisterRoutes(group, "")
}

// Attachments get read/delete through the generic controller; creation goes
// through the multipart upload handler instead (see routes.SetupUploadRoutes).
func mountAttachments(g *echo.Group, db *gorm.DB) {
	repo := resource.NewRepository[models.Attachment](db, resource.Attachments, resource.PrivilegeAnon)
	controller := controllers.NewCRUDController[models.Attachment](repo, resource.Attachments)
	group := g.Group("/attachments")
	group.Use(middleware.RequireMethodAccess())
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.DELETE("/:id", controller.Delete)
}
