package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pipecrm/internal/api/middleware"
	"pipecrm/internal/resource"
)

// CRUDController serves list/get/create/update/delete for one resource. All
// per-resource behavior (required fields, defaults, filters, joins) comes
// from the descriptor, so this controller is instantiated once per resource
// instead of being copy-pasted per handler.
type CRUDController[T any] struct {
	store resource.Store[T]
	desc  resource.Descriptor
}

func NewCRUDController[T any](store resource.Store[T], desc resource.Descriptor) *CRUDController[T] {
	return &CRUDController[T]{store: store, desc: desc}
}

// List handles GET /{resource}. Filters outside the descriptor's allow-list
// are ignored. limit defaults to 100 when absent; an explicit limit=0 is a
// valid request for an empty page.
func (c *CRUDController[T]) List(ctx echo.Context) error {
	limit := resource.DefaultLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	offset := 0
	if raw := ctx.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			offset = n
		}
	}

	filters := make(map[string]string)
	for _, field := range c.desc.Filters {
		if value := ctx.QueryParam(field); value != "" {
			filters[field] = value
		}
	}

	page, err := c.store.List(ctx.Request().Context(), middleware.GetUserID(ctx), filters, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    page.Items,
		"count":   page.Count,
	})
}

// Get handles GET /{resource}/:id.
func (c *CRUDController[T]) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}
	entity, err := c.store.Get(ctx.Request().Context(), middleware.GetUserID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entity)
}

// Create handles POST /{resource}: normalize (trim, required, defaults),
// decode, validate, persist. Validation failures are reported before any
// store call is made.
func (c *CRUDController[T]) Create(ctx echo.Context) error {
	var raw map[string]interface{}
	if err := ctx.Bind(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	fields, verr := resource.Normalize(c.desc, raw)
	if verr != nil {
		return verr
	}
	for field := range fields {
		if !c.desc.FieldWritable(field) {
			delete(fields, field)
		}
	}
	if c.desc.OwnerField != "" {
		if _, present := fields[c.desc.OwnerField]; !present {
			if userID := middleware.GetUserID(ctx); userID != "" {
				fields[c.desc.OwnerField] = userID
			}
		}
	}

	entity, err := resource.Decode[T](fields)
	if err != nil {
		return err
	}
	if err := ctx.Validate(entity); err != nil {
		return err
	}

	if err := c.store.Create(ctx.Request().Context(), entity); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, entity)
}

// Update handles PUT /{resource}/:id as a partial update: only keys present
// in the body are written, and an explicit null clears the field.
func (c *CRUDController[T]) Update(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	var raw map[string]interface{}
	if err := ctx.Bind(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	fields := resource.NormalizeUpdate(c.desc, raw)

	entity, err := c.store.Update(ctx.Request().Context(), middleware.GetUserID(ctx), id, fields)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entity)
}

// Delete handles DELETE /{resource}/:id. A second delete of the same id
// reports NotFound, never a silent success.
func (c *CRUDController[T]) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}
	if err := c.store.Delete(ctx.Request().Context(), middleware.GetUserID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// RegisterRoutes mounts the standard CRUD surface for this resource.
func (c *CRUDController[T]) RegisterRoutes(g *echo.Group, path string) {
	g.GET(path, c.List)
	g.POST(path, c.Create)
	g.GET(path+"/:id", c.Get)
	g.PUT(path+"/:id", c.Update)
	g.DELETE(path+"/:id", c.Delete)
}
