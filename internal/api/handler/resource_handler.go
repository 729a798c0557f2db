package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/mapping"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/service"
)

// RecordValidator checks a canonical record against its table's rules.
type RecordValidator interface {
	ValidateRecord(table *mapping.Table, rec mapping.Record) error
}

// ResourceHandler serves CRUD for every collection in service.Resources.
// Each method returns a handler bound to one resource.
type ResourceHandler struct {
	svc       ports.ResourceService
	validator RecordValidator
}

func NewResourceHandler(svc ports.ResourceService, v RecordValidator) *ResourceHandler {
	return &ResourceHandler{svc: svc, validator: v}
}

type listResponse struct {
	Items []mapping.Record `json:"items"`
	Total int              `json:"total"`
}

// List returns the full collection.
//
// @Summary      List a collection
// @Tags         resources
// @Produce      json
// @Security     SessionAuth
// @Param        resource  path      string  true  "households | persons | temporary-residence | fees | payments | vehicles | utility-services"
// @Success      200       {object}  listResponse
// @Failure      401       {object}  map[string]string
// @Failure      502       {object}  map[string]string
// @Router       /v1/{resource} [get]
func (h *ResourceHandler) List(res service.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := ctxActor(c)
		if err != nil {
			return err
		}
		items, err := h.svc.List(c.Request().Context(), actor, res.Name)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, listResponse{Items: items, Total: len(items)})
	}
}

// Get returns one record.
//
// @Summary      Get a record
// @Tags         resources
// @Produce      json
// @Security     SessionAuth
// @Param        resource  path      string  true  "Collection name"
// @Param        id        path      int     true  "Record ID"
// @Success      200       {object}  map[string]any
// @Failure      404       {object}  map[string]string
// @Router       /v1/{resource}/{id} [get]
func (h *ResourceHandler) Get(res service.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := ctxActor(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}
		rec, err := h.svc.Get(c.Request().Context(), actor, res.Name, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rec)
	}
}

// Create normalizes, validates and stores a new record.
//
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        resource         path      string          true   "Collection name"
// @Param        Idempotency-Key  header    string          false  "Replay protection key"
// @Param        body             body      map[string]any  true   "Canonical record"
// @Success      201              {object}  map[string]any
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /v1/{resource} [post]
func (h *ResourceHandler) Create(res service.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := ctxActor(c)
		if err != nil {
			return err
		}
		rec, err := h.bindRecord(c, res)
		if err != nil {
			return err
		}
		out, err := h.svc.Create(c.Request().Context(), actor, res.Name, rec)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, out)
	}
}

// Update changes the fields present in the body; the rest keep their value.
//
// @Summary      Update a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        resource  path      string          true  "Collection name"
// @Param        id        path      int             true  "Record ID"
// @Param        body      body      map[string]any  true  "Canonical record"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /v1/{resource}/{id} [put]
func (h *ResourceHandler) Update(res service.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := ctxActor(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}
		rec, err := h.bindPatch(c, res)
		if err != nil {
			return err
		}
		out, err := h.svc.Update(c.Request().Context(), actor, res.Name, id, rec)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, out)
	}
}

// Delete removes a record.
//
// @Summary      Delete a record
// @Tags         resources
// @Security     SessionAuth
// @Param        resource  path  string  true  "Collection name"
// @Param        id        path  int     true  "Record ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/{resource}/{id} [delete]
func (h *ResourceHandler) Delete(res service.Resource) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := ctxActor(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := h.svc.Delete(c.Request().Context(), actor, res.Name, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// bindRecord decodes the body as a canonical record, fills defaults for
// missing fields and checks the table's rules.
func (h *ResourceHandler) bindRecord(c echo.Context, res service.Resource) (mapping.Record, error) {
	input, rec, err := h.bind(c, res)
	if err != nil {
		return nil, err
	}
	if err := h.validate(res, res.Table.AsSent(input, rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

// bindPatch is bindRecord for updates: only the fields present in the body
// are kept and checked.
func (h *ResourceHandler) bindPatch(c echo.Context, res service.Resource) (mapping.Record, error) {
	input, rec, err := h.bind(c, res)
	if err != nil {
		return nil, err
	}
	patch := res.Table.Sent(input, rec)
	if err := h.validate(res, res.Table.AsSent(input, patch)); err != nil {
		return nil, err
	}
	return patch, nil
}

func (h *ResourceHandler) bind(c echo.Context, res service.Resource) (mapping.Record, mapping.Record, error) {
	var raw map[string]any
	// BindBody keeps path params out of the record.
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	input := mapping.Record(raw)
	return input, res.Table.Normalize(input), nil
}

func (h *ResourceHandler) validate(res service.Resource, rec mapping.Record) error {
	if h.validator == nil {
		return nil
	}
	return h.validator.ValidateRecord(res.Table, rec)
}
