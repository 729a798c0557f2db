package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

type DashboardHandler struct {
	svc ports.DashboardService
}

func NewDashboardHandler(svc ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary returns the role-scoped dashboard counters.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  domain.DashboardSummary
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditHandler lets administrators read the write audit trail.
type AuditHandler struct {
	reader ports.AuditReader
}

func NewAuditHandler(reader ports.AuditReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

// Recent lists the latest audit entries.
//
// @Summary      Recent audit entries
// @Tags         audit
// @Produce      json
// @Security     SessionAuth
// @Param        entity  query     string  false  "Entity filter (household, fee, ...)"
// @Param        limit   query     int     false  "Max entries (default 50, max 200)"
// @Success      200     {array}   domain.AuditEntry
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /v1/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = min(n, maxAuditLimit)
	}
	out, err := h.reader.Recent(c.Request().Context(), c.QueryParam("entity"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
