package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/access"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// NavHandler answers navigation questions for the front end's router.
type NavHandler struct {
	guard *access.Guard
}

func NewNavHandler(guard *access.Guard) *NavHandler {
	return &NavHandler{guard: guard}
}

type menuResponse struct {
	Authenticated bool            `json:"authenticated"`
	Role          domain.Role     `json:"role"`
	Home          domain.View     `json:"home"`
	Views         []domain.View   `json:"views"`
	Actions       []domain.Action `json:"actions"`
}

// Navigate evaluates a navigation to :view. Denials are not errors: the
// answer is always 200 with the outcome to apply.
//
// @Summary      Evaluate a navigation
// @Tags         navigation
// @Produce      json
// @Param        view  path      string  true  "View name (e.g. households, fees, home)"
// @Success      200   {object}  access.Decision
// @Router       /nav/{view} [get]
func (h *NavHandler) Navigate(c echo.Context) error {
	d := h.guard.Navigate(c.Request().Context(), middleware.SessionFrom(c), domain.View(c.Param("view")))
	return c.JSON(http.StatusOK, d)
}

// Menu lists the views and actions available to the session.
//
// @Summary      Navigation menu
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  menuResponse
// @Router       /nav [get]
func (h *NavHandler) Menu(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.SessionFrom(c)

	role := sess.Role(ctx)
	resp := menuResponse{
		Authenticated: sess.Authenticated(ctx) && role != domain.RoleNone,
		Role:          role,
		Views:         access.Menu(role),
		Actions:       role.AllowedActions(),
	}
	if resp.Authenticated {
		resp.Home = access.HomeFor(role)
	} else {
		resp.Home = domain.ViewLogin
	}
	return c.JSON(http.StatusOK, resp)
}
