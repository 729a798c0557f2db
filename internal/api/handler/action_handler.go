package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

// ActionHandler exposes the narrow state-change endpoints and the fee
// bookkeeping views.
type ActionHandler struct {
	svc ports.FeePaymentService
}

func NewActionHandler(svc ports.FeePaymentService) *ActionHandler {
	return &ActionHandler{svc: svc}
}

type feeStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ToggleFeeStatus enables or disables a fee.
//
// @Summary      Set fee status
// @Tags         fees
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      int               true  "Fee ID"
// @Param        body  body      feeStatusRequest  true  "New status"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/fees/{id}/status [patch]
func (h *ActionHandler) ToggleFeeStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req feeStatusRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	rec, err := h.svc.ToggleFeeStatus(c.Request().Context(), actor, id, *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// VerifyPayment confirms a payment.
//
// @Summary      Verify payment
// @Tags         payments
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/payments/{id}/verify [patch]
func (h *ActionHandler) VerifyPayment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.VerifyPayment(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// ActivateHousehold reactivates a household.
//
// @Summary      Activate household
// @Tags         households
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      int  true  "Household ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Router       /v1/households/{id}/activate [put]
func (h *ActionHandler) ActivateHousehold(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.ActivateHousehold(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// FeeSummaries reports collection progress per fee.
//
// @Summary      Fee collection summary
// @Tags         statistics
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}   domain.FeeSummary
// @Failure      403  {object}  map[string]string
// @Router       /v1/fees/summary [get]
func (h *ActionHandler) FeeSummaries(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	out, err := h.svc.FeeSummaries(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// HouseholdBalance reports what one household owes.
//
// @Summary      Household balance
// @Tags         households
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      int  true  "Household ID"
// @Success      200  {object}  domain.HouseholdBalance
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/households/{id}/balance [get]
func (h *ActionHandler) HouseholdBalance(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.HouseholdBalance(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
